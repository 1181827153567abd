package service

import (
	"strings"

	"github.com/tieubaoca/pdfchat-be/types"
)

// HistoryWindow bounds how many prior turns feed a prompt. Earlier history
// is silently dropped, no summarization.
const HistoryWindow = 10

const (
	systemPromptPlain = "You are a helpful AI assistant. Provide accurate and helpful responses to user questions."

	systemPromptDocument = "You are an AI assistant that can analyze and answer questions about PDF documents. " +
		"When a user asks about the PDF content, provide accurate information based on the document. " +
		"If the question is not related to the PDF, you can answer normally."

	documentStartMarker = "--- PDF CONTENT START ---"
	documentEndMarker   = "--- PDF CONTENT END ---"
)

// BuildPrompt assembles the single prompt string sent to the model: system
// preamble, the last HistoryWindow turns, the delimited document text when
// present, then the new user message. Pure function; empty sections are
// omitted entirely.
func BuildPrompt(history []types.Message, documentText, userMessage string) string {
	documentText = strings.TrimSpace(documentText)

	var sb strings.Builder
	if documentText != "" {
		sb.WriteString(systemPromptDocument)
	} else {
		sb.WriteString(systemPromptPlain)
	}
	sb.WriteString("\n\n")

	if len(history) > 0 {
		if len(history) > HistoryWindow {
			history = history[len(history)-HistoryWindow:]
		}
		sb.WriteString("Previous conversation:\n")
		for _, msg := range history {
			if msg.Role == types.RoleUser {
				sb.WriteString("User: ")
			} else {
				sb.WriteString("Assistant: ")
			}
			sb.WriteString(msg.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if documentText != "" {
		sb.WriteString("\n\nI have access to the following PDF document content. ")
		sb.WriteString("Please use this information to answer questions about the document:\n\n")
		sb.WriteString(documentStartMarker)
		sb.WriteString("\n")
		sb.WriteString(documentText)
		sb.WriteString("\n")
		sb.WriteString(documentEndMarker)
		sb.WriteString("\n\n")
	}

	sb.WriteString("User question: ")
	sb.WriteString(userMessage)
	sb.WriteString("\n\nPlease provide a helpful and accurate response:")
	return sb.String()
}
