package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tieubaoca/pdfchat-be/storage"
	"github.com/tieubaoca/pdfchat-be/types"
	"github.com/tieubaoca/pdfchat-be/utils"
)

// DocumentExtractor turns raw PDF bytes into plain text plus metadata.
type DocumentExtractor interface {
	Extract(data []byte, mimeType string) (*types.DocumentContent, error)
}

type chatState int

const (
	stateIdle chatState = iota
	stateAwaitingReply
	stateAwaitingExtraction
)

// ChatService orchestrates user actions against the session store, the
// prompt assembler and the conversation responder. One action runs to
// completion before the next is accepted; a second action issued while a
// remote call is outstanding gets types.ErrBusy.
type ChatService struct {
	store     storage.SessionStore
	extractor DocumentExtractor
	ai        AIService

	mu       sync.Mutex
	state    chatState
	document *types.DocumentContext
}

func NewChatService(store storage.SessionStore, extractor DocumentExtractor, ai AIService) *ChatService {
	return &ChatService{
		store:     store,
		extractor: extractor,
		ai:        ai,
	}
}

// SubmitMessage appends the user message optimistically, builds the prompt
// from the session history plus any uploaded document text, and asks the
// responder for a reply. On an upstream failure the user message stays in
// the session ("sent but unanswered") and the error surfaces to the caller.
func (s *ChatService) SubmitMessage(ctx context.Context, sessionID, content string) (*types.SubmitMessageResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message cannot be empty", types.ErrInvalidInput)
	}
	if err := s.begin(stateAwaitingReply); err != nil {
		return nil, err
	}
	defer s.finish()

	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	history := session.Messages

	userMsg := types.Message{
		ID:        uuid.NewString(),
		Role:      types.RoleUser,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	if err := s.store.AppendMessage(sessionID, userMsg); err != nil {
		return nil, err
	}

	documentText := ""
	if doc := s.Document(); doc != nil {
		documentText = doc.Text
	}

	prompt := BuildPrompt(history, documentText, content)
	reply, err := s.ai.Respond(ctx, prompt)
	if err != nil {
		return &types.SubmitMessageResponse{UserMessage: &userMsg}, err
	}

	assistantMsg := types.Message{
		ID:        uuid.NewString(),
		Role:      types.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now().UTC(),
	}
	if err := s.store.AppendMessage(sessionID, assistantMsg); err != nil {
		return &types.SubmitMessageResponse{UserMessage: &userMsg}, err
	}

	return &types.SubmitMessageResponse{
		UserMessage:      &userMsg,
		AssistantMessage: &assistantMsg,
	}, nil
}

// UploadDocument extracts the PDF, stores the document context for the
// session and appends an informational assistant message. On extraction
// failure the previous document context is left untouched.
func (s *ChatService) UploadDocument(ctx context.Context, sessionID, fileName string, data []byte, mimeType string) (*types.UploadDocumentResponse, error) {
	if err := s.begin(stateAwaitingExtraction); err != nil {
		return nil, err
	}
	defer s.finish()

	if _, err := s.store.GetSession(sessionID); err != nil {
		return nil, err
	}

	content, err := s.extractor.Extract(data, mimeType)
	if err != nil {
		return nil, err
	}

	doc := &types.DocumentContext{
		FileName:  fileName,
		Text:      content.Text,
		PageCount: content.PageCount,
	}
	s.setDocument(doc)

	notice := types.Message{
		ID:   uuid.NewString(),
		Role: types.RoleAssistant,
		Content: fmt.Sprintf(
			"PDF uploaded successfully!\n\nFile: %s\nPages: %d\nContent extracted: %d characters\n\nYou can now ask me questions about this document!",
			fileName, content.PageCount, utils.CharCount(content.Text),
		),
		Timestamp: time.Now().UTC(),
	}
	if err := s.store.AppendMessage(sessionID, notice); err != nil {
		return nil, err
	}

	return &types.UploadDocumentResponse{Notice: &notice, Document: doc}, nil
}

// NewSession creates and activates a fresh session. The document context is
// transient and resets here.
func (s *ChatService) NewSession() (*types.Session, error) {
	if err := s.requireIdle(); err != nil {
		return nil, err
	}
	s.setDocument(nil)
	return s.store.CreateSession()
}

// SelectSession activates an existing session and resets the document
// context.
func (s *ChatService) SelectSession(sessionID string) (*types.Session, error) {
	if err := s.requireIdle(); err != nil {
		return nil, err
	}
	session, err := s.store.SelectSession(sessionID)
	if err != nil {
		return nil, err
	}
	s.setDocument(nil)
	return session, nil
}

// Document returns the current document context, nil when none is loaded.
func (s *ChatService) Document() *types.DocumentContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

func (s *ChatService) begin(next chatState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateIdle {
		return types.ErrBusy
	}
	s.state = next
	return nil
}

func (s *ChatService) finish() {
	s.mu.Lock()
	s.state = stateIdle
	s.mu.Unlock()
}

func (s *ChatService) requireIdle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateIdle {
		return types.ErrBusy
	}
	return nil
}

func (s *ChatService) setDocument(doc *types.DocumentContext) {
	s.mu.Lock()
	s.document = doc
	s.mu.Unlock()
}
