package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tieubaoca/pdfchat-be/service"
	"github.com/tieubaoca/pdfchat-be/types"
)

// ChatHandler serves the stateless generate-reply endpoint. The client
// supplies the conversation history per request; the prompt assembler
// truncates it to the last 10 entries.
type ChatHandler struct {
	ai service.AIService
}

func NewChatHandler(ai service.AIService) *ChatHandler {
	return &ChatHandler{
		ai: ai,
	}
}

func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Message is required",
		})
		return
	}

	prompt := service.BuildPrompt(req.History, req.DocumentText, req.Message)
	reply, err := h.ai.Respond(c.Request.Context(), prompt)
	if err != nil {
		log.Printf("chat: generate reply: %v", err)
		c.JSON(statusForError(err), types.DataResponse{
			Status:  false,
			Message: "Failed to generate response",
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   types.ChatResponse{Reply: reply},
	})
}
