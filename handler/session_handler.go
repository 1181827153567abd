package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tieubaoca/pdfchat-be/service"
	"github.com/tieubaoca/pdfchat-be/storage"
	"github.com/tieubaoca/pdfchat-be/types"
)

// SessionHandler exposes the server-side session store and chat controller:
// creating, listing and selecting sessions, submitting messages and
// uploading documents into a stored session.
type SessionHandler struct {
	chat          *service.ChatService
	store         storage.SessionStore
	maxUploadSize int64
}

func NewSessionHandler(chat *service.ChatService, store storage.SessionStore, maxUploadSize int64) *SessionHandler {
	return &SessionHandler{
		chat:          chat,
		store:         store,
		maxUploadSize: maxUploadSize,
	}
}

func (h *SessionHandler) HandleCreateSession(c *gin.Context) {
	session, err := h.chat.NewSession()
	if err != nil {
		c.JSON(statusForError(err), types.DataResponse{Status: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, types.DataResponse{Status: true, Data: session})
}

func (h *SessionHandler) HandleListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   h.store.ListSessions(),
	})
}

func (h *SessionHandler) HandleSelectSession(c *gin.Context) {
	session, err := h.chat.SelectSession(c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), types.DataResponse{Status: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true, Data: session})
}

func (h *SessionHandler) HandleSubmitMessage(c *gin.Context) {
	var req types.SubmitMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	result, err := h.chat.SubmitMessage(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		if errors.Is(err, types.ErrUpstream) {
			log.Printf("session: generate reply: %v", err)
			// The user message is already appended and stays; report that
			// alongside the failure.
			c.JSON(statusForError(err), types.DataResponse{
				Status:  false,
				Message: "Failed to generate response",
				Data:    result,
			})
			return
		}
		c.JSON(statusForError(err), types.DataResponse{Status: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true, Data: result})
}

func (h *SessionHandler) HandleUploadDocument(c *gin.Context) {
	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "No file provided",
		})
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "File too large",
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to read file",
		})
		return
	}

	result, err := h.chat.UploadDocument(
		c.Request.Context(), c.Param("id"), header.Filename, data, header.Header.Get("Content-Type"),
	)
	if err != nil {
		log.Printf("session: upload document %s: %v", header.Filename, err)
		c.JSON(statusForError(err), types.DataResponse{Status: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: true, Data: result})
}
