package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tieubaoca/pdfchat-be/service"
	"github.com/tieubaoca/pdfchat-be/types"
)

// ExtractHandler serves the document extraction endpoint: one binary file
// field in, the extracted text plus metadata out.
type ExtractHandler struct {
	extractor     service.DocumentExtractor
	maxUploadSize int64
}

func NewExtractHandler(extractor service.DocumentExtractor, maxUploadSize int64) *ExtractHandler {
	return &ExtractHandler{
		extractor:     extractor,
		maxUploadSize: maxUploadSize,
	}
}

func (h *ExtractHandler) HandleExtract(c *gin.Context) {
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

	content, err := h.extractor.Extract(data, header.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("extract: %s: %v", header.Filename, err)
		c.JSON(statusForError(err), types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.ExtractResponse{
			Text:  content.Text,
			Pages: content.PageCount,
			Info:  content.Info,
		},
	})
}
