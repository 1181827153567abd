package handler

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tieubaoca/pdfchat-be/service"
	"github.com/tieubaoca/pdfchat-be/storage"
	"github.com/tieubaoca/pdfchat-be/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAI struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeAI) Respond(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeExtractor struct {
	content *types.DocumentContent
	err     error
}

func (f *fakeExtractor) Extract(data []byte, mimeType string) (*types.DocumentContent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.content, nil
}

func newTestStore(t *testing.T) *storage.FileStore {
	t.Helper()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "sessions.json"))
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return store
}

func newTestChatService(t *testing.T, ai service.AIService, extractor service.DocumentExtractor) (*service.ChatService, *storage.FileStore) {
	t.Helper()
	store := newTestStore(t)
	return service.NewChatService(store, extractor, ai), store
}
