package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tieubaoca/pdfchat-be/storage"
	"github.com/tieubaoca/pdfchat-be/types"
)

type fakeAI struct {
	reply   string
	err     error
	prompts []string

	// started/release make Respond block for the busy test.
	started chan struct{}
	release chan struct{}
}

func (f *fakeAI) Respond(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeExtractor struct {
	content *types.DocumentContent
	err     error
	calls   int
}

func (f *fakeExtractor) Extract(data []byte, mimeType string) (*types.DocumentContent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.content, nil
}

func newTestChatService(t *testing.T, ai AIService, extractor DocumentExtractor) (*ChatService, *storage.FileStore, *types.Session) {
	t.Helper()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "sessions.json"))
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	svc := NewChatService(store, extractor, ai)
	session, err := store.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return svc, store, session
}

func TestSubmitMessageAppendsBothMessages(t *testing.T) {
	ai := &fakeAI{reply: "hi there"}
	svc, store, session := newTestChatService(t, ai, &fakeExtractor{})

	result, err := svc.SubmitMessage(context.Background(), session.ID, "hello")
	if err != nil {
		t.Fatalf("SubmitMessage failed: %v", err)
	}
	if result.UserMessage == nil || result.UserMessage.Content != "hello" {
		t.Errorf("unexpected user message: %+v", result.UserMessage)
	}
	if result.AssistantMessage == nil || result.AssistantMessage.Content != "hi there" {
		t.Errorf("unexpected assistant message: %+v", result.AssistantMessage)
	}

	got, err := store.GetSession(session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("expected 2 messages in session, got %d", len(got.Messages))
	}
	if got.Messages[0].Role != types.RoleUser || got.Messages[1].Role != types.RoleAssistant {
		t.Errorf("unexpected roles: %s, %s", got.Messages[0].Role, got.Messages[1].Role)
	}
}

func TestSubmitMessageUpstreamFailureKeepsUserMessage(t *testing.T) {
	ai := &fakeAI{err: fmt.Errorf("%w: simulated outage", types.ErrUpstream)}
	svc, store, session := newTestChatService(t, ai, &fakeExtractor{})

	result, err := svc.SubmitMessage(context.Background(), session.ID, "hello?")
	if !errors.Is(err, types.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if result == nil || result.UserMessage == nil {
		t.Fatalf("expected the user message back even on failure")
	}

	got, err := store.GetSession(session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if len(got.Messages) != 1 {
		t.Fatalf("expected the user message to stay appended, got %d messages", len(got.Messages))
	}
	if got.Messages[0].Content != "hello?" {
		t.Errorf("unexpected kept message: %q", got.Messages[0].Content)
	}
}

func TestSubmitMessageRejectsEmptyContent(t *testing.T) {
	svc, _, session := newTestChatService(t, &fakeAI{reply: "x"}, &fakeExtractor{})

	if _, err := svc.SubmitMessage(context.Background(), session.ID, "   "); !errors.Is(err, types.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmitMessageUnknownSession(t *testing.T) {
	svc, _, _ := newTestChatService(t, &fakeAI{reply: "x"}, &fakeExtractor{})

	if _, err := svc.SubmitMessage(context.Background(), "missing", "hello"); !errors.Is(err, types.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSubmitMessageWhileBusy(t *testing.T) {
	ai := &fakeAI{
		reply:   "done",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc, _, session := newTestChatService(t, ai, &fakeExtractor{})

	errc := make(chan error, 1)
	go func() {
		_, err := svc.SubmitMessage(context.Background(), session.ID, "slow one")
		errc <- err
	}()
	<-ai.started

	if _, err := svc.SubmitMessage(context.Background(), session.ID, "too soon"); !errors.Is(err, types.ErrBusy) {
		t.Errorf("expected ErrBusy for concurrent submit, got %v", err)
	}
	if _, err := svc.NewSession(); !errors.Is(err, types.ErrBusy) {
		t.Errorf("expected ErrBusy for NewSession mid-flight, got %v", err)
	}

	close(ai.release)
	if err := <-errc; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
}

func TestUploadDocumentAppendsNotice(t *testing.T) {
	extractor := &fakeExtractor{
		content: &types.DocumentContent{Text: "Hello World", PageCount: 3},
	}
	svc, store, session := newTestChatService(t, &fakeAI{reply: "x"}, extractor)

	result, err := svc.UploadDocument(context.Background(), session.ID, "report.pdf", []byte("%PDF"), MimeTypePDF)
	if err != nil {
		t.Fatalf("UploadDocument failed: %v", err)
	}

	if result.Notice == nil {
		t.Fatalf("expected an informational notice message")
	}
	if !strings.Contains(result.Notice.Content, "Pages: 3") {
		t.Errorf("notice missing page count: %q", result.Notice.Content)
	}
	if !strings.Contains(result.Notice.Content, "11 characters") {
		t.Errorf("notice missing character count: %q", result.Notice.Content)
	}
	if !strings.Contains(result.Notice.Content, "report.pdf") {
		t.Errorf("notice missing file name: %q", result.Notice.Content)
	}

	got, err := store.GetSession(session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != types.RoleAssistant {
		t.Fatalf("expected one assistant notice in session, got %+v", got.Messages)
	}

	doc := svc.Document()
	if doc == nil || doc.Text != "Hello World" || doc.PageCount != 3 || doc.FileName != "report.pdf" {
		t.Errorf("unexpected document context: %+v", doc)
	}
}

func TestUploadDocumentFailureLeavesContextUnchanged(t *testing.T) {
	extractor := &fakeExtractor{
		content: &types.DocumentContent{Text: "Hello World", PageCount: 3},
	}
	svc, _, session := newTestChatService(t, &fakeAI{reply: "x"}, extractor)

	if _, err := svc.UploadDocument(context.Background(), session.ID, "a.pdf", []byte("%PDF"), MimeTypePDF); err != nil {
		t.Fatalf("UploadDocument failed: %v", err)
	}

	extractor.err = fmt.Errorf("%w: broken xref", types.ErrMalformedDocument)
	if _, err := svc.UploadDocument(context.Background(), session.ID, "b.pdf", []byte("junk"), MimeTypePDF); !errors.Is(err, types.ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}

	doc := svc.Document()
	if doc == nil || doc.FileName != "a.pdf" {
		t.Errorf("document context changed after failed upload: %+v", doc)
	}
}

func TestSubmitMessageUsesDocumentText(t *testing.T) {
	ai := &fakeAI{reply: "grounded answer"}
	extractor := &fakeExtractor{
		content: &types.DocumentContent{Text: "Revenue was $5M in 2023.", PageCount: 1},
	}
	svc, _, session := newTestChatService(t, ai, extractor)

	if _, err := svc.UploadDocument(context.Background(), session.ID, "revenue.pdf", []byte("%PDF"), MimeTypePDF); err != nil {
		t.Fatalf("UploadDocument failed: %v", err)
	}
	if _, err := svc.SubmitMessage(context.Background(), session.ID, "What was the revenue?"); err != nil {
		t.Fatalf("SubmitMessage failed: %v", err)
	}

	if len(ai.prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(ai.prompts))
	}
	prompt := ai.prompts[0]
	iDoc := strings.Index(prompt, "Revenue was $5M in 2023.")
	iQuestion := strings.Index(prompt, "What was the revenue?")
	if iDoc == -1 || iQuestion == -1 || iDoc > iQuestion {
		t.Errorf("prompt missing document text before the question:\n%s", prompt)
	}
}

func TestSessionSwitchResetsDocumentContext(t *testing.T) {
	extractor := &fakeExtractor{
		content: &types.DocumentContent{Text: "doc text", PageCount: 2},
	}
	svc, store, session := newTestChatService(t, &fakeAI{reply: "x"}, extractor)

	if _, err := svc.UploadDocument(context.Background(), session.ID, "doc.pdf", []byte("%PDF"), MimeTypePDF); err != nil {
		t.Fatalf("UploadDocument failed: %v", err)
	}
	if svc.Document() == nil {
		t.Fatalf("expected a document context after upload")
	}

	if _, err := svc.NewSession(); err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if svc.Document() != nil {
		t.Errorf("document context survived NewSession")
	}

	if _, err := svc.UploadDocument(context.Background(), session.ID, "doc.pdf", []byte("%PDF"), MimeTypePDF); err != nil {
		t.Fatalf("UploadDocument failed: %v", err)
	}
	if _, err := svc.SelectSession(session.ID); err != nil {
		t.Fatalf("SelectSession failed: %v", err)
	}
	if svc.Document() != nil {
		t.Errorf("document context survived SelectSession")
	}
	if store.ActiveSessionID() != session.ID {
		t.Errorf("SelectSession did not mark the session active")
	}
}
