package types

// ChatRequest is the stateless generate-reply input. The client is the
// source of truth for conversation history, sent per request; the server
// truncates it to the last 10 entries before prompting.
type ChatRequest struct {
	Message      string    `json:"message"`
	DocumentText string    `json:"document_text,omitempty"`
	History      []Message `json:"history,omitempty"`
}

// SubmitMessageRequest is the controller-side submit input for a stored
// session.
type SubmitMessageRequest struct {
	Message string `json:"message"`
}
