package types

// DataResponse is the common envelope for every JSON endpoint.
type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type ExtractResponse struct {
	Text  string       `json:"text"`
	Pages int          `json:"pages"`
	Info  DocumentInfo `json:"info"`
}

// SubmitMessageResponse returns both messages appended by a submit. On an
// upstream failure AssistantMessage is nil while UserMessage is still
// present, mirroring the "sent but unanswered" state kept in the session.
type SubmitMessageResponse struct {
	UserMessage      *Message `json:"user_message,omitempty"`
	AssistantMessage *Message `json:"assistant_message,omitempty"`
}

type UploadDocumentResponse struct {
	Notice   *Message         `json:"notice,omitempty"`
	Document *DocumentContext `json:"document,omitempty"`
}
