package types

// DocumentInfo carries the PDF info dictionary fields worth surfacing.
type DocumentInfo struct {
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
}

// DocumentContent is the extractor output for one parsed document.
type DocumentContent struct {
	Text      string       `json:"text"`
	PageCount int          `json:"pages"`
	Info      DocumentInfo `json:"info"`
}

// DocumentContext is the extracted text of the most recently uploaded PDF,
// scoped to the active session. It is not persisted and resets whenever the
// user switches or creates a session.
type DocumentContext struct {
	FileName  string `json:"file_name"`
	Text      string `json:"text"`
	PageCount int    `json:"pages"`
}
