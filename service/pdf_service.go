package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tieubaoca/pdfchat-be/types"
)

// MimeTypePDF is the only declared content type the extractor accepts.
const MimeTypePDF = "application/pdf"

// PDFService extracts plain text and metadata from raw PDF bytes. It is
// stateless; every call is independent.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// Extract validates the input and parses the document. Input validation
// runs before any parse attempt so a wrong declared type never touches the
// parser.
func (s *PDFService) Extract(data []byte, mimeType string) (*types.DocumentContent, error) {
	if mimeType != MimeTypePDF {
		return nil, fmt.Errorf("%w: file must be a PDF, got %q", types.ErrInvalidInput, mimeType)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", types.ErrInvalidInput)
	}

	content, err := s.parse(data)
	if err != nil {
		return nil, err
	}

	content.Text = strings.TrimSpace(content.Text)
	if content.Text == "" {
		return nil, fmt.Errorf("%w: the PDF might be image-based or contain no text", types.ErrEmptyContent)
	}
	return content, nil
}

// parse walks every page and concatenates the cleaned page text. The
// underlying reader panics on some corrupt files, so the whole parse is
// guarded by a recover that converts panics to ErrMalformedDocument.
func (s *PDFService) parse(data []byte) (content *types.DocumentContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("%w: %v", types.ErrMalformedDocument, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, classifyParseError(err)
	}

	totalPages := reader.NumPage()
	var sb strings.Builder
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip failed pages instead of failing the whole document.
			continue
		}
		text = cleanText(text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}

	return &types.DocumentContent{
		Text:      sb.String(),
		PageCount: totalPages,
		Info:      readInfo(reader),
	}, nil
}

// classifyParseError distinguishes password-protected documents from
// structurally broken ones by the reader's error text.
func classifyParseError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "password") || strings.Contains(msg, "encrypted") {
		return fmt.Errorf("%w: %v", types.ErrProtectedDocument, err)
	}
	return fmt.Errorf("%w: %v", types.ErrMalformedDocument, err)
}

func readInfo(reader *pdf.Reader) types.DocumentInfo {
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return types.DocumentInfo{}
	}
	out := types.DocumentInfo{}
	if v := info.Key("Title"); v.Kind() == pdf.String {
		out.Title = v.Text()
	}
	if v := info.Key("Author"); v.Kind() == pdf.String {
		out.Author = v.Text()
	}
	return out
}

func cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // Null character
		"\ufffd": "",   // Unicode replacement character
		"\u001b": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
		"  ":     " ",  // Multiple spaces to single space
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}
	return strings.TrimSpace(cleaned)
}
