package types

import "errors"

// Error taxonomy for the boundary operations. Handlers map these to HTTP
// statuses; services wrap them with fmt.Errorf("%w: ...") so callers can
// classify with errors.Is.
var (
	// ErrInvalidInput marks a bad or missing file, wrong declared type, or
	// an empty message.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedDocument marks a PDF whose structure cannot be parsed.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrProtectedDocument marks an encrypted or password-protected PDF.
	ErrProtectedDocument = errors.New("protected document")

	// ErrEmptyContent marks a PDF that parses but yields no extractable
	// text, e.g. image-only scans. A user-facing condition, not a crash.
	ErrEmptyContent = errors.New("no extractable text")

	// ErrUpstream marks any transport or provider-side failure of the
	// language model, including missing credentials.
	ErrUpstream = errors.New("upstream model error")

	// ErrSessionNotFound marks an unknown session id. Normal UI paths never
	// produce it; seeing it surfaced indicates a bug.
	ErrSessionNotFound = errors.New("session not found")

	// ErrBusy is returned when an action arrives while a previous remote
	// call is still outstanding for the same controller.
	ErrBusy = errors.New("another request is in progress")
)
