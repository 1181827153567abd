package handler

import (
	"errors"
	"net/http"

	"github.com/tieubaoca/pdfchat-be/types"
)

// statusForError maps the service error taxonomy to HTTP statuses. Unknown
// errors fall through to 500 so nothing propagates unhandled.
func statusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrMalformedDocument):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrProtectedDocument):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrEmptyContent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, types.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
