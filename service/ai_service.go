package service

import "context"

// AIService is the conversation responder: one assembled prompt in, one
// text reply out. Implementations wrap types.ErrUpstream around every
// transport or provider-side failure. No retry, no caching, no streaming.
type AIService interface {
	Respond(ctx context.Context, prompt string) (string, error)
}
