package types

import "time"

// Session is one independent chat thread. Messages is append-only while
// the session is live; Title is derived from the first message.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}
