package models

import "time"

// Session backs a bearer token. The JWT carries the session ID; the row's
// existence is what makes the token revocable.
type Session struct {
	ID        string
	UserID    string
	Expires   time.Time
	CreatedAt time.Time
}
