package session

import "time"

// Session binds an opaque id to a user until ExpiresAt
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsValid reports whether the session is still alive at now.
func (s *Session) IsValid(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
