package user

import (
	"time"

	"github.com/Ansy5566/ctosaas/internal/domain/subscription"
)

// User represents an account owner in the domain
type User struct {
	ID           string
	Email        string // normalized, unique
	Name         string
	Avatar       *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Attached on read, not owned by the user record
	Subscription *subscription.Subscription
}

// PasswordResetToken is a single-use credential for replacing a password
type PasswordResetToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
