package user

import (
	"context"
	"time"

	"github.com/Ansy5566/ctosaas/internal/domain/subscription"
)

// Repository defines the interface for user repository operations
type Repository interface {
	// Create stores the user, its email index entry and its subscription together.
	Create(ctx context.Context, user *User, sub *subscription.Subscription) error
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	// Delete removes the user and everything the user owns.
	Delete(ctx context.Context, userID string) error
}

// ResetTokenRepository defines the interface for password reset token operations
type ResetTokenRepository interface {
	Create(ctx context.Context, token *PasswordResetToken) error
	Get(ctx context.Context, token string) (*PasswordResetToken, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
