package memory

import (
	"context"
	"time"

	"github.com/Ansy5566/ctosaas/internal/domain/subscription"
	"github.com/Ansy5566/ctosaas/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User, sub *subscription.Subscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.usersByEmail[u.Email]; exists {
		return user.ErrDuplicateEmail
	}

	r.store.users.Set(u.ID, copyUser(u))
	r.store.usersByEmail[u.Email] = u.ID
	if sub != nil {
		r.store.subscriptions[u.ID] = sub.Clone()
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.getLocked(userID)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	userID, ok := r.store.usersByEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return r.getLocked(userID)
}

func (r *UserRepository) getLocked(userID string) (*user.User, error) {
	u, ok := r.store.users.Get(userID)
	if !ok {
		return nil, user.ErrUserNotFound
	}

	out := copyUser(u)
	out.Subscription = r.store.subscriptions[userID].Clone()
	return out, nil
}

// Update stores the mutable profile fields and password hash of u.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.users.Get(u.ID)
	if !ok {
		return user.ErrUserNotFound
	}

	stored.Name = u.Name
	stored.Avatar = copyString(u.Avatar)
	stored.PasswordHash = u.PasswordHash
	stored.UpdatedAt = u.UpdatedAt
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users.Get(userID); !ok {
		return user.ErrUserNotFound
	}
	r.store.deleteUserLocked(userID)
	return nil
}

type ResetTokenRepository struct {
	store *Store
}

func NewResetTokenRepository(store *Store) *ResetTokenRepository {
	return &ResetTokenRepository{store: store}
}

func (r *ResetTokenRepository) Create(ctx context.Context, token *user.PasswordResetToken) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t := *token
	r.store.resetTokens.Set(t.Token, &t)
	return nil
}

func (r *ResetTokenRepository) Get(ctx context.Context, token string) (*user.PasswordResetToken, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.resetTokens.Get(token)
	if !ok {
		return nil, user.ErrResetTokenNotFound
	}
	out := *t
	return &out, nil
}

func (r *ResetTokenRepository) Delete(ctx context.Context, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.resetTokens.Delete(token)
	return nil
}

func (r *ResetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.resetTokens.DeleteFunc(func(_ string, t *user.PasswordResetToken) bool {
		return t.IsExpired(now)
	}), nil
}

func copyUser(u *user.User) *user.User {
	c := *u
	c.Avatar = copyString(u.Avatar)
	c.Subscription = nil
	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
