package memory

import (
	"context"
	"time"

	"github.com/Ansy5566/ctosaas/internal/domain/session"
)

type SessionRepository struct {
	store *Store
}

func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s := *sess
	r.store.sessions.Set(s.ID, &s)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*session.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.sessions.Get(sessionID)
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	out := *s
	return &out, nil
}

// Delete is idempotent.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.sessions.Delete(sessionID)
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.sessions.DeleteFunc(func(_ string, s *session.Session) bool {
		return !s.IsValid(now)
	}), nil
}
