package memory

import (
	"context"
	"slices"

	"github.com/Ansy5566/ctosaas/internal/domain/system"
)

type SystemRepository struct {
	store *Store
}

func NewSystemRepository(store *Store) *SystemRepository {
	return &SystemRepository{store: store}
}

func (r *SystemRepository) Announcements(ctx context.Context) ([]system.Announcement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return slices.Clone(r.store.announcements), nil
}

func (r *SystemRepository) Changelog(ctx context.Context) ([]system.ChangelogEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries := make([]system.ChangelogEntry, len(r.store.changelog))
	for i, e := range r.store.changelog {
		e.Changes = slices.Clone(e.Changes)
		entries[i] = e
	}
	return entries, nil
}
