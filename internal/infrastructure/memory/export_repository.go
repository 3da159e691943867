package memory

import (
	"context"

	"github.com/Ansy5566/ctosaas/internal/domain/export"
)

type ExportRepository struct {
	store *Store
}

func NewExportRepository(store *Store) *ExportRepository {
	return &ExportRepository{store: store}
}

func (r *ExportRepository) Create(ctx context.Context, record *export.Record) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.exports.Set(record.ID, record.Clone())
	return nil
}

// Get returns the full record including the CSV payload.
func (r *ExportRepository) Get(ctx context.Context, userID, exportID string) (*export.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.exports.Get(exportID)
	if !ok || rec.UserID != userID {
		return nil, export.ErrExportNotFound
	}
	return rec.Clone(), nil
}

// ListByUser returns metadata only.
func (r *ExportRepository) ListByUser(ctx context.Context, userID string) ([]*export.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records := make([]*export.Record, 0)
	r.store.exports.Each(func(_ string, rec *export.Record) bool {
		if rec.UserID == userID {
			records = append(records, rec.Metadata())
		}
		return true
	})
	return records, nil
}
