package export

import "context"

type Repository interface {
	Create(ctx context.Context, record *Record) error
	Get(ctx context.Context, userID, exportID string) (*Record, error)
	ListByUser(ctx context.Context, userID string) ([]*Record, error)
}
