package product

import "context"

// Repository defines the interface for product repository operations.
// Every lookup is scoped to the owner; products of other users behave as missing.
type Repository interface {
	CreateMany(ctx context.Context, products []*Product) error
	Get(ctx context.Context, userID, productID string) (*Product, error)
	// ListByUser returns the user's products in insertion order.
	ListByUser(ctx context.Context, userID string) ([]*Product, error)
	Update(ctx context.Context, userID, productID string, fn func(*Product)) (*Product, error)
	Delete(ctx context.Context, userID, productID string) error

	// DeleteMany and UpdateMany skip ids that are missing or owned by
	// someone else and report how many were skipped.
	DeleteMany(ctx context.Context, userID string, productIDs []string) (deleted, skipped int, err error)
	UpdateMany(ctx context.Context, userID string, productIDs []string, fn func(*Product) bool) (updated, skipped int, err error)
}
