package subscription

import "context"

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Subscription, error)
	// Consume adds n to the used quota of userID's subscription unless the
	// quota is unlimited. With enforce set, a finite quota that would
	// overflow fails with ErrQuotaExceeded and nothing changes.
	Consume(ctx context.Context, userID string, n int, enforce bool) (*Subscription, error)
}
