package memory

import (
	"context"

	"github.com/Ansy5566/ctosaas/internal/domain/subscription"
	appErrors "github.com/Ansy5566/ctosaas/pkg/errors"
)

type SubscriptionRepository struct {
	store *Store
}

func NewSubscriptionRepository(store *Store) *SubscriptionRepository {
	return &SubscriptionRepository{store: store}
}

func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*subscription.Subscription, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sub, ok := r.store.subscriptions[userID]
	if !ok {
		return nil, subscription.ErrSubscriptionNotFound
	}
	return sub.Clone(), nil
}

func (r *SubscriptionRepository) Consume(ctx context.Context, userID string, n int, enforce bool) (*subscription.Subscription, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	sub, ok := r.store.subscriptions[userID]
	if !ok {
		return nil, subscription.ErrSubscriptionNotFound
	}

	if sub.Quota.IsUnlimited() {
		return sub.Clone(), nil
	}
	if enforce && !sub.Quota.Allows(n) {
		return nil, appErrors.ErrQuotaExceeded
	}

	sub.Quota.Used += n
	return sub.Clone(), nil
}
