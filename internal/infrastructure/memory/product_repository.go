package memory

import (
	"context"

	"github.com/Ansy5566/ctosaas/internal/domain/product"
)

type ProductRepository struct {
	store *Store
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) CreateMany(ctx context.Context, products []*product.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, p := range products {
		r.store.products.Set(p.ID, p.Clone())
	}
	return nil
}

func (r *ProductRepository) Get(ctx context.Context, userID, productID string) (*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.ownedLocked(userID, productID)
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return p.Clone(), nil
}

func (r *ProductRepository) ListByUser(ctx context.Context, userID string) ([]*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	products := make([]*product.Product, 0)
	r.store.products.Each(func(_ string, p *product.Product) bool {
		if p.UserID == userID {
			products = append(products, p.Clone())
		}
		return true
	})
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, userID, productID string, fn func(*product.Product)) (*product.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.ownedLocked(userID, productID)
	if !ok {
		return nil, product.ErrProductNotFound
	}

	fn(p)
	return p.Clone(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, userID, productID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.ownedLocked(userID, productID); !ok {
		return product.ErrProductNotFound
	}
	r.store.products.Delete(productID)
	return nil
}

func (r *ProductRepository) DeleteMany(ctx context.Context, userID string, productIDs []string) (int, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	owned, skipped := r.ownedProducts(userID, productIDs)
	for _, p := range owned {
		r.store.products.Delete(p.ID)
	}
	return len(owned), skipped, nil
}

func (r *ProductRepository) UpdateMany(ctx context.Context, userID string, productIDs []string, fn func(*product.Product) bool) (int, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	owned, skipped := r.ownedProducts(userID, productIDs)
	updated := 0
	for _, p := range owned {
		if fn(p) {
			updated++
		}
	}
	return updated, skipped, nil
}

func (r *ProductRepository) ownedLocked(userID, productID string) (*product.Product, bool) {
	p, ok := r.store.products.Get(productID)
	if !ok || p.UserID != userID {
		return nil, false
	}
	return p, true
}

// ownedProducts resolves ids to the caller's stored products, in request
// order and without repeats. Missing and foreign ids count as skipped.
func (r *ProductRepository) ownedProducts(userID string, productIDs []string) ([]*product.Product, int) {
	seen := make(map[string]struct{}, len(productIDs))
	owned := make([]*product.Product, 0, len(productIDs))
	skipped := 0

	for _, id := range productIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		p, ok := r.ownedLocked(userID, id)
		if !ok {
			skipped++
			continue
		}
		owned = append(owned, p)
	}
	return owned, skipped
}
