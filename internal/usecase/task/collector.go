package task

import (
	"context"
	"fmt"
	"time"

	"github.com/Ansy5566/ctosaas/internal/domain/product"
	domainTask "github.com/Ansy5566/ctosaas/internal/domain/task"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

// Collector turns a task into the products it found.
type Collector interface {
	Collect(ctx context.Context, t *domainTask.Task) ([]*product.Product, error)
}

// MockCollector fabricates sample products instead of fetching the source URL.
type MockCollector struct{}

func (MockCollector) Collect(ctx context.Context, t *domainTask.Task) ([]*product.Product, error) {
	products := make([]*product.Product, 0, t.TotalProducts)
	for i := 0; i < t.TotalProducts; i++ {
		products = append(products, mockProduct(t, i))
	}
	return products, nil
}

func mockProduct(t *domainTask.Task, idx int) *product.Product {
	id := utils.NewID(utils.PrefixProduct)
	createdAt := t.CreatedAt
	publishedAt := createdAt

	return &product.Product{
		ID:          id,
		UserID:      t.UserID,
		TaskID:      t.ID,
		Platform:    t.Platform,
		Handle:      fmt.Sprintf("%s-product-%s-%d", t.Platform, lastN(id, 8), idx),
		Title:       fmt.Sprintf("Sample product %d (%s)", idx+1, t.Platform),
		Description: "Sample product description generated by the demo collector.",
		Vendor:      "Demo Vendor",
		ProductType: "Demo Type",
		Tags:        []string{"demo", string(t.Platform)},
		Images:      []string{},
		Variants:    []product.Variant{mockVariant(id, createdAt)},
		Options:     []product.Option{{Name: "Default", Values: []string{"Default"}}},
		Status:      product.StatusActive,
		PublishedAt: &publishedAt,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func mockVariant(productID string, createdAt time.Time) product.Variant {
	compareAt := 29.99
	inventory := 100
	weight := 0.5

	return product.Variant{
		ID:                utils.NewID(utils.PrefixVariant),
		ProductID:         productID,
		SKU:               "SKU-" + lastN(productID, 6),
		Title:             "Default Title",
		Price:             19.99,
		CompareAtPrice:    &compareAt,
		InventoryQuantity: &inventory,
		Weight:            &weight,
		WeightUnit:        "kg",
		Options:           []product.VariantOption{{Name: "Default", Value: "Default"}},
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
