package product

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domainProduct "github.com/Ansy5566/ctosaas/internal/domain/product"
	"github.com/Ansy5566/ctosaas/internal/logger"
	appErrors "github.com/Ansy5566/ctosaas/pkg/errors"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

// Service implements the product catalog use cases
type Service struct {
	productRepo domainProduct.Repository
	now         func() time.Time
}

func NewService(productRepo domainProduct.Repository) *Service {
	return &Service{
		productRepo: productRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// List filters the user's products, sorts them newest first and returns the requested page.
func (s *Service) List(ctx context.Context, userID string, query *ListProductsQuery) (*domainProduct.Page, error) {
	if err := utils.ValidateStruct(query); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	all, err := s.productRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	filter := query.toFilter()
	matched := make([]*domainProduct.Product, 0, len(all))
	for _, p := range all {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	domainProduct.SortNewestFirst(matched)

	page := domainProduct.Paginate(matched, filter.Page, filter.Limit)
	return &page, nil
}

func (s *Service) Get(ctx context.Context, userID, productID string) (*domainProduct.Product, error) {
	return s.productRepo.Get(ctx, userID, productID)
}

// Update applies the allow-listed fields of raw and bumps updatedAt.
func (s *Service) Update(ctx context.Context, userID, productID string, raw map[string]interface{}) (*domainProduct.Product, error) {
	patch := domainProduct.ParsePatch(raw)

	p, err := s.productRepo.Update(ctx, userID, productID, func(p *domainProduct.Product) {
		patch.Apply(p)
		p.UpdatedAt = s.now()
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Product updated",
		zap.String("user_id", userID),
		zap.String("product_id", productID),
		logger.Event("product_updated"),
	)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, userID, productID string) error {
	if err := s.productRepo.Delete(ctx, userID, productID); err != nil {
		return err
	}

	logger.Info("Product deleted",
		zap.String("user_id", userID),
		zap.String("product_id", productID),
		logger.Event("product_deleted"),
	)
	return nil
}

// BatchDelete removes the listed products the user owns. Foreign and
// missing ids are skipped.
func (s *Service) BatchDelete(ctx context.Context, userID string, req *BatchDeleteRequest) (*BatchDeleteResponse, error) {
	if len(req.ProductIDs) == 0 {
		return nil, domainProduct.ErrEmptyBatch
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	deleted, skipped, err := s.productRepo.DeleteMany(ctx, userID, req.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to delete products: %w", err)
	}

	logger.Info("Products batch deleted",
		zap.String("user_id", userID),
		zap.Int("deleted", deleted),
		zap.Int("skipped", skipped),
		logger.Event("products_batch_deleted"),
	)
	return &BatchDeleteResponse{Deleted: deleted}, nil
}

// BatchUpdate applies one action to the listed products the user owns and
// counts each touched product once.
func (s *Service) BatchUpdate(ctx context.Context, userID string, req *BatchUpdateRequest) (*BatchUpdateResponse, error) {
	if len(req.ProductIDs) == 0 {
		return nil, domainProduct.ErrEmptyBatch
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	action := domainProduct.BatchAction(req.Action)
	data := req.Data.toBatchData()
	now := s.now()

	updated, skipped, err := s.productRepo.UpdateMany(ctx, userID, req.ProductIDs, func(p *domainProduct.Product) bool {
		return action.Apply(p, data, now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update products: %w", err)
	}

	logger.Info("Products batch updated",
		zap.String("user_id", userID),
		zap.String("action", req.Action),
		zap.Int("updated", updated),
		zap.Int("skipped", skipped),
		logger.Event("products_batch_updated"),
	)
	return &BatchUpdateResponse{Updated: updated}, nil
}
