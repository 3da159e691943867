package export

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	domainExport "github.com/Ansy5566/ctosaas/internal/domain/export"
	"github.com/Ansy5566/ctosaas/internal/domain/product"
	"github.com/Ansy5566/ctosaas/internal/logger"
	appErrors "github.com/Ansy5566/ctosaas/pkg/errors"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

// Service implements the CSV export use cases
type Service struct {
	exportRepo  domainExport.Repository
	productRepo product.Repository
	now         func() time.Time
}

func NewService(exportRepo domainExport.Repository, productRepo product.Repository) *Service {
	return &Service{
		exportRepo:  exportRepo,
		productRepo: productRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Create renders a snapshot of the selected products and stores it. The
// returned record carries metadata only.
func (s *Service) Create(ctx context.Context, userID string, req *CreateExportRequest) (*domainExport.Record, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	products, err := s.snapshot(ctx, userID, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	format := domainExport.Format(req.Format)
	now := s.now()
	id := utils.NewID(utils.PrefixExport)

	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	record := &domainExport.Record{
		ID:          id,
		UserID:      userID,
		Format:      format,
		ProductIDs:  ids,
		FileURL:     fmt.Sprintf("/api/v1/export/%s/download", id),
		FileName:    fmt.Sprintf("%s-export-%s.csv", format, now.UTC().Format(time.DateOnly)),
		Status:      domainExport.StatusCompleted,
		CreatedAt:   now,
		CompletedAt: &now,
		CSV:         RenderCSV(format, products),
	}

	if err := s.exportRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}

	logger.Info("Export created",
		zap.String("user_id", userID),
		zap.String("export_id", id),
		zap.String("format", string(format)),
		zap.Int("products", len(products)),
		logger.Event("export_created"),
	)

	return record.Metadata(), nil
}

// List returns export metadata, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]*domainExport.Record, error) {
	records, err := s.exportRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *Service) Download(ctx context.Context, userID, exportID string) (*Download, error) {
	record, err := s.exportRepo.Get(ctx, userID, exportID)
	if err != nil {
		return nil, err
	}
	return &Download{FileName: record.FileName, CSV: record.CSV}, nil
}

// snapshot returns the owned products among ids in catalog order, or the
// whole catalog when ids is empty.
func (s *Service) snapshot(ctx context.Context, userID string, ids []string) ([]*product.Product, error) {
	all, err := s.productRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if len(ids) == 0 {
		return all, nil
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	selected := make([]*product.Product, 0, len(ids))
	for _, p := range all {
		if _, ok := wanted[p.ID]; ok {
			selected = append(selected, p)
		}
	}
	return selected, nil
}
