package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainExport "github.com/Ansy5566/ctosaas/internal/domain/export"
	"github.com/Ansy5566/ctosaas/internal/domain/product"
	"github.com/Ansy5566/ctosaas/internal/infrastructure/memory"
	appErrors "github.com/Ansy5566/ctosaas/pkg/errors"
)

func newService(t *testing.T) (*Service, *memory.ProductRepository, *time.Time) {
	t.Helper()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	svc := NewService(memory.NewExportRepository(store), products)

	now := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })
	return svc, products, &now
}

func seedProducts(t *testing.T, repo *memory.ProductRepository, userID string, ids ...string) {
	t.Helper()
	products := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		products = append(products, &product.Product{
			ID:       id,
			UserID:   userID,
			Handle:   "h-" + id,
			Title:    "T " + id,
			Variants: []product.Variant{{SKU: "S-" + id, Price: 9.5}},
			Status:   product.StatusActive,
		})
	}
	require.NoError(t, repo.CreateMany(context.Background(), products))
}

func TestCreate_AllProducts(t *testing.T) {
	svc, repo, _ := newService(t)
	seedProducts(t, repo, "usr_1", "prd_a", "prd_b")
	seedProducts(t, repo, "usr_2", "prd_c")
	ctx := context.Background()

	record, err := svc.Create(ctx, "usr_1", &CreateExportRequest{Format: "shopify"})
	require.NoError(t, err)
	assert.Equal(t, []string{"prd_a", "prd_b"}, record.ProductIDs)
	assert.Equal(t, domainExport.StatusCompleted, record.Status)
	assert.Equal(t, "/api/v1/export/"+record.ID+"/download", record.FileURL)
	assert.Equal(t, "shopify-export-2025-06-01.csv", record.FileName)
	assert.Empty(t, record.CSV)

	dl, err := svc.Download(ctx, "usr_1", record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.FileName, dl.FileName)
	lines := strings.Split(dl.CSV, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "h-prd_a,T prd_a,,,,,S-prd_a,9.5,active", lines[1])
}

func TestCreate_Selection(t *testing.T) {
	svc, repo, _ := newService(t)
	seedProducts(t, repo, "usr_1", "prd_a", "prd_b")
	seedProducts(t, repo, "usr_2", "prd_c")

	record, err := svc.Create(context.Background(), "usr_1", &CreateExportRequest{
		Format:     "woocommerce",
		ProductIDs: []string{"prd_b", "prd_c", "prd_missing"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"prd_b"}, record.ProductIDs)
	assert.Equal(t, "woocommerce-export-2025-06-01.csv", record.FileName)
}

func TestCreate_EmptySnapshot(t *testing.T) {
	svc, _, _ := newService(t)

	record, err := svc.Create(context.Background(), "usr_1", &CreateExportRequest{Format: "shopify"})
	require.NoError(t, err)
	assert.Empty(t, record.ProductIDs)

	dl, err := svc.Download(context.Background(), "usr_1", record.ID)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(shopifyHeader, ","), dl.CSV)
}

func TestCreate_InvalidFormat(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Create(context.Background(), "usr_1", &CreateExportRequest{Format: "magento"})
	assert.Equal(t, appErrors.KindValidation, appErrors.KindOf(err))

	_, err = svc.Create(context.Background(), "usr_1", &CreateExportRequest{})
	assert.Equal(t, appErrors.KindValidation, appErrors.KindOf(err))
}

func TestSnapshotIsImmutable(t *testing.T) {
	svc, repo, _ := newService(t)
	seedProducts(t, repo, "usr_1", "prd_a")
	ctx := context.Background()

	record, err := svc.Create(ctx, "usr_1", &CreateExportRequest{Format: "shopify"})
	require.NoError(t, err)

	_, err = repo.Update(ctx, "usr_1", "prd_a", func(p *product.Product) { p.Title = "Changed" })
	require.NoError(t, err)

	dl, err := svc.Download(ctx, "usr_1", record.ID)
	require.NoError(t, err)
	assert.Contains(t, dl.CSV, "T prd_a")
	assert.NotContains(t, dl.CSV, "Changed")
}

func TestListAndDownloadOwnership(t *testing.T) {
	svc, _, now := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "usr_1", &CreateExportRequest{Format: "shopify"})
	require.NoError(t, err)
	*now = now.Add(time.Hour)
	second, err := svc.Create(ctx, "usr_1", &CreateExportRequest{Format: "woocommerce"})
	require.NoError(t, err)
	assert.Equal(t, "woocommerce-export-2025-06-02.csv", second.FileName)

	records, err := svc.List(ctx, "usr_1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)
	for _, r := range records {
		assert.Empty(t, r.CSV)
	}

	_, err = svc.Download(ctx, "usr_2", first.ID)
	assert.ErrorIs(t, err, domainExport.ErrExportNotFound)
	assert.Equal(t, appErrors.KindNotFound, appErrors.KindOf(err))
}
