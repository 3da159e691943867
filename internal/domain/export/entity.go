package export

import (
	"slices"
	"time"
)

// Format is the target shop system of a CSV export
type Format string

const (
	FormatShopify     Format = "shopify"
	FormatWooCommerce Format = "woocommerce"
)

var Formats = []Format{FormatShopify, FormatWooCommerce}

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Record is an export snapshot. CSV holds the rendered payload and never
// leaves the server except through a download.
type Record struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Format      Format     `json:"format"`
	ProductIDs  []string   `json:"productIds"`
	FileURL     string     `json:"fileUrl"`
	FileName    string     `json:"fileName"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CSV         string     `json:"-"`
}

func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.ProductIDs = slices.Clone(r.ProductIDs)
	if r.CompletedAt != nil {
		at := *r.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

// Metadata returns a copy of r without the CSV payload.
func (r *Record) Metadata() *Record {
	c := r.Clone()
	if c != nil {
		c.CSV = ""
	}
	return c
}
