package product

import (
	"slices"
	"time"

	"github.com/Ansy5566/ctosaas/internal/domain/task"
)

// Status represents the publication status of a product
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	}
	return false
}

type Option struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type VariantOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is a purchasable configuration of a product
type Variant struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"productId"`
	SKU               string          `json:"sku,omitempty"`
	Title             string          `json:"title"`
	Price             float64         `json:"price"`
	CompareAtPrice    *float64        `json:"compareAtPrice,omitempty"`
	InventoryQuantity *int            `json:"inventoryQuantity,omitempty"`
	Weight            *float64        `json:"weight,omitempty"`
	WeightUnit        string          `json:"weightUnit,omitempty"`
	Options           []VariantOption `json:"options"`
	Image             *string         `json:"image,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// Product is a catalog entry collected by a task
type Product struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	TaskID      string        `json:"taskId"`
	Platform    task.Platform `json:"platform"`
	Handle      string        `json:"handle"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Vendor      string        `json:"vendor,omitempty"`
	ProductType string        `json:"productType,omitempty"`
	Tags        []string      `json:"tags"`
	Images      []string      `json:"images"`
	Variants    []Variant     `json:"variants"`
	Options     []Option      `json:"options"`
	Status      Status        `json:"status"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// FirstVariant returns the variant exports read prices and SKUs from.
func (p *Product) FirstVariant() (Variant, bool) {
	if len(p.Variants) == 0 {
		return Variant{}, false
	}
	return p.Variants[0], true
}

// Clone returns a deep copy of p.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Tags = slices.Clone(p.Tags)
	c.Images = slices.Clone(p.Images)
	if p.PublishedAt != nil {
		at := *p.PublishedAt
		c.PublishedAt = &at
	}

	c.Options = make([]Option, len(p.Options))
	for i, o := range p.Options {
		c.Options[i] = Option{Name: o.Name, Values: slices.Clone(o.Values)}
	}

	c.Variants = make([]Variant, len(p.Variants))
	for i, v := range p.Variants {
		c.Variants[i] = v.clone()
	}
	return &c
}

func (v Variant) clone() Variant {
	c := v
	c.Options = slices.Clone(v.Options)
	if v.CompareAtPrice != nil {
		x := *v.CompareAtPrice
		c.CompareAtPrice = &x
	}
	if v.InventoryQuantity != nil {
		x := *v.InventoryQuantity
		c.InventoryQuantity = &x
	}
	if v.Weight != nil {
		x := *v.Weight
		c.Weight = &x
	}
	if v.Image != nil {
		x := *v.Image
		c.Image = &x
	}
	return c
}
