package product

import (
	"sort"
	"strings"

	"github.com/Ansy5566/ctosaas/internal/domain/task"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Filter represents filtering and pagination options for listing products
type Filter struct {
	Search   string
	Platform task.Platform
	Status   Status

	Page  int
	Limit int
}

// Matches reports whether p passes every filter criterion that is set.
func (f Filter) Matches(p *Product) bool {
	if f.Search != "" {
		q := strings.ToLower(strings.TrimSpace(f.Search))
		if !strings.Contains(strings.ToLower(p.Handle), q) && !strings.Contains(strings.ToLower(p.Title), q) {
			return false
		}
	}
	if f.Platform != "" && p.Platform != f.Platform {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	return true
}

// Page is one page of a filtered product listing
type Page struct {
	Items      []*Product `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}

// NormalizeLimit applies the default and bounds to a requested page size.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// SortNewestFirst orders products by creation time, newest first. Products
// created at the same instant keep their relative order.
func SortNewestFirst(products []*Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
}

// Paginate slices products into the requested page. The page number is
// clamped into [1, totalPages] and totalPages is never below 1.
func Paginate(products []*Product, page, limit int) Page {
	limit = NormalizeLimit(limit)
	total := len(products)

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	page = min(max(page, 1), totalPages)

	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	items := products[start:end]
	if items == nil {
		items = []*Product{}
	}

	return Page{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
