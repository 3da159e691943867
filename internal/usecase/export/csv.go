package export

import (
	"strconv"
	"strings"

	domainExport "github.com/Ansy5566/ctosaas/internal/domain/export"
	"github.com/Ansy5566/ctosaas/internal/domain/product"
)

var (
	shopifyHeader     = []string{"Handle", "Title", "Body (HTML)", "Vendor", "Product Category", "Tags", "Variant SKU", "Variant Price", "Status"}
	wooCommerceHeader = []string{"sku", "name", "description", "regular_price", "tags", "type", "status"}
)

// RenderCSV renders products in the column layout of format. The header
// row is always present and rows are joined by "\n" without a trailing one.
func RenderCSV(format domainExport.Format, products []*product.Product) string {
	header, row := shopifyHeader, shopifyRow
	if format == domainExport.FormatWooCommerce {
		header, row = wooCommerceHeader, wooCommerceRow
	}

	lines := make([]string, 0, len(products)+1)
	lines = append(lines, joinRow(header))
	for _, p := range products {
		lines = append(lines, joinRow(row(p)))
	}
	return strings.Join(lines, "\n")
}

func shopifyRow(p *product.Product) []string {
	sku, price := variantFields(p)
	return []string{
		p.Handle,
		p.Title,
		p.Description,
		p.Vendor,
		p.ProductType,
		strings.Join(p.Tags, ", "),
		sku,
		price,
		string(p.Status),
	}
}

func wooCommerceRow(p *product.Product) []string {
	sku, price := variantFields(p)
	status := "draft"
	if p.Status == product.StatusActive {
		status = "publish"
	}
	return []string{
		sku,
		p.Title,
		p.Description,
		price,
		strings.Join(p.Tags, ", "),
		"simple",
		status,
	}
}

func variantFields(p *product.Product) (sku, price string) {
	v, ok := p.FirstVariant()
	if !ok {
		return "", "0"
	}
	return v.SKU, strconv.FormatFloat(v.Price, 'f', -1, 64)
}

func joinRow(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = escapeField(f)
	}
	return strings.Join(escaped, ",")
}

// escapeField quotes a field holding a comma, quote or newline and doubles
// its quotes. Other fields are written as is.
func escapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
