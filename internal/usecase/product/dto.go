package product

import (
	domainProduct "github.com/Ansy5566/ctosaas/internal/domain/product"
	"github.com/Ansy5566/ctosaas/internal/domain/task"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

func init() {
	utils.MustRegisterEnumValidation("platform", task.PlatformNames()...)
	utils.MustRegisterEnumValidation("product_status",
		string(domainProduct.StatusDraft), string(domainProduct.StatusActive), string(domainProduct.StatusArchived))

	actions := make([]string, len(domainProduct.BatchActions))
	for i, a := range domainProduct.BatchActions {
		actions[i] = string(a)
	}
	utils.MustRegisterEnumValidation("batch_action", actions...)

	modifiers := make([]string, len(domainProduct.PriceModifierTypes))
	for i, m := range domainProduct.PriceModifierTypes {
		modifiers[i] = string(m)
	}
	utils.MustRegisterEnumValidation("price_modifier", modifiers...)
}

// ListProductsQuery is bound from the query string
type ListProductsQuery struct {
	Search   string `form:"search"`
	Platform string `form:"platform" validate:"omitempty,platform"`
	Status   string `form:"status" validate:"omitempty,product_status"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type BatchDeleteRequest struct {
	ProductIDs []string `json:"productIds"`
}

type BatchDeleteResponse struct {
	Deleted int `json:"deleted"`
}

type PriceModifierRequest struct {
	Type  string  `json:"type" validate:"required,price_modifier"`
	Value float64 `json:"value"`
}

type BatchUpdateData struct {
	PriceModifier *PriceModifierRequest `json:"priceModifier"`
	Category      interface{}           `json:"category"`
	Tags          []string              `json:"tags"`
}

type BatchUpdateRequest struct {
	Action     string          `json:"action" validate:"required,batch_action"`
	ProductIDs []string        `json:"productIds"`
	Data       BatchUpdateData `json:"data"`
}

type BatchUpdateResponse struct {
	Updated int `json:"updated"`
}

func (q *ListProductsQuery) toFilter() domainProduct.Filter {
	return domainProduct.Filter{
		Search:   q.Search,
		Platform: task.Platform(q.Platform),
		Status:   domainProduct.Status(q.Status),
		Page:     q.Page,
		Limit:    q.Limit,
	}
}

// toBatchData keeps only well-typed arguments. A non-string category is
// treated as absent.
func (d BatchUpdateData) toBatchData() domainProduct.BatchData {
	var data domainProduct.BatchData
	if d.PriceModifier != nil {
		data.PriceModifier = &domainProduct.PriceModifier{
			Type:  domainProduct.PriceModifierType(d.PriceModifier.Type),
			Value: d.PriceModifier.Value,
		}
	}
	if category, ok := d.Category.(string); ok {
		data.Category = &category
	}
	data.Tags = d.Tags
	return data
}
