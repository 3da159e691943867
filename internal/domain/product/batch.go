package product

import (
	"math"
	"time"
)

// BatchAction names a mutation applied to every product of a batch
type BatchAction string

const (
	ActionUpdatePrice    BatchAction = "updatePrice"
	ActionUpdateCategory BatchAction = "updateCategory"
	ActionAddTags        BatchAction = "addTags"
	ActionClearTags      BatchAction = "clearTags"
)

var BatchActions = []BatchAction{ActionUpdatePrice, ActionUpdateCategory, ActionAddTags, ActionClearTags}

type PriceModifierType string

const (
	PriceSet      PriceModifierType = "set"
	PriceIncrease PriceModifierType = "increase"
	PriceDecrease PriceModifierType = "decrease"
	PriceMultiply PriceModifierType = "multiply"
)

var PriceModifierTypes = []PriceModifierType{PriceSet, PriceIncrease, PriceDecrease, PriceMultiply}

type PriceModifier struct {
	Type  PriceModifierType
	Value float64
}

// Apply returns the modified price. Decreases never go below zero.
func (m PriceModifier) Apply(price float64) float64 {
	switch m.Type {
	case PriceSet:
		return m.Value
	case PriceIncrease:
		return price + m.Value
	case PriceDecrease:
		return math.Max(0, price-m.Value)
	case PriceMultiply:
		return price * m.Value
	default:
		return price
	}
}

// BatchData carries the action arguments. Which fields matter depends on the action.
type BatchData struct {
	PriceModifier *PriceModifier
	Category      *string
	Tags          []string
}

// Apply mutates p according to action and reports whether p was touched.
// An action whose argument is missing leaves p alone.
func (action BatchAction) Apply(p *Product, data BatchData, now time.Time) bool {
	switch action {
	case ActionAddTags:
		if data.Tags == nil {
			return false
		}
		p.Tags = MergeTags(p.Tags, data.Tags)
	case ActionClearTags:
		p.Tags = []string{}
	case ActionUpdatePrice:
		if data.PriceModifier == nil {
			return false
		}
		for i := range p.Variants {
			p.Variants[i].Price = data.PriceModifier.Apply(p.Variants[i].Price)
			p.Variants[i].UpdatedAt = now
		}
	case ActionUpdateCategory:
		if data.Category == nil {
			return false
		}
		p.ProductType = *data.Category
	default:
		return false
	}

	p.UpdatedAt = now
	return true
}

// MergeTags returns the ordered union of existing and extra with duplicates
// and empty entries removed.
func MergeTags(existing, extra []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(extra))
	out := make([]string, 0, len(existing)+len(extra))
	for _, list := range [][]string{existing, extra} {
		for _, tag := range list {
			if tag == "" {
				continue
			}
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}
