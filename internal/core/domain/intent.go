package domain

import "strings"

// PriceRange bounds a search by price. Either side may be open.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Intent is the structured interpretation of a free-text shopping query.
// It is produced once per pipeline run and not mutated afterwards.
type Intent struct {
	ProductType     string      `json:"product_type"`
	Features        []string    `json:"features"`
	PriceConstraint *PriceRange `json:"price_constraint,omitempty"`
	BrandPreference string      `json:"brand_preference,omitempty"`
	UseCase         string      `json:"use_case"`
}

const unknownProductType = "unknown"

// DefaultIntent is the fallback when the language model reply cannot be
// decoded. It never fails a pipeline run.
func DefaultIntent() Intent {
	return Intent{
		ProductType: unknownProductType,
		Features:    []string{},
		UseCase:     "general",
	}
}

// HasKnownProductType reports whether parsing resolved an actual product type.
func (i Intent) HasKnownProductType() bool {
	pt := strings.TrimSpace(i.ProductType)
	return pt != "" && !strings.EqualFold(pt, unknownProductType)
}

// Normalize fills defaulted fields so a partially decoded intent is safe to
// use downstream.
func (i Intent) Normalize() Intent {
	out := i
	if strings.TrimSpace(out.ProductType) == "" {
		out.ProductType = unknownProductType
	}
	if out.Features == nil {
		out.Features = []string{}
	}
	if strings.TrimSpace(out.UseCase) == "" {
		out.UseCase = "general"
	}
	return out
}
