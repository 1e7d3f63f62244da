package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The commerce API speaks plain JSON numbers for money.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name" validate:"required"`
	Description   string           `json:"description" validate:"required"`
	Category      string           `json:"category" validate:"required,category"`
	Price         decimal.Decimal  `json:"price" validate:"gt=0"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Rating        float64          `json:"rating" validate:"gte=0,lte=5"`
	Reviews       int              `json:"reviews" validate:"gte=0"`
	InStock       bool             `json:"inStock"`
	Features      []string         `json:"features,omitempty"`
	Safety        string           `json:"safety,omitempty"`
}

// ProductFilter mirrors the query parameters accepted by the catalog listing.
type ProductFilter struct {
	Category string           `json:"category,omitempty"`
	Search   string           `json:"search,omitempty"`
	MinPrice *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice *decimal.Decimal `json:"maxPrice,omitempty"`
	SortBy   string           `json:"sortBy,omitempty"`
}

// Sort keys understood by the catalog.
const (
	SortByName      = "name"
	SortByPriceAsc  = "price-low"
	SortByPriceDesc = "price-high"
	SortByRating    = "rating"
)
