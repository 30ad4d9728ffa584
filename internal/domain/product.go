package domain

import (
	"github.com/shopspring/decimal"
)

// Category groups products into the storefront's top-level collections
type Category string

const (
	CategoryWomen Category = "women"
	CategoryMen   Category = "men"
	CategoryKids  Category = "kids"
	CategoryOther Category = "other"
)

// Color is a named swatch shown on product cards
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Product represents a product in the catalog. Products are owned by the
// external catalog service; the storefront never mutates them outside the
// admin write-through endpoints.
type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Category      Category         `json:"category"`
	Sizes         []string         `json:"sizes"`
	Colors        []Color          `json:"colors"`
	Images        []string         `json:"images"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	IsNew         bool             `json:"is_new"`
	IsFeatured    bool             `json:"is_featured"`
	IsTrending    bool             `json:"is_trending"`
}
