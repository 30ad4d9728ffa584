package domain

import (
	"github.com/shopspring/decimal"
)

// LineKey identifies a cart line. Adding a product in the same size and
// color merges into the existing line instead of creating a duplicate.
type LineKey struct {
	ProductID int    `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// LineItem is one (product, size, color) entry in a cart. Price is a
// snapshot taken when the item was added, so later catalog price changes
// never alter an existing cart.
type LineItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
}

// Key returns the merge identity of the line
func (li LineItem) Key() LineKey {
	return LineKey{ProductID: li.ProductID, Size: li.Size, Color: li.Color}
}
