package pricing

import (
	"github.com/shopspring/decimal"

	"atelier-storefront/internal/config"
	"atelier-storefront/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Calculator derives discount percentages, shipping cost and order totals.
// All arithmetic is decimal so repeated additions never drift.
type Calculator struct {
	freeThreshold decimal.Decimal
	flatRate      decimal.Decimal
}

// NewCalculator creates a Calculator from shipping configuration
func NewCalculator(cfg config.ShippingConfig) *Calculator {
	return &Calculator{
		freeThreshold: cfg.FreeThreshold,
		flatRate:      cfg.FlatRate,
	}
}

// DiscountPercent returns the rounded percentage saved against the original
// price. A missing or non-positive original price means no discount.
func DiscountPercent(price decimal.Decimal, originalPrice *decimal.Decimal) int {
	if originalPrice == nil || !originalPrice.IsPositive() {
		return 0
	}

	pct := originalPrice.Sub(price).Div(*originalPrice).Mul(hundred)
	return int(pct.Round(0).IntPart())
}

// ShippingCost is zero for subtotals strictly above the free-shipping
// threshold; a subtotal of exactly the threshold still pays the flat rate.
func (c *Calculator) ShippingCost(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(c.freeThreshold) {
		return decimal.Zero
	}
	return c.flatRate
}

// OrderTotal is the subtotal plus shipping
func (c *Calculator) OrderTotal(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(c.ShippingCost(subtotal))
}

// Subtotal sums price × quantity over all cart lines, using the price
// snapshot on each line
func Subtotal(lines []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
