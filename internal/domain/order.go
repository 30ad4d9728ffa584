package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the local ledger's status enumeration. The external order
// service uses a richer enumeration; see gateway.OrderStatus for the mapping.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
)

// rank orders statuses for the monotonic forward-only advance rule
func (s OrderStatus) rank() int {
	switch s {
	case StatusProcessing:
		return 0
	case StatusShipped:
		return 1
	case StatusDelivered:
		return 2
	}
	return -1
}

// Advances reports whether moving from s to next goes strictly forward.
// Local order status never moves backward.
func (s OrderStatus) Advances(next OrderStatus) bool {
	return next.rank() > s.rank()
}

// Order is one entry in the local order ledger: a by-value snapshot of the
// cart taken at checkout, immune to later catalog or cart mutation.
// BackendID is filled in once the external order service accepts the order
// and is the key used when reconciling status with the backend.
type Order struct {
	ID        string          `json:"id"`
	BackendID int             `json:"backend_id,omitempty"`
	Items     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Date      time.Time       `json:"date"`
	Status    OrderStatus     `json:"status"`
	Address   string          `json:"address"`
}
