package gateway

import (
	"strings"

	"github.com/shopspring/decimal"

	"atelier-storefront/internal/domain"
)

// OrderStatus is the external order service's status enumeration. The
// service accepts any of these on a status update; it enforces no
// transition graph.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderDispatched OrderStatus = "DISPATCHED"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// BackendProduct is the product record as the catalog service ships it.
// It is a distinct shape from domain.Product; AdaptProduct maps between them.
type BackendProduct struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
}

// BackendOrder is an order as reported by the external order service
type BackendOrder struct {
	ID              int                `json:"id"`
	CustomerName    string             `json:"customerName"`
	Email           string             `json:"email"`
	ShippingAddress string             `json:"shippingAddress"`
	TotalAmount     float64            `json:"totalAmount"`
	Status          OrderStatus        `json:"status"`
	CreatedAt       string             `json:"createdAt"`
	Items           []BackendOrderItem `json:"items"`
}

type BackendOrderItem struct {
	ID          int     `json:"id"`
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
}

// PlaceOrderRequest is the strongly-typed checkout payload sent to the
// external order service
type PlaceOrderRequest struct {
	FirstName   string           `json:"firstName"`
	LastName    string           `json:"lastName"`
	Email       string           `json:"email"`
	Address     string           `json:"address"`
	TotalAmount float64          `json:"totalAmount"`
	Items       []PlaceOrderItem `json:"items"`
}

type PlaceOrderItem struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
}

// BackendUser is the identity record returned by the auth endpoints
type BackendUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Defaults applied when adapting backend products. The backend carries a
// single image and no size/color/rating data, so the adapter is lossy in
// this direction.
var (
	defaultSizes  = []string{"S", "M", "L", "XL"}
	defaultColors = []domain.Color{{Name: "Default", Hex: "#000000"}}
)

const (
	defaultRating = 4.5
)

// AdaptProduct maps a server-shaped product record into the internal model,
// defaulting the fields the backend does not carry
func AdaptProduct(bp BackendProduct) domain.Product {
	return domain.Product{
		ID:          bp.ID,
		Name:        bp.Name,
		Description: bp.Description,
		Price:       decimal.NewFromFloat(bp.Price),
		Category:    adaptCategory(bp.Category),
		Sizes:       append([]string(nil), defaultSizes...),
		Colors:      append([]domain.Color(nil), defaultColors...),
		Images:      []string{bp.ImageURL},
		Rating:      defaultRating,
		Reviews:     0,
		IsNew:       true,
	}
}

func adaptCategory(raw string) domain.Category {
	switch domain.Category(strings.ToLower(raw)) {
	case domain.CategoryWomen:
		return domain.CategoryWomen
	case domain.CategoryMen:
		return domain.CategoryMen
	case domain.CategoryKids:
		return domain.CategoryKids
	}
	return domain.CategoryOther
}

// AdaptUser normalizes a backend identity into the session model. Roles come
// back upper case (CUSTOMER/ADMIN) and are lowered here.
func AdaptUser(bu BackendUser) domain.User {
	role := strings.ToLower(bu.Role)
	if role != domain.RoleAdmin {
		role = domain.RoleCustomer
	}
	return domain.User{
		ID:      bu.ID,
		Name:    bu.Name,
		Email:   bu.Email,
		Role:    role,
		Phone:   bu.Phone,
		Address: bu.Address,
	}
}
