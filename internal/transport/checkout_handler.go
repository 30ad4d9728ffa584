package transport

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"atelier-storefront/internal/cart"
	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/gateway"
	"atelier-storefront/internal/middleware"
	"atelier-storefront/internal/orders"
	"atelier-storefront/internal/pricing"
	"atelier-storefront/internal/session"
)

// CheckoutRequest carries the shipping form. The cart itself is read
// server-side; the client never submits line items or totals.
type CheckoutRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	Zip       string `json:"zip" validate:"required"`
	Country   string `json:"country" validate:"required"`
}

// CheckoutResponse reports the placed order and its computed totals
type CheckoutResponse struct {
	OrderID   string          `json:"order_id"`
	BackendID int             `json:"backend_id"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
}

// OrdersResponse lists the user's order ledger, most recent first
type OrdersResponse struct {
	Orders []domain.Order `json:"orders"`
}

// CheckoutHandler handles checkout and order history
type CheckoutHandler struct {
	cartService    cart.Service
	ledger         orders.Ledger
	sessionService session.Service
	client         gateway.Client
	calculator     *pricing.Calculator
	logger         *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(
	cartService cart.Service,
	ledger orders.Ledger,
	sessionService session.Service,
	client gateway.Client,
	calculator *pricing.Calculator,
	logger *zap.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		cartService:    cartService,
		ledger:         ledger,
		sessionService: sessionService,
		client:         client,
		calculator:     calculator,
		logger:         logger,
	}
}

// RegisterRoutes registers checkout and order routes behind the auth middleware
func (h *CheckoutHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/checkout", h.Checkout)
		r.Get("/api/orders", h.ListOrders)
	})
}

// Checkout places the order with the external service, records it in the
// local ledger and clears the cart. Any failure before the backend accepts
// the order leaves the cart untouched so the user can retry.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := h.cartService.Items(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load cart for checkout", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	// An empty cart is a distinct state, not a server failure
	if len(items) == 0 {
		middleware.RespondWithError(w, http.StatusUnprocessableEntity, "cart is empty")
		return
	}

	subtotal := pricing.Subtotal(items)
	shipping := h.calculator.ShippingCost(subtotal)
	total := h.calculator.OrderTotal(subtotal)

	fullAddress := fmt.Sprintf("%s, %s, %s, %s", req.Address, req.City, req.Zip, req.Country)

	orderItems := make([]gateway.PlaceOrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, gateway.PlaceOrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			Price:       item.Price.InexactFloat64(),
			Size:        item.Size,
			Color:       item.Color,
		})
	}

	backendOrder, err := h.client.PlaceOrder(r.Context(), gateway.PlaceOrderRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Address:     fullAddress,
		TotalAmount: total.InexactFloat64(),
		Items:       orderItems,
	})
	if err != nil {
		h.logger.Error("Checkout rejected by backend", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to place order")
		return
	}

	orderID, err := h.ledger.Record(r.Context(), userID, items, total, fullAddress, backendOrder.ID)
	if err != nil {
		h.logger.Error("Failed to record order in ledger", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to record order")
		return
	}

	if err := h.cartService.Clear(r.Context(), userID); err != nil {
		// The order is placed; log but do not fail the checkout
		h.logger.Error("Failed to clear cart after checkout", zap.Error(err))
	}

	h.logger.Info("Checkout complete",
		zap.String("order_id", orderID),
		zap.Int("backend_id", backendOrder.ID),
		zap.String("total", total.StringFixed(2)),
	)

	middleware.RespondWithJSON(w, http.StatusCreated, CheckoutResponse{
		OrderID:   orderID,
		BackendID: backendOrder.ID,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     total,
	})
}

// ListOrders returns the local ledger, reconciled against the backend when
// it is reachable
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	email := ""
	if profile, err := h.sessionService.Profile(r.Context(), userID); err == nil {
		email = profile.Email
	}

	userOrders, err := h.ledger.Reconcile(r.Context(), userID, email)
	if err != nil {
		h.logger.Error("Failed to load order ledger", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, OrdersResponse{Orders: userOrders})
}
