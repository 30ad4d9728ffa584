package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"atelier-storefront/internal/gateway"
	"atelier-storefront/internal/middleware"
)

// ProductPayload is the admin product create/update payload, forwarded to the
// external product service after validation
type ProductPayload struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
	Category    string  `json:"category" validate:"required"`
}

// UpdateOrderStatusRequest carries the target status for an order
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PROCESSING DISPATCHED SHIPPED DELIVERED CANCELLED"`
}

// AdminHandler exposes write-through product management and order status
// updates. All routes require an admin session.
type AdminHandler struct {
	client gateway.Client
	logger *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(client gateway.Client, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		client: client,
		logger: logger,
	}
}

// RegisterRoutes registers admin routes behind auth and the admin role check
func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireAdmin(h.logger))

		r.Post("/products", h.CreateProduct)
		r.Put("/products/{productID}", h.UpdateProduct)
		r.Delete("/products/{productID}", h.DeleteProduct)
		r.Put("/orders/{orderID}/status", h.UpdateOrderStatus)
	})
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductPayload
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.client.CreateProduct(r.Context(), gateway.BackendProduct{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		h.logger.Error("Product create failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "product service unavailable")
		return
	}

	h.logger.Info("Product created", zap.Int("product_id", created.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req ProductPayload
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.client.UpdateProduct(r.Context(), id, gateway.BackendProduct{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Product update failed", zap.Int("product_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "product service unavailable")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.client.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Product delete failed", zap.Int("product_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "product service unavailable")
		return
	}

	h.logger.Info("Product deleted", zap.Int("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "orderID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req UpdateOrderStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.client.UpdateOrderStatus(r.Context(), id, gateway.OrderStatus(req.Status))
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Order status update failed", zap.Int("order_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "order service unavailable")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, updated)
}
