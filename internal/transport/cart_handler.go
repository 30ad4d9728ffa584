package transport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"atelier-storefront/internal/cart"
	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/middleware"
)

// AddItemRequest represents the add-to-cart payload. Price is the unit
// price snapshot the storefront displays at add time.
type AddItemRequest struct {
	ProductID int             `json:"product_id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"required"`
	Image     string          `json:"image"`
	Size      string          `json:"size" validate:"required"`
	Color     string          `json:"color" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gte=1"`
}

// UpdateQuantityRequest sets a line's quantity exactly; zero removes it
type UpdateQuantityRequest struct {
	ProductID int    `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// CartResponse is the cart payload with derived totals
type CartResponse struct {
	Items      []domain.LineItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice decimal.Decimal   `json:"total_price"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	cartService cart.Service
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService cart.Service, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers the cart routes behind the auth middleware
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/items", h.AddItem)
		r.Put("/items/quantity", h.UpdateQuantity)
		r.Delete("/items", h.RemoveItem)
	})
}

// Get returns the cart with fresh totals
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	h.respondWithCart(w, r, userID)
}

// AddItem merges the item into the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item := domain.LineItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  req.Quantity,
	}

	if err := h.cartService.Add(r.Context(), userID, item); err != nil {
		h.logger.Error("Failed to add cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	h.respondWithCart(w, r, userID)
}

// UpdateQuantity sets a line's quantity; below 1 removes the line
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req UpdateQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key := domain.LineKey{ProductID: req.ProductID, Size: req.Size, Color: req.Color}
	if err := h.cartService.UpdateQuantity(r.Context(), userID, key, req.Quantity); err != nil {
		h.logger.Error("Failed to update cart quantity", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update quantity")
		return
	}

	h.respondWithCart(w, r, userID)
}

// RemoveItem deletes one line, identified by query parameters
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	q := r.URL.Query()
	productID, err := strconv.Atoi(q.Get("product_id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product_id")
		return
	}

	key := domain.LineKey{ProductID: productID, Size: q.Get("size"), Color: q.Get("color")}
	if err := h.cartService.Remove(r.Context(), userID, key); err != nil {
		h.logger.Error("Failed to remove cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}

	h.respondWithCart(w, r, userID)
}

// Clear empties the cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	if err := h.cartService.Clear(r.Context(), userID); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	h.respondWithCart(w, r, userID)
}

func (h *CartHandler) respondWithCart(w http.ResponseWriter, r *http.Request, userID string) {
	items, err := h.cartService.Items(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	totalItems, err := h.cartService.TotalItems(r.Context(), userID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	totalPrice, err := h.cartService.TotalPrice(r.Context(), userID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CartResponse{
		Items:      items,
		TotalItems: totalItems,
		TotalPrice: totalPrice,
	})
}
