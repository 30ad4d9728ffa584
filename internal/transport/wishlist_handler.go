package transport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"atelier-storefront/internal/middleware"
	"atelier-storefront/internal/wishlist"
)

// WishlistResponse lists the favorited product ids
type WishlistResponse struct {
	ProductIDs []int `json:"product_ids"`
}

// ToggleResponse reports membership after a toggle
type ToggleResponse struct {
	ProductID  int  `json:"product_id"`
	InWishlist bool `json:"in_wishlist"`
}

// WishlistHandler handles HTTP requests for wishlist operations
type WishlistHandler struct {
	wishlistService wishlist.Service
	logger          *zap.Logger
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService wishlist.Service, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// RegisterRoutes registers the wishlist routes behind the auth middleware
func (h *WishlistHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/wishlist", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/{productID}/toggle", h.Toggle)
	})
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	ids, err := h.wishlistService.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load wishlist", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, WishlistResponse{ProductIDs: ids})
}

func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	added, err := h.wishlistService.Toggle(r.Context(), userID, productID)
	if err != nil {
		h.logger.Error("Failed to toggle wishlist entry", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update wishlist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ToggleResponse{ProductID: productID, InWishlist: added})
}
