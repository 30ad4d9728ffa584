package transport

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"atelier-storefront/internal/catalog"
	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/middleware"
	"atelier-storefront/internal/pricing"
)

// ProductResponse is a catalog product with its derived discount
type ProductResponse struct {
	domain.Product
	DiscountPercent int `json:"discount_percent"`
}

// CatalogResponse is the browse payload
type CatalogResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
}

// CatalogHandler handles HTTP requests for product browsing
type CatalogHandler struct {
	catalogService catalog.Service
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService catalog.Service, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the public catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.Browse)
		r.Get("/{id}", h.Get)
	})
}

// Browse returns the filtered and sorted catalog
func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	sortKey := catalog.SortKey(r.URL.Query().Get("sort"))
	if sortKey == "" {
		sortKey = catalog.SortNewest
	}

	products, err := h.catalogService.Browse(r.Context(), criteria, sortKey)
	if err != nil {
		h.logger.Error("Catalog browse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to load catalog")
		return
	}

	response := CatalogResponse{
		Products: make([]ProductResponse, 0, len(products)),
		Count:    len(products),
	}
	for _, p := range products {
		response.Products = append(response.Products, ProductResponse{
			Product:         p,
			DiscountPercent: pricing.DiscountPercent(p.Price, p.OriginalPrice),
		})
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}

// Get returns a single product or 404
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalogService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Product fetch failed", zap.Int("product_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to load product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductResponse{
		Product:         *product,
		DiscountPercent: pricing.DiscountPercent(product.Price, product.OriginalPrice),
	})
}

func parseCriteria(r *http.Request) (catalog.Criteria, error) {
	q := r.URL.Query()

	criteria := catalog.Criteria{
		Search:   q.Get("search"),
		Category: domain.Category(q.Get("category")),
		Sizes:    splitParam(q.Get("sizes")),
		Colors:   splitParam(q.Get("colors")),
	}

	if raw := q.Get("min_price"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return catalog.Criteria{}, errors.New("invalid min_price")
		}
		criteria.MinPrice = &min
	}
	if raw := q.Get("max_price"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return catalog.Criteria{}, errors.New("invalid max_price")
		}
		criteria.MaxPrice = &max
	}

	return criteria, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
