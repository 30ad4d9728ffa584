package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/gateway"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// Service serves the catalog to the storefront. Products come from the
// external catalog service; when it is unreachable the bundled fallback
// dataset is served instead of an empty page.
type Service interface {
	Browse(ctx context.Context, criteria Criteria, key SortKey) ([]domain.Product, error)
	Get(ctx context.Context, id int) (*domain.Product, error)
}

type service struct {
	client gateway.Client
	logger *zap.Logger
}

// NewService creates a catalog Service backed by the gateway client
func NewService(client gateway.Client, logger *zap.Logger) Service {
	return &service{client: client, logger: logger}
}

// Browse fetches the product list and runs it through the filter/sort
// pipeline. A fetch failure or an empty live catalog falls back to the
// bundled dataset.
func (s *service) Browse(ctx context.Context, criteria Criteria, key SortKey) ([]domain.Product, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil || len(products) == 0 {
		if err != nil {
			s.logger.Warn("Catalog fetch failed, serving fallback dataset", zap.Error(err))
		}
		products = FallbackProducts()
	}

	return FilterAndSort(products, criteria, key), nil
}

// Get returns one product, checking the live catalog first and the fallback
// dataset when the backend is unreachable. A product missing from both
// yields ErrProductNotFound.
func (s *service) Get(ctx context.Context, id int) (*domain.Product, error) {
	product, err := s.client.GetProduct(ctx, id)
	if err == nil {
		return product, nil
	}
	if errors.Is(err, gateway.ErrNotFound) {
		return nil, ErrProductNotFound
	}

	s.logger.Warn("Product fetch failed, checking fallback dataset",
		zap.Int("product_id", id),
		zap.Error(err),
	)
	for _, p := range FallbackProducts() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}
