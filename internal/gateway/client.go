package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"atelier-storefront/internal/config"
	"atelier-storefront/internal/domain"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// StatusError reports a non-2xx response from the external service
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}

// Client is the REST client for the external product/order service. Calls
// either resolve once or return an error to surface to the user; there is no
// retry layer.
type Client interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	CreateProduct(ctx context.Context, p BackendProduct) (*BackendProduct, error)
	UpdateProduct(ctx context.Context, id int, p BackendProduct) (*BackendProduct, error)
	DeleteProduct(ctx context.Context, id int) error
	ListOrders(ctx context.Context, email string) ([]BackendOrder, error)
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*BackendOrder, error)
	UpdateOrderStatus(ctx context.Context, id int, status OrderStatus) (*BackendOrder, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
}

type client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a gateway Client from catalog configuration
func NewClient(cfg config.CatalogConfig, logger *zap.Logger) Client {
	return &client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

func (c *client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var records []BackendProduct
	if err := c.do(ctx, http.MethodGet, "/products", nil, &records); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]domain.Product, 0, len(records))
	for _, bp := range records {
		products = append(products, AdaptProduct(bp))
	}
	return products, nil
}

// GetProduct returns ErrNotFound for a missing product, distinguishable from
// transport failures
func (c *client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var record BackendProduct
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &record)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}

	product := AdaptProduct(record)
	return &product, nil
}

func (c *client) CreateProduct(ctx context.Context, p BackendProduct) (*BackendProduct, error) {
	var created BackendProduct
	if err := c.do(ctx, http.MethodPost, "/products", p, &created); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &created, nil
}

func (c *client) UpdateProduct(ctx context.Context, id int, p BackendProduct) (*BackendProduct, error) {
	var updated BackendProduct
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), p, &updated); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return &updated, nil
}

func (c *client) DeleteProduct(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

func (c *client) ListOrders(ctx context.Context, email string) ([]BackendOrder, error) {
	path := "/orders"
	if email != "" {
		path += "?email=" + url.QueryEscape(email)
	}

	var orders []BackendOrder
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (c *client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*BackendOrder, error) {
	var order BackendOrder
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	return &order, nil
}

func (c *client) UpdateOrderStatus(ctx context.Context, id int, status OrderStatus) (*BackendOrder, error) {
	body := map[string]OrderStatus{"status": status}

	var order BackendOrder
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/status", id), body, &order); err != nil {
		return nil, fmt.Errorf("failed to update order %d status: %w", id, err)
	}
	return &order, nil
}

// Login delegates credential verification to the external service
func (c *client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	body := map[string]string{"email": email, "password": password}

	var record BackendUser
	err := c.do(ctx, http.MethodPost, "/auth/login", body, &record)
	if err != nil {
		// Unknown user comes back as 404, bad password as 401; both are
		// the same thing to the caller
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	user := AdaptUser(record)
	return &user, nil
}

func (c *client) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var record BackendUser
	if err := c.do(ctx, http.MethodPost, "/auth/signup", body, &record); err != nil {
		return nil, fmt.Errorf("signup request failed: %w", err)
	}

	user := AdaptUser(record)
	return &user, nil
}

// do executes one request against the backend. 404 maps to ErrNotFound,
// other non-2xx statuses to *StatusError.
func (c *client) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var buf bytes.Buffer
		buf.ReadFrom(resp.Body)

		c.logger.Warn("Backend returned non-success status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(buf.String())}
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
