package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/gateway"
	"atelier-storefront/internal/middleware"
	"atelier-storefront/internal/storage"
)

const testSecret = "transport-test-secret"

// memStore is an in-memory storage.Store using the same JSON round-trip as
// the Redis implementation.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Save(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *memStore) Load(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return storage.ErrKeyNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// stubGateway implements gateway.Client with overridable behavior per test
type stubGateway struct {
	listProductsFn      func(ctx context.Context) ([]domain.Product, error)
	getProductFn        func(ctx context.Context, id int) (*domain.Product, error)
	createProductFn     func(ctx context.Context, p gateway.BackendProduct) (*gateway.BackendProduct, error)
	updateProductFn     func(ctx context.Context, id int, p gateway.BackendProduct) (*gateway.BackendProduct, error)
	deleteProductFn     func(ctx context.Context, id int) error
	listOrdersFn        func(ctx context.Context, email string) ([]gateway.BackendOrder, error)
	placeOrderFn        func(ctx context.Context, req gateway.PlaceOrderRequest) (*gateway.BackendOrder, error)
	updateOrderStatusFn func(ctx context.Context, id int, status gateway.OrderStatus) (*gateway.BackendOrder, error)
	loginFn             func(ctx context.Context, email, password string) (*domain.User, error)
	signupFn            func(ctx context.Context, name, email, password string) (*domain.User, error)
}

func (s *stubGateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if s.listProductsFn != nil {
		return s.listProductsFn(ctx)
	}
	return nil, nil
}

func (s *stubGateway) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	if s.getProductFn != nil {
		return s.getProductFn(ctx, id)
	}
	return nil, gateway.ErrNotFound
}

func (s *stubGateway) CreateProduct(ctx context.Context, p gateway.BackendProduct) (*gateway.BackendProduct, error) {
	if s.createProductFn != nil {
		return s.createProductFn(ctx, p)
	}
	return &p, nil
}

func (s *stubGateway) UpdateProduct(ctx context.Context, id int, p gateway.BackendProduct) (*gateway.BackendProduct, error) {
	if s.updateProductFn != nil {
		return s.updateProductFn(ctx, id, p)
	}
	p.ID = id
	return &p, nil
}

func (s *stubGateway) DeleteProduct(ctx context.Context, id int) error {
	if s.deleteProductFn != nil {
		return s.deleteProductFn(ctx, id)
	}
	return nil
}

func (s *stubGateway) ListOrders(ctx context.Context, email string) ([]gateway.BackendOrder, error) {
	if s.listOrdersFn != nil {
		return s.listOrdersFn(ctx, email)
	}
	return nil, nil
}

func (s *stubGateway) PlaceOrder(ctx context.Context, req gateway.PlaceOrderRequest) (*gateway.BackendOrder, error) {
	if s.placeOrderFn != nil {
		return s.placeOrderFn(ctx, req)
	}
	return &gateway.BackendOrder{ID: 1}, nil
}

func (s *stubGateway) UpdateOrderStatus(ctx context.Context, id int, status gateway.OrderStatus) (*gateway.BackendOrder, error) {
	if s.updateOrderStatusFn != nil {
		return s.updateOrderStatusFn(ctx, id, status)
	}
	return &gateway.BackendOrder{ID: id, Status: status}, nil
}

func (s *stubGateway) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, email, password)
	}
	return nil, gateway.ErrInvalidCredentials
}

func (s *stubGateway) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	if s.signupFn != nil {
		return s.signupFn(ctx, name, email, password)
	}
	return &domain.User{ID: "u-new", Name: name, Email: email, Role: domain.RoleCustomer}, nil
}

func testAuthMiddleware() func(http.Handler) http.Handler {
	return middleware.AuthMiddleware(testSecret, zap.NewNop())
}

func authToken(t *testing.T, userID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, router chi.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}
