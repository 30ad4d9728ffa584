package orders

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/gateway"
	"atelier-storefront/internal/storage"
)

// Mock store for testing
type mockStore struct {
	values map[string][]byte
}

func newMockStore() *mockStore {
	return &mockStore{values: make(map[string][]byte)}
}

func (m *mockStore) Save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = data
	return nil
}

func (m *mockStore) Load(ctx context.Context, key string, dest interface{}) error {
	data, exists := m.values[key]
	if !exists {
		return storage.ErrKeyNotFound
	}
	return json.Unmarshal(data, dest)
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

// Mock gateway client; only ListOrders matters for ledger tests
type mockGateway struct {
	orders []gateway.BackendOrder
	err    error
}

func (m *mockGateway) ListOrders(ctx context.Context, email string) ([]gateway.BackendOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *mockGateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (m *mockGateway) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return nil, gateway.ErrNotFound
}

func (m *mockGateway) CreateProduct(ctx context.Context, p gateway.BackendProduct) (*gateway.BackendProduct, error) {
	return &p, nil
}

func (m *mockGateway) UpdateProduct(ctx context.Context, id int, p gateway.BackendProduct) (*gateway.BackendProduct, error) {
	return &p, nil
}

func (m *mockGateway) DeleteProduct(ctx context.Context, id int) error {
	return nil
}

func (m *mockGateway) PlaceOrder(ctx context.Context, req gateway.PlaceOrderRequest) (*gateway.BackendOrder, error) {
	return &gateway.BackendOrder{ID: 1}, nil
}

func (m *mockGateway) UpdateOrderStatus(ctx context.Context, id int, status gateway.OrderStatus) (*gateway.BackendOrder, error) {
	return &gateway.BackendOrder{ID: id, Status: status}, nil
}

func (m *mockGateway) Login(ctx context.Context, email, password string) (*domain.User, error) {
	return nil, gateway.ErrInvalidCredentials
}

func (m *mockGateway) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	return nil, nil
}

func newTestLedger(gw gateway.Client) Ledger {
	logger, _ := zap.NewDevelopment()
	return NewLedger(newMockStore(), gw, logger)
}

func sampleItems() []domain.LineItem {
	return []domain.LineItem{
		{ProductID: 1, Name: "Wool Coat", Price: decimal.NewFromInt(130), Size: "M", Color: "Camel", Quantity: 1},
	}
}

func TestRecord_PrependsMostRecentFirst(t *testing.T) {
	ledger := newTestLedger(&mockGateway{})
	ctx := context.Background()

	first, err := ledger.Record(ctx, "u1", sampleItems(), decimal.NewFromInt(130), "addr A", 10)
	require.NoError(t, err)

	second, err := ledger.Record(ctx, "u1", sampleItems(), decimal.NewFromInt(130), "addr B", 11)
	require.NoError(t, err)

	orders, err := ledger.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second, orders[0].ID)
	assert.Equal(t, first, orders[1].ID)
	assert.Equal(t, domain.StatusProcessing, orders[0].Status)
}

func TestRecord_IDsAreUniqueAndPrefixed(t *testing.T) {
	ledger := newTestLedger(&mockGateway{})
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := ledger.Record(ctx, "u1", sampleItems(), decimal.NewFromInt(1), "addr", 0)
		require.NoError(t, err)
		assert.Regexp(t, `^ORD-[0-9A-F]{12}$`, id)
		assert.False(t, seen[id], "order id collision: %s", id)
		seen[id] = true
	}
}

func TestRecord_SnapshotsItemsByValue(t *testing.T) {
	ledger := newTestLedger(&mockGateway{})
	ctx := context.Background()

	items := sampleItems()
	_, err := ledger.Record(ctx, "u1", items, decimal.NewFromInt(130), "addr", 0)
	require.NoError(t, err)

	// Mutating the caller's slice must not affect the recorded order
	items[0].Quantity = 99

	orders, err := ledger.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 1, orders[0].Items[0].Quantity)
}

func TestReconcile_AdvancesStatusForward(t *testing.T) {
	gw := &mockGateway{}
	ledger := newTestLedger(gw)
	ctx := context.Background()

	_, err := ledger.Record(ctx, "u1", sampleItems(), decimal.NewFromInt(130), "addr", 42)
	require.NoError(t, err)

	gw.orders = []gateway.BackendOrder{{ID: 42, Status: gateway.OrderShipped}}

	orders, err := ledger.Reconcile(ctx, "u1", "a@b.co")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.StatusShipped, orders[0].Status)
}

func TestReconcile_NeverMovesBackward(t *testing.T) {
	gw := &mockGateway{}
	ledger := newTestLedger(gw)
	ctx := context.Background()

	_, err := ledger.Record(ctx, "u1", sampleItems(), decimal.NewFromInt(130), "addr", 42)
	require.NoError(t, err)

	gw.orders = []gateway.BackendOrder{{ID: 42, Status: gateway.OrderDelivered}}
	_, err = ledger.Reconcile(ctx, "u1", "a@b.co")
	require.NoError(t, err)

	// Backend regresses; the local ledger must not follow
	gw.orders = []gateway.BackendOrder{{ID: 42, Status: gateway.OrderProcessing}}
	orders, err := ledger.Reconcile(ctx, "u1", "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, orders[0].Status)
}

func TestReconcile_CancelledLeavesLocalStatus(t *testing.T) {
	gw := &mockGateway{}
	ledger := newTestLedger(gw)
	ctx := context.Background()

	_, err := ledger.Record(ctx, "u1", sampleItems(), decimal.NewFromInt(130), "addr", 42)
	require.NoError(t, err)

	gw.orders = []gateway.BackendOrder{{ID: 42, Status: gateway.OrderCancelled}}
	orders, err := ledger.Reconcile(ctx, "u1", "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, orders[0].Status)
}

func TestReconcile_BackendUnreachableReturnsLocal(t *testing.T) {
	gw := &mockGateway{err: errors.New("connection refused")}
	ledger := newTestLedger(gw)
	ctx := context.Background()

	_, err := ledger.Record(ctx, "u1", sampleItems(), decimal.NewFromInt(130), "addr", 42)
	require.NoError(t, err)

	orders, err := ledger.Reconcile(ctx, "u1", "a@b.co")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.StatusProcessing, orders[0].Status)
}
