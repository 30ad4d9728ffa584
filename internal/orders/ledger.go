package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/gateway"
	"atelier-storefront/internal/storage"
)

// Ledger is the append-only local record of placed orders, most recent
// first. It is a client cache: once an order carries a backend id, the
// external service owns its status and Reconcile pulls it in.
type Ledger interface {
	Record(ctx context.Context, userID string, items []domain.LineItem, total decimal.Decimal, address string, backendID int) (string, error)
	List(ctx context.Context, userID string) ([]domain.Order, error)
	Reconcile(ctx context.Context, userID, email string) ([]domain.Order, error)
}

type ledger struct {
	store  storage.Store
	client gateway.Client
	logger *zap.Logger
}

// NewLedger creates an order Ledger backed by the given store and gateway
func NewLedger(store storage.Store, client gateway.Client, logger *zap.Logger) Ledger {
	return &ledger{store: store, client: client, logger: logger}
}

// newOrderID generates a display order id. Random uuid material rather than
// a timestamp, so rapid successive checkouts cannot collide.
func newOrderID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "ORD-" + raw[:12]
}

// Record snapshots the line items by value, prepends the order and persists
// the ledger. Returns the generated order id.
func (l *ledger) Record(ctx context.Context, userID string, items []domain.LineItem, total decimal.Decimal, address string, backendID int) (string, error) {
	existing, err := l.load(ctx, userID)
	if err != nil {
		return "", err
	}

	order := domain.Order{
		ID:        newOrderID(),
		BackendID: backendID,
		Items:     append([]domain.LineItem(nil), items...),
		Total:     total,
		Date:      time.Now().UTC(),
		Status:    domain.StatusProcessing,
		Address:   address,
	}

	updated := append([]domain.Order{order}, existing...)
	if err := l.save(ctx, userID, updated); err != nil {
		return "", err
	}

	l.logger.Info("Order recorded",
		zap.String("order_id", order.ID),
		zap.Int("backend_id", backendID),
		zap.Int("line_count", len(items)),
	)

	return order.ID, nil
}

func (l *ledger) List(ctx context.Context, userID string) ([]domain.Order, error) {
	return l.load(ctx, userID)
}

// Reconcile fetches the user's orders from the external service and advances
// the status of matching local entries. Status only moves forward; a backend
// CANCELLED has no local equivalent and leaves the entry untouched. When the
// backend is unreachable the local ledger is returned as-is.
func (l *ledger) Reconcile(ctx context.Context, userID, email string) ([]domain.Order, error) {
	local, err := l.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	remote, err := l.client.ListOrders(ctx, email)
	if err != nil {
		l.logger.Warn("Order reconciliation skipped, backend unreachable", zap.Error(err))
		return local, nil
	}

	statusByID := make(map[int]gateway.OrderStatus, len(remote))
	for _, ro := range remote {
		statusByID[ro.ID] = ro.Status
	}

	changed := false
	for i := range local {
		if local[i].BackendID == 0 {
			continue
		}
		remoteStatus, ok := statusByID[local[i].BackendID]
		if !ok {
			continue
		}

		mapped, ok := mapBackendStatus(remoteStatus)
		if !ok {
			continue
		}
		if local[i].Status.Advances(mapped) {
			local[i].Status = mapped
			changed = true
		}
	}

	if changed {
		if err := l.save(ctx, userID, local); err != nil {
			return nil, err
		}
	}

	return local, nil
}

// mapBackendStatus folds the backend's six-state enumeration into the local
// three-state ledger. CANCELLED does not map.
func mapBackendStatus(s gateway.OrderStatus) (domain.OrderStatus, bool) {
	switch s {
	case gateway.OrderPending, gateway.OrderProcessing:
		return domain.StatusProcessing, true
	case gateway.OrderDispatched, gateway.OrderShipped:
		return domain.StatusShipped, true
	case gateway.OrderDelivered:
		return domain.StatusDelivered, true
	}
	return "", false
}

func (l *ledger) load(ctx context.Context, userID string) ([]domain.Order, error) {
	var orders []domain.Order
	err := l.store.Load(ctx, storage.OrdersKey(userID), &orders)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []domain.Order{}, nil
		}
		return nil, fmt.Errorf("failed to load order ledger: %w", err)
	}
	return orders, nil
}

func (l *ledger) save(ctx context.Context, userID string, orders []domain.Order) error {
	if err := l.store.Save(ctx, storage.OrdersKey(userID), orders); err != nil {
		return fmt.Errorf("failed to save order ledger: %w", err)
	}
	return nil
}
