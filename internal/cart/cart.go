package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"atelier-storefront/internal/domain"
	"atelier-storefront/internal/pricing"
	"atelier-storefront/internal/storage"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Service is the cart aggregator. Lines are keyed by (product, size, color);
// adding a matching key merges quantities instead of duplicating the line.
// Every mutation rewrites the owner's cart snapshot in storage.
type Service interface {
	Add(ctx context.Context, userID string, item domain.LineItem) error
	Remove(ctx context.Context, userID string, key domain.LineKey) error
	UpdateQuantity(ctx context.Context, userID string, key domain.LineKey, quantity int) error
	Clear(ctx context.Context, userID string) error
	Items(ctx context.Context, userID string) ([]domain.LineItem, error)
	TotalItems(ctx context.Context, userID string) (int, error)
	TotalPrice(ctx context.Context, userID string) (decimal.Decimal, error)
}

type service struct {
	store storage.Store
}

// NewService creates a new cart Service backed by the given store
func NewService(store storage.Store) Service {
	return &service{store: store}
}

func (s *service) Add(ctx context.Context, userID string, item domain.LineItem) error {
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}

	lines, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	merged := false
	for i := range lines {
		if lines[i].Key() == item.Key() {
			lines[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, item)
	}

	return s.save(ctx, userID, lines)
}

// Remove deletes the matching line. Removing an absent line is a no-op.
func (s *service) Remove(ctx context.Context, userID string, key domain.LineKey) error {
	lines, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := lines[:0]
	for _, line := range lines {
		if line.Key() != key {
			kept = append(kept, line)
		}
	}

	return s.save(ctx, userID, kept)
}

// UpdateQuantity sets the line's quantity exactly (not additive). A quantity
// below 1 behaves as Remove.
func (s *service) UpdateQuantity(ctx context.Context, userID string, key domain.LineKey, quantity int) error {
	if quantity < 1 {
		return s.Remove(ctx, userID, key)
	}

	lines, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	for i := range lines {
		if lines[i].Key() == key {
			lines[i].Quantity = quantity
			break
		}
	}

	return s.save(ctx, userID, lines)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	return s.save(ctx, userID, []domain.LineItem{})
}

func (s *service) Items(ctx context.Context, userID string) ([]domain.LineItem, error) {
	return s.load(ctx, userID)
}

// TotalItems is the sum of quantities across all lines
func (s *service) TotalItems(ctx context.Context, userID string) (int, error) {
	lines, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count, nil
}

// TotalPrice is computed fresh from the line snapshots on every read, so a
// later catalog price change never alters an existing cart's total
func (s *service) TotalPrice(ctx context.Context, userID string) (decimal.Decimal, error) {
	lines, err := s.load(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.Subtotal(lines), nil
}

func (s *service) load(ctx context.Context, userID string) ([]domain.LineItem, error) {
	var lines []domain.LineItem
	err := s.store.Load(ctx, storage.CartKey(userID), &lines)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []domain.LineItem{}, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return lines, nil
}

func (s *service) save(ctx context.Context, userID string, lines []domain.LineItem) error {
	if err := s.store.Save(ctx, storage.CartKey(userID), lines); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
