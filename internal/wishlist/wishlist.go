package wishlist

import (
	"context"
	"errors"
	"fmt"

	"atelier-storefront/internal/storage"
)

// Service maintains each user's set of favorited product ids. Membership is
// the only observable semantic; iteration order is insertion order. Repeated
// adds do not duplicate an id (true set semantics).
type Service interface {
	Toggle(ctx context.Context, userID string, productID int) (added bool, err error)
	Add(ctx context.Context, userID string, productID int) error
	Remove(ctx context.Context, userID string, productID int) error
	Contains(ctx context.Context, userID string, productID int) (bool, error)
	List(ctx context.Context, userID string) ([]int, error)
}

type service struct {
	store storage.Store
}

// NewService creates a new wishlist Service backed by the given store
func NewService(store storage.Store) Service {
	return &service{store: store}
}

// Toggle removes the id when present, adds it otherwise. Reports whether the
// id is a member after the call.
func (s *service) Toggle(ctx context.Context, userID string, productID int) (bool, error) {
	ids, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}

	if contains(ids, productID) {
		return false, s.save(ctx, userID, remove(ids, productID))
	}
	return true, s.save(ctx, userID, append(ids, productID))
}

func (s *service) Add(ctx context.Context, userID string, productID int) error {
	ids, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if contains(ids, productID) {
		return nil
	}
	return s.save(ctx, userID, append(ids, productID))
}

// Remove deletes the id; removing an absent id is a no-op
func (s *service) Remove(ctx context.Context, userID string, productID int) error {
	ids, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	return s.save(ctx, userID, remove(ids, productID))
}

func (s *service) Contains(ctx context.Context, userID string, productID int) (bool, error) {
	ids, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}
	return contains(ids, productID), nil
}

func (s *service) List(ctx context.Context, userID string) ([]int, error) {
	return s.load(ctx, userID)
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []int, id int) []int {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}

func (s *service) load(ctx context.Context, userID string) ([]int, error) {
	var ids []int
	err := s.store.Load(ctx, storage.WishlistKey(userID), &ids)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []int{}, nil
		}
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}
	return ids, nil
}

func (s *service) save(ctx context.Context, userID string, ids []int) error {
	if err := s.store.Save(ctx, storage.WishlistKey(userID), ids); err != nil {
		return fmt.Errorf("failed to save wishlist: %w", err)
	}
	return nil
}
