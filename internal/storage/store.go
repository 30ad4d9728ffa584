package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrKeyNotFound = errors.New("key not found")
)

// Store is the persistence adapter: generic load/save of a named JSON value.
// Cart, wishlist, order ledger and session identity each persist under their
// own stable key and rewrite the whole value on every mutation.
type Store interface {
	Save(ctx context.Context, key string, value interface{}) error
	Load(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
}

// Key builders. One key per owning domain per user.

func CartKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

func WishlistKey(userID string) string {
	return fmt.Sprintf("wishlist:%s", userID)
}

func OrdersKey(userID string) string {
	return fmt.Sprintf("orders:%s", userID)
}

func SessionKey(userID string) string {
	return fmt.Sprintf("session:%s", userID)
}
