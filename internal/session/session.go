package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"shopfront/internal/cart"
	"shopfront/internal/model"
	"shopfront/internal/wishlist"
)

// ErrConflict is returned when a session kept changing underneath an update.
var ErrConflict = errors.New("session was modified concurrently")

// Session is one shopper's cart and wishlist.
type Session struct {
	ID       string
	Cart     *cart.Ledger
	Wishlist *wishlist.Wishlist
}

// New returns an empty session.
func New(id string) *Session {
	return &Session{
		ID:       id,
		Cart:     cart.NewLedger(),
		Wishlist: wishlist.New(),
	}
}

// Store persists sessions by id. Reading a session that does not exist
// yields a new empty one.
type Store interface {
	// Get returns the current state of the session.
	Get(ctx context.Context, id string) (*Session, error)

	// Update applies fn to the session and saves the result atomically.
	// If fn returns an error nothing is saved and that error is returned.
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)

	// Delete discards the session.
	Delete(ctx context.Context, id string) error
}

type record struct {
	Cart     cart.Snapshot   `json:"cart"`
	Wishlist []model.Product `json:"wishlist"`
}

func encode(s *Session) ([]byte, error) {
	data, err := json.Marshal(record{
		Cart:     s.Cart.Snapshot(),
		Wishlist: s.Wishlist.Items(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}

func decode(id string, data []byte) (*Session, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &Session{
		ID:       id,
		Cart:     cart.Restore(r.Cart),
		Wishlist: wishlist.Restore(r.Wishlist),
	}, nil
}
