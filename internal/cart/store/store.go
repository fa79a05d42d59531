// Package store holds per-owner cart state backed by the snapshot store.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/snapshot"
)

const keyPrefix = "cart:"

// Store rehydrates a cart from its snapshot, applies pure reducers, and
// writes the result back after every mutation. Operations never fail:
// missing or unreadable snapshots fall back to an empty cart, and write
// errors are logged, not surfaced.
type Store struct {
	snapshots snapshot.Store

	// one mutation in flight at a time
	mu sync.Mutex
}

// New creates a cart store on top of a snapshot store
func New(snapshots snapshot.Store) *Store {
	return &Store{snapshots: snapshots}
}

// Get returns the current cart for an owner
func (s *Store) Get(ctx context.Context, ownerID string) domain.Cart {
	return s.load(ctx, ownerID)
}

// Apply runs a reducer against the owner's cart and persists the result
func (s *Store) Apply(ctx context.Context, ownerID string, reduce func(domain.Cart) domain.Cart) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := reduce(s.load(ctx, ownerID))
	s.persist(ctx, ownerID, next)
	return next
}

func (s *Store) load(ctx context.Context, ownerID string) domain.Cart {
	var cart domain.Cart
	err := s.snapshots.Load(ctx, keyPrefix+ownerID, &cart)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			logger.Warn(ctx).
				Err(err).
				Str("owner_id", ownerID).
				Msg("Cart snapshot unavailable, starting empty")
		}
		return domain.Empty()
	}
	return cart
}

func (s *Store) persist(ctx context.Context, ownerID string, cart domain.Cart) {
	if err := s.snapshots.Save(ctx, keyPrefix+ownerID, cart); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("owner_id", ownerID).
			Msg("Failed to persist cart snapshot")
	}
}
