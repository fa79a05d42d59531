// Package store holds per-owner favorites state backed by the snapshot store.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/tair/storefront/internal/favorites/domain"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/snapshot"
)

const keyPrefix = "favorites:"

// Store rehydrates favorites from their snapshot, applies pure reducers,
// and writes the result back after every mutation. Operations never
// fail; missing or unreadable snapshots fall back to an empty set.
type Store struct {
	snapshots snapshot.Store
	mu        sync.Mutex
}

// New creates a favorites store on top of a snapshot store
func New(snapshots snapshot.Store) *Store {
	return &Store{snapshots: snapshots}
}

// Get returns the current favorites for an owner
func (s *Store) Get(ctx context.Context, ownerID string) domain.Favorites {
	return s.load(ctx, ownerID)
}

// Apply runs a reducer against the owner's favorites and persists the result
func (s *Store) Apply(ctx context.Context, ownerID string, reduce func(domain.Favorites) domain.Favorites) domain.Favorites {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := reduce(s.load(ctx, ownerID))
	s.persist(ctx, ownerID, next)
	return next
}

func (s *Store) load(ctx context.Context, ownerID string) domain.Favorites {
	var favs domain.Favorites
	err := s.snapshots.Load(ctx, keyPrefix+ownerID, &favs)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			logger.Warn(ctx).
				Err(err).
				Str("owner_id", ownerID).
				Msg("Favorites snapshot unavailable, starting empty")
		}
		return domain.Empty()
	}
	return favs
}

func (s *Store) persist(ctx context.Context, ownerID string, favs domain.Favorites) {
	if err := s.snapshots.Save(ctx, keyPrefix+ownerID, favs); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("owner_id", ownerID).
			Msg("Failed to persist favorites snapshot")
	}
}
