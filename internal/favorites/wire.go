//go:build wireinject
// +build wireinject

package favorites

import (
	"github.com/google/wire"

	httpdelivery "github.com/tair/storefront/internal/favorites/delivery/http"
	"github.com/tair/storefront/internal/favorites/store"
	"github.com/tair/storefront/pkg/snapshot"
)

// ProvideStore provides the favorites state store
func ProvideStore(snapshots snapshot.Store) *store.Store {
	return store.New(snapshots)
}

var StoreSet = wire.NewSet(
	ProvideStore,
)

// InitializeHTTPHandler initializes the favorites HTTP handler with all
// dependencies
func InitializeHTTPHandler(snapshots snapshot.Store) (*httpdelivery.FavoritesHandler, error) {
	wire.Build(
		StoreSet,
		httpdelivery.NewFavoritesHandler,
	)
	return nil, nil
}
