//go:build wireinject
// +build wireinject

package cart

import (
	"github.com/google/wire"

	httpdelivery "github.com/tair/storefront/internal/cart/delivery/http"
	"github.com/tair/storefront/internal/cart/store"
	"github.com/tair/storefront/internal/cart/usecase/command"
	"github.com/tair/storefront/pkg/snapshot"
)

// ProvideStore provides the cart state store
func ProvideStore(snapshots snapshot.Store) *store.Store {
	return store.New(snapshots)
}

var StoreSet = wire.NewSet(
	ProvideStore,
)

// InitializeHTTPHandler initializes the cart HTTP handler with all
// dependencies
func InitializeHTTPHandler(snapshots snapshot.Store, orders command.OrderPlacer, publisher command.CheckoutPublisher) (*httpdelivery.CartHandler, error) {
	wire.Build(
		StoreSet,
		httpdelivery.NewCartHandler,
	)
	return nil, nil
}
