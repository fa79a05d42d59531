//go:build wireinject
// +build wireinject

package session

import (
	"github.com/google/wire"

	"github.com/tair/storefront/internal/session/chat"
	"github.com/tair/storefront/internal/session/domain"
	"github.com/tair/storefront/internal/session/store"
	"github.com/tair/storefront/pkg/snapshot"
)

// ProvideResetter provides the chat teardown collaborator
func ProvideResetter(snapshots snapshot.Store, publisher chat.EventPublisher) domain.Resetter {
	return chat.NewResetter(snapshots, publisher)
}

// ProvideStore provides the session state store
func ProvideStore(snapshots snapshot.Store, resetter domain.Resetter) *store.Store {
	return store.New(snapshots, resetter)
}

var StoreSet = wire.NewSet(
	ProvideResetter,
	ProvideStore,
)

// InitializeStore initializes the session store with its chat teardown
// collaborator. The store is shared between the HTTP handler and the
// catalog client, which forces it back to anonymous on a 401.
func InitializeStore(snapshots snapshot.Store, publisher chat.EventPublisher) (*store.Store, error) {
	wire.Build(
		StoreSet,
	)
	return nil, nil
}
