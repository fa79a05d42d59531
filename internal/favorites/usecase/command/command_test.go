package command

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/tair/storefront/internal/catalog/domain"
	favstore "github.com/tair/storefront/internal/favorites/store"
	"github.com/tair/storefront/pkg/snapshot"
)

func newFavoritesStore(t *testing.T) *favstore.Store {
	t.Helper()
	snapshots, err := snapshot.NewStore(snapshot.DriverMemory)
	require.NoError(t, err)
	return favstore.New(snapshots)
}

func tulip() catalog.Product {
	return catalog.Product{
		ID:    "p-tulip",
		Name:  "Yellow Tulip",
		Price: decimal.NewFromInt(45000),
	}
}

func TestAddFavorite_Idempotent(t *testing.T) {
	favorites := newFavoritesStore(t)
	handler := NewAddFavoriteHandler(favorites)
	ctx := context.Background()

	first, err := handler.Handle(ctx, AddFavoriteCommand{OwnerID: "alice", Product: tulip()})
	require.NoError(t, err)
	require.Len(t, first.Items, 1)

	second, err := handler.Handle(ctx, AddFavoriteCommand{OwnerID: "alice", Product: tulip()})
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)
}

func TestAddFavorite_Validation(t *testing.T) {
	handler := NewAddFavoriteHandler(newFavoritesStore(t))
	ctx := context.Background()

	_, err := handler.Handle(ctx, AddFavoriteCommand{Product: tulip()})
	assert.Error(t, err)

	_, err = handler.Handle(ctx, AddFavoriteCommand{OwnerID: "alice"})
	assert.Error(t, err)
}

func TestRemoveFavorite(t *testing.T) {
	favorites := newFavoritesStore(t)
	ctx := context.Background()

	_, err := NewAddFavoriteHandler(favorites).Handle(ctx, AddFavoriteCommand{OwnerID: "alice", Product: tulip()})
	require.NoError(t, err)

	// Unknown product is a no-op
	list, err := NewRemoveFavoriteHandler(favorites).Handle(ctx, RemoveFavoriteCommand{OwnerID: "alice", ProductID: "p-unknown"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	list, err = NewRemoveFavoriteHandler(favorites).Handle(ctx, RemoveFavoriteCommand{OwnerID: "alice", ProductID: "p-tulip"})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestClearFavorites(t *testing.T) {
	favorites := newFavoritesStore(t)
	ctx := context.Background()

	_, err := NewAddFavoriteHandler(favorites).Handle(ctx, AddFavoriteCommand{OwnerID: "alice", Product: tulip()})
	require.NoError(t, err)

	list, err := NewClearFavoritesHandler(favorites).Handle(ctx, ClearFavoritesCommand{OwnerID: "alice"})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
