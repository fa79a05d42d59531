package store_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
	catalog "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/snapshot"
)

func newMemorySnapshots(t *testing.T) snapshot.Store {
	t.Helper()
	snapshots, err := snapshot.NewStore(snapshot.DriverMemory)
	require.NoError(t, err)
	return snapshots
}

func randomProduct() catalog.Product {
	return catalog.Product{
		ID:       gofakeit.UUID(),
		Name:     gofakeit.ProductName(),
		Price:    decimal.NewFromFloat(gofakeit.Price(10, 500)),
		Stock:    10,
		IsActive: true,
	}
}

func TestApplyPersistsAcrossRehydration(t *testing.T) {
	ctx := t.Context()
	snapshots := newMemorySnapshots(t)
	ownerID := gofakeit.UUID()
	product := randomProduct()

	carts := store.New(snapshots)
	carts.Apply(ctx, ownerID, func(c domain.Cart) domain.Cart {
		return domain.Add(c, product, 2)
	})

	// a fresh store over the same snapshots sees the persisted cart
	rehydrated := store.New(snapshots).Get(ctx, ownerID)
	require.Len(t, rehydrated.Items, 1)
	assert.Equal(t, product.ID, rehydrated.Items[0].Product.ID)
	assert.Equal(t, 2, rehydrated.TotalItems)
}

func TestGetUnknownOwnerReturnsEmptyCart(t *testing.T) {
	carts := store.New(newMemorySnapshots(t))

	cart := carts.Get(t.Context(), gofakeit.UUID())
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalItems)
	assert.True(t, cart.TotalPrice.IsZero())
}

func TestOwnersAreIsolated(t *testing.T) {
	ctx := t.Context()
	carts := store.New(newMemorySnapshots(t))

	alice := gofakeit.UUID()
	bob := gofakeit.UUID()

	carts.Apply(ctx, alice, func(c domain.Cart) domain.Cart {
		return domain.Add(c, randomProduct(), 1)
	})

	assert.Len(t, carts.Get(ctx, alice).Items, 1)
	assert.Empty(t, carts.Get(ctx, bob).Items)
}

func TestApplyReturnsNextStateSynchronously(t *testing.T) {
	ctx := t.Context()
	carts := store.New(newMemorySnapshots(t))
	ownerID := gofakeit.UUID()
	product := randomProduct()

	next := carts.Apply(ctx, ownerID, func(c domain.Cart) domain.Cart {
		return domain.Add(c, product, 3)
	})

	// the full post-transition state is available to the caller
	assert.Equal(t, 3, next.TotalItems)
	assert.True(t, next.TotalPrice.Equal(product.Price.Mul(decimal.NewFromInt(3))))
}
