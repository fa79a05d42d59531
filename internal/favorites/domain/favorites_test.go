package domain_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/favorites/domain"
)

func randomProduct() catalog.Product {
	return catalog.Product{
		ID:       gofakeit.UUID(),
		Name:     gofakeit.ProductName(),
		Price:    decimal.NewFromFloat(gofakeit.Price(10, 500)),
		IsActive: true,
	}
}

func TestAddIsIdempotent(t *testing.T) {
	product := randomProduct()

	favs := domain.Empty()
	favs = domain.Add(favs, product)
	favs = domain.Add(favs, product)

	require.Len(t, favs.Items, 1)
	assert.True(t, domain.Has(favs, product.ID))
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	first := randomProduct()
	second := randomProduct()

	favs := domain.Empty()
	favs = domain.Add(favs, first)
	favs = domain.Add(favs, second)
	favs = domain.Add(favs, first)

	require.Len(t, favs.Items, 2)
	assert.Equal(t, first.ID, favs.Items[0].ID)
	assert.Equal(t, second.ID, favs.Items[1].ID)
}

func TestRemove(t *testing.T) {
	product := randomProduct()
	favs := domain.Add(domain.Empty(), product)

	favs = domain.Remove(favs, product.ID)
	assert.Empty(t, favs.Items)
	assert.False(t, domain.Has(favs, product.ID))

	// removing an absent id leaves the set unchanged
	unchanged := domain.Remove(favs, "no-such-product")
	assert.Equal(t, favs, unchanged)
}

func TestClear(t *testing.T) {
	favs := domain.Empty()
	favs = domain.Add(favs, randomProduct())
	favs = domain.Add(favs, randomProduct())

	favs = domain.Clear(favs)
	assert.Empty(t, favs.Items)
}

func TestAddDoesNotMutateInput(t *testing.T) {
	original := domain.Add(domain.Empty(), randomProduct())
	_ = domain.Add(original, randomProduct())
	assert.Len(t, original.Items, 1)
}
