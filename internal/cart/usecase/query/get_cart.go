package query

import (
	"context"
	"fmt"

	cart "github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
)

// GetCartQuery represents the query to read an owner's cart
type GetCartQuery struct {
	OwnerID string
}

// GetCartHandler handles get cart query
type GetCartHandler struct {
	carts *store.Store
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(carts *store.Store) *GetCartHandler {
	return &GetCartHandler{carts: carts}
}

// Handle executes the get cart query. An owner with no saved cart gets an
// empty one, never an error.
func (h *GetCartHandler) Handle(ctx context.Context, query GetCartQuery) (cart.Cart, error) {
	if query.OwnerID == "" {
		return cart.Cart{}, fmt.Errorf("owner id is required")
	}
	return h.carts.Get(ctx, query.OwnerID), nil
}
