package command

import (
	"context"
	"fmt"

	cart "github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
)

// ClearCartCommand represents the command to empty a cart
type ClearCartCommand struct {
	OwnerID string
}

// ClearCartHandler handles clear cart command
type ClearCartHandler struct {
	carts *store.Store
}

// NewClearCartHandler creates a new clear cart handler
func NewClearCartHandler(carts *store.Store) *ClearCartHandler {
	return &ClearCartHandler{carts: carts}
}

// Handle executes the clear cart command
func (h *ClearCartHandler) Handle(ctx context.Context, cmd ClearCartCommand) (cart.Cart, error) {
	if cmd.OwnerID == "" {
		return cart.Cart{}, fmt.Errorf("owner id is required")
	}

	next := h.carts.Apply(ctx, cmd.OwnerID, func(cart.Cart) cart.Cart {
		return cart.Empty()
	})

	return next, nil
}
