package command

import (
	"context"
	"fmt"

	cart "github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
)

// RemoveItemCommand represents the command to remove a product from a cart.
// Removing a product that is not in the cart leaves the cart unchanged.
type RemoveItemCommand struct {
	OwnerID   string
	ProductID string
}

// RemoveItemHandler handles remove item command
type RemoveItemHandler struct {
	carts *store.Store
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(carts *store.Store) *RemoveItemHandler {
	return &RemoveItemHandler{carts: carts}
}

// Handle executes the remove item command
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (cart.Cart, error) {
	if cmd.OwnerID == "" {
		return cart.Cart{}, fmt.Errorf("owner id is required")
	}
	if cmd.ProductID == "" {
		return cart.Cart{}, fmt.Errorf("product id is required")
	}

	next := h.carts.Apply(ctx, cmd.OwnerID, func(c cart.Cart) cart.Cart {
		return cart.Remove(c, cmd.ProductID)
	})

	return next, nil
}
