package command

import (
	"context"
	"fmt"

	cart "github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
)

// SetQuantityCommand represents the command to replace a line's quantity.
// A quantity of zero or less removes the line.
type SetQuantityCommand struct {
	OwnerID   string
	ProductID string
	Quantity  int
}

// SetQuantityHandler handles set quantity command
type SetQuantityHandler struct {
	carts *store.Store
}

// NewSetQuantityHandler creates a new set quantity handler
func NewSetQuantityHandler(carts *store.Store) *SetQuantityHandler {
	return &SetQuantityHandler{carts: carts}
}

// Handle executes the set quantity command
func (h *SetQuantityHandler) Handle(ctx context.Context, cmd SetQuantityCommand) (cart.Cart, error) {
	if cmd.OwnerID == "" {
		return cart.Cart{}, fmt.Errorf("owner id is required")
	}
	if cmd.ProductID == "" {
		return cart.Cart{}, fmt.Errorf("product id is required")
	}

	next := h.carts.Apply(ctx, cmd.OwnerID, func(c cart.Cart) cart.Cart {
		return cart.SetQuantity(c, cmd.ProductID, cmd.Quantity)
	})

	return next, nil
}
