package command

import (
	"context"
	"fmt"

	cart "github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
	catalog "github.com/tair/storefront/internal/catalog/domain"
)

// AddItemCommand represents the command to add a product to a cart
type AddItemCommand struct {
	OwnerID  string
	Product  catalog.Product
	Quantity int
}

// AddItemHandler handles add item command
type AddItemHandler struct {
	carts *store.Store
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(carts *store.Store) *AddItemHandler {
	return &AddItemHandler{carts: carts}
}

// Handle executes the add item command
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (cart.Cart, error) {
	// Validation
	if cmd.OwnerID == "" {
		return cart.Cart{}, fmt.Errorf("owner id is required")
	}
	if cmd.Product.ID == "" {
		return cart.Cart{}, fmt.Errorf("product id is required")
	}
	if cmd.Quantity <= 0 {
		return cart.Cart{}, fmt.Errorf("quantity must be positive")
	}

	next := h.carts.Apply(ctx, cmd.OwnerID, func(c cart.Cart) cart.Cart {
		return cart.Add(c, cmd.Product, cmd.Quantity)
	})

	return next, nil
}
