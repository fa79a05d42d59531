package command

import (
	"context"
	"fmt"

	cart "github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
	catalog "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
)

// OrderPlacer submits an order draft to the order API
type OrderPlacer interface {
	CreateOrder(ctx context.Context, draft catalog.OrderDraft) (catalog.Order, error)
}

// CheckoutPublisher publishes checkout events
type CheckoutPublisher interface {
	PublishCartCheckedOut(ctx context.Context, event kafka.CartCheckedOutEvent) error
}

// CheckoutCommand represents the command to turn a cart into an order
type CheckoutCommand struct {
	OwnerID         string
	ShippingAddress string
	Note            string
}

// CheckoutHandler handles checkout command
type CheckoutHandler struct {
	carts     *store.Store
	orders    OrderPlacer
	publisher CheckoutPublisher
}

// NewCheckoutHandler creates a new checkout handler. The publisher may be
// nil when Kafka is not configured.
func NewCheckoutHandler(carts *store.Store, orders OrderPlacer, publisher CheckoutPublisher) *CheckoutHandler {
	return &CheckoutHandler{
		carts:     carts,
		orders:    orders,
		publisher: publisher,
	}
}

// Handle executes the checkout command. The cart is cleared only after the
// order API accepts the draft, so a failed submission keeps the cart intact.
func (h *CheckoutHandler) Handle(ctx context.Context, cmd CheckoutCommand) (catalog.Order, error) {
	if cmd.OwnerID == "" {
		return catalog.Order{}, fmt.Errorf("owner id is required")
	}
	if cmd.ShippingAddress == "" {
		return catalog.Order{}, fmt.Errorf("shipping address is required")
	}

	current := h.carts.Get(ctx, cmd.OwnerID)
	if len(current.Items) == 0 {
		return catalog.Order{}, fmt.Errorf("cart is empty")
	}

	draft := cart.ToOrderDraft(current)
	draft.ShippingAddress = cmd.ShippingAddress
	draft.Note = cmd.Note

	order, err := h.orders.CreateOrder(ctx, draft)
	if err != nil {
		return catalog.Order{}, err
	}

	h.carts.Apply(ctx, cmd.OwnerID, func(cart.Cart) cart.Cart {
		return cart.Empty()
	})

	if h.publisher != nil {
		event := kafka.CartCheckedOutEvent{
			OwnerID:    cmd.OwnerID,
			OrderID:    order.ID,
			TotalItems: current.TotalItems,
			TotalPrice: current.TotalPrice.String(),
		}
		if err := h.publisher.PublishCartCheckedOut(ctx, event); err != nil {
			// The order already exists; the event is informational
			logger.Logger.Error().
				Err(err).
				Str("owner_id", cmd.OwnerID).
				Str("order_id", order.ID).
				Msg("Failed to publish checkout event")
		}
	}

	return order, nil
}
