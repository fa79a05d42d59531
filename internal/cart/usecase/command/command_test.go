package command

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartstore "github.com/tair/storefront/internal/cart/store"
	catalog "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/snapshot"
)

func newCartStore(t *testing.T) *cartstore.Store {
	t.Helper()
	snapshots, err := snapshot.NewStore(snapshot.DriverMemory)
	require.NoError(t, err)
	return cartstore.New(snapshots)
}

func rose() catalog.Product {
	return catalog.Product{
		ID:    "p-rose",
		Name:  "Red Rose Bouquet",
		Price: decimal.NewFromInt(100000),
		Stock: 20,
	}
}

func TestAddItem(t *testing.T) {
	carts := newCartStore(t)
	handler := NewAddItemHandler(carts)
	ctx := context.Background()

	cart, err := handler.Handle(ctx, AddItemCommand{OwnerID: "alice", Product: rose(), Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, cart.TotalItems)
	assert.True(t, cart.TotalPrice.Equal(decimal.NewFromInt(200000)))

	// Same product accumulates into the existing line
	cart, err = handler.Handle(ctx, AddItemCommand{OwnerID: "alice", Product: rose(), Quantity: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddItem_Validation(t *testing.T) {
	handler := NewAddItemHandler(newCartStore(t))
	ctx := context.Background()

	cases := []struct {
		name string
		cmd  AddItemCommand
	}{
		{"missing owner", AddItemCommand{Product: rose(), Quantity: 1}},
		{"missing product", AddItemCommand{OwnerID: "alice", Quantity: 1}},
		{"zero quantity", AddItemCommand{OwnerID: "alice", Product: rose(), Quantity: 0}},
		{"negative quantity", AddItemCommand{OwnerID: "alice", Product: rose(), Quantity: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(ctx, tc.cmd)
			assert.Error(t, err)
		})
	}
}

func TestRemoveItem_AbsentProductIsNoOp(t *testing.T) {
	carts := newCartStore(t)
	ctx := context.Background()

	_, err := NewAddItemHandler(carts).Handle(ctx, AddItemCommand{OwnerID: "alice", Product: rose(), Quantity: 2})
	require.NoError(t, err)

	cart, err := NewRemoveItemHandler(carts).Handle(ctx, RemoveItemCommand{OwnerID: "alice", ProductID: "p-unknown"})
	require.NoError(t, err)
	assert.Equal(t, 2, cart.TotalItems)

	cart, err = NewRemoveItemHandler(carts).Handle(ctx, RemoveItemCommand{OwnerID: "alice", ProductID: "p-rose"})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	carts := newCartStore(t)
	ctx := context.Background()

	_, err := NewAddItemHandler(carts).Handle(ctx, AddItemCommand{OwnerID: "alice", Product: rose(), Quantity: 2})
	require.NoError(t, err)

	cart, err := NewSetQuantityHandler(carts).Handle(ctx, SetQuantityCommand{OwnerID: "alice", ProductID: "p-rose", Quantity: 0})
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalItems)
	assert.True(t, cart.TotalPrice.IsZero())
}

func TestClearCart(t *testing.T) {
	carts := newCartStore(t)
	ctx := context.Background()

	_, err := NewAddItemHandler(carts).Handle(ctx, AddItemCommand{OwnerID: "alice", Product: rose(), Quantity: 5})
	require.NoError(t, err)

	cart, err := NewClearCartHandler(carts).Handle(ctx, ClearCartCommand{OwnerID: "alice"})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

type stubOrderPlacer struct {
	drafts []catalog.OrderDraft
	order  catalog.Order
	err    error
}

func (s *stubOrderPlacer) CreateOrder(_ context.Context, draft catalog.OrderDraft) (catalog.Order, error) {
	if s.err != nil {
		return catalog.Order{}, s.err
	}
	s.drafts = append(s.drafts, draft)
	return s.order, nil
}

type stubCheckoutPublisher struct {
	events []kafka.CartCheckedOutEvent
}

func (s *stubCheckoutPublisher) PublishCartCheckedOut(_ context.Context, event kafka.CartCheckedOutEvent) error {
	s.events = append(s.events, event)
	return nil
}

func TestCheckout(t *testing.T) {
	carts := newCartStore(t)
	ctx := context.Background()

	_, err := NewAddItemHandler(carts).Handle(ctx, AddItemCommand{OwnerID: "alice", Product: rose(), Quantity: 2})
	require.NoError(t, err)

	placer := &stubOrderPlacer{order: catalog.Order{ID: "ord-1", Status: "pending"}}
	publisher := &stubCheckoutPublisher{}
	handler := NewCheckoutHandler(carts, placer, publisher)

	order, err := handler.Handle(ctx, CheckoutCommand{
		OwnerID:         "alice",
		ShippingAddress: "12 Tulip Street",
		Note:            "leave at the door",
	})
	require.NoError(t, err)
	assert.Equal(t, "ord-1", order.ID)

	require.Len(t, placer.drafts, 1)
	assert.Equal(t, "12 Tulip Street", placer.drafts[0].ShippingAddress)
	assert.Equal(t, 2, placer.drafts[0].TotalItems)

	// Cart is emptied once the order is accepted
	assert.Empty(t, carts.Get(ctx, "alice").Items)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "ord-1", publisher.events[0].OrderID)
	assert.Equal(t, "200000", publisher.events[0].TotalPrice)
}

func TestCheckout_FailedOrderKeepsCart(t *testing.T) {
	carts := newCartStore(t)
	ctx := context.Background()

	_, err := NewAddItemHandler(carts).Handle(ctx, AddItemCommand{OwnerID: "alice", Product: rose(), Quantity: 2})
	require.NoError(t, err)

	placer := &stubOrderPlacer{err: errors.New("order api is down")}
	handler := NewCheckoutHandler(carts, placer, nil)

	_, err = handler.Handle(ctx, CheckoutCommand{OwnerID: "alice", ShippingAddress: "12 Tulip Street"})
	require.Error(t, err)

	assert.Equal(t, 2, carts.Get(ctx, "alice").TotalItems)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	handler := NewCheckoutHandler(newCartStore(t), &stubOrderPlacer{}, nil)

	_, err := handler.Handle(context.Background(), CheckoutCommand{OwnerID: "alice", ShippingAddress: "12 Tulip Street"})
	assert.ErrorContains(t, err, "cart is empty")
}

func TestCheckout_ShippingAddressRequired(t *testing.T) {
	handler := NewCheckoutHandler(newCartStore(t), &stubOrderPlacer{}, nil)

	_, err := handler.Handle(context.Background(), CheckoutCommand{OwnerID: "alice"})
	assert.ErrorContains(t, err, "shipping address")
}
