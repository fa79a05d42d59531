package domain

import (
	"github.com/shopspring/decimal"

	catalog "github.com/tair/storefront/internal/catalog/domain"
)

// Line is a (product snapshot, quantity) pair within a cart.
// Quantity is always >= 1; a line that would drop to zero is removed
// instead of stored.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns quantity times the effective unit price
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered sequence of lines plus totals derived from them.
// At most one line exists per product id; insertion order is preserved.
// Totals are recomputed from the lines on every mutation and are never
// independently settable.
type Cart struct {
	Items      []Line          `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Empty returns a cart with no lines and zero totals
func Empty() Cart {
	return Cart{TotalPrice: decimal.Zero}
}

// Add increments the existing line for the product or appends a new one.
// Stock is not checked here; the remote API enforces it at checkout.
func Add(c Cart, product catalog.Product, quantity int) Cart {
	if quantity <= 0 {
		return c
	}

	items := make([]Line, len(c.Items))
	copy(items, c.Items)

	found := false
	for i := range items {
		if items[i].Product.ID == product.ID {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, Line{Product: product, Quantity: quantity})
	}

	return recompute(items)
}

// Remove deletes the line for the product id. Absent ids are a no-op.
func Remove(c Cart, productID string) Cart {
	items := make([]Line, 0, len(c.Items))
	for _, line := range c.Items {
		if line.Product.ID != productID {
			items = append(items, line)
		}
	}

	if len(items) == len(c.Items) {
		return c
	}
	return recompute(items)
}

// SetQuantity replaces the quantity of an existing line. A quantity of
// zero or less removes the line. Absent ids are a no-op.
func SetQuantity(c Cart, productID string, quantity int) Cart {
	if quantity <= 0 {
		return Remove(c, productID)
	}

	items := make([]Line, len(c.Items))
	copy(items, c.Items)

	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity = quantity
			return recompute(items)
		}
	}
	return c
}

// Clear empties the cart
func Clear(c Cart) Cart {
	return Empty()
}

// ToOrderDraft captures the cart as an order draft for checkout
func ToOrderDraft(c Cart) catalog.OrderDraft {
	items := make([]catalog.OrderItem, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, catalog.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.EffectivePrice(),
			Subtotal:  line.Subtotal(),
		})
	}

	return catalog.OrderDraft{
		Items:      items,
		TotalItems: c.TotalItems,
		TotalPrice: c.TotalPrice,
	}
}

func recompute(items []Line) Cart {
	totalItems := 0
	totalPrice := decimal.Zero
	for _, line := range items {
		totalItems += line.Quantity
		totalPrice = totalPrice.Add(line.Subtotal())
	}

	return Cart{
		Items:      items,
		TotalItems: totalItems,
		TotalPrice: totalPrice,
	}
}
