package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one line of an order draft sent to the remote API at
// checkout, priced at the effective unit price captured from the cart.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderDraft is the full cart state captured at checkout time
type OrderDraft struct {
	Items           []OrderItem     `json:"items"`
	TotalItems      int             `json:"total_items"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	ShippingAddress string          `json:"shipping_address,omitempty"`
	Note            string          `json:"note,omitempty"`
}

// Order is the remote API's record of a placed order
type Order struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}
