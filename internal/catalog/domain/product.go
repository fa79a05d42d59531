package domain

import "github.com/shopspring/decimal"

// Product is the catalog entity as served by the remote storefront API.
// This service never mutates a product; it only holds copies that views
// hand to the cart and favorites stores.
type Product struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Price      decimal.Decimal  `json:"price"`
	SalePrice  *decimal.Decimal `json:"sale_price,omitempty"`
	Images     []string         `json:"images,omitempty"`
	CategoryID string           `json:"category_id,omitempty"`
	Stock      int              `json:"stock"`
	IsActive   bool             `json:"is_active"`
}

// EffectivePrice returns the sale price when one is set and lower than
// the list price, otherwise the list price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil && p.SalePrice.LessThan(p.Price) {
		return *p.SalePrice
	}
	return p.Price
}

// Category is a catalog category reference
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}
