package domain

import catalog "github.com/tair/storefront/internal/catalog/domain"

// Favorites is a set of product snapshots keyed by product id.
// Insertion order is preserved for display; duplicates are absorbed.
type Favorites struct {
	Items []catalog.Product `json:"items"`
}

// Empty returns a favorites set with no entries
func Empty() Favorites {
	return Favorites{}
}

// Add appends the product unless its id is already present
func Add(f Favorites, product catalog.Product) Favorites {
	if Has(f, product.ID) {
		return f
	}

	items := make([]catalog.Product, len(f.Items), len(f.Items)+1)
	copy(items, f.Items)
	return Favorites{Items: append(items, product)}
}

// Remove deletes the entry for the product id. Absent ids are a no-op.
func Remove(f Favorites, productID string) Favorites {
	items := make([]catalog.Product, 0, len(f.Items))
	for _, p := range f.Items {
		if p.ID != productID {
			items = append(items, p)
		}
	}

	if len(items) == len(f.Items) {
		return f
	}
	return Favorites{Items: items}
}

// Has reports whether the product id is in the set
func Has(f Favorites, productID string) bool {
	for _, p := range f.Items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Clear empties the set
func Clear(f Favorites) Favorites {
	return Empty()
}
