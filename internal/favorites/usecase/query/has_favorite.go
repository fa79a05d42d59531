package query

import (
	"context"
	"fmt"

	fav "github.com/tair/storefront/internal/favorites/domain"
	"github.com/tair/storefront/internal/favorites/store"
)

// HasFavoriteQuery represents the query to check membership of a product
type HasFavoriteQuery struct {
	OwnerID   string
	ProductID string
}

// HasFavoriteHandler handles has favorite query
type HasFavoriteHandler struct {
	favorites *store.Store
}

// NewHasFavoriteHandler creates a new has favorite handler
func NewHasFavoriteHandler(favorites *store.Store) *HasFavoriteHandler {
	return &HasFavoriteHandler{favorites: favorites}
}

// Handle executes the has favorite query
func (h *HasFavoriteHandler) Handle(ctx context.Context, query HasFavoriteQuery) (bool, error) {
	if query.OwnerID == "" {
		return false, fmt.Errorf("owner id is required")
	}
	if query.ProductID == "" {
		return false, fmt.Errorf("product id is required")
	}
	return fav.Has(h.favorites.Get(ctx, query.OwnerID), query.ProductID), nil
}
