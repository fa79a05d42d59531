package query

import (
	"context"
	"fmt"

	fav "github.com/tair/storefront/internal/favorites/domain"
	"github.com/tair/storefront/internal/favorites/store"
)

// GetFavoritesQuery represents the query to read an owner's favorites
type GetFavoritesQuery struct {
	OwnerID string
}

// GetFavoritesHandler handles get favorites query
type GetFavoritesHandler struct {
	favorites *store.Store
}

// NewGetFavoritesHandler creates a new get favorites handler
func NewGetFavoritesHandler(favorites *store.Store) *GetFavoritesHandler {
	return &GetFavoritesHandler{favorites: favorites}
}

// Handle executes the get favorites query
func (h *GetFavoritesHandler) Handle(ctx context.Context, query GetFavoritesQuery) (fav.Favorites, error) {
	if query.OwnerID == "" {
		return fav.Favorites{}, fmt.Errorf("owner id is required")
	}
	return h.favorites.Get(ctx, query.OwnerID), nil
}
