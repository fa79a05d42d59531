package command

import (
	"context"
	"fmt"

	catalog "github.com/tair/storefront/internal/catalog/domain"
	fav "github.com/tair/storefront/internal/favorites/domain"
	"github.com/tair/storefront/internal/favorites/store"
)

// AddFavoriteCommand represents the command to mark a product as a
// favorite. Adding a product that is already a favorite changes nothing.
type AddFavoriteCommand struct {
	OwnerID string
	Product catalog.Product
}

// AddFavoriteHandler handles add favorite command
type AddFavoriteHandler struct {
	favorites *store.Store
}

// NewAddFavoriteHandler creates a new add favorite handler
func NewAddFavoriteHandler(favorites *store.Store) *AddFavoriteHandler {
	return &AddFavoriteHandler{favorites: favorites}
}

// Handle executes the add favorite command
func (h *AddFavoriteHandler) Handle(ctx context.Context, cmd AddFavoriteCommand) (fav.Favorites, error) {
	if cmd.OwnerID == "" {
		return fav.Favorites{}, fmt.Errorf("owner id is required")
	}
	if cmd.Product.ID == "" {
		return fav.Favorites{}, fmt.Errorf("product id is required")
	}

	next := h.favorites.Apply(ctx, cmd.OwnerID, func(f fav.Favorites) fav.Favorites {
		return fav.Add(f, cmd.Product)
	})

	return next, nil
}
