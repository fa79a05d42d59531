package command

import (
	"context"
	"fmt"

	fav "github.com/tair/storefront/internal/favorites/domain"
	"github.com/tair/storefront/internal/favorites/store"
)

// RemoveFavoriteCommand represents the command to unmark a favorite.
// Removing a product that is not a favorite leaves the list unchanged.
type RemoveFavoriteCommand struct {
	OwnerID   string
	ProductID string
}

// RemoveFavoriteHandler handles remove favorite command
type RemoveFavoriteHandler struct {
	favorites *store.Store
}

// NewRemoveFavoriteHandler creates a new remove favorite handler
func NewRemoveFavoriteHandler(favorites *store.Store) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{favorites: favorites}
}

// Handle executes the remove favorite command
func (h *RemoveFavoriteHandler) Handle(ctx context.Context, cmd RemoveFavoriteCommand) (fav.Favorites, error) {
	if cmd.OwnerID == "" {
		return fav.Favorites{}, fmt.Errorf("owner id is required")
	}
	if cmd.ProductID == "" {
		return fav.Favorites{}, fmt.Errorf("product id is required")
	}

	next := h.favorites.Apply(ctx, cmd.OwnerID, func(f fav.Favorites) fav.Favorites {
		return fav.Remove(f, cmd.ProductID)
	})

	return next, nil
}
