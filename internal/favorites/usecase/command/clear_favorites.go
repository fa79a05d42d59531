package command

import (
	"context"
	"fmt"

	fav "github.com/tair/storefront/internal/favorites/domain"
	"github.com/tair/storefront/internal/favorites/store"
)

// ClearFavoritesCommand represents the command to drop all favorites
type ClearFavoritesCommand struct {
	OwnerID string
}

// ClearFavoritesHandler handles clear favorites command
type ClearFavoritesHandler struct {
	favorites *store.Store
}

// NewClearFavoritesHandler creates a new clear favorites handler
func NewClearFavoritesHandler(favorites *store.Store) *ClearFavoritesHandler {
	return &ClearFavoritesHandler{favorites: favorites}
}

// Handle executes the clear favorites command
func (h *ClearFavoritesHandler) Handle(ctx context.Context, cmd ClearFavoritesCommand) (fav.Favorites, error) {
	if cmd.OwnerID == "" {
		return fav.Favorites{}, fmt.Errorf("owner id is required")
	}

	next := h.favorites.Apply(ctx, cmd.OwnerID, func(fav.Favorites) fav.Favorites {
		return fav.Empty()
	})

	return next, nil
}
