package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/session/domain"
	"github.com/tair/storefront/internal/session/store"
)

// UpdateProfileCommand represents the command to merge profile fields into
// the session's user. Only the fields that are set change; updating an
// anonymous session changes nothing.
type UpdateProfileCommand struct {
	SessionID string
	Patch     domain.UserPatch
}

// UpdateProfileHandler handles update profile command
type UpdateProfileHandler struct {
	sessions *store.Store
}

// NewUpdateProfileHandler creates a new update profile handler
func NewUpdateProfileHandler(sessions *store.Store) *UpdateProfileHandler {
	return &UpdateProfileHandler{sessions: sessions}
}

// Handle executes the update profile command
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (domain.Session, error) {
	if cmd.SessionID == "" {
		return domain.Session{}, fmt.Errorf("session id is required")
	}
	return h.sessions.UpdateUser(ctx, cmd.SessionID, cmd.Patch), nil
}
