package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/session/domain"
	"github.com/tair/storefront/internal/session/store"
)

// LogoutCommand represents the command to end a session. Logging out an
// anonymous session is absorbed as a no-op.
type LogoutCommand struct {
	SessionID string
}

// LogoutHandler handles logout command
type LogoutHandler struct {
	sessions *store.Store
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(sessions *store.Store) *LogoutHandler {
	return &LogoutHandler{sessions: sessions}
}

// Handle executes the logout command
func (h *LogoutHandler) Handle(ctx context.Context, cmd LogoutCommand) (domain.Session, error) {
	if cmd.SessionID == "" {
		return domain.Session{}, fmt.Errorf("session id is required")
	}
	return h.sessions.Logout(ctx, cmd.SessionID), nil
}
