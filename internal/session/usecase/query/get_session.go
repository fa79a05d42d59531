package query

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/session/domain"
	"github.com/tair/storefront/internal/session/store"
)

// GetSessionQuery represents the query to read a session's state
type GetSessionQuery struct {
	SessionID string
}

// GetSessionHandler handles get session query
type GetSessionHandler struct {
	sessions *store.Store
}

// NewGetSessionHandler creates a new get session handler
func NewGetSessionHandler(sessions *store.Store) *GetSessionHandler {
	return &GetSessionHandler{sessions: sessions}
}

// Handle executes the get session query. Unknown sessions are anonymous,
// never an error.
func (h *GetSessionHandler) Handle(ctx context.Context, query GetSessionQuery) (domain.Session, error) {
	if query.SessionID == "" {
		return domain.Session{}, fmt.Errorf("session id is required")
	}
	return h.sessions.Get(ctx, query.SessionID), nil
}
