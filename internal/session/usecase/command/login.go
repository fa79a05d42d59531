package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/catalog/client"
	"github.com/tair/storefront/internal/session/domain"
	"github.com/tair/storefront/internal/session/store"
)

// Authenticator exchanges credentials for a user profile and token
type Authenticator interface {
	LoginWithCredentials(ctx context.Context, email, password string) (client.LoginResult, error)
}

// LoginCommand represents the command to authenticate a session
type LoginCommand struct {
	SessionID string
	Email     string
	Password  string
}

// LoginHandler handles login command
type LoginHandler struct {
	sessions *store.Store
	auth     Authenticator
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(sessions *store.Store, auth Authenticator) *LoginHandler {
	return &LoginHandler{sessions: sessions, auth: auth}
}

// Handle executes the login command. Credential failures from the auth API
// pass through unchanged so the view can show the server's message.
func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) (domain.Session, error) {
	// Validation
	if cmd.SessionID == "" {
		return domain.Session{}, fmt.Errorf("session id is required")
	}
	if cmd.Email == "" {
		return domain.Session{}, fmt.Errorf("email is required")
	}
	if cmd.Password == "" {
		return domain.Session{}, fmt.Errorf("password is required")
	}

	result, err := h.auth.LoginWithCredentials(ctx, cmd.Email, cmd.Password)
	if err != nil {
		return domain.Session{}, err
	}

	session, err := h.sessions.Login(ctx, cmd.SessionID, result.User, result.Token)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to establish session: %w", err)
	}

	return session, nil
}
