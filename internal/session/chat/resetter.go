// Package chat tears down per-session chat state when a session ends.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/storefront/internal/session/domain"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/snapshot"
)

const keyPrefix = "chat:"

// EventPublisher publishes session lifecycle events
type EventPublisher interface {
	PublishSessionLoggedOut(ctx context.Context, event kafka.SessionLoggedOutEvent) error
}

// Resetter clears stored chat history for a session and notifies the
// chat service so it can drop any live conversation. Implements
// domain.Resetter.
type Resetter struct {
	snapshots snapshot.Store
	publisher EventPublisher
}

var _ domain.Resetter = (*Resetter)(nil)

// NewResetter creates a chat resetter. The publisher may be nil when
// Kafka is not configured; history is still cleared locally.
func NewResetter(snapshots snapshot.Store, publisher EventPublisher) *Resetter {
	return &Resetter{
		snapshots: snapshots,
		publisher: publisher,
	}
}

// Reset removes the chat history snapshot for the session and publishes
// a logged out event
func (r *Resetter) Reset(ctx context.Context, sessionID string, user *domain.User) error {
	if err := r.snapshots.Delete(ctx, keyPrefix+sessionID); err != nil && !errors.Is(err, snapshot.ErrNotFound) {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}

	if r.publisher == nil {
		logger.Logger.Debug().
			Str("session_id", sessionID).
			Msg("No event publisher configured, skipping logged out event")
		return nil
	}

	event := kafka.SessionLoggedOutEvent{
		SessionID: sessionID,
	}
	if user != nil {
		event.UserID = user.ID
	}

	if err := r.publisher.PublishSessionLoggedOut(ctx, event); err != nil {
		return fmt.Errorf("failed to publish logged out event: %w", err)
	}

	logger.Logger.Info().
		Str("session_id", sessionID).
		Msg("Chat state reset for session")

	return nil
}
