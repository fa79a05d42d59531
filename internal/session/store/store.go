// Package store holds per-session auth state backed by the snapshot store.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tair/storefront/internal/session/domain"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/snapshot"
)

const keyPrefix = "session:"

// Store manages the Anonymous/Authenticated state machine for browser
// sessions. Only Login moves a session to Authenticated and only Logout
// moves it back; there is no refresh or expired state here — token
// expiry is detected by the API client (401) and handled as a forced
// logout.
type Store struct {
	snapshots snapshot.Store
	resetter  domain.Resetter
	mu        sync.Mutex
}

// New creates a session store. The resetter tears down the live chat
// session on logout; it may be nil when no messaging backend is wired.
func New(snapshots snapshot.Store, resetter domain.Resetter) *Store {
	return &Store{snapshots: snapshots, resetter: resetter}
}

// Get returns the current session state, Anonymous when unknown
func (s *Store) Get(ctx context.Context, sessionID string) domain.Session {
	return s.load(ctx, sessionID)
}

// Login stores user and token together and moves the session to
// Authenticated. Both are required; a token without a user (or the
// reverse) would leave a half-authenticated state and is rejected.
func (s *Store) Login(ctx context.Context, sessionID string, user domain.User, token string) (domain.Session, error) {
	if user.ID == "" {
		return domain.Session{}, fmt.Errorf("user is required")
	}
	if token == "" {
		return domain.Session{}, fmt.Errorf("token is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.Login(s.load(ctx, sessionID), user, token)
	s.persist(ctx, sessionID, next)
	return next, nil
}

// Logout tears down the external chat session first, while the session
// context is still available, then clears user and token. Logging out an
// already anonymous session is absorbed as a no-op and does not invoke
// the resetter.
func (s *Store) Logout(ctx context.Context, sessionID string) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load(ctx, sessionID)
	if !current.IsAuthenticated {
		return current
	}

	if s.resetter != nil {
		if err := s.resetter.Reset(ctx, sessionID, current.User); err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("session_id", sessionID).
				Msg("Chat session teardown failed, continuing logout")
		}
	}

	next := domain.Logout(current)
	s.persist(ctx, sessionID, next)
	return next
}

// ForceLogout is invoked by the API client when the remote API rejects
// the session's token. Same teardown path as a user-initiated logout.
func (s *Store) ForceLogout(ctx context.Context, sessionID string) error {
	s.Logout(ctx, sessionID)
	return nil
}

// UpdateUser merges a partial profile update into the session's user.
// Without a logged-in user it is a no-op.
func (s *Store) UpdateUser(ctx context.Context, sessionID string, patch domain.UserPatch) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load(ctx, sessionID)
	next := domain.UpdateUser(current, patch)
	if next.User != current.User {
		s.persist(ctx, sessionID, next)
	}
	return next
}

func (s *Store) load(ctx context.Context, sessionID string) domain.Session {
	var session domain.Session
	err := s.snapshots.Load(ctx, keyPrefix+sessionID, &session)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			logger.Warn(ctx).
				Err(err).
				Str("session_id", sessionID).
				Msg("Session snapshot unavailable, treating as anonymous")
		}
		return domain.Anonymous()
	}

	// never trust a half-authenticated record
	if session.Token == "" || session.User == nil {
		return domain.Anonymous()
	}

	// the flag is derived state; recompute it rather than trusting the
	// stored copy
	session.IsAuthenticated = session.Token != ""
	return session
}

func (s *Store) persist(ctx context.Context, sessionID string, session domain.Session) {
	if err := s.snapshots.Save(ctx, keyPrefix+sessionID, session); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("session_id", sessionID).
			Msg("Failed to persist session snapshot")
	}
}
