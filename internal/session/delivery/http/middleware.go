package http

import (
	"context"
	"net/http"
)

type contextKey string

// SessionIDKey holds the caller's session id
const SessionIDKey contextKey = "session_id"

const sessionHeader = "X-Session-ID"

// SessionMiddleware requires the session id header on every session route
func SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(sessionHeader)
		if sessionID == "" {
			respondError(w, http.StatusBadRequest, "Session id required")
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// SessionFromContext returns the session id set by SessionMiddleware
func SessionFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok && sessionID != ""
}
