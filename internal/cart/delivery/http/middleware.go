package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/storefront/internal/catalog/client"
	"github.com/tair/storefront/pkg/auth"
)

type contextKey string

const (
	// OwnerIDKey holds the resolved state owner: the authenticated user id
	// when a valid bearer token is present, otherwise the anonymous
	// session id
	OwnerIDKey contextKey = "owner_id"

	// SessionIDKey always holds the caller's session id
	SessionIDKey contextKey = "session_id"
)

const sessionHeader = "X-Session-ID"

// OwnerMiddleware resolves which cart/favorites state the request operates
// on. Authenticated callers get their user id, anonymous callers their
// session id, so state survives login on the same key the views use.
func OwnerMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(sessionHeader)

		ownerID := ""
		token := ""
		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}
			claims, err := auth.ValidateToken(parts[1])
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			ownerID = claims.UserID
			token = parts[1]
		}

		if ownerID == "" {
			ownerID = sessionID
		}
		if ownerID == "" {
			respondError(w, http.StatusBadRequest, "Session id required")
			return
		}

		ctx := context.WithValue(r.Context(), OwnerIDKey, ownerID)
		ctx = context.WithValue(ctx, SessionIDKey, sessionID)
		// calls to the remote API made on behalf of this request carry
		// the session's bearer token and can invalidate it on 401
		ctx = client.WithSession(ctx, sessionID, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// OwnerFromContext returns the owner id set by OwnerMiddleware
func OwnerFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(OwnerIDKey).(string)
	return ownerID, ok && ownerID != ""
}
