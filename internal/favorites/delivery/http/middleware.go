package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/storefront/pkg/auth"
)

type contextKey string

const (
	// OwnerIDKey holds the resolved state owner
	OwnerIDKey contextKey = "owner_id"
)

const sessionHeader = "X-Session-ID"

// OwnerMiddleware resolves the favorites owner: the authenticated user id
// when a valid bearer token is present, otherwise the anonymous session id
func OwnerMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := ""
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
		}

		if ownerID == "" {
			ownerID = r.Header.Get(sessionHeader)
		}
		if ownerID == "" {
			respondError(w, http.StatusBadRequest, "Session id required")
			return
		}

		ctx := context.WithValue(r.Context(), OwnerIDKey, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// OwnerFromContext returns the owner id set by OwnerMiddleware
func OwnerFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(OwnerIDKey).(string)
	return ownerID, ok && ownerID != ""
}
