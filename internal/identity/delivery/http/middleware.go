package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tair/storefront/pkg/auth"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
	StatusKey   contextKey = "status"
)

// AuthMiddleware validates bearer access tokens and exposes the caller's
// identity through the request context.
type AuthMiddleware struct {
	tokens *auth.Manager
}

func NewAuthMiddleware(tokens *auth.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Require rejects requests without a valid access token.
func (m *AuthMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	}
}

// Optional lets anonymous requests through but still rejects requests that
// present a broken or expired token.
func (m *AuthMiddleware) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	}
}

func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		writeAuthError(w, "authentication credentials were not provided")
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		writeAuthError(w, "invalid authorization header format")
		return nil, false
	}

	claims, err := m.tokens.ParseAccess(parts[1])
	if err != nil {
		writeAuthError(w, "token is invalid or expired")
		return nil, false
	}
	return claims, true
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UsernameKey, claims.Username)
	return context.WithValue(ctx, StatusKey, claims.Status)
}

// CallerID returns the authenticated user's ID, if any.
func CallerID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok
}

func writeAuthError(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
