package command

import (
	"context"
	"time"

	"github.com/tair/storefront/pkg/auth"
	"github.com/tair/storefront/pkg/httperr"
)

// LogoutUserCommand represents the command to revoke a refresh token
type LogoutUserCommand struct {
	RefreshToken string
}

// LogoutUserHandler blacklists refresh tokens until their natural expiry
type LogoutUserHandler struct {
	tokens    *auth.Manager
	blacklist auth.Blacklist
}

// NewLogoutUserHandler creates a new logout handler
func NewLogoutUserHandler(tokens *auth.Manager, blacklist auth.Blacklist) *LogoutUserHandler {
	return &LogoutUserHandler{tokens: tokens, blacklist: blacklist}
}

// Handle executes the logout command. Revoking an already-revoked token is
// an error, not a silent success.
func (h *LogoutUserHandler) Handle(ctx context.Context, cmd LogoutUserCommand) error {
	if cmd.RefreshToken == "" {
		return httperr.Validation("refresh token not provided")
	}

	claims, err := h.tokens.ParseRefresh(cmd.RefreshToken)
	if err != nil {
		return httperr.Validation("invalid token")
	}

	revoked, err := h.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return httperr.Validation("token is already blacklisted")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return httperr.Validation("invalid token")
	}
	return h.blacklist.Revoke(ctx, claims.ID, ttl)
}
