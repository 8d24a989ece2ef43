package command

import (
	"context"
	"fmt"

	"github.com/tair/storefront/internal/identity/domain"
	"github.com/tair/storefront/pkg/auth"
	"github.com/tair/storefront/pkg/httperr"
)

// RefreshTokenCommand exchanges a refresh token for a new access token
type RefreshTokenCommand struct {
	RefreshToken string
}

// RefreshResponse carries the freshly minted access token
type RefreshResponse struct {
	Access string `json:"access"`
}

// RefreshTokenHandler mints access tokens from valid refresh tokens
type RefreshTokenHandler struct {
	repo      domain.UserRepository
	tokens    *auth.Manager
	blacklist auth.Blacklist
}

// NewRefreshTokenHandler creates a new refresh token handler
func NewRefreshTokenHandler(repo domain.UserRepository, tokens *auth.Manager, blacklist auth.Blacklist) *RefreshTokenHandler {
	return &RefreshTokenHandler{repo: repo, tokens: tokens, blacklist: blacklist}
}

// Handle executes the refresh command
func (h *RefreshTokenHandler) Handle(ctx context.Context, cmd RefreshTokenCommand) (*RefreshResponse, error) {
	if cmd.RefreshToken == "" {
		return nil, httperr.Validation("refresh token not provided")
	}

	claims, err := h.tokens.ParseRefresh(cmd.RefreshToken)
	if err != nil {
		return nil, httperr.Authentication("token is invalid or expired")
	}

	revoked, err := h.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, httperr.Authentication("token is blacklisted")
	}

	user, err := h.repo.FindByID(claims.UserID)
	if err != nil || !user.IsActive {
		return nil, httperr.Authentication("token is invalid or expired")
	}

	access, err := h.tokens.GenerateAccess(user.ID, user.Username, user.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &RefreshResponse{Access: access}, nil
}
