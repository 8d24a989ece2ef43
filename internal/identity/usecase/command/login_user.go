package command

import (
	"fmt"

	"github.com/tair/storefront/internal/identity/domain"
	"github.com/tair/storefront/pkg/auth"
	"github.com/tair/storefront/pkg/httperr"
)

// LoginUserCommand represents the command to authenticate a user
type LoginUserCommand struct {
	Username string
	Password string
}

// LoginResponse is the payload returned after a successful login
type LoginResponse struct {
	User    LoginUserInfo `json:"user"`
	Access  string        `json:"access"`
	Refresh string        `json:"refresh"`
}

// LoginUserInfo is the user summary embedded in the login response
type LoginUserInfo struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginUserHandler handles the login command
type LoginUserHandler struct {
	repo   domain.UserRepository
	tokens *auth.Manager
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository, tokens *auth.Manager) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, tokens: tokens}
}

// Handle executes the login command. The failure message never reveals
// whether the username or the password was wrong.
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*LoginResponse, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, httperr.Validation("username and password are required")
	}

	user, err := h.repo.FindByUsername(cmd.Username)
	if err != nil {
		return nil, httperr.Authentication("invalid credentials")
	}
	if !user.IsActive {
		return nil, httperr.Authentication("invalid credentials")
	}
	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, httperr.Authentication("invalid credentials")
	}

	pair, err := h.tokens.GeneratePair(user.ID, user.Username, user.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	return &LoginResponse{
		User:    LoginUserInfo{Username: user.Username, Email: user.Email},
		Access:  pair.Access,
		Refresh: pair.Refresh,
	}, nil
}
