package query

import (
	"github.com/tair/storefront/internal/identity/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// GetUserQuery represents the query to get a user by ID
type GetUserQuery struct {
	ID uint
}

// GetUserHandler handles get user query
type GetUserHandler struct {
	repo domain.UserRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(query GetUserQuery) (*domain.User, error) {
	if query.ID == 0 {
		return nil, httperr.NotFound("user not found")
	}
	return h.repo.FindByID(query.ID)
}
