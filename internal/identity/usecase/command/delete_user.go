package command

import (
	"github.com/tair/storefront/internal/identity/domain"
)

// DeleteUserCommand represents the command to delete an account
type DeleteUserCommand struct {
	ID uint
}

// DeleteUserHandler handles account deletion
type DeleteUserHandler struct {
	repo domain.UserRepository
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(repo domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo}
}

// Handle executes the delete command. Cart, favorites and reviews are
// removed transitively by the store's cascade rules.
func (h *DeleteUserHandler) Handle(cmd DeleteUserCommand) error {
	return h.repo.Delete(cmd.ID)
}
