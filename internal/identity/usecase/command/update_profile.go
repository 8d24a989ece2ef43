package command

import (
	"fmt"

	"github.com/tair/storefront/internal/identity/domain"
	"github.com/tair/storefront/pkg/auth"
	"github.com/tair/storefront/pkg/httperr"
)

// UpdateProfileCommand updates the caller's own profile. Zero-valued
// fields are left untouched; DateRegister and Status are immutable here.
type UpdateProfileCommand struct {
	ID          uint
	Email       string
	Password    string
	PhoneNumber string
	Age         *int
}

// UpdateProfileHandler handles profile updates
type UpdateProfileHandler struct {
	repo domain.UserRepository
}

// NewUpdateProfileHandler creates a new update profile handler
func NewUpdateProfileHandler(repo domain.UserRepository) *UpdateProfileHandler {
	return &UpdateProfileHandler{repo: repo}
}

// Handle executes the update command
func (h *UpdateProfileHandler) Handle(cmd UpdateProfileCommand) (*domain.User, error) {
	user, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Age != nil {
		if *cmd.Age < domain.MinAge || *cmd.Age > domain.MaxAge {
			return nil, httperr.ValidationFields("invalid profile data",
				map[string]string{"age": fmt.Sprintf("age must be between %d and %d", domain.MinAge, domain.MaxAge)})
		}
		user.Age = cmd.Age
	}
	if cmd.Email != "" && cmd.Email != user.Email {
		if existing, _ := h.repo.FindByEmail(cmd.Email); existing != nil {
			return nil, httperr.ValidationFields("invalid profile data",
				map[string]string{"email": "a user with that email already exists"})
		}
		user.Email = cmd.Email
	}
	if cmd.PhoneNumber != "" {
		user.PhoneNumber = cmd.PhoneNumber
	}
	if cmd.Password != "" {
		if len(cmd.Password) < 6 {
			return nil, httperr.ValidationFields("invalid profile data",
				map[string]string{"password": "password must be at least 6 characters"})
		}
		hashed, err := auth.HashPassword(cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
	}

	if err := h.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
