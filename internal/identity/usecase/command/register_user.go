package command

import (
	"fmt"
	"time"

	"github.com/tair/storefront/internal/identity/domain"
	"github.com/tair/storefront/pkg/auth"
	"github.com/tair/storefront/pkg/httperr"
)

// RegisterUserCommand represents the command to register a new account
type RegisterUserCommand struct {
	Username    string
	Email       string
	Password    string
	Age         *int
	PhoneNumber string
}

// RegisterUserHandler handles the registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	fields := map[string]string{}
	if cmd.Username == "" {
		fields["username"] = "this field is required"
	}
	if cmd.Email == "" {
		fields["email"] = "this field is required"
	}
	if cmd.Password == "" {
		fields["password"] = "this field is required"
	} else if len(cmd.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if cmd.PhoneNumber == "" {
		fields["phone_number"] = "this field is required"
	}
	if cmd.Age != nil && (*cmd.Age < domain.MinAge || *cmd.Age > domain.MaxAge) {
		fields["age"] = fmt.Sprintf("age must be between %d and %d", domain.MinAge, domain.MaxAge)
	}
	if len(fields) > 0 {
		return nil, httperr.ValidationFields("invalid registration data", fields)
	}

	if existing, _ := h.repo.FindByUsername(cmd.Username); existing != nil {
		return nil, httperr.ValidationFields("invalid registration data",
			map[string]string{"username": "a user with that username already exists"})
	}
	if existing, _ := h.repo.FindByEmail(cmd.Email); existing != nil {
		return nil, httperr.ValidationFields("invalid registration data",
			map[string]string{"email": "a user with that email already exists"})
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     cmd.Username,
		Email:        cmd.Email,
		Password:     hashedPassword,
		Age:          cmd.Age,
		Status:       domain.StatusSimple,
		PhoneNumber:  cmd.PhoneNumber,
		IsActive:     true,
		DateRegister: time.Now(),
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
