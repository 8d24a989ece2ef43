package command

import (
	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// CreateCategoryCommand represents the command to create a category
type CreateCategoryCommand struct {
	CategoryName  string
	CategoryImage string
}

// CreateCategoryHandler handles category creation
type CreateCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewCreateCategoryHandler creates a new create category handler
func NewCreateCategoryHandler(repo domain.CategoryRepository) *CreateCategoryHandler {
	return &CreateCategoryHandler{repo: repo}
}

// Handle executes the create category command
func (h *CreateCategoryHandler) Handle(cmd CreateCategoryCommand) (*domain.Category, error) {
	if cmd.CategoryName == "" {
		return nil, httperr.ValidationFields("invalid category data",
			map[string]string{"category_name": "this field is required"})
	}
	if existing, _ := h.repo.FindByName(cmd.CategoryName); existing != nil {
		return nil, httperr.ValidationFields("invalid category data",
			map[string]string{"category_name": "a category with that name already exists"})
	}

	category := &domain.Category{
		CategoryName:  cmd.CategoryName,
		CategoryImage: cmd.CategoryImage,
	}
	if err := h.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}
