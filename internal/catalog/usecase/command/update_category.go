package command

import (
	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// UpdateCategoryCommand represents the command to update a category
type UpdateCategoryCommand struct {
	ID            uint
	CategoryName  string
	CategoryImage string
}

// UpdateCategoryHandler handles category updates
type UpdateCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewUpdateCategoryHandler creates a new update category handler
func NewUpdateCategoryHandler(repo domain.CategoryRepository) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{repo: repo}
}

// Handle executes the update category command
func (h *UpdateCategoryHandler) Handle(cmd UpdateCategoryCommand) (*domain.Category, error) {
	category, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.CategoryName != "" && cmd.CategoryName != category.CategoryName {
		if existing, _ := h.repo.FindByName(cmd.CategoryName); existing != nil {
			return nil, httperr.ValidationFields("invalid category data",
				map[string]string{"category_name": "a category with that name already exists"})
		}
		category.CategoryName = cmd.CategoryName
	}
	if cmd.CategoryImage != "" {
		category.CategoryImage = cmd.CategoryImage
	}

	if err := h.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}
