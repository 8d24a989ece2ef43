package command

import (
	"github.com/tair/storefront/internal/catalog/domain"
)

// DeleteCategoryCommand represents the command to delete a category
type DeleteCategoryCommand struct {
	ID uint
}

// DeleteCategoryHandler handles category deletion
type DeleteCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewDeleteCategoryHandler creates a new delete category handler
func NewDeleteCategoryHandler(repo domain.CategoryRepository) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{repo: repo}
}

// Handle executes the delete category command; subcategories and products
// underneath are removed by the cascade rules.
func (h *DeleteCategoryHandler) Handle(cmd DeleteCategoryCommand) error {
	return h.repo.Delete(cmd.ID)
}
