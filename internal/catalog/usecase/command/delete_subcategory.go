package command

import (
	"github.com/tair/storefront/internal/catalog/domain"
)

// DeleteSubCategoryCommand represents the command to delete a subcategory
type DeleteSubCategoryCommand struct {
	ID uint
}

// DeleteSubCategoryHandler handles subcategory deletion
type DeleteSubCategoryHandler struct {
	repo domain.SubCategoryRepository
}

// NewDeleteSubCategoryHandler creates a new delete subcategory handler
func NewDeleteSubCategoryHandler(repo domain.SubCategoryRepository) *DeleteSubCategoryHandler {
	return &DeleteSubCategoryHandler{repo: repo}
}

// Handle executes the delete subcategory command
func (h *DeleteSubCategoryHandler) Handle(cmd DeleteSubCategoryCommand) error {
	return h.repo.Delete(cmd.ID)
}
