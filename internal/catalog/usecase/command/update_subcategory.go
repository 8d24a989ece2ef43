package command

import (
	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// UpdateSubCategoryCommand represents the command to update a subcategory
type UpdateSubCategoryCommand struct {
	ID              uint
	SubcategoryName string
	CategoryID      uint
}

// UpdateSubCategoryHandler handles subcategory updates
type UpdateSubCategoryHandler struct {
	repo       domain.SubCategoryRepository
	categories domain.CategoryRepository
}

// NewUpdateSubCategoryHandler creates a new update subcategory handler
func NewUpdateSubCategoryHandler(repo domain.SubCategoryRepository, categories domain.CategoryRepository) *UpdateSubCategoryHandler {
	return &UpdateSubCategoryHandler{repo: repo, categories: categories}
}

// Handle executes the update subcategory command
func (h *UpdateSubCategoryHandler) Handle(cmd UpdateSubCategoryCommand) (*domain.SubCategory, error) {
	subcategory, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.SubcategoryName != "" && cmd.SubcategoryName != subcategory.SubcategoryName {
		if existing, _ := h.repo.FindByName(cmd.SubcategoryName); existing != nil {
			return nil, httperr.ValidationFields("invalid subcategory data",
				map[string]string{"subcategory_name": "a subcategory with that name already exists"})
		}
		subcategory.SubcategoryName = cmd.SubcategoryName
	}
	if cmd.CategoryID != 0 {
		if _, err := h.categories.FindByID(cmd.CategoryID); err != nil {
			return nil, httperr.ValidationFields("invalid subcategory data",
				map[string]string{"category_id": "category does not exist"})
		}
		subcategory.CategoryID = cmd.CategoryID
	}

	if err := h.repo.Update(subcategory); err != nil {
		return nil, err
	}
	return subcategory, nil
}
