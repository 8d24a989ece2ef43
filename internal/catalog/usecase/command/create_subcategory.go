package command

import (
	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// CreateSubCategoryCommand represents the command to create a subcategory
type CreateSubCategoryCommand struct {
	SubcategoryName string
	CategoryID      uint
}

// CreateSubCategoryHandler handles subcategory creation
type CreateSubCategoryHandler struct {
	repo       domain.SubCategoryRepository
	categories domain.CategoryRepository
}

// NewCreateSubCategoryHandler creates a new create subcategory handler
func NewCreateSubCategoryHandler(repo domain.SubCategoryRepository, categories domain.CategoryRepository) *CreateSubCategoryHandler {
	return &CreateSubCategoryHandler{repo: repo, categories: categories}
}

// Handle executes the create subcategory command
func (h *CreateSubCategoryHandler) Handle(cmd CreateSubCategoryCommand) (*domain.SubCategory, error) {
	fields := map[string]string{}
	if cmd.SubcategoryName == "" {
		fields["subcategory_name"] = "this field is required"
	}
	if cmd.CategoryID == 0 {
		fields["category_id"] = "this field is required"
	}
	if len(fields) > 0 {
		return nil, httperr.ValidationFields("invalid subcategory data", fields)
	}

	if _, err := h.categories.FindByID(cmd.CategoryID); err != nil {
		return nil, httperr.ValidationFields("invalid subcategory data",
			map[string]string{"category_id": "category does not exist"})
	}
	if existing, _ := h.repo.FindByName(cmd.SubcategoryName); existing != nil {
		return nil, httperr.ValidationFields("invalid subcategory data",
			map[string]string{"subcategory_name": "a subcategory with that name already exists"})
	}

	subcategory := &domain.SubCategory{
		SubcategoryName: cmd.SubcategoryName,
		CategoryID:      cmd.CategoryID,
	}
	if err := h.repo.Create(subcategory); err != nil {
		return nil, err
	}
	return subcategory, nil
}
