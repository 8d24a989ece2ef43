package query

import (
	"github.com/tair/storefront/internal/catalog/domain"
)

// ListSubCategoriesQuery represents the paginated subcategory listing
type ListSubCategoriesQuery struct {
	Limit  int
	Offset int
}

// ListSubCategoriesHandler handles the subcategory list query
type ListSubCategoriesHandler struct {
	repo domain.SubCategoryRepository
}

// NewListSubCategoriesHandler creates a new list subcategories handler
func NewListSubCategoriesHandler(repo domain.SubCategoryRepository) *ListSubCategoriesHandler {
	return &ListSubCategoriesHandler{repo: repo}
}

// Handle executes the list subcategories query
func (h *ListSubCategoriesHandler) Handle(q ListSubCategoriesQuery) ([]domain.SubCategory, int64, error) {
	count, err := h.repo.Count()
	if err != nil {
		return nil, 0, err
	}
	subcategories, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, 0, err
	}
	return subcategories, count, nil
}
