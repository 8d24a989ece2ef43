package query

import (
	"github.com/tair/storefront/internal/catalog/domain"
)

// ListCategoriesQuery represents the paginated category listing
type ListCategoriesQuery struct {
	Limit  int
	Offset int
}

// ListCategoriesHandler handles the category list query
type ListCategoriesHandler struct {
	repo domain.CategoryRepository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

// Handle executes the list categories query
func (h *ListCategoriesHandler) Handle(q ListCategoriesQuery) ([]domain.Category, int64, error) {
	count, err := h.repo.Count()
	if err != nil {
		return nil, 0, err
	}
	categories, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, 0, err
	}
	return categories, count, nil
}
