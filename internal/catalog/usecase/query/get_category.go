package query

import (
	"github.com/tair/storefront/internal/catalog/domain"
)

// GetCategoryQuery represents the query for one category with subcategories
type GetCategoryQuery struct {
	ID uint
}

// GetCategoryHandler handles the category detail query
type GetCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewGetCategoryHandler creates a new get category handler
func NewGetCategoryHandler(repo domain.CategoryRepository) *GetCategoryHandler {
	return &GetCategoryHandler{repo: repo}
}

// Handle executes the get category query
func (h *GetCategoryHandler) Handle(q GetCategoryQuery) (*domain.Category, error) {
	return h.repo.FindByID(q.ID)
}
