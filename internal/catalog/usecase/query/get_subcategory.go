package query

import (
	"github.com/tair/storefront/internal/catalog/domain"
)

// GetSubCategoryQuery represents the query for one subcategory with products
type GetSubCategoryQuery struct {
	ID uint
}

// GetSubCategoryHandler handles the subcategory detail query
type GetSubCategoryHandler struct {
	repo domain.SubCategoryRepository
}

// NewGetSubCategoryHandler creates a new get subcategory handler
func NewGetSubCategoryHandler(repo domain.SubCategoryRepository) *GetSubCategoryHandler {
	return &GetSubCategoryHandler{repo: repo}
}

// Handle executes the get subcategory query
func (h *GetSubCategoryHandler) Handle(q GetSubCategoryQuery) (*domain.SubCategory, error) {
	return h.repo.FindByID(q.ID)
}
