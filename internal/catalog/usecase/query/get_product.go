package query

import (
	"github.com/tair/storefront/internal/catalog/domain"
)

// GetProductQuery represents the query for one product's full record
type GetProductQuery struct {
	ID uint
}

// GetProductHandler handles the product detail query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(q GetProductQuery) (*domain.Product, error) {
	return h.repo.FindByID(q.ID)
}
