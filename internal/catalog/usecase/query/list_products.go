package query

import (
	"github.com/tair/storefront/internal/catalog/domain"
)

// ListProductsQuery represents the filtered, searched, ordered and
// paginated product listing.
type ListProductsQuery struct {
	Query domain.ProductQuery
}

// ListProductsHandler handles the product list query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(q ListProductsQuery) ([]domain.Product, int64, error) {
	return h.repo.List(q.Query)
}
