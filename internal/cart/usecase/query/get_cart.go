package query

import (
	"github.com/tair/storefront/internal/cart/domain"
)

// GetCartQuery represents the query for the caller's cart
type GetCartQuery struct {
	UserID uint
}

// GetCartHandler handles the cart query, creating the cart on first
// access.
type GetCartHandler struct {
	carts domain.CartRepository
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(carts domain.CartRepository) *GetCartHandler {
	return &GetCartHandler{carts: carts}
}

// Handle executes the get cart query
func (h *GetCartHandler) Handle(q GetCartQuery) (*domain.Cart, error) {
	return h.carts.GetOrCreateByUser(q.UserID)
}
