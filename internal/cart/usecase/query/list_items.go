package query

import (
	"github.com/tair/storefront/internal/cart/domain"
)

// ListItemsQuery represents the query for the caller's cart items
type ListItemsQuery struct {
	UserID uint
}

// ListItemsHandler handles the cart item list query
type ListItemsHandler struct {
	carts domain.CartRepository
}

// NewListItemsHandler creates a new list items handler
func NewListItemsHandler(carts domain.CartRepository) *ListItemsHandler {
	return &ListItemsHandler{carts: carts}
}

// Handle executes the list items query
func (h *ListItemsHandler) Handle(q ListItemsQuery) ([]domain.CartItem, error) {
	return h.carts.FindItemsByUser(q.UserID)
}
