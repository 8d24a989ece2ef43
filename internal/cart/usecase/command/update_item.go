package command

import (
	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// UpdateItemCommand represents the intent to change a line's quantity
type UpdateItemCommand struct {
	ItemID   uint
	UserID   uint
	Quantity int
}

// UpdateItemHandler handles cart item updates
type UpdateItemHandler struct {
	carts domain.CartRepository
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(carts domain.CartRepository) *UpdateItemHandler {
	return &UpdateItemHandler{carts: carts}
}

// Handle executes the update item command
func (h *UpdateItemHandler) Handle(cmd UpdateItemCommand) (*domain.CartItem, error) {
	if cmd.Quantity < 1 {
		return nil, httperr.ValidationFields("invalid quantity", map[string]string{
			"quantity": "quantity must be a positive integer",
		})
	}

	item, err := h.carts.FindItemForUser(cmd.ItemID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	item.Quantity = cmd.Quantity
	if err := h.carts.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}
