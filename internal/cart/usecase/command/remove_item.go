package command

import (
	"github.com/tair/storefront/internal/cart/domain"
)

// RemoveItemCommand represents the intent to drop a line from the cart
type RemoveItemCommand struct {
	ItemID uint
	UserID uint
}

// RemoveItemHandler handles cart item removal
type RemoveItemHandler struct {
	carts domain.CartRepository
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(carts domain.CartRepository) *RemoveItemHandler {
	return &RemoveItemHandler{carts: carts}
}

// Handle executes the remove item command
func (h *RemoveItemHandler) Handle(cmd RemoveItemCommand) error {
	item, err := h.carts.FindItemForUser(cmd.ItemID, cmd.UserID)
	if err != nil {
		return err
	}
	return h.carts.DeleteItem(item.ID)
}
