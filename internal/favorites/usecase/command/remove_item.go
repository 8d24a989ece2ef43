package command

import (
	"github.com/tair/storefront/internal/favorites/domain"
)

// RemoveItemCommand represents the intent to unfavorite a product
type RemoveItemCommand struct {
	ItemID uint
	UserID uint
}

// RemoveItemHandler handles favorite item removal
type RemoveItemHandler struct {
	favorites domain.FavoritesRepository
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(favorites domain.FavoritesRepository) *RemoveItemHandler {
	return &RemoveItemHandler{favorites: favorites}
}

// Handle executes the remove item command
func (h *RemoveItemHandler) Handle(cmd RemoveItemCommand) error {
	item, err := h.favorites.FindItemForUser(cmd.ItemID, cmd.UserID)
	if err != nil {
		return err
	}
	return h.favorites.DeleteItem(item.ID)
}
