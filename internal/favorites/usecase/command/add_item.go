package command

import (
	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/favorites/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// AddItemCommand represents the intent to favorite a product
type AddItemCommand struct {
	UserID    uint
	ProductID uint
}

// AddItemHandler handles favoriting products
type AddItemHandler struct {
	favorites domain.FavoritesRepository
	products  catalogdomain.ProductRepository
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(favorites domain.FavoritesRepository, products catalogdomain.ProductRepository) *AddItemHandler {
	return &AddItemHandler{favorites: favorites, products: products}
}

// Handle executes the add item command. Favoriting a product that is
// already in the list returns the existing entry.
func (h *AddItemHandler) Handle(cmd AddItemCommand) (*domain.FavoriteItem, error) {
	if _, err := h.products.FindByID(cmd.ProductID); err != nil {
		if httperr.From(err).Kind == httperr.KindNotFound {
			return nil, httperr.Validation("product does not exist")
		}
		return nil, err
	}

	favorites, err := h.favorites.GetOrCreateByUser(cmd.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := h.favorites.FindItemByListAndProduct(favorites.ID, cmd.ProductID)
	if err == nil {
		return h.favorites.FindItemForUser(existing.ID, cmd.UserID)
	}
	if httperr.From(err).Kind != httperr.KindNotFound {
		return nil, err
	}

	item := &domain.FavoriteItem{
		FavoritesID: favorites.ID,
		ProductID:   cmd.ProductID,
	}
	if err := h.favorites.CreateItem(item); err != nil {
		return nil, err
	}
	return h.favorites.FindItemForUser(item.ID, cmd.UserID)
}
