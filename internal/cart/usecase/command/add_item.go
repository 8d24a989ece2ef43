package command

import (
	"github.com/tair/storefront/internal/cart/domain"
	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// AddItemCommand represents the intent to put a product into the
// caller's cart.
type AddItemCommand struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// AddItemHandler handles adding products to a cart
type AddItemHandler struct {
	carts    domain.CartRepository
	products catalogdomain.ProductRepository
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(carts domain.CartRepository, products catalogdomain.ProductRepository) *AddItemHandler {
	return &AddItemHandler{carts: carts, products: products}
}

// Handle executes the add item command. Adding a product that is
// already in the cart bumps its quantity instead of inserting a second
// line.
func (h *AddItemHandler) Handle(cmd AddItemCommand) (*domain.CartItem, error) {
	quantity := cmd.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, httperr.ValidationFields("invalid quantity", map[string]string{
			"quantity": "quantity must be a positive integer",
		})
	}

	if _, err := h.products.FindByID(cmd.ProductID); err != nil {
		if httperr.From(err).Kind == httperr.KindNotFound {
			return nil, httperr.Validation("product does not exist")
		}
		return nil, err
	}

	cart, err := h.carts.GetOrCreateByUser(cmd.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := h.carts.FindItemByCartAndProduct(cart.ID, cmd.ProductID)
	if err == nil {
		existing.Quantity += quantity
		if err := h.carts.UpdateItem(existing); err != nil {
			return nil, err
		}
		return h.carts.FindItemForUser(existing.ID, cmd.UserID)
	}
	if httperr.From(err).Kind != httperr.KindNotFound {
		return nil, err
	}

	item := &domain.CartItem{
		CartID:    cart.ID,
		ProductID: cmd.ProductID,
		Quantity:  quantity,
	}
	if err := h.carts.CreateItem(item); err != nil {
		return nil, err
	}
	return h.carts.FindItemForUser(item.ID, cmd.UserID)
}
