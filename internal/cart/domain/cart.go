package domain

import (
	"time"

	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	identitydomain "github.com/tair/storefront/internal/identity/domain"
)

// Cart represents a user's shopping cart, created on demand the first
// time it is accessed.
type Cart struct {
	ID        uint                `json:"id" gorm:"primaryKey"`
	UserID    uint                `json:"user_id" gorm:"not null;uniqueIndex"`
	User      identitydomain.User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Items     []CartItem          `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time           `json:"-"`
	UpdatedAt time.Time           `json:"-"`
}

// TableName specifies the table name
func (Cart) TableName() string {
	return "carts"
}

// TotalPrice sums the line item totals
func (c *Cart) TotalPrice() int {
	total := 0
	for _, item := range c.Items {
		total += item.TotalPrice()
	}
	return total
}

// CartItem is one product line in a cart. A cart holds at most one line
// per product, adding again bumps the quantity.
type CartItem struct {
	ID        uint                  `json:"id" gorm:"primaryKey"`
	CartID    uint                  `json:"-" gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uint                  `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	Product   catalogdomain.Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int                   `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time             `json:"-"`
	UpdatedAt time.Time             `json:"-"`
}

// TableName specifies the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// TotalPrice is quantity times the current product price
func (i *CartItem) TotalPrice() int {
	return i.Quantity * i.Product.Price
}

// CartRepository defines the contract for cart data access
type CartRepository interface {
	// GetOrCreateByUser returns the user's cart, creating it on first
	// access. Safe under concurrent first access. Items and their
	// products are preloaded.
	GetOrCreateByUser(userID uint) (*Cart, error)
	FindItemsByUser(userID uint) ([]CartItem, error)
	// FindItemForUser resolves an item only within the user's own cart.
	FindItemForUser(itemID, userID uint) (*CartItem, error)
	FindItemByCartAndProduct(cartID, productID uint) (*CartItem, error)
	CreateItem(item *CartItem) error
	UpdateItem(item *CartItem) error
	DeleteItem(id uint) error
}
