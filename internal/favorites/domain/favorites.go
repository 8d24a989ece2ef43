package domain

import (
	"time"

	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	identitydomain "github.com/tair/storefront/internal/identity/domain"
)

// Favorites is a user's favorites list, created on demand.
type Favorites struct {
	ID        uint                `json:"id" gorm:"primaryKey"`
	UserID    uint                `json:"user_id" gorm:"not null;uniqueIndex"`
	User      identitydomain.User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Items     []FavoriteItem      `json:"items" gorm:"foreignKey:FavoritesID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time           `json:"-"`
	UpdatedAt time.Time           `json:"-"`
}

// TableName specifies the table name
func (Favorites) TableName() string {
	return "favorites"
}

// FavoriteItem marks one product as a favorite. A product appears in a
// list at most once.
type FavoriteItem struct {
	ID          uint                  `json:"id" gorm:"primaryKey"`
	FavoritesID uint                  `json:"-" gorm:"not null;uniqueIndex:idx_favorite_items_list_product"`
	ProductID   uint                  `json:"product_id" gorm:"not null;uniqueIndex:idx_favorite_items_list_product"`
	Product     catalogdomain.Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time             `json:"-"`
}

// TableName specifies the table name
func (FavoriteItem) TableName() string {
	return "favorite_items"
}

// FavoritesRepository defines the contract for favorites data access
type FavoritesRepository interface {
	// GetOrCreateByUser returns the user's favorites list, creating it
	// on first access. Items and their products are preloaded.
	GetOrCreateByUser(userID uint) (*Favorites, error)
	// FindItemForUser resolves an item only within the user's own list.
	FindItemForUser(itemID, userID uint) (*FavoriteItem, error)
	FindItemByListAndProduct(favoritesID, productID uint) (*FavoriteItem, error)
	CreateItem(item *FavoriteItem) error
	DeleteItem(id uint) error
}
