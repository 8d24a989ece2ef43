package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// GormCartRepository implements CartRepository interface using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetOrCreateByUser returns the user's cart, creating it on first
// access. Two concurrent first accesses race on the unique user index,
// the loser re-reads the winner's row.
func (r *GormCartRepository) GetOrCreateByUser(userID uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.Where(domain.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	if err != nil {
		if fetchErr := r.db.Where("user_id = ?", userID).First(&cart).Error; fetchErr != nil {
			return nil, fmt.Errorf("failed to get or create cart: %w", err)
		}
	}

	if err := r.db.Preload("Items.Product.Images").
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &cart, nil
}

// FindItemsByUser retrieves the items of the user's cart with products
func (r *GormCartRepository) FindItemsByUser(userID uint) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := r.db.Preload("Product.Images").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

// FindItemForUser resolves an item only within the user's own cart, so
// foreign items read as absent.
func (r *GormCartRepository) FindItemForUser(itemID, userID uint) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.Preload("Product.Images").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("cart item not found")
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return &item, nil
}

// FindItemByCartAndProduct retrieves the line for one product in a cart
func (r *GormCartRepository) FindItemByCartAndProduct(cartID, productID uint) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("cart item not found")
		}
		return nil, fmt.Errorf("failed to find cart item: %w", err)
	}
	return &item, nil
}

// CreateItem inserts a new cart item
func (r *GormCartRepository) CreateItem(item *domain.CartItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// UpdateItem updates a cart item
func (r *GormCartRepository) UpdateItem(item *domain.CartItem) error {
	if err := r.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	return nil
}

// DeleteItem removes a cart item
func (r *GormCartRepository) DeleteItem(id uint) error {
	result := r.db.Delete(&domain.CartItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return httperr.NotFound("cart item not found")
	}
	return nil
}

// AutoMigrate runs database migrations
func (r *GormCartRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Cart{}, &domain.CartItem{})
}
