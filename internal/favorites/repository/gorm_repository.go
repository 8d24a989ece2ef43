package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/storefront/internal/favorites/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// GormFavoritesRepository implements FavoritesRepository interface using GORM
type GormFavoritesRepository struct {
	db *gorm.DB
}

// NewGormFavoritesRepository creates a new GORM favorites repository
func NewGormFavoritesRepository(db *gorm.DB) *GormFavoritesRepository {
	return &GormFavoritesRepository{db: db}
}

// GetOrCreateByUser returns the user's favorites list, creating it on
// first access. Concurrent first accesses race on the unique user
// index, the loser re-reads the winner's row.
func (r *GormFavoritesRepository) GetOrCreateByUser(userID uint) (*domain.Favorites, error) {
	var favorites domain.Favorites
	err := r.db.Where(domain.Favorites{UserID: userID}).FirstOrCreate(&favorites).Error
	if err != nil {
		if fetchErr := r.db.Where("user_id = ?", userID).First(&favorites).Error; fetchErr != nil {
			return nil, fmt.Errorf("failed to get or create favorites: %w", err)
		}
	}

	if err := r.db.Preload("Items.Product.Images").
		Where("user_id = ?", userID).
		First(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return &favorites, nil
}

// FindItemForUser resolves an item only within the user's own list, so
// foreign items read as absent.
func (r *GormFavoritesRepository) FindItemForUser(itemID, userID uint) (*domain.FavoriteItem, error) {
	var item domain.FavoriteItem
	err := r.db.Preload("Product.Images").
		Joins("JOIN favorites ON favorites.id = favorite_items.favorites_id").
		Where("favorite_items.id = ? AND favorites.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("favorite item not found")
		}
		return nil, fmt.Errorf("failed to find favorite item: %w", err)
	}
	return &item, nil
}

// FindItemByListAndProduct retrieves the entry for one product in a list
func (r *GormFavoritesRepository) FindItemByListAndProduct(favoritesID, productID uint) (*domain.FavoriteItem, error) {
	var item domain.FavoriteItem
	err := r.db.Where("favorites_id = ? AND product_id = ?", favoritesID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("favorite item not found")
		}
		return nil, fmt.Errorf("failed to find favorite item: %w", err)
	}
	return &item, nil
}

// CreateItem inserts a new favorite item
func (r *GormFavoritesRepository) CreateItem(item *domain.FavoriteItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create favorite item: %w", err)
	}
	return nil
}

// DeleteItem removes a favorite item
func (r *GormFavoritesRepository) DeleteItem(id uint) error {
	result := r.db.Delete(&domain.FavoriteItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete favorite item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return httperr.NotFound("favorite item not found")
	}
	return nil
}

// AutoMigrate runs database migrations
func (r *GormFavoritesRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Favorites{}, &domain.FavoriteItem{})
}
