package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GORM category repository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// AutoMigrate runs migrations for the category tables
func (r *GormCategoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Category{}, &domain.SubCategory{})
}

func (r *GormCategoryRepository) Create(category *domain.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *GormCategoryRepository) FindByID(id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Preload("Subcategories").First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("category not found")
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindByName(name string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where("category_name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("category not found")
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindAll(limit, offset int) ([]domain.Category, error) {
	var categories []domain.Category
	query := r.db.Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	return categories, nil
}

func (r *GormCategoryRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Category{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

func (r *GormCategoryRepository) Update(category *domain.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// Delete removes a category; subcategories and their products go with it
// through the cascade constraints.
func (r *GormCategoryRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Category{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return httperr.NotFound("category not found")
	}
	return nil
}
