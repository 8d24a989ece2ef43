package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// GormSubCategoryRepository implements SubCategoryRepository using GORM
type GormSubCategoryRepository struct {
	db *gorm.DB
}

// NewGormSubCategoryRepository creates a new GORM subcategory repository
func NewGormSubCategoryRepository(db *gorm.DB) *GormSubCategoryRepository {
	return &GormSubCategoryRepository{db: db}
}

func (r *GormSubCategoryRepository) Create(subcategory *domain.SubCategory) error {
	if err := r.db.Create(subcategory).Error; err != nil {
		return fmt.Errorf("failed to create subcategory: %w", err)
	}
	return nil
}

func (r *GormSubCategoryRepository) FindByID(id uint) (*domain.SubCategory, error) {
	var subcategory domain.SubCategory
	err := r.db.Preload("Products.Images").First(&subcategory, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("subcategory not found")
		}
		return nil, fmt.Errorf("failed to find subcategory: %w", err)
	}
	return &subcategory, nil
}

func (r *GormSubCategoryRepository) FindByName(name string) (*domain.SubCategory, error) {
	var subcategory domain.SubCategory
	err := r.db.Where("subcategory_name = ?", name).First(&subcategory).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("subcategory not found")
		}
		return nil, fmt.Errorf("failed to find subcategory: %w", err)
	}
	return &subcategory, nil
}

func (r *GormSubCategoryRepository) FindAll(limit, offset int) ([]domain.SubCategory, error) {
	var subcategories []domain.SubCategory
	query := r.db.Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&subcategories).Error; err != nil {
		return nil, fmt.Errorf("failed to find subcategories: %w", err)
	}
	return subcategories, nil
}

func (r *GormSubCategoryRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.SubCategory{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count subcategories: %w", err)
	}
	return count, nil
}

func (r *GormSubCategoryRepository) Update(subcategory *domain.SubCategory) error {
	if err := r.db.Save(subcategory).Error; err != nil {
		return fmt.Errorf("failed to update subcategory: %w", err)
	}
	return nil
}

func (r *GormSubCategoryRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.SubCategory{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete subcategory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return httperr.NotFound("subcategory not found")
	}
	return nil
}
