package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/pkg/httperr"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// AutoMigrate runs migrations for the product tables
func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{}, &domain.ProductImage{})
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Preload("SubCategory").Preload("Images").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (r *GormProductRepository) FindByArticle(article uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("article = ?", article).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// List applies filter, search and ordering conjunctively and returns the
// matching window plus the total match count.
func (r *GormProductRepository) List(q domain.ProductQuery) ([]domain.Product, int64, error) {
	query := r.db.Model(&domain.Product{})

	if q.CategoryID != nil {
		query = query.Joins("JOIN sub_categories ON sub_categories.id = products.sub_category_id").
			Where("sub_categories.category_id = ?", *q.CategoryID)
	}
	if q.SubCategoryID != nil {
		query = query.Where("products.sub_category_id = ?", *q.SubCategoryID)
	}
	if q.PriceMin != nil {
		query = query.Where("products.price >= ?", *q.PriceMin)
	}
	if q.PriceMax != nil {
		query = query.Where("products.price <= ?", *q.PriceMax)
	}
	if q.ProductType != nil {
		query = query.Where("products.product_type = ?", *q.ProductType)
	}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(products.product_name) LIKE ? OR CAST(products.article AS TEXT) LIKE ?", needle, needle)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query = query.Order(orderClause(q.Ordering))
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}

	var products []domain.Product
	if err := query.Preload("Images").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, count, nil
}

// orderClause maps the DRF-style ordering key onto a whitelisted ORDER BY.
func orderClause(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	key := strings.TrimPrefix(ordering, "-")

	var column string
	switch key {
	case domain.OrderingPrice:
		column = "products.price"
	case domain.OrderingCreatedDate:
		column = "products.created_date"
	default:
		return "products.id"
	}
	if desc {
		return column + " DESC"
	}
	return column
}

func (r *GormProductRepository) Update(product *domain.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes a product; images, reviews, cart items and favorite
// items referencing it are removed by the cascade constraints.
func (r *GormProductRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return httperr.NotFound("product not found")
	}
	return nil
}
