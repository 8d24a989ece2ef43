//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpdelivery "github.com/tair/storefront/internal/catalog/delivery/http"
	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/repository"
	identityhttp "github.com/tair/storefront/internal/identity/delivery/http"
	"github.com/tair/storefront/kafka"
)

// ProvideCategoryRepository provides the category repository
func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

// ProvideSubCategoryRepository provides the subcategory repository
func ProvideSubCategoryRepository(db *gorm.DB) domain.SubCategoryRepository {
	return repository.NewGormSubCategoryRepository(db)
}

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

// RepositorySet wires the storage layer
var RepositorySet = wire.NewSet(
	ProvideCategoryRepository,
	ProvideSubCategoryRepository,
	ProvideProductRepository,
)

// InitializeCatalogHandler initializes the catalog HTTP handler with all dependencies
func InitializeCatalogHandler(
	db *gorm.DB,
	reviews domain.ReviewSource,
	pages httpdelivery.PageSizes,
	mw *identityhttp.AuthMiddleware,
	events *kafka.Publisher,
) *httpdelivery.CatalogHandler {
	wire.Build(
		RepositorySet,
		httpdelivery.NewCatalogHandler,
	)
	return nil
}
