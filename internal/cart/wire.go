//go:build wireinject
// +build wireinject

package cart

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpdelivery "github.com/tair/storefront/internal/cart/delivery/http"
	"github.com/tair/storefront/internal/cart/repository"
	"github.com/tair/storefront/internal/cart/domain"
	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	identityhttp "github.com/tair/storefront/internal/identity/delivery/http"
)

// ProvideCartRepository provides the cart repository
func ProvideCartRepository(db *gorm.DB) domain.CartRepository {
	return repository.NewGormCartRepository(db)
}

// RepositorySet wires the storage layer
var RepositorySet = wire.NewSet(
	ProvideCartRepository,
)

// InitializeCartHandler initializes the cart HTTP handler with all dependencies
func InitializeCartHandler(
	db *gorm.DB,
	products catalogdomain.ProductRepository,
	reviews catalogdomain.ReviewSource,
	mw *identityhttp.AuthMiddleware,
) *httpdelivery.CartHandler {
	wire.Build(
		RepositorySet,
		httpdelivery.NewCartHandler,
	)
	return nil
}
