//go:build wireinject
// +build wireinject

package favorites

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	httpdelivery "github.com/tair/storefront/internal/favorites/delivery/http"
	"github.com/tair/storefront/internal/favorites/domain"
	"github.com/tair/storefront/internal/favorites/repository"
	identityhttp "github.com/tair/storefront/internal/identity/delivery/http"
)

// ProvideFavoritesRepository provides the favorites repository
func ProvideFavoritesRepository(db *gorm.DB) domain.FavoritesRepository {
	return repository.NewGormFavoritesRepository(db)
}

// RepositorySet wires the storage layer
var RepositorySet = wire.NewSet(
	ProvideFavoritesRepository,
)

// InitializeFavoritesHandler initializes the favorites HTTP handler with all dependencies
func InitializeFavoritesHandler(
	db *gorm.DB,
	products catalogdomain.ProductRepository,
	reviews catalogdomain.ReviewSource,
	mw *identityhttp.AuthMiddleware,
) *httpdelivery.FavoritesHandler {
	wire.Build(
		RepositorySet,
		httpdelivery.NewFavoritesHandler,
	)
	return nil
}
