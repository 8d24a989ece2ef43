//go:build wireinject
// +build wireinject

package review

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	identityhttp "github.com/tair/storefront/internal/identity/delivery/http"
	httpdelivery "github.com/tair/storefront/internal/review/delivery/http"
	"github.com/tair/storefront/internal/review/domain"
	"github.com/tair/storefront/internal/review/repository"
	"github.com/tair/storefront/kafka"
)

// ProvideReviewRepository provides the review repository
func ProvideReviewRepository(db *gorm.DB) domain.ReviewRepository {
	return repository.NewGormReviewRepository(db)
}

// ProvideReviewSource provides the read adapter the catalog consumes
func ProvideReviewSource(reviews domain.ReviewRepository) catalogdomain.ReviewSource {
	return repository.NewReviewSource(reviews)
}

// RepositorySet wires the storage layer
var RepositorySet = wire.NewSet(
	ProvideReviewRepository,
	ProvideReviewSource,
)

// InitializeReviewHandler initializes the review HTTP handler with all dependencies
func InitializeReviewHandler(
	db *gorm.DB,
	products catalogdomain.ProductRepository,
	mw *identityhttp.AuthMiddleware,
	events *kafka.Publisher,
) *httpdelivery.ReviewHandler {
	wire.Build(
		ProvideReviewRepository,
		httpdelivery.NewReviewHandler,
	)
	return nil
}
