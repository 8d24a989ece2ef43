//go:build wireinject
// +build wireinject

package identity

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpdelivery "github.com/tair/storefront/internal/identity/delivery/http"
	"github.com/tair/storefront/internal/identity/domain"
	"github.com/tair/storefront/internal/identity/repository"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/auth"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// RepositorySet wires the storage layer
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

// InitializeUserHandler initializes the identity HTTP handler with all dependencies
func InitializeUserHandler(db *gorm.DB, tokens *auth.Manager, blacklist auth.Blacklist, events *kafka.Publisher) *httpdelivery.UserHandler {
	wire.Build(
		RepositorySet,
		httpdelivery.NewUserHandler,
	)
	return nil
}
