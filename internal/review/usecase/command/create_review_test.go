package command

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	catalogrepo "github.com/tair/storefront/internal/catalog/repository"
	identitydomain "github.com/tair/storefront/internal/identity/domain"
	identityrepo "github.com/tair/storefront/internal/identity/repository"
	reviewrepo "github.com/tair/storefront/internal/review/repository"
	"github.com/tair/storefront/pkg/httperr"
)

func setupCreateReview(t *testing.T) *CreateReviewHandler {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, identityrepo.NewGormUserRepository(db).AutoMigrate())
	require.NoError(t, catalogrepo.NewGormCategoryRepository(db).AutoMigrate())
	products := catalogrepo.NewGormProductRepository(db)
	require.NoError(t, products.AutoMigrate())
	reviews := reviewrepo.NewGormReviewRepository(db)
	require.NoError(t, reviews.AutoMigrate())

	require.NoError(t, db.Create(&identitydomain.User{
		Username: "alice", Email: "alice@example.com", Password: "x",
		PhoneNumber: "+77001234567", Status: "simple", IsActive: true,
		DateRegister: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&catalogdomain.Category{CategoryName: "Electronics"}).Error)
	require.NoError(t, db.Create(&catalogdomain.SubCategory{SubcategoryName: "Phones", CategoryID: 1}).Error)
	require.NoError(t, db.Create(&catalogdomain.Product{
		ProductName: "Budget Phone", Price: 100, SubCategoryID: 1, Article: 1001, CreatedDate: time.Now(),
	}).Error)

	return NewCreateReviewHandler(reviews, products)
}

func star(n int) *int { return &n }

func TestCreateReview(t *testing.T) {
	handler := setupCreateReview(t)

	review, err := handler.Handle(CreateReviewCommand{UserID: 1, ProductID: 1, Star: star(5), Text: "great"})
	assert.NoError(t, err)
	assert.NotZero(t, review.ID)
	assert.False(t, review.CreatedDate.IsZero())
}

func TestCreateReviewStarBounds(t *testing.T) {
	handler := setupCreateReview(t)

	for _, s := range []int{0, 6} {
		_, err := handler.Handle(CreateReviewCommand{UserID: 1, ProductID: 1, Star: star(s)})
		require.Error(t, err)
		assert.Equal(t, httperr.KindValidation, httperr.From(err).Kind)
	}
}

func TestCreateReviewWithoutStar(t *testing.T) {
	handler := setupCreateReview(t)

	review, err := handler.Handle(CreateReviewCommand{UserID: 1, ProductID: 1, Text: "just words"})
	assert.NoError(t, err)
	assert.Nil(t, review.Star)
}

func TestCreateReviewUnknownProduct(t *testing.T) {
	handler := setupCreateReview(t)

	_, err := handler.Handle(CreateReviewCommand{UserID: 1, ProductID: 99, Star: star(4)})
	require.Error(t, err)
	assert.Equal(t, httperr.KindValidation, httperr.From(err).Kind)
}

func TestCreateReviewTwiceForSameProduct(t *testing.T) {
	handler := setupCreateReview(t)

	_, err := handler.Handle(CreateReviewCommand{UserID: 1, ProductID: 1, Star: star(5)})
	require.NoError(t, err)

	_, err = handler.Handle(CreateReviewCommand{UserID: 1, ProductID: 1, Star: star(3)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already reviewed")
}
