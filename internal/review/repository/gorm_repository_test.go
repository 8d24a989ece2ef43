package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogrepo "github.com/tair/storefront/internal/catalog/repository"
	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	identityrepo "github.com/tair/storefront/internal/identity/repository"
	identitydomain "github.com/tair/storefront/internal/identity/domain"
	"github.com/tair/storefront/internal/review/domain"
)

func setupReviews(t *testing.T) (*gorm.DB, *GormReviewRepository) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, identityrepo.NewGormUserRepository(db).AutoMigrate())
	require.NoError(t, catalogrepo.NewGormCategoryRepository(db).AutoMigrate())
	require.NoError(t, catalogrepo.NewGormProductRepository(db).AutoMigrate())
	reviews := NewGormReviewRepository(db)
	require.NoError(t, reviews.AutoMigrate())

	// One user, one subcategory, one product to hang reviews on
	require.NoError(t, db.Create(&identitydomain.User{
		Username: "alice", Email: "alice@example.com", Password: "x",
		PhoneNumber: "+77001234567", Status: "simple", IsActive: true,
		DateRegister: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&identitydomain.User{
		Username: "bob", Email: "bob@example.com", Password: "x",
		PhoneNumber: "+77007654321", Status: "simple", IsActive: true,
		DateRegister: time.Now(),
	}).Error)
	require.NoError(t, db.Create(&catalogdomain.Category{CategoryName: "Electronics"}).Error)
	require.NoError(t, db.Create(&catalogdomain.SubCategory{SubcategoryName: "Phones", CategoryID: 1}).Error)
	require.NoError(t, db.Create(&catalogdomain.Product{
		ProductName: "Budget Phone", Price: 100, SubCategoryID: 1, Article: 1001, CreatedDate: time.Now(),
	}).Error)

	return db, reviews
}

func star(n int) *int { return &n }

func TestSummaryAveragesPresentStars(t *testing.T) {
	_, reviews := setupReviews(t)

	require.NoError(t, reviews.Create(&domain.Review{UserID: 1, ProductID: 1, Star: star(5), CreatedDate: time.Now()}))
	require.NoError(t, reviews.Create(&domain.Review{UserID: 2, ProductID: 1, Star: star(3), CreatedDate: time.Now()}))

	summary, err := reviews.Summary(1)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, summary.AvgRating)
	assert.Equal(t, int64(2), summary.ReviewCount)
}

func TestSummaryIgnoresNullStarsButCountsThem(t *testing.T) {
	_, reviews := setupReviews(t)

	require.NoError(t, reviews.Create(&domain.Review{UserID: 1, ProductID: 1, Star: star(4), CreatedDate: time.Now()}))
	require.NoError(t, reviews.Create(&domain.Review{UserID: 2, ProductID: 1, Text: "no rating", CreatedDate: time.Now()}))

	summary, err := reviews.Summary(1)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, summary.AvgRating)
	assert.Equal(t, int64(2), summary.ReviewCount)
}

func TestSummaryOfUnreviewedProduct(t *testing.T) {
	_, reviews := setupReviews(t)

	summary, err := reviews.Summary(1)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, summary.AvgRating)
	assert.Equal(t, int64(0), summary.ReviewCount)
}

func TestSummaryRoundsToTwoDecimals(t *testing.T) {
	_, reviews := setupReviews(t)

	require.NoError(t, reviews.Create(&domain.Review{UserID: 1, ProductID: 1, Star: star(5), CreatedDate: time.Now()}))
	require.NoError(t, reviews.Create(&domain.Review{UserID: 2, ProductID: 1, Star: star(4), CreatedDate: time.Now()}))
	u := 3
	require.NoError(t, reviews.db.Create(&identitydomain.User{
		Username: "carol", Email: "carol@example.com", Password: "x",
		PhoneNumber: "+77000000000", Status: "simple", IsActive: true,
		DateRegister: time.Now(),
	}).Error)
	require.NoError(t, reviews.Create(&domain.Review{UserID: uint(u), ProductID: 1, Star: star(4), CreatedDate: time.Now()}))

	summary, err := reviews.Summary(1)
	assert.NoError(t, err)
	assert.Equal(t, 4.33, summary.AvgRating)
}

func TestDuplicateReviewViolatesUniqueIndex(t *testing.T) {
	_, reviews := setupReviews(t)

	require.NoError(t, reviews.Create(&domain.Review{UserID: 1, ProductID: 1, Star: star(5), CreatedDate: time.Now()}))
	err := reviews.Create(&domain.Review{UserID: 1, ProductID: 1, Star: star(2), CreatedDate: time.Now()})
	assert.Error(t, err)
}

func TestFindByProductPreloadsReviewer(t *testing.T) {
	_, reviews := setupReviews(t)

	require.NoError(t, reviews.Create(&domain.Review{UserID: 1, ProductID: 1, Star: star(5), Text: "great", CreatedDate: time.Now()}))

	found, err := reviews.FindByProduct(1)
	assert.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "alice", found[0].User.Username)
}

func TestReviewSourceAdapter(t *testing.T) {
	_, reviews := setupReviews(t)
	source := NewReviewSource(reviews)

	require.NoError(t, reviews.Create(&domain.Review{UserID: 1, ProductID: 1, Star: star(5), Text: "great", CreatedDate: time.Now()}))

	avg, count, err := source.Summary(1)
	assert.NoError(t, err)
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, int64(1), count)

	entries, err := source.FindByProduct(1)
	assert.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 5, *entries[0].Star)
}

func TestUserDeleteCascadesToReviews(t *testing.T) {
	db, reviews := setupReviews(t)

	require.NoError(t, reviews.Create(&domain.Review{UserID: 1, ProductID: 1, Star: star(5), CreatedDate: time.Now()}))
	require.NoError(t, identityrepo.NewGormUserRepository(db).Delete(1))

	summary, err := reviews.Summary(1)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), summary.ReviewCount)
}
