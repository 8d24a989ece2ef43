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

	"github.com/tair/storefront/internal/catalog/domain"
)

func setupCatalog(t *testing.T) (*gorm.DB, *GormProductRepository) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, NewGormCategoryRepository(db).AutoMigrate())
	products := NewGormProductRepository(db)
	require.NoError(t, products.AutoMigrate())
	return db, products
}

func seedProducts(t *testing.T, db *gorm.DB, products *GormProductRepository) {
	electronics := domain.Category{CategoryName: "Electronics"}
	clothes := domain.Category{CategoryName: "Clothes"}
	require.NoError(t, db.Create(&electronics).Error)
	require.NoError(t, db.Create(&clothes).Error)

	phones := domain.SubCategory{SubcategoryName: "Phones", CategoryID: electronics.ID}
	shirts := domain.SubCategory{SubcategoryName: "Shirts", CategoryID: clothes.ID}
	require.NoError(t, db.Create(&phones).Error)
	require.NoError(t, db.Create(&shirts).Error)

	now := time.Now()
	seed := []domain.Product{
		{ProductName: "Budget Phone", Price: 100, SubCategoryID: phones.ID, Article: 1001, ProductType: true, CreatedDate: now.Add(-3 * time.Hour)},
		{ProductName: "Flagship Phone", Price: 900, SubCategoryID: phones.ID, Article: 1002, ProductType: true, CreatedDate: now.Add(-2 * time.Hour)},
		{ProductName: "Plain Shirt", Price: 30, SubCategoryID: shirts.ID, Article: 2001, ProductType: false, CreatedDate: now.Add(-time.Hour)},
		{ProductName: "Fancy Shirt", Price: 60, SubCategoryID: shirts.ID, Article: 2002, ProductType: false, CreatedDate: now},
	}
	for i := range seed {
		require.NoError(t, products.Create(&seed[i]))
	}
}

func names(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ProductName)
	}
	return out
}

func TestListFiltersByCategory(t *testing.T) {
	db, products := setupCatalog(t)
	seedProducts(t, db, products)

	categoryID := uint(1)
	result, count, err := products.List(domain.ProductQuery{CategoryID: &categoryID})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.ElementsMatch(t, []string{"Budget Phone", "Flagship Phone"}, names(result))
}

func TestListFiltersByPriceRange(t *testing.T) {
	db, products := setupCatalog(t)
	seedProducts(t, db, products)

	min, max := 50, 150
	result, count, err := products.List(domain.ProductQuery{PriceMin: &min, PriceMax: &max})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.ElementsMatch(t, []string{"Budget Phone", "Fancy Shirt"}, names(result))
}

func TestListFiltersCompose(t *testing.T) {
	db, products := setupCatalog(t)
	seedProducts(t, db, products)

	subcategoryID := uint(2)
	min := 50
	result, count, err := products.List(domain.ProductQuery{SubCategoryID: &subcategoryID, PriceMin: &min})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, []string{"Fancy Shirt"}, names(result))
}

func TestListSearchMatchesNameAndArticle(t *testing.T) {
	db, products := setupCatalog(t)
	seedProducts(t, db, products)

	result, count, err := products.List(domain.ProductQuery{Search: "shirt"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.ElementsMatch(t, []string{"Plain Shirt", "Fancy Shirt"}, names(result))

	result, count, err = products.List(domain.ProductQuery{Search: "1002"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, []string{"Flagship Phone"}, names(result))
}

func TestListOrdering(t *testing.T) {
	db, products := setupCatalog(t)
	seedProducts(t, db, products)

	result, _, err := products.List(domain.ProductQuery{Ordering: "price"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Plain Shirt", "Fancy Shirt", "Budget Phone", "Flagship Phone"}, names(result))

	result, _, err = products.List(domain.ProductQuery{Ordering: "-price"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Flagship Phone", "Budget Phone", "Fancy Shirt", "Plain Shirt"}, names(result))

	result, _, err = products.List(domain.ProductQuery{Ordering: "-created_date"})
	assert.NoError(t, err)
	assert.Equal(t, "Fancy Shirt", result[0].ProductName)
}

func TestListWindowKeepsTotalCount(t *testing.T) {
	db, products := setupCatalog(t)
	seedProducts(t, db, products)

	result, count, err := products.List(domain.ProductQuery{Limit: 2, Offset: 2, Ordering: "price"})
	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.Equal(t, []string{"Budget Phone", "Flagship Phone"}, names(result))
}

func TestDeleteCategoryCascades(t *testing.T) {
	db, products := setupCatalog(t)
	seedProducts(t, db, products)

	categories := NewGormCategoryRepository(db)
	require.NoError(t, categories.Delete(1))

	var subcategoryCount int64
	db.Model(&domain.SubCategory{}).Count(&subcategoryCount)
	assert.Equal(t, int64(1), subcategoryCount)

	_, count, err := products.List(domain.ProductQuery{})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestProductImagesRoundTrip(t *testing.T) {
	db, products := setupCatalog(t)
	seedProducts(t, db, products)

	product := domain.Product{
		ProductName:   "Camera",
		Price:         500,
		SubCategoryID: 1,
		Article:       3001,
		CreatedDate:   time.Now(),
		Images: []domain.ProductImage{
			{ProductImage: "https://cdn.example.com/camera-front.jpg"},
			{ProductImage: "https://cdn.example.com/camera-back.jpg"},
		},
	}
	require.NoError(t, products.Create(&product))

	found, err := products.FindByID(product.ID)
	assert.NoError(t, err)
	assert.Len(t, found.Images, 2)
	assert.Equal(t, "Phones", found.SubCategory.SubcategoryName)
}
