package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/repository"
	identityhttp "github.com/tair/storefront/internal/identity/delivery/http"
	"github.com/tair/storefront/pkg/auth"
)

// stubReviews serves fixed rating summaries so catalog tests do not
// depend on the review subsystem.
type stubReviews struct {
	avg   float64
	count int64
}

func (s stubReviews) Summary(uint) (float64, int64, error) {
	return s.avg, s.count, nil
}

func (s stubReviews) FindByProduct(uint) ([]domain.ReviewEntry, error) {
	return nil, nil
}

type catalogFixture struct {
	db     *gorm.DB
	router *mux.Router
	token  string
}

func setupCatalog(t *testing.T) catalogFixture {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	categories := repository.NewGormCategoryRepository(db)
	require.NoError(t, categories.AutoMigrate())
	products := repository.NewGormProductRepository(db)
	require.NoError(t, products.AutoMigrate())
	subcategories := repository.NewGormSubCategoryRepository(db)

	tokens := auth.NewManager("test-secret", 15*time.Minute, 24*time.Hour)
	pair, err := tokens.GeneratePair(1, "alice", "simple")
	require.NoError(t, err)

	handler := NewCatalogHandler(
		categories, subcategories, products,
		stubReviews{avg: 4.5, count: 2},
		PageSizes{Category: 4, SubCategory: 5, Product: 10},
		identityhttp.NewAuthMiddleware(tokens),
		nil,
	)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return catalogFixture{db: db, router: router, token: pair.Access}
}

func (f catalogFixture) do(method, path string, token string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

type pageEnvelope struct {
	Count    int64             `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

func (f catalogFixture) seed(t *testing.T) {
	category := domain.Category{CategoryName: "Electronics"}
	require.NoError(t, f.db.Create(&category).Error)
	subcategory := domain.SubCategory{SubcategoryName: "Phones", CategoryID: category.ID}
	require.NoError(t, f.db.Create(&subcategory).Error)
	require.NoError(t, f.db.Create(&domain.Product{
		ProductName:   "Budget Phone",
		Price:         100,
		SubCategoryID: subcategory.ID,
		Article:       1001,
		CreatedDate:   time.Now(),
		Images:        []domain.ProductImage{{ProductImage: "https://cdn.example.com/p.jpg"}},
	}).Error)
}

func TestCategoryListRequiresAuth(t *testing.T) {
	f := setupCatalog(t)

	w := f.do("GET", "/category", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCategoryListPaginates(t *testing.T) {
	f := setupCatalog(t)
	for i := 0; i < 6; i++ {
		require.NoError(t, f.db.Create(&domain.Category{CategoryName: fmt.Sprintf("Category %d", i)}).Error)
	}

	w := f.do("GET", "/category", f.token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var page pageEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(6), page.Count)
	assert.Len(t, page.Results, 4)
	assert.NotNil(t, page.Next)
	assert.Nil(t, page.Previous)

	w = f.do("GET", "/category?page=2", f.token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Results, 2)
	assert.Nil(t, page.Next)

	w = f.do("GET", "/category?page=3", f.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryDetailIsPublic(t *testing.T) {
	f := setupCatalog(t)
	f.seed(t)

	w := f.do("GET", "/category/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		CategoryName  string `json:"category_name"`
		Subcategories []struct {
			SubcategoryName string `json:"subcategory_name"`
		} `json:"subcategories"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Electronics", detail.CategoryName)
	require.Len(t, detail.Subcategories, 1)
	assert.Equal(t, "Phones", detail.Subcategories[0].SubcategoryName)
}

func TestCategoryMutationsRequireAuth(t *testing.T) {
	f := setupCatalog(t)

	w := f.do("POST", "/category", "", map[string]string{"category_name": "Toys"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do("POST", "/category", f.token, map[string]string{"category_name": "Toys"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDuplicateCategoryName(t *testing.T) {
	f := setupCatalog(t)
	f.seed(t)

	w := f.do("POST", "/category", f.token, map[string]string{"category_name": "Electronics"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "category_name")
}

func TestProductListIsPublicWithCards(t *testing.T) {
	f := setupCatalog(t)
	f.seed(t)

	w := f.do("GET", "/product", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Count   int64 `json:"count"`
		Results []struct {
			ProductName string   `json:"product_name"`
			Price       int      `json:"price"`
			AvgRating   float64  `json:"avg_rating"`
			ReviewCount int64    `json:"review_count"`
			Images      []string `json:"images"`
		} `json:"results"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Budget Phone", page.Results[0].ProductName)
	assert.Equal(t, 4.5, page.Results[0].AvgRating)
	assert.Equal(t, int64(2), page.Results[0].ReviewCount)
	assert.Equal(t, []string{"https://cdn.example.com/p.jpg"}, page.Results[0].Images)
}

func TestProductListRejectsBadFilter(t *testing.T) {
	f := setupCatalog(t)

	w := f.do("GET", "/product?price_min=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductValidation(t *testing.T) {
	f := setupCatalog(t)
	f.seed(t)

	// Duplicate article
	w := f.do("POST", "/product", f.token, map[string]interface{}{
		"product_name":   "Another Phone",
		"price":          200,
		"subcategory_id": 1,
		"article":        1001,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "article")

	// Unknown subcategory
	w = f.do("POST", "/product", f.token, map[string]interface{}{
		"product_name":   "Another Phone",
		"price":          200,
		"subcategory_id": 99,
		"article":        1002,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "subcategory")

	// Valid
	w = f.do("POST", "/product", f.token, map[string]interface{}{
		"product_name":   "Another Phone",
		"price":          200,
		"subcategory_id": 1,
		"article":        1002,
		"images":         []string{"https://cdn.example.com/q.jpg"},
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestProductDetail(t *testing.T) {
	f := setupCatalog(t)
	f.seed(t)

	w := f.do("GET", "/product/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		Subcategory struct {
			SubcategoryName string `json:"subcategory_name"`
		} `json:"subcategory"`
		ProductName string  `json:"product_name"`
		AvgRating   float64 `json:"avg_rating"`
		CreatedDate string  `json:"created_date"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Phones", detail.Subcategory.SubcategoryName)
	assert.Equal(t, "Budget Phone", detail.ProductName)
	assert.Equal(t, 4.5, detail.AvgRating)
	assert.Equal(t, time.Now().Format(DateFormat), detail.CreatedDate)
}

func TestSubCategoryDetailCarriesProductCards(t *testing.T) {
	f := setupCatalog(t)
	f.seed(t)

	w := f.do("GET", "/sub_category/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		SubcategoryName string `json:"subcategory_name"`
		Products        []struct {
			ProductName string `json:"product_name"`
		} `json:"products"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Phones", detail.SubcategoryName)
	require.Len(t, detail.Products, 1)
	assert.Equal(t, "Budget Phone", detail.Products[0].ProductName)
}

func TestDeleteProduct(t *testing.T) {
	f := setupCatalog(t)
	f.seed(t)

	w := f.do("DELETE", "/product/1", f.token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do("GET", "/product/1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
