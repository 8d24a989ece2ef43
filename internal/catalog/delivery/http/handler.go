package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/usecase/command"
	"github.com/tair/storefront/internal/catalog/usecase/query"
	identityhttp "github.com/tair/storefront/internal/identity/delivery/http"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/httperr"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/pagination"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_requests_total",
			Help: "Total number of requests to catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// PageSizes carries the per-resource page-size policy.
type PageSizes struct {
	Category    int
	SubCategory int
	Product     int
}

// CatalogHandler handles HTTP requests for the catalog hierarchy
type CatalogHandler struct {
	createCategory    *command.CreateCategoryHandler
	updateCategory    *command.UpdateCategoryHandler
	deleteCategory    *command.DeleteCategoryHandler
	createSubCategory *command.CreateSubCategoryHandler
	updateSubCategory *command.UpdateSubCategoryHandler
	deleteSubCategory *command.DeleteSubCategoryHandler
	createProduct     *command.CreateProductHandler
	updateProduct     *command.UpdateProductHandler
	deleteProduct     *command.DeleteProductHandler

	listCategories    *query.ListCategoriesHandler
	getCategory       *query.GetCategoryHandler
	listSubCategories *query.ListSubCategoriesHandler
	getSubCategory    *query.GetSubCategoryHandler
	listProducts      *query.ListProductsHandler
	getProduct        *query.GetProductHandler

	reviews domain.ReviewSource
	pages   PageSizes
	mw      *identityhttp.AuthMiddleware
	events  *kafka.Publisher
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	categories domain.CategoryRepository,
	subcategories domain.SubCategoryRepository,
	products domain.ProductRepository,
	reviews domain.ReviewSource,
	pages PageSizes,
	mw *identityhttp.AuthMiddleware,
	events *kafka.Publisher,
) *CatalogHandler {
	return &CatalogHandler{
		createCategory:    command.NewCreateCategoryHandler(categories),
		updateCategory:    command.NewUpdateCategoryHandler(categories),
		deleteCategory:    command.NewDeleteCategoryHandler(categories),
		createSubCategory: command.NewCreateSubCategoryHandler(subcategories, categories),
		updateSubCategory: command.NewUpdateSubCategoryHandler(subcategories, categories),
		deleteSubCategory: command.NewDeleteSubCategoryHandler(subcategories),
		createProduct:     command.NewCreateProductHandler(products, subcategories),
		updateProduct:     command.NewUpdateProductHandler(products, subcategories),
		deleteProduct:     command.NewDeleteProductHandler(products),
		listCategories:    query.NewListCategoriesHandler(categories),
		getCategory:       query.NewGetCategoryHandler(categories),
		listSubCategories: query.NewListSubCategoriesHandler(subcategories),
		getSubCategory:    query.NewGetSubCategoryHandler(subcategories),
		listProducts:      query.NewListProductsHandler(products),
		getProduct:        query.NewGetProductHandler(products),
		reviews:           reviews,
		pages:             pages,
		mw:                mw,
		events:            events,
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListCategories handles GET /category (authenticated, paginated)
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r, h.pages.Category)
	if err != nil {
		respondError(w, err)
		return
	}

	categories, count, err := h.listCategories.Handle(query.ListCategoriesQuery{
		Limit:  page.Limit(),
		Offset: page.Offset(),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	if err := page.Validate(count); err != nil {
		respondError(w, err)
		return
	}

	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, NewCategoryView(c))
	}
	respondJSON(w, http.StatusOK, pagination.NewPage(r, page, count, views))
}

// CreateCategory handles POST /category
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CategoryName  string `json:"category_name"`
		CategoryImage string `json:"category_image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	category, err := h.createCategory.Handle(command.CreateCategoryCommand{
		CategoryName:  req.CategoryName,
		CategoryImage: req.CategoryImage,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, NewCategoryView(*category))
}

// GetCategory handles GET /category/{id}
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	category, err := h.getCategory.Handle(query.GetCategoryQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, NewCategoryDetail(category))
}

// UpdateCategory handles PUT /category/{id}
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		CategoryName  string `json:"category_name"`
		CategoryImage string `json:"category_image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	category, err := h.updateCategory.Handle(command.UpdateCategoryCommand{
		ID:            id,
		CategoryName:  req.CategoryName,
		CategoryImage: req.CategoryImage,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, NewCategoryView(*category))
}

// DeleteCategory handles DELETE /category/{id}
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.deleteCategory.Handle(command.DeleteCategoryCommand{ID: id}); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "category deleted"})
}

// ListSubCategories handles GET /sub_category (paginated)
func (h *CatalogHandler) ListSubCategories(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r, h.pages.SubCategory)
	if err != nil {
		respondError(w, err)
		return
	}

	subcategories, count, err := h.listSubCategories.Handle(query.ListSubCategoriesQuery{
		Limit:  page.Limit(),
		Offset: page.Offset(),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	if err := page.Validate(count); err != nil {
		respondError(w, err)
		return
	}

	views := make([]SubCategoryView, 0, len(subcategories))
	for _, s := range subcategories {
		views = append(views, SubCategoryView{ID: s.ID, SubcategoryName: s.SubcategoryName})
	}
	respondJSON(w, http.StatusOK, pagination.NewPage(r, page, count, views))
}

// CreateSubCategory handles POST /sub_category
func (h *CatalogHandler) CreateSubCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubcategoryName string `json:"subcategory_name"`
		CategoryID      uint   `json:"category_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	subcategory, err := h.createSubCategory.Handle(command.CreateSubCategoryCommand{
		SubcategoryName: req.SubcategoryName,
		CategoryID:      req.CategoryID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, SubCategoryView{ID: subcategory.ID, SubcategoryName: subcategory.SubcategoryName})
}

// GetSubCategory handles GET /sub_category/{id}
func (h *CatalogHandler) GetSubCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	subcategory, err := h.getSubCategory.Handle(query.GetSubCategoryQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	cards, err := BuildProductCards(subcategory.Products, h.reviews)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SubCategoryDetail{
		SubcategoryName: subcategory.SubcategoryName,
		Products:        cards,
	})
}

// UpdateSubCategory handles PUT /sub_category/{id}
func (h *CatalogHandler) UpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		SubcategoryName string `json:"subcategory_name"`
		CategoryID      uint   `json:"category_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	subcategory, err := h.updateSubCategory.Handle(command.UpdateSubCategoryCommand{
		ID:              id,
		SubcategoryName: req.SubcategoryName,
		CategoryID:      req.CategoryID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SubCategoryView{ID: subcategory.ID, SubcategoryName: subcategory.SubcategoryName})
}

// DeleteSubCategory handles DELETE /sub_category/{id}
func (h *CatalogHandler) DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.deleteSubCategory.Handle(command.DeleteSubCategoryCommand{ID: id}); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "subcategory deleted"})
}

// ListProducts handles GET /product with filter, search and ordering
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r, h.pages.Product)
	if err != nil {
		respondError(w, err)
		return
	}

	q, err := parseProductQuery(r)
	if err != nil {
		respondError(w, err)
		return
	}
	q.Limit = page.Limit()
	q.Offset = page.Offset()

	products, count, err := h.listProducts.Handle(query.ListProductsQuery{Query: q})
	if err != nil {
		respondError(w, err)
		return
	}
	if err := page.Validate(count); err != nil {
		respondError(w, err)
		return
	}

	cards, err := BuildProductCards(products, h.reviews)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagination.NewPage(r, page, count, cards))
}

// CreateProduct handles POST /product
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductName   string   `json:"product_name"`
		Price         int      `json:"price"`
		Description   string   `json:"description"`
		SubCategoryID uint     `json:"subcategory_id"`
		ProductType   bool     `json:"product_type"`
		Article       uint     `json:"article"`
		Video         *string  `json:"video"`
		Images        []string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	product, err := h.createProduct.Handle(command.CreateProductCommand{
		ProductName:   req.ProductName,
		Price:         req.Price,
		Description:   req.Description,
		SubCategoryID: req.SubCategoryID,
		ProductType:   req.ProductType,
		Article:       req.Article,
		Video:         req.Video,
		Images:        req.Images,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.events.PublishProductCreated(r.Context(), kafka.ProductCreatedEvent{
		ProductID: product.ID,
		Name:      product.ProductName,
		Article:   product.Article,
		Price:     product.Price,
	}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to publish product event")
	}

	respondJSON(w, http.StatusCreated, product)
}

// GetProduct handles GET /product/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	product, err := h.getProduct.Handle(query.GetProductQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	avg, count, err := h.reviews.Summary(product.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	entries, err := h.reviews.FindByProduct(product.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, NewProductDetail(product, avg, count, entries))
}

// UpdateProduct handles PUT /product/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		ProductName   string  `json:"product_name"`
		Price         *int    `json:"price"`
		Description   string  `json:"description"`
		SubCategoryID uint    `json:"subcategory_id"`
		ProductType   *bool   `json:"product_type"`
		Article       uint    `json:"article"`
		Video         *string `json:"video"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	product, err := h.updateProduct.Handle(command.UpdateProductCommand{
		ID:            id,
		ProductName:   req.ProductName,
		Price:         req.Price,
		Description:   req.Description,
		SubCategoryID: req.SubCategoryID,
		ProductType:   req.ProductType,
		Article:       req.Article,
		Video:         req.Video,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /product/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.deleteProduct.Handle(command.DeleteProductCommand{ID: id}); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "product deleted"})
}

// parseProductQuery reads the structured filter, search and ordering
// parameters for the product list.
func parseProductQuery(r *http.Request) (domain.ProductQuery, error) {
	values := r.URL.Query()
	q := domain.ProductQuery{
		Search:   values.Get("search"),
		Ordering: values.Get("ordering"),
	}

	if raw := values.Get("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return q, httperr.Validation("invalid category filter")
		}
		v := uint(id)
		q.CategoryID = &v
	}
	if raw := values.Get("subcategory"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return q, httperr.Validation("invalid subcategory filter")
		}
		v := uint(id)
		q.SubCategoryID = &v
	}
	if raw := values.Get("price_min"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, httperr.Validation("invalid price_min filter")
		}
		q.PriceMin = &n
	}
	if raw := values.Get("price_max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, httperr.Validation("invalid price_max filter")
		}
		q.PriceMax = &n
	}
	if raw := values.Get("product_type"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return q, httperr.Validation("invalid product_type filter")
		}
		q.ProductType = &b
	}
	return q, nil
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, httperr.NotFound("not found"))
		return 0, false
	}
	return uint(id), true
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err error) {
	e := httperr.From(err)
	payload := map[string]interface{}{"detail": e.Detail}
	if len(e.Fields) > 0 {
		payload["fields"] = e.Fields
	}
	respondJSON(w, e.Status(), payload)
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	// Categories: listing requires auth, detail is public
	router.HandleFunc("/category", h.metricsMiddleware("/category", h.mw.Require(h.ListCategories))).Methods("GET")
	router.HandleFunc("/category", h.metricsMiddleware("/category", h.mw.Require(h.CreateCategory))).Methods("POST")
	router.HandleFunc("/category/{id}", h.metricsMiddleware("/category/{id}", h.GetCategory)).Methods("GET")
	router.HandleFunc("/category/{id}", h.metricsMiddleware("/category/{id}", h.mw.Require(h.UpdateCategory))).Methods("PUT")
	router.HandleFunc("/category/{id}", h.metricsMiddleware("/category/{id}", h.mw.Require(h.DeleteCategory))).Methods("DELETE")

	// Subcategories: read is public
	router.HandleFunc("/sub_category", h.metricsMiddleware("/sub_category", h.ListSubCategories)).Methods("GET")
	router.HandleFunc("/sub_category", h.metricsMiddleware("/sub_category", h.mw.Require(h.CreateSubCategory))).Methods("POST")
	router.HandleFunc("/sub_category/{id}", h.metricsMiddleware("/sub_category/{id}", h.GetSubCategory)).Methods("GET")
	router.HandleFunc("/sub_category/{id}", h.metricsMiddleware("/sub_category/{id}", h.mw.Require(h.UpdateSubCategory))).Methods("PUT")
	router.HandleFunc("/sub_category/{id}", h.metricsMiddleware("/sub_category/{id}", h.mw.Require(h.DeleteSubCategory))).Methods("DELETE")

	// Products: read is public, mutation requires auth
	router.HandleFunc("/product", h.metricsMiddleware("/product", h.mw.Optional(h.ListProducts))).Methods("GET")
	router.HandleFunc("/product", h.metricsMiddleware("/product", h.mw.Require(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/product/{id}", h.metricsMiddleware("/product/{id}", h.mw.Optional(h.GetProduct))).Methods("GET")
	router.HandleFunc("/product/{id}", h.metricsMiddleware("/product/{id}", h.mw.Require(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/product/{id}", h.metricsMiddleware("/product/{id}", h.mw.Require(h.DeleteProduct))).Methods("DELETE")
}
