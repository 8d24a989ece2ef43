package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/usecase/command"
	"github.com/tair/storefront/internal/cart/usecase/query"
	cataloghttp "github.com/tair/storefront/internal/catalog/delivery/http"
	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	identityhttp "github.com/tair/storefront/internal/identity/delivery/http"
	"github.com/tair/storefront/pkg/httperr"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_requests_total",
			Help: "Total number of requests to cart endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_cart_request_duration_seconds",
			Help:    "Duration of cart requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// CartItemView is the line item representation with its product card
type CartItemView struct {
	ID         uint                    `json:"id"`
	Product    cataloghttp.ProductCard `json:"product"`
	Quantity   int                     `json:"quantity"`
	TotalPrice int                     `json:"total_price"`
}

// CartView is the full cart representation
type CartView struct {
	ID         uint           `json:"id"`
	Items      []CartItemView `json:"items"`
	UserID     uint           `json:"user"`
	TotalPrice int            `json:"total_price"`
}

// CartHandler handles HTTP requests for the shopping cart
type CartHandler struct {
	addItem    *command.AddItemHandler
	updateItem *command.UpdateItemHandler
	removeItem *command.RemoveItemHandler
	getCart    *query.GetCartHandler
	listItems  *query.ListItemsHandler

	reviews catalogdomain.ReviewSource
	mw      *identityhttp.AuthMiddleware
}

// NewCartHandler creates a new cart handler
func NewCartHandler(
	carts domain.CartRepository,
	products catalogdomain.ProductRepository,
	reviews catalogdomain.ReviewSource,
	mw *identityhttp.AuthMiddleware,
) *CartHandler {
	return &CartHandler{
		addItem:    command.NewAddItemHandler(carts, products),
		updateItem: command.NewUpdateItemHandler(carts),
		removeItem: command.NewRemoveItemHandler(carts),
		getCart:    query.NewGetCartHandler(carts),
		listItems:  query.NewListItemsHandler(carts),
		reviews:    reviews,
		mw:         mw,
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

func (h *CartHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

func (h *CartHandler) newItemView(item domain.CartItem) (CartItemView, error) {
	avg, count, err := h.reviews.Summary(item.ProductID)
	if err != nil {
		return CartItemView{}, err
	}
	return CartItemView{
		ID:         item.ID,
		Product:    cataloghttp.NewProductCard(item.Product, avg, count),
		Quantity:   item.Quantity,
		TotalPrice: item.TotalPrice(),
	}, nil
}

// GetCart handles GET /cart, creating the cart on first access
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := identityhttp.CallerID(r.Context())
	if !ok {
		respondError(w, httperr.Authentication("authentication required"))
		return
	}

	cart, err := h.getCart.Handle(query.GetCartQuery{UserID: userID})
	if err != nil {
		respondError(w, err)
		return
	}

	view := CartView{
		ID:         cart.ID,
		Items:      make([]CartItemView, 0, len(cart.Items)),
		UserID:     cart.UserID,
		TotalPrice: cart.TotalPrice(),
	}
	for _, item := range cart.Items {
		itemView, err := h.newItemView(item)
		if err != nil {
			respondError(w, err)
			return
		}
		view.Items = append(view.Items, itemView)
	}
	respondJSON(w, http.StatusOK, view)
}

// ListItems handles GET /cart_items
func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := identityhttp.CallerID(r.Context())
	if !ok {
		respondError(w, httperr.Authentication("authentication required"))
		return
	}

	items, err := h.listItems.Handle(query.ListItemsQuery{UserID: userID})
	if err != nil {
		respondError(w, err)
		return
	}

	views := make([]CartItemView, 0, len(items))
	for _, item := range items {
		itemView, err := h.newItemView(item)
		if err != nil {
			respondError(w, err)
			return
		}
		views = append(views, itemView)
	}
	respondJSON(w, http.StatusOK, views)
}

// AddItem handles POST /cart_items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := identityhttp.CallerID(r.Context())
	if !ok {
		respondError(w, httperr.Authentication("authentication required"))
		return
	}

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	item, err := h.addItem.Handle(command.AddItemCommand{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := h.newItemView(*item)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// UpdateItem handles PUT /cart_items/{id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := identityhttp.CallerID(r.Context())
	if !ok {
		respondError(w, httperr.Authentication("authentication required"))
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	item, err := h.updateItem.Handle(command.UpdateItemCommand{
		ItemID:   id,
		UserID:   userID,
		Quantity: req.Quantity,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := h.newItemView(*item)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// RemoveItem handles DELETE /cart_items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := identityhttp.CallerID(r.Context())
	if !ok {
		respondError(w, httperr.Authentication("authentication required"))
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.removeItem.Handle(command.RemoveItemCommand{ItemID: id, UserID: userID}); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "cart item removed"})
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

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/cart", h.metricsMiddleware("/cart", h.mw.Require(h.GetCart))).Methods("GET")
	router.HandleFunc("/cart_items", h.metricsMiddleware("/cart_items", h.mw.Require(h.ListItems))).Methods("GET")
	router.HandleFunc("/cart_items", h.metricsMiddleware("/cart_items", h.mw.Require(h.AddItem))).Methods("POST")
	router.HandleFunc("/cart_items/{id}", h.metricsMiddleware("/cart_items/{id}", h.mw.Require(h.UpdateItem))).Methods("PUT")
	router.HandleFunc("/cart_items/{id}", h.metricsMiddleware("/cart_items/{id}", h.mw.Require(h.RemoveItem))).Methods("DELETE")
}
