package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	cataloghttp "github.com/tair/storefront/internal/catalog/delivery/http"
	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/favorites/domain"
	"github.com/tair/storefront/internal/favorites/usecase/command"
	"github.com/tair/storefront/internal/favorites/usecase/query"
	identityhttp "github.com/tair/storefront/internal/identity/delivery/http"
	"github.com/tair/storefront/pkg/httperr"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_favorites_requests_total",
			Help: "Total number of requests to favorites endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_favorites_request_duration_seconds",
			Help:    "Duration of favorites requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// FavoriteItemView is the favorite entry with its product card
type FavoriteItemView struct {
	ID      uint                    `json:"id"`
	Product cataloghttp.ProductCard `json:"product"`
}

// FavoritesView is the full favorites representation
type FavoritesView struct {
	ID     uint               `json:"id"`
	Items  []FavoriteItemView `json:"items"`
	UserID uint               `json:"user"`
}

// FavoritesHandler handles HTTP requests for the favorites list
type FavoritesHandler struct {
	addItem      *command.AddItemHandler
	removeItem   *command.RemoveItemHandler
	getFavorites *query.GetFavoritesHandler

	reviews catalogdomain.ReviewSource
	mw      *identityhttp.AuthMiddleware
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(
	favorites domain.FavoritesRepository,
	products catalogdomain.ProductRepository,
	reviews catalogdomain.ReviewSource,
	mw *identityhttp.AuthMiddleware,
) *FavoritesHandler {
	return &FavoritesHandler{
		addItem:      command.NewAddItemHandler(favorites, products),
		removeItem:   command.NewRemoveItemHandler(favorites),
		getFavorites: query.NewGetFavoritesHandler(favorites),
		reviews:      reviews,
		mw:           mw,
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

func (h *FavoritesHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

func (h *FavoritesHandler) newItemView(item domain.FavoriteItem) (FavoriteItemView, error) {
	avg, count, err := h.reviews.Summary(item.ProductID)
	if err != nil {
		return FavoriteItemView{}, err
	}
	return FavoriteItemView{
		ID:      item.ID,
		Product: cataloghttp.NewProductCard(item.Product, avg, count),
	}, nil
}

// GetFavorites handles GET /favorites, creating the list on first access
func (h *FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := identityhttp.CallerID(r.Context())
	if !ok {
		respondError(w, httperr.Authentication("authentication required"))
		return
	}

	favorites, err := h.getFavorites.Handle(query.GetFavoritesQuery{UserID: userID})
	if err != nil {
		respondError(w, err)
		return
	}

	view := FavoritesView{
		ID:     favorites.ID,
		Items:  make([]FavoriteItemView, 0, len(favorites.Items)),
		UserID: favorites.UserID,
	}
	for _, item := range favorites.Items {
		itemView, err := h.newItemView(item)
		if err != nil {
			respondError(w, err)
			return
		}
		view.Items = append(view.Items, itemView)
	}
	respondJSON(w, http.StatusOK, view)
}

// AddItem handles POST /favorite_items
func (h *FavoritesHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := identityhttp.CallerID(r.Context())
	if !ok {
		respondError(w, httperr.Authentication("authentication required"))
		return
	}

	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	item, err := h.addItem.Handle(command.AddItemCommand{
		UserID:    userID,
		ProductID: req.ProductID,
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

// RemoveItem handles DELETE /favorite_items/{id}
func (h *FavoritesHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := identityhttp.CallerID(r.Context())
	if !ok {
		respondError(w, httperr.Authentication("authentication required"))
		return
	}
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, httperr.NotFound("not found"))
		return
	}

	if err := h.removeItem.Handle(command.RemoveItemCommand{ItemID: uint(id), UserID: userID}); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "favorite item removed"})
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

// RegisterRoutes registers all favorites routes
func (h *FavoritesHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/favorites", h.metricsMiddleware("/favorites", h.mw.Require(h.GetFavorites))).Methods("GET")
	router.HandleFunc("/favorite_items", h.metricsMiddleware("/favorite_items", h.mw.Require(h.AddItem))).Methods("POST")
	router.HandleFunc("/favorite_items/{id}", h.metricsMiddleware("/favorite_items/{id}", h.mw.Require(h.RemoveItem))).Methods("DELETE")
}
