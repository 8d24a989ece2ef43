package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	catalogdomain "github.com/tair/storefront/internal/catalog/domain"
	cataloghttp "github.com/tair/storefront/internal/catalog/delivery/http"
	identityhttp "github.com/tair/storefront/internal/identity/delivery/http"
	"github.com/tair/storefront/internal/review/domain"
	"github.com/tair/storefront/internal/review/usecase/command"
	"github.com/tair/storefront/internal/review/usecase/query"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/httperr"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/pagination"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_review_requests_total",
			Help: "Total number of requests to review endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_review_request_duration_seconds",
			Help:    "Duration of review requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

const listPageSize = 10

// ReviewView is the full review representation
type ReviewView struct {
	ID          uint                   `json:"id"`
	User        cataloghttp.ReviewUser `json:"user"`
	ProductID   uint                   `json:"product_id"`
	Star        *int                   `json:"star"`
	Text        string                 `json:"text"`
	CreatedDate string                 `json:"created_date"`
}

// NewReviewView builds the review representation. The reviewer must be
// preloaded.
func NewReviewView(rv domain.Review) ReviewView {
	return ReviewView{
		ID:          rv.ID,
		User:        cataloghttp.ReviewUser{Username: rv.User.Username},
		ProductID:   rv.ProductID,
		Star:        rv.Star,
		Text:        rv.Text,
		CreatedDate: rv.CreatedDate.Format(cataloghttp.DateFormat),
	}
}

// ReviewHandler handles HTTP requests for reviews
type ReviewHandler struct {
	createReview *command.CreateReviewHandler
	updateReview *command.UpdateReviewHandler
	deleteReview *command.DeleteReviewHandler
	listReviews  *query.ListReviewsHandler
	getReview    *query.GetReviewHandler

	mw     *identityhttp.AuthMiddleware
	events *kafka.Publisher
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(
	reviews domain.ReviewRepository,
	products catalogdomain.ProductRepository,
	mw *identityhttp.AuthMiddleware,
	events *kafka.Publisher,
) *ReviewHandler {
	return &ReviewHandler{
		createReview: command.NewCreateReviewHandler(reviews, products),
		updateReview: command.NewUpdateReviewHandler(reviews),
		deleteReview: command.NewDeleteReviewHandler(reviews),
		listReviews:  query.NewListReviewsHandler(reviews),
		getReview:    query.NewGetReviewHandler(reviews),
		mw:           mw,
		events:       events,
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

func (h *ReviewHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListReviews handles GET /review
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Parse(r, listPageSize)
	if err != nil {
		respondError(w, err)
		return
	}

	reviews, count, err := h.listReviews.Handle(query.ListReviewsQuery{
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

	views := make([]ReviewView, 0, len(reviews))
	for _, rv := range reviews {
		views = append(views, NewReviewView(rv))
	}
	respondJSON(w, http.StatusOK, pagination.NewPage(r, page, count, views))
}

// CreateReview handles POST /review
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := identityhttp.CallerID(r.Context())
	if !ok {
		respondError(w, httperr.Authentication("authentication required"))
		return
	}

	var req struct {
		ProductID uint   `json:"product_id"`
		Star      *int   `json:"star"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	review, err := h.createReview.Handle(command.CreateReviewCommand{
		UserID:    userID,
		ProductID: req.ProductID,
		Star:      req.Star,
		Text:      req.Text,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.events.PublishReviewCreated(r.Context(), kafka.ReviewCreatedEvent{
		ReviewID:  review.ID,
		UserID:    review.UserID,
		ProductID: review.ProductID,
		Star:      review.Star,
	}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to publish review event")
	}

	created, err := h.getReview.Handle(query.GetReviewQuery{ID: review.ID})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, NewReviewView(*created))
}

// GetReview handles GET /review/{id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	review, err := h.getReview.Handle(query.GetReviewQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, NewReviewView(*review))
}

// UpdateReview handles PUT /review/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
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
		Star *int   `json:"star"`
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	if _, err := h.updateReview.Handle(command.UpdateReviewCommand{
		ID:     id,
		UserID: userID,
		Star:   req.Star,
		Text:   req.Text,
	}); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.getReview.Handle(query.GetReviewQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, NewReviewView(*updated))
}

// DeleteReview handles DELETE /review/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := identityhttp.CallerID(r.Context())
	if !ok {
		respondError(w, httperr.Authentication("authentication required"))
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleteReview.Handle(command.DeleteReviewCommand{ID: id, UserID: userID}); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"detail": "review deleted"})
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

// RegisterRoutes registers all review routes
func (h *ReviewHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/review", h.metricsMiddleware("/review", h.ListReviews)).Methods("GET")
	router.HandleFunc("/review", h.metricsMiddleware("/review", h.mw.Require(h.CreateReview))).Methods("POST")
	router.HandleFunc("/review/{id}", h.metricsMiddleware("/review/{id}", h.GetReview)).Methods("GET")
	router.HandleFunc("/review/{id}", h.metricsMiddleware("/review/{id}", h.mw.Require(h.UpdateReview))).Methods("PUT")
	router.HandleFunc("/review/{id}", h.metricsMiddleware("/review/{id}", h.mw.Require(h.DeleteReview))).Methods("DELETE")
}
