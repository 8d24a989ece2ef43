package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tair/storefront/internal/identity/domain"
	"github.com/tair/storefront/internal/identity/usecase/command"
	"github.com/tair/storefront/internal/identity/usecase/query"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/auth"
	"github.com/tair/storefront/pkg/httperr"
	"github.com/tair/storefront/pkg/logger"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_identity_requests_total",
			Help: "Total number of requests to identity endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_identity_request_duration_seconds",
			Help:    "Duration of identity requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// UserHandler handles HTTP requests for accounts and sessions
type UserHandler struct {
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
	logoutHandler   *command.LogoutUserHandler
	refreshHandler  *command.RefreshTokenHandler
	updateHandler   *command.UpdateProfileHandler
	deleteHandler   *command.DeleteUserHandler

	getUserHandler *query.GetUserHandler

	mw     *AuthMiddleware
	events *kafka.Publisher
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo domain.UserRepository, tokens *auth.Manager, blacklist auth.Blacklist, events *kafka.Publisher) *UserHandler {
	return &UserHandler{
		registerHandler: command.NewRegisterUserHandler(repo),
		loginHandler:    command.NewLoginUserHandler(repo, tokens),
		logoutHandler:   command.NewLogoutUserHandler(tokens, blacklist),
		refreshHandler:  command.NewRefreshTokenHandler(repo, tokens, blacklist),
		updateHandler:   command.NewUpdateProfileHandler(repo),
		deleteHandler:   command.NewDeleteUserHandler(repo),
		getUserHandler:  query.NewGetUserHandler(repo),
		mw:              NewAuthMiddleware(tokens),
		events:          events,
	}
}

// Middleware returns the auth middleware built around this handler's
// token manager, for reuse by the other resource handlers.
func (h *UserHandler) Middleware() *AuthMiddleware {
	return h.mw
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Register handles POST /register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		Age         *int   `json:"age"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	user, err := h.registerHandler.Handle(command.RegisterUserCommand{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Age:         req.Age,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.events.PublishUserRegistered(r.Context(), kafka.UserRegisteredEvent{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to publish registration event")
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login handles POST /login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	response, err := h.loginHandler.Handle(command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// Refresh handles POST /login/refresh
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	response, err := h.refreshHandler.Handle(r.Context(), command.RefreshTokenCommand{RefreshToken: req.Refresh})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// Logout handles POST /logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	if err := h.logoutHandler.Handle(r.Context(), command.LogoutUserCommand{RefreshToken: req.Refresh}); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"detail": "successfully logged out"})
}

// ListProfiles handles GET /user. The listing only ever contains the
// caller's own record.
func (h *UserHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := CallerID(r.Context())
	if !ok {
		respondError(w, httperr.Authentication("authentication required"))
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{ID: userID})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, []*domain.User{user})
}

// GetProfile handles GET /user/{id} (self only)
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.selfID(w, r)
	if !ok {
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{ID: userID})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /user/{id} (self only)
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.selfID(w, r)
	if !ok {
		return
	}

	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		PhoneNumber string `json:"phone_number"`
		Age         *int   `json:"age"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, httperr.Validation("invalid request body"))
		return
	}

	user, err := h.updateHandler.Handle(command.UpdateProfileCommand{
		ID:          userID,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// DeleteProfile handles DELETE /user/{id} (self only)
func (h *UserHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.selfID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteUserCommand{ID: userID}); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"detail": "account deleted"})
}

// selfID resolves the {id} path variable and hides any record that does
// not belong to the caller behind a 404.
func (h *UserHandler) selfID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	callerID, ok := CallerID(r.Context())
	if !ok {
		respondError(w, httperr.Authentication("authentication required"))
		return 0, false
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || uint(id) != callerID {
		respondError(w, httperr.NotFound("user not found"))
		return 0, false
	}
	return callerID, true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError renders an error with its mapped status and detail payload
func respondError(w http.ResponseWriter, err error) {
	e := httperr.From(err)
	payload := map[string]interface{}{"detail": e.Detail}
	if len(e.Fields) > 0 {
		payload["fields"] = e.Fields
	}
	respondJSON(w, e.Status(), payload)
}

// RegisterRoutes registers all identity routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/register", h.metricsMiddleware("/register", h.Register)).Methods("POST")
	router.HandleFunc("/login", h.metricsMiddleware("/login", h.Login)).Methods("POST")
	router.HandleFunc("/login/refresh", h.metricsMiddleware("/login/refresh", h.Refresh)).Methods("POST")
	router.HandleFunc("/logout", h.metricsMiddleware("/logout", h.Logout)).Methods("POST")

	// Self-only profile routes
	router.HandleFunc("/user", h.metricsMiddleware("/user", h.mw.Require(h.ListProfiles))).Methods("GET")
	router.HandleFunc("/user/{id}", h.metricsMiddleware("/user/{id}", h.mw.Require(h.GetProfile))).Methods("GET")
	router.HandleFunc("/user/{id}", h.metricsMiddleware("/user/{id}", h.mw.Require(h.UpdateProfile))).Methods("PUT")
	router.HandleFunc("/user/{id}", h.metricsMiddleware("/user/{id}", h.mw.Require(h.DeleteProfile))).Methods("DELETE")
}
