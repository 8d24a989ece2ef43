package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	carthttp "github.com/tair/storefront/internal/cart/delivery/http"
	cartrepo "github.com/tair/storefront/internal/cart/repository"
	cataloghttp "github.com/tair/storefront/internal/catalog/delivery/http"
	catalogrepo "github.com/tair/storefront/internal/catalog/repository"
	favoriteshttp "github.com/tair/storefront/internal/favorites/delivery/http"
	favoritesrepo "github.com/tair/storefront/internal/favorites/repository"
	identityhttp "github.com/tair/storefront/internal/identity/delivery/http"
	identityrepo "github.com/tair/storefront/internal/identity/repository"
	reviewhttp "github.com/tair/storefront/internal/review/delivery/http"
	reviewrepo "github.com/tair/storefront/internal/review/repository"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/auth"
	"github.com/tair/storefront/pkg/database"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/tracing"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	logger.Init("storefront", getEnv("APP_ENV", "development") == "development")
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	tp, err := tracing.InitTracer("storefront", getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"))
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	}

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "storefront"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	// Repositories. Migrations run in dependency order so foreign keys
	// resolve.
	userRepo := identityrepo.NewGormUserRepository(db)
	categoryRepo := catalogrepo.NewGormCategoryRepository(db)
	subcategoryRepo := catalogrepo.NewGormSubCategoryRepository(db)
	productRepo := catalogrepo.NewGormProductRepository(db)
	reviewRepo := reviewrepo.NewGormReviewRepository(db)
	cartRepo := cartrepo.NewGormCartRepository(db)
	favoritesRepo := favoritesrepo.NewGormFavoritesRepository(db)

	migrators := []interface{ AutoMigrate() error }{
		userRepo, categoryRepo, productRepo, reviewRepo, cartRepo, favoritesRepo,
	}
	for _, m := range migrators {
		if err := m.AutoMigrate(); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Refresh token blacklist: Redis when configured, in-memory otherwise.
	var blacklist auth.Blacklist
	if addr := getEnv("REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		blacklist = auth.NewRedisBlacklist(client)
	} else {
		logger.Logger.Warn().Msg("REDIS_ADDR not set, using in-memory token blacklist")
		blacklist = auth.NewMemoryBlacklist()
	}

	// Kafka is optional, a nil publisher drops every event.
	var events *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		events, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka disabled")
			events = nil
		} else {
			defer events.Close()
		}
	}

	tokens := auth.NewManager(
		getEnv("JWT_SECRET", "dev-secret-change-me"),
		getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		getEnvDuration("REFRESH_TOKEN_TTL", 24*time.Hour),
	)

	reviewSource := reviewrepo.NewReviewSource(reviewRepo)

	userHandler := identityhttp.NewUserHandler(userRepo, tokens, blacklist, events)
	mw := userHandler.Middleware()

	pages := cataloghttp.PageSizes{
		Category:    getEnvInt("PAGE_SIZE_CATEGORY", 4),
		SubCategory: getEnvInt("PAGE_SIZE_SUBCATEGORY", 5),
		Product:     getEnvInt("PAGE_SIZE_PRODUCT", 10),
	}
	catalogHandler := cataloghttp.NewCatalogHandler(
		categoryRepo, subcategoryRepo, productRepo, reviewSource, pages, mw, events)
	reviewHandler := reviewhttp.NewReviewHandler(reviewRepo, productRepo, mw, events)
	cartHandler := carthttp.NewCartHandler(cartRepo, productRepo, reviewSource, mw)
	favoritesHandler := favoriteshttp.NewFavoritesHandler(favoritesRepo, productRepo, reviewSource, mw)

	router := mux.NewRouter()
	userHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	reviewHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	favoritesHandler.RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := sqlDB.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	port := getEnv("HTTP_PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: otelhttp.NewHandler(c.Handler(router), "storefront"),
	}

	go func() {
		logger.Logger.Info().Str("port", port).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
	if tp != nil {
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
