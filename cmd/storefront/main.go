package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tair/storefront/docs"
	"github.com/tair/storefront/internal/cart"
	cartCommand "github.com/tair/storefront/internal/cart/usecase/command"
	"github.com/tair/storefront/internal/catalog/client"
	"github.com/tair/storefront/internal/favorites"
	"github.com/tair/storefront/internal/session"
	"github.com/tair/storefront/internal/session/chat"
	sessionDelivery "github.com/tair/storefront/internal/session/delivery/http"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/database"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/snapshot"
	"github.com/tair/storefront/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "storefront-state")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting storefront state service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Snapshot backend for all per-owner state
	snapshots, err := newSnapshotStore()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize snapshot store")
	}
	defer snapshots.Close()

	snapshots = snapshot.NewStoreWithTracing(snapshots)

	// Kafka is optional; without it logout and checkout events are skipped
	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize Kafka publisher")
		}
		defer publisher.Close()
	} else {
		logger.Logger.Warn().Msg("KAFKA_BROKERS not set, session events disabled")
	}

	var chatPublisher chat.EventPublisher
	var checkoutPublisher cartCommand.CheckoutPublisher
	if publisher != nil {
		chatPublisher = publisher
		checkoutPublisher = publisher
	}

	// Session store first: the catalog client needs it to force logouts
	sessionStore, err := session.InitializeStore(snapshots, chatPublisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize session store")
	}

	catalogURL := getEnv("CATALOG_API_URL", "http://localhost:5000")
	apiClient := client.New(catalogURL, sessionStore)

	logger.Logger.Info().
		Str("catalog_api", catalogURL).
		Msg("Catalog client initialized")

	cartHandler, err := cart.InitializeHTTPHandler(snapshots, apiClient, checkoutPublisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize cart handler")
	}

	favoritesHandler, err := favorites.InitializeHTTPHandler(snapshots)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize favorites handler")
	}

	sessionHandler := sessionDelivery.NewSessionHandler(sessionStore, apiClient)

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8086")
	go startHTTPServer(cartHandler, favoritesHandler, sessionHandler, snapshots, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

type routeRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

func startHTTPServer(cartHandler, favoritesHandler, sessionHandler routeRegistrar, snapshots snapshot.Store, port string) {
	router := mux.NewRouter()

	cartHandler.RegisterRoutes(router)
	favoritesHandler.RegisterRoutes(router)
	sessionHandler.RegisterRoutes(router)

	// Health check endpoint
	router.HandleFunc("/health", healthCheck(snapshots)).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI and its document
	router.Handle("/swagger/doc.json", docs.Handler())
	sessionDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Str("swagger_endpoint", "/swagger/").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

// healthCheck probes the snapshot backend with a throwaway read
func healthCheck(snapshots snapshot.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		var probe struct{}
		err := snapshots.Load(ctx, "health:probe", &probe)
		if err != nil && !errors.Is(err, snapshot.ErrNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}
}

// newSnapshotStore picks the snapshot driver from the environment.
// Defaults to the in-memory driver for local development.
func newSnapshotStore() (snapshot.Store, error) {
	driver := snapshot.Driver(getEnv("SNAPSHOT_DRIVER", "memory"))

	switch driver {
	case snapshot.DriverRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		return snapshot.NewStore(snapshot.DriverRedis,
			snapshot.WithRedisClient(redisClient),
		)

	case snapshot.DriverPostgres:
		dbConfig := database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "storefrontdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		}
		db, err := database.NewGormConnection(dbConfig)
		if err != nil {
			return nil, err
		}
		return snapshot.NewStore(snapshot.DriverPostgres,
			snapshot.WithGormDB(db),
		)

	default:
		return snapshot.NewStore(snapshot.DriverMemory)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
