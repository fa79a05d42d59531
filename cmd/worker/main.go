package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/database"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/snapshot"
	"github.com/tair/storefront/pkg/tracing"
)

var (
	eventsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_worker_events_processed_total",
			Help: "Total number of events processed by the storefront worker",
		},
		[]string{"event_type", "status"},
	)

	checkoutTotals = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_worker_checkouts_total",
			Help: "Total number of checkout events observed",
		},
	)
)

func init() {
	prometheus.MustRegister(eventsProcessed, checkoutTotals)
}

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "storefront-worker")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Msg("Starting storefront worker")

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

	snapshots, err := newSnapshotStore()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize snapshot store")
	}

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "storefront-worker")
	topics := []string{kafka.TopicSessionLoggedOut, kafka.TopicCartCheckedOut}

	consumer, err := kafka.NewConsumer(brokers, groupID, topics)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeSessionLoggedOut, handleSessionLoggedOut(snapshots))
	consumer.RegisterHandler(kafka.EventTypeCartCheckedOut, handleCartCheckedOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	go startMetricsServer(getEnv("WORKER_PORT", "8087"))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down storefront worker...")
	cancel()
}

// handleSessionLoggedOut clears any chat snapshot that outlived the
// session. The state service deletes the local copy on logout; this
// covers logouts forced through other replicas.
func handleSessionLoggedOut(snapshots snapshot.Store) kafka.EventHandler {
	return func(ctx context.Context, payload []byte) error {
		var event kafka.SessionLoggedOutEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			eventsProcessed.WithLabelValues(kafka.EventTypeSessionLoggedOut, "error").Inc()
			return fmt.Errorf("failed to unmarshal logged out event: %w", err)
		}

		key := "chat:" + event.SessionID
		if err := snapshots.Delete(ctx, key); err != nil && !errors.Is(err, snapshot.ErrNotFound) {
			eventsProcessed.WithLabelValues(kafka.EventTypeSessionLoggedOut, "error").Inc()
			return fmt.Errorf("failed to clear chat snapshot: %w", err)
		}

		eventsProcessed.WithLabelValues(kafka.EventTypeSessionLoggedOut, "success").Inc()
		logger.Info(ctx).
			Str("session_id", event.SessionID).
			Str("user_id", event.UserID).
			Msg("Session cleanup processed")
		return nil
	}
}

// handleCartCheckedOut records checkout activity for dashboards
func handleCartCheckedOut(ctx context.Context, payload []byte) error {
	var event kafka.CartCheckedOutEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		eventsProcessed.WithLabelValues(kafka.EventTypeCartCheckedOut, "error").Inc()
		return fmt.Errorf("failed to unmarshal checked out event: %w", err)
	}

	checkoutTotals.Inc()
	eventsProcessed.WithLabelValues(kafka.EventTypeCartCheckedOut, "success").Inc()

	logger.Info(ctx).
		Str("owner_id", event.OwnerID).
		Str("order_id", event.OrderID).
		Int("total_items", event.TotalItems).
		Str("total_price", event.TotalPrice).
		Msg("Checkout event processed")
	return nil
}

func newSnapshotStore() (snapshot.Store, error) {
	driver := getEnv("SNAPSHOT_DRIVER", "memory")

	switch driver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		return snapshot.NewStore(snapshot.DriverRedis, snapshot.WithRedisClient(client))
	case "postgres":
		db, err := database.NewGormConnection(database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "storefront"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		})
		if err != nil {
			return nil, err
		}
		return snapshot.NewStore(snapshot.DriverPostgres, snapshot.WithGormDB(db))
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

func startMetricsServer(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"storefront-worker"}`))
	})

	addr := ":" + port
	logger.Logger.Info().Str("addr", addr).Msg("Worker metrics server listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Logger.Error().Err(err).Msg("Metrics server stopped")
	}
}
