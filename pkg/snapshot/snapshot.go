// Package snapshot persists named JSON state records so stores can
// rehydrate on startup and flush after every mutation.
package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no record exists under a key.
	// Corrupt records are reported the same way so callers always fall
	// back to their initial state instead of failing initialization.
	ErrNotFound = errors.New("snapshot not found")

	ErrInvalidDriver = errors.New("invalid snapshot driver")
	ErrInvalidConfig = errors.New("invalid snapshot store config")
)

// Store defines the contract for keyed snapshot persistence
type Store interface {
	// Load reads the record stored under key into v.
	// Returns ErrNotFound when the record is absent or unreadable.
	Load(ctx context.Context, key string, v any) error

	// Save overwrites the record under key with the JSON encoding of v.
	Save(ctx context.Context, key string, v any) error

	// Delete forgets the record under key. Absent keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Driver selects the snapshot storage backend
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverRedis    Driver = "redis"
	DriverPostgres Driver = "postgres"
)

type storeConfig struct {
	redisClient *redis.Client
	redisTTL    time.Duration
	gormDB      *gorm.DB
	keyPrefix   string
}

// Option configures a snapshot store
type Option func(*storeConfig)

// WithRedisClient sets the Redis client for the redis driver
func WithRedisClient(client *redis.Client) Option {
	return func(c *storeConfig) { c.redisClient = client }
}

// WithTTL sets the record TTL for the redis driver
func WithTTL(ttl time.Duration) Option {
	return func(c *storeConfig) { c.redisTTL = ttl }
}

// WithGormDB sets the GORM connection for the postgres driver
func WithGormDB(db *gorm.DB) Option {
	return func(c *storeConfig) { c.gormDB = db }
}

// WithKeyPrefix namespaces every key stored through the store
func WithKeyPrefix(prefix string) Option {
	return func(c *storeConfig) { c.keyPrefix = prefix }
}

// NewStore creates a snapshot store for the given driver.
// Redis requires WithRedisClient, Postgres requires WithGormDB.
func NewStore(driver Driver, opts ...Option) (Store, error) {
	config := &storeConfig{}
	for _, opt := range opts {
		opt(config)
	}

	switch driver {
	case DriverMemory:
		return newMemoryStore(config.keyPrefix), nil

	case DriverRedis:
		if config.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		ttl := config.redisTTL
		if ttl <= 0 {
			ttl = 30 * 24 * time.Hour
		}
		return &redisStore{
			client: config.redisClient,
			ttl:    ttl,
			prefix: config.keyPrefix,
		}, nil

	case DriverPostgres:
		if config.gormDB == nil {
			return nil, ErrInvalidConfig
		}
		return newPostgresStore(config.gormDB, config.keyPrefix)

	default:
		return nil, ErrInvalidDriver
	}
}
