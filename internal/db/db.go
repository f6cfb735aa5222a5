// Package db opens the backing store selected by configuration.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jobmate/job-tracker/internal/config"
	"jobmate/job-tracker/internal/storage"
)

// Backend is an opened storage adapter plus the clients behind it.
type Backend struct {
	Adapter storage.Adapter
	// Redis is non-nil whenever REDIS_URL is set, even if another driver
	// holds the data; it carries tracker events.
	Redis *redis.Client

	closers []func()
}

// Close releases every client opened by Open, in reverse order.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// Open connects to the configured storage driver and, when configured,
// Redis.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Backend, error) {
	b := &Backend{}

	if cfg.RedisURL != "" {
		log.Info("connecting to Redis")
		rdb, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		b.Redis = rdb
		b.closers = append(b.closers, func() { _ = rdb.Close() })
	}

	switch cfg.StorageDriver {
	case config.DriverMemory:
		b.Adapter = storage.NewMemory()

	case config.DriverSQLite:
		log.Info("opening SQLite store", zap.String("path", cfg.SQLitePath))
		g, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Adapter = g
		b.closers = append(b.closers, func() { _ = g.Close() })

	case config.DriverPostgres:
		log.Info("connecting to PostgreSQL")
		pool, err := NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("postgres: %w", err)
		}
		b.closers = append(b.closers, pool.Close)
		pg, err := storage.NewPostgres(ctx, pool)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Adapter = pg

	case config.DriverRedis:
		b.Adapter = storage.NewRedis(b.Redis, cfg.RedisPrefix)

	default:
		b.Close()
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	log.Info("storage ready", zap.String("driver", cfg.StorageDriver))
	return b, nil
}

// NewPostgresPool creates and verifies a pgxpool connection pool.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return pool, nil
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}
