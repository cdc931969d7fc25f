// Package cache is a TTL cache for computed aggregates. The underlying
// dataset is static at runtime, so entries are never invalidated, they only
// expire. Keys carry the metric name and the full filter tuple so distinct
// queries can never collide.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrMiss is returned for absent or expired keys.
var ErrMiss = errors.New("cache miss")

// Cache stores JSON-encoded aggregate results with a per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Config selects and tunes a cache backend.
type Config struct {
	Backend  string // "memory" or "redis"
	Address  string // redis host:port
	Password string
	DB       int
	TTL      time.Duration
	MaxSize  int // memory backend only
}

// New builds a cache from configuration, defaulting to the memory backend.
func New(cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "redis":
		return NewRedis(cfg)
	case "", "memory":
		return NewMemory(cfg.MaxSize), nil
	default:
		return nil, errors.New("cache: unknown backend " + cfg.Backend)
	}
}

// Key joins a metric name with the filter tuple that produced the result.
func Key(metric string, parts ...string) string {
	return metric + "|" + strings.Join(parts, "|")
}
