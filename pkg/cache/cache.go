// Package cache provides the query cache the dashboard reads through. Entries
// are keyed by (entity, parameters) and dropped per entity after a mutation.
// Values are stored JSON-encoded so every reader gets its own copy.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pampers23/admin-shoe/prometheus"
	"go.uber.org/zap"
)

var (
	// ErrMiss is returned by Get when the key is not cached
	ErrMiss = errors.New("cache miss")

	// ErrStale is returned by SetIfGeneration when the entity was invalidated
	// after the caller read its generation
	ErrStale = errors.New("cache entity invalidated since load")
)

// Key identifies one cached query result
type Key struct {
	Entity string
	Params string
}

// NewKey builds a key for entity with optional parameters
func NewKey(entity string, params ...string) Key {
	k := Key{Entity: entity}
	for i, p := range params {
		if i > 0 {
			k.Params += ":"
		}
		k.Params += p
	}
	return k
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Entity
	}
	return k.Entity + ":" + k.Params
}

// Cache stores raw encoded query results
type Cache interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error
	// Generation reports how many times entity has been invalidated
	Generation(ctx context.Context, entity string) (uint64, error)
	// SetIfGeneration stores value only while key's entity is still at gen,
	// returning ErrStale otherwise
	SetIfGeneration(ctx context.Context, key Key, gen uint64, value []byte, ttl time.Duration) error
	// Invalidate drops every key of the given entities and bumps their generation
	Invalidate(ctx context.Context, entities ...string) error
}

// Fetch returns the cached value for key, or runs load and caches its result.
// Cache failures are logged and never fail the request; load errors are
// returned as-is and nothing is cached. A result whose entity was invalidated
// while load ran is returned but not stored.
func Fetch[T any](ctx context.Context, c Cache, log *zap.Logger, key Key, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	raw, err := c.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		if jsonErr := json.Unmarshal(raw, &v); jsonErr == nil {
			prometheus.RecordCacheLookup(key.Entity, "hit")
			return v, nil
		} else {
			log.Warn("Discarding undecodable cache entry", zap.String("key", key.String()), zap.Error(jsonErr))
		}
	case errors.Is(err, ErrMiss):
		prometheus.RecordCacheLookup(key.Entity, "miss")
	default:
		prometheus.RecordCacheLookup(key.Entity, "error")
		log.Warn("Cache lookup failed", zap.String("key", key.String()), zap.Error(err))
	}

	gen, genErr := c.Generation(ctx, key.Entity)

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if genErr != nil {
		log.Warn("Cache generation lookup failed, not storing", zap.String("key", key.String()), zap.Error(genErr))
		return v, nil
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		log.Warn("Failed to encode cache entry", zap.String("key", key.String()), zap.Error(err))
		return v, nil
	}
	switch err := c.SetIfGeneration(ctx, key, gen, encoded, ttl); {
	case err == nil:
	case errors.Is(err, ErrStale):
		prometheus.RecordCacheLookup(key.Entity, "stale")
		log.Debug("Skipping cache entry invalidated during load", zap.String("key", key.String()))
	default:
		log.Warn("Failed to store cache entry", zap.String("key", key.String()), zap.Error(err))
	}
	return v, nil
}

// Invalidate drops the given entities and records the invalidation
func Invalidate(ctx context.Context, c Cache, log *zap.Logger, entities ...string) {
	if err := c.Invalidate(ctx, entities...); err != nil {
		log.Warn("Cache invalidation failed", zap.Strings("entities", entities), zap.Error(err))
		return
	}
	for _, e := range entities {
		prometheus.RecordCacheInvalidation(e)
	}
}

// Config selects a backend
type Config struct {
	Backend       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New builds the configured backend
func New(ctx context.Context, cfg Config, log *zap.Logger) (Cache, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemory(), nil
	case "redis":
		return NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
