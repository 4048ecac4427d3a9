package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisKeyPrefix        = "admin-shoe:"
	redisGenerationPrefix = "admin-shoe-gen:"
)

// Redis is a Cache stored in a redis server
type Redis struct {
	client *redis.Client
}

// NewRedis connects to addr and verifies the connection
func NewRedis(ctx context.Context, addr, password string, db int, log *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	log.Info("Redis connected successfully", zap.String("addr", addr), zap.String("pong", pong))

	return NewRedisFromClient(client), nil
}

// NewRedisFromClient wraps an existing client
func NewRedisFromClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func redisKey(key Key) string {
	return redisKeyPrefix + key.String()
}

func generationKey(entity string) string {
	return redisGenerationPrefix + entity
}

func (r *Redis) Get(ctx context.Context, key Key) ([]byte, error) {
	value, err := r.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return value, err
}

func (r *Redis) Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, redisKey(key), value, ttl).Err()
}

func (r *Redis) Generation(ctx context.Context, entity string) (uint64, error) {
	gen, err := r.client.Get(ctx, generationKey(entity)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetIfGeneration watches the entity's generation key so an Invalidate that
// lands between the check and the write aborts the transaction.
func (r *Redis) SetIfGeneration(ctx context.Context, key Key, gen uint64, value []byte, ttl time.Duration) error {
	genKey := generationKey(key.Entity)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Uint64()
		if errors.Is(err, redis.Nil) {
			current = 0
		} else if err != nil {
			return err
		}
		if current != gen {
			return ErrStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, redisKey(key), value, ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStale
	}
	return err
}

// Invalidate bumps the entity's generation, then deletes the bare entity key
// and every parameterised key under it
func (r *Redis) Invalidate(ctx context.Context, entities ...string) error {
	for _, entity := range entities {
		if err := r.client.Incr(ctx, generationKey(entity)).Err(); err != nil {
			return err
		}

		keys := []string{redisKeyPrefix + entity}

		iter := r.client.Scan(ctx, 0, redisKeyPrefix+entity+":*", 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}

		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying connection pool
func (r *Redis) Close() error {
	return r.client.Close()
}
