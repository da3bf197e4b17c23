// Package cache provides a small TTL cache used for service-level
// memoization (e.g. product reference lookups). The cache is an explicit
// dependency injected into services rather than a process-wide singleton,
// so its lifetime and contents stay visible and testable.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache is a string-keyed byte cache with per-entry TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context, keys ...string) error
}

// RedisCache implements Cache on a redis client. All keys are namespaced
// with a prefix so unrelated consumers can share one redis instance.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a redis-backed cache from a redis URL.
func NewRedis(redisURL, prefix string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opt), prefix: prefix}, nil
}

// NewRedisFromClient wraps an existing client. Used by tests with miniredis.
func NewRedisFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// Get returns the cached value or ErrMiss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores the value under key for the given TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// Clear removes the given keys. With no keys it is a no-op.
func (c *RedisCache) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = c.key(k)
	}
	return c.client.Del(ctx, namespaced...).Err()
}

// Close releases the underlying redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Compile-time check that RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
