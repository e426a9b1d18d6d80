package wikidata

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/tagus/canto-bench/pkg/config"
)

// RedisCache is a Redis-backed entity cache so repeated pipeline runs do
// not re-fetch entity documents from the live API.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// RedisOption represents an option for configuring the Redis cache
type RedisOption func(*RedisCache)

// WithTTL sets the TTL for cached entries
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *RedisCache) {
		r.ttl = ttl
	}
}

// WithKeyPrefix sets a custom prefix for Redis keys
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisCache) {
		r.keyPrefix = prefix
	}
}

// NewRedisCache creates a Redis-backed entity cache
func NewRedisCache(client *redis.Client, options ...RedisOption) *RedisCache {
	cache := &RedisCache{
		client:    client,
		ttl:       7 * 24 * time.Hour,
		keyPrefix: "cantobench:entity:",
	}

	for _, option := range options {
		option(cache)
	}

	return cache
}

// NewRedisCacheFromConfig creates a Redis cache from configuration and
// verifies the connection before returning.
func NewRedisCacheFromConfig(cfg *config.Config, options ...RedisOption) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Redis.URL,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	defaults := append([]RedisOption{WithTTL(cfg.Cache.TTL)}, options...)
	return NewRedisCache(client, defaults...), nil
}

// Get returns the cached bytes for a key
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read from Redis: %w", err)
	}
	return value, true, nil
}

// Set stores bytes under a key with the configured TTL
func (r *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.keyPrefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write to Redis: %w", err)
	}
	return nil
}

// Close closes the underlying Redis connection
func (r *RedisCache) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
