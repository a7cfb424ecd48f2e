package predictor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/logging"
)

func init() {
	// Disable all Redis logging globally using the built-in VoidLogger
	redis.SetLogger(&logging.VoidLogger{})
}

// DefaultCacheTTL is how long cached responses stay valid.
const DefaultCacheTTL = 30 * time.Second

const cacheKeyPrefix = "lazyrating:resp:"

// Cache stores raw API responses.
type Cache interface {
	// Get returns a cached value; ok is false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores a value.
	Set(ctx context.Context, key string, value []byte) error
}

// RedisCache is a Cache backed by Redis with a fixed TTL.
type RedisCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisCache connects to the Redis URL. Non-positive ttl uses DefaultCacheTTL.
func NewRedisCache(redisURL string, ttl time.Duration, hooks ...redis.Hook) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	// A slow cache must never stall a fetch.
	opts.MaxRetries = -1
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second
	opts.PoolSize = 2

	rdb := redis.NewClient(opts)
	for _, hook := range hooks {
		if hook != nil {
			rdb.AddHook(hook)
		}
	}
	return NewRedisCacheFromClient(rdb, ttl), nil
}

// NewRedisCacheFromClient wraps an existing Redis client.
func NewRedisCacheFromClient(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{redis: rdb, ttl: ttl}
}

// TTL returns the expiry applied to stored values.
func (c *RedisCache) TTL() time.Duration {
	return c.ttl
}

// Get returns a cached value.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return data, true, nil
}

// Set stores a value with the cache TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.redis.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.redis.Close()
}

// cacheKey derives a stable key from the request method, URL and body.
func cacheKey(method, target string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(target))
	h.Write([]byte{0})
	h.Write(body)
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
