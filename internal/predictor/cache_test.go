package predictor

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// setupTestRedis starts a miniredis instance and creates a cache on it.
// Cleanup is handled automatically via t.Cleanup().
func setupTestRedis(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	cache := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)

	t.Cleanup(func() {
		_ = cache.Close()
		mr.Close()
	})
	return mr, cache
}

func TestRedisCacheGetSet(t *testing.T) {
	mr, cache := setupTestRedis(t, 5*time.Second)
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get(missing) = ok %v, err %v, want miss", ok, err)
	}
	if err := cache.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, ok, err := cache.Get(ctx, "k")
	if err != nil || !ok || string(data) != "v" {
		t.Fatalf("Get(k) = %q, %v, %v, want v", data, ok, err)
	}
	if ttl := mr.TTL("k"); ttl != 5*time.Second {
		t.Fatalf("TTL(k) = %v, want 5s", ttl)
	}

	mr.FastForward(6 * time.Second)
	if _, ok, _ := cache.Get(ctx, "k"); ok {
		t.Fatalf("Get(k) after expiry = hit, want miss")
	}
}

func TestRedisCacheDefaultTTL(t *testing.T) {
	_, cache := setupTestRedis(t, 0)
	if cache.TTL() != DefaultCacheTTL {
		t.Fatalf("TTL() = %v, want %v", cache.TTL(), DefaultCacheTTL)
	}
}

func TestClientUsesCache(t *testing.T) {
	_, cache := setupTestRedis(t, time.Minute)

	var calls atomic.Int32
	client := setupTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, "42")
	}, WithCache(cache))

	for range 3 {
		count, err := client.ContestsCount(context.Background())
		if err != nil || count != 42 {
			t.Fatalf("ContestsCount() = %d, %v, want 42, nil", count, err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("server calls = %d, want 1", calls.Load())
	}
}

func TestClientCacheKeysIncludeBody(t *testing.T) {
	_, cache := setupTestRedis(t, time.Minute)

	var calls atomic.Int32
	client := setupTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `[]`)
	}, WithCache(cache))

	for _, contest := range []string{"a", "b", "a"} {
		if _, err := client.Questions(context.Background(), contest); err != nil {
			t.Fatalf("Questions(%s) error = %v", contest, err)
		}
	}
	if calls.Load() != 2 {
		t.Fatalf("server calls = %d, want 2", calls.Load())
	}
}

func TestClientBypassesBrokenCache(t *testing.T) {
	mr, cache := setupTestRedis(t, time.Minute)
	mr.Close()

	client := setupTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "7")
	}, WithCache(cache))

	count, err := client.ContestsCount(context.Background())
	if err != nil || count != 7 {
		t.Fatalf("ContestsCount() = %d, %v, want 7, nil", count, err)
	}
}

func TestClientDoesNotCacheErrors(t *testing.T) {
	mr, cache := setupTestRedis(t, time.Minute)

	client := setupTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, WithCache(cache))

	if _, err := client.ContestsCount(context.Background()); err == nil {
		t.Fatalf("ContestsCount() error = nil, want error")
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("cached keys = %v, want none", keys)
	}
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	a := cacheKey("GET", "http://x/a", nil)
	if a != cacheKey("GET", "http://x/a", nil) {
		t.Fatalf("cacheKey() not deterministic")
	}
	if a == cacheKey("POST", "http://x/a", nil) {
		t.Fatalf("cacheKey() ignores method")
	}
	if cacheKey("POST", "http://x/a", []byte("1")) == cacheKey("POST", "http://x/a", []byte("2")) {
		t.Fatalf("cacheKey() ignores body")
	}
}
