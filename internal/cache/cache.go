// Package cache provides a shared response cache for the Query API,
// backed by Redis so multiple API instances see a consistent cache
// instead of each holding its own process-local copy. Replaces the
// teacher corpus's in-memory TTL cache, which does not survive a restart
// or stay consistent across replicas — both of which matter once the
// orchestrator and the API run as separate deployments (spec.md §5).
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/albapepper/strength-engine/internal/apperr"
)

const invalidationChannel = "strength-engine:cache:invalidate"

// Cache wraps a Redis client with JSON marshaling and a pub/sub
// invalidation signal so a refresh cycle can evict stale entries from
// every API instance at once.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at url and sets the default entry TTL.
func New(url string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, apperr.New(apperr.Configuration, "cache.New", err)
	}
	return &Cache{client: redis.NewClient(opts), ttl: ttl}, nil
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ping verifies connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return apperr.New(apperr.Storage, "cache.Ping", err)
	}
	return nil
}

// Get unmarshals a cached value into dest, returning false on a cache
// miss. A Redis error is treated as a miss — the cache is an
// optimization, never a dependency the Query API fails without.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores a JSON-marshaled value with the cache's default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return apperr.New(apperr.Internal, "cache.Set", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return apperr.New(apperr.Storage, "cache.Set", err)
	}
	return nil
}

// Invalidate deletes a key locally and publishes an invalidation message
// so every other API instance subscribed via Subscribe drops it too.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return apperr.New(apperr.Storage, "cache.Invalidate", err)
	}
	if err := c.client.Publish(ctx, invalidationChannel, key).Err(); err != nil {
		return apperr.New(apperr.Storage, "cache.Invalidate", err)
	}
	return nil
}

// Subscribe listens for invalidation messages published by any instance
// (including itself) and deletes the named key locally. It blocks until
// ctx is canceled; callers run it in its own goroutine.
func (c *Cache) Subscribe(ctx context.Context) error {
	sub := c.client.Subscribe(ctx, invalidationChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			c.client.Del(ctx, msg.Payload)
		}
	}
}
