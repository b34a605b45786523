package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roadbook/roadbook/internal/journal"
)

const defaultTTL = time.Hour

// Cache wraps a Redis client and provides typed get/set/delete for single
// roadtrip records. Handlers invalidate on every roadtrip mutation.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache with a 1-hour TTL.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// key returns the Redis key for the given roadtrip id.
func key(id string) string {
	return "roadtrip:" + id
}

// Get retrieves a roadtrip from cache.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) Get(ctx context.Context, id string) (*journal.Roadtrip, error) {
	val, err := c.client.Get(ctx, key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for roadtrip %s: %w", id, err)
	}

	var rt journal.Roadtrip
	if err := json.Unmarshal([]byte(val), &rt); err != nil {
		return nil, fmt.Errorf("unmarshaling cached roadtrip %s: %w", id, err)
	}
	return &rt, nil
}

// Set stores a roadtrip in cache with the configured TTL.
func (c *Cache) Set(ctx context.Context, rt *journal.Roadtrip) error {
	if rt == nil {
		return nil
	}

	b, err := json.Marshal(rt)
	if err != nil {
		return fmt.Errorf("marshaling roadtrip %s: %w", rt.ID, err)
	}

	if err := c.client.Set(ctx, key(rt.ID), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for roadtrip %s: %w", rt.ID, err)
	}
	return nil
}

// Delete removes the cached entry for the given roadtrip id.
func (c *Cache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete for roadtrip %s: %w", id, err)
	}
	return nil
}

// Noop is the cache used when Redis is not configured: every get misses and
// every write is discarded.
type Noop struct{}

func (Noop) Get(context.Context, string) (*journal.Roadtrip, error) { return nil, nil }
func (Noop) Set(context.Context, *journal.Roadtrip) error           { return nil }
func (Noop) Delete(context.Context, string) error                   { return nil }
