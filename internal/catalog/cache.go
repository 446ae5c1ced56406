package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "catalog:services"

// Cache keeps the converted service list in redis so the provider catalog
// call stays off the hot path. A nil client disables caching entirely.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{redis: client, ttl: ttl}
}

// Get returns the cached service list, or nil on miss or when caching is
// disabled.
func (c *Cache) Get(ctx context.Context) ([]Service, error) {
	if c == nil || c.redis == nil {
		return nil, nil
	}
	data, err := c.redis.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: cache read: %w", err)
	}
	var services []Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, fmt.Errorf("catalog: cache decode: %w", err)
	}
	return services, nil
}

// Set stores the service list. An empty list is not cached so a transient
// provider outage does not pin the demo fallback for a full TTL.
func (c *Cache) Set(ctx context.Context, services []Service) error {
	if c == nil || c.redis == nil || len(services) == 0 {
		return nil
	}
	data, err := json.Marshal(services)
	if err != nil {
		return fmt.Errorf("catalog: cache encode: %w", err)
	}
	if err := c.redis.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("catalog: cache write: %w", err)
	}
	return nil
}
