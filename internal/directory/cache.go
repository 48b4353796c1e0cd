package directory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thenoetrevino/faena/internal/models"
)

// DefaultCacheTTL is used when a non-positive TTL is given
const DefaultCacheTTL = 10 * time.Minute

// Cache wraps a Directory with a Redis read-through cache.
// Redis failures fall back to the wrapped directory; failed lookups are not cached.
type Cache struct {
	base  Directory
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching directory
func NewCache(base Directory, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("directory.NewCache: base directory is nil")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

// Lookup returns the cached user for id, falling back to the wrapped
// directory and caching its answer on a miss
func (c *Cache) Lookup(ctx context.Context, id string) (*models.User, error) {
	if user, ok := c.load(ctx, id); ok {
		return user, nil
	}

	user, err := c.base.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store(ctx, user)
	return user, nil
}

// Evict drops a cached user so the next Lookup reads through
func (c *Cache) Evict(ctx context.Context, id string) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, cacheKey(id)).Err()
}

func (c *Cache) load(ctx context.Context, id string) (*models.User, bool) {
	if c.redis == nil || id == "" {
		return nil, false
	}
	data, err := c.redis.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			_ = c.redis.Del(ctx, cacheKey(id)).Err()
		}
		return nil, false
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		_ = c.redis.Del(ctx, cacheKey(id)).Err()
		return nil, false
	}
	return &user, true
}

func (c *Cache) store(ctx context.Context, user *models.User) {
	if c.redis == nil || user == nil || user.ID == "" {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, cacheKey(user.ID), data, c.ttl).Err()
}

func cacheKey(id string) string {
	return "faena:user:" + id
}
