package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"shortlog/internal/urlservice/domain"

	"github.com/redis/go-redis/v9"
)

const (
	urlCachePrefix = "url:"
	urlCacheTTL    = 10 * time.Minute
)

// URLCache stores URLs by short code. Get returns nil, nil on a miss.
type URLCache interface {
	Get(ctx context.Context, shortCode string) (*domain.URL, error)
	Set(ctx context.Context, u *domain.URL) error
}

// Compile-time interface checks
var (
	_ URLCache = (*RedisURLCache)(nil)
	_ URLCache = (*noopURLCache)(nil)
)

// RedisURLCache implements URLCache using Redis.
type RedisURLCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisURLCache creates a new Redis-based URL cache.
// Returns a no-op cache if Redis client is nil.
func NewRedisURLCache(rdb *redis.Client) URLCache {
	if rdb == nil {
		return &noopURLCache{}
	}
	return &RedisURLCache{rdb: rdb, ttl: urlCacheTTL}
}

// cachedURL is the serialization format for cached URLs.
type cachedURL struct {
	ID          int64     `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func cacheKey(shortCode string) string {
	return urlCachePrefix + shortCode
}

func (c *RedisURLCache) Get(ctx context.Context, shortCode string) (*domain.URL, error) {
	data, err := c.rdb.Get(ctx, cacheKey(shortCode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cached cachedURL
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	return &domain.URL{
		ID:          cached.ID,
		ShortCode:   cached.ShortCode,
		OriginalURL: cached.OriginalURL,
		CreatedAt:   cached.CreatedAt,
	}, nil
}

func (c *RedisURLCache) Set(ctx context.Context, u *domain.URL) error {
	data, err := json.Marshal(cachedURL{
		ID:          u.ID,
		ShortCode:   u.ShortCode,
		OriginalURL: u.OriginalURL,
		CreatedAt:   u.CreatedAt,
	})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(u.ShortCode), data, c.ttl).Err()
}

// noopURLCache is used when Redis is not configured.
type noopURLCache struct{}

func (c *noopURLCache) Get(context.Context, string) (*domain.URL, error) { return nil, nil }

func (c *noopURLCache) Set(context.Context, *domain.URL) error { return nil }
