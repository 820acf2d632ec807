package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Entry is a cached video list. Freshness is judged by the reader from
// FetchedAt, so an expired entry can still be served as a fallback.
type Entry struct {
	Videos    []Video   `json:"videos"`
	FetchedAt time.Time `json:"fetchedAt"`
}

type Cache interface {
	Get(ctx context.Context) (*Entry, error)
	Set(ctx context.Context, entry *Entry) error
	Clear(ctx context.Context) error
}

// MemoryCache keeps the entry in process.
type MemoryCache struct {
	mu    sync.RWMutex
	entry *Entry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// Get returns nil when nothing is cached.
func (c *MemoryCache) Get(ctx context.Context) (*Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entry, nil
}

func (c *MemoryCache) Set(ctx context.Context, entry *Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = entry
	return nil
}

func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
	return nil
}

// RedisCache shares the entry between server instances.
type RedisCache struct {
	client    *redis.Client
	key       string
	retention time.Duration
}

// NewRedisCache stores the entry under key. Retention bounds how long a stale
// entry survives in redis; zero keeps it until cleared.
func NewRedisCache(client *redis.Client, key string, retention time.Duration) *RedisCache {
	return &RedisCache{client: client, key: key, retention: retention}
}

func (c *RedisCache) Get(ctx context.Context) (*Entry, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read video cache: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode video cache: %w", err)
	}
	return &entry, nil
}

func (c *RedisCache) Set(ctx context.Context, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode video cache: %w", err)
	}
	return c.client.Set(ctx, c.key, data, c.retention).Err()
}

func (c *RedisCache) Clear(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
