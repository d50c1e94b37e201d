package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leolovestravel/vietnamtravel/internal/models"
)

// Cache holds the remote category list between admin page loads. Any write
// through the admin screens invalidates it.
type Cache interface {
	GetCategories(ctx context.Context, baseURL string) ([]models.Category, bool)
	SetCategories(ctx context.Context, baseURL string, categories []models.Category) error
	Invalidate(ctx context.Context, baseURL string) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds connection settings; defaults come from internal/config.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings, failing fast when Redis is unreachable.
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisCache) GetCategories(ctx context.Context, baseURL string) ([]models.Category, bool) {
	data, err := c.client.Get(ctx, generateKey(baseURL)).Bytes()
	if err != nil {
		return nil, false
	}

	var categories []models.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, false
	}
	return categories, true
}

func (c *RedisCache) SetCategories(ctx context.Context, baseURL string, categories []models.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, generateKey(baseURL), data, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context, baseURL string) error {
	return c.client.Del(ctx, generateKey(baseURL)).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type memoryEntry struct {
	categories []models.Category
	expiresAt  time.Time
}

// MemoryCache is the fallback when Redis is disabled.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryCache) GetCategories(ctx context.Context, baseURL string) ([]models.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[generateKey(baseURL)]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	out := make([]models.Category, len(e.categories))
	copy(out, e.categories)
	return out, true
}

func (c *MemoryCache) SetCategories(ctx context.Context, baseURL string, categories []models.Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]models.Category, len(categories))
	copy(stored, categories)
	c.entries[generateKey(baseURL)] = memoryEntry{categories: stored, expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryCache) Invalidate(ctx context.Context, baseURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, generateKey(baseURL))
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) GetCategories(ctx context.Context, baseURL string) ([]models.Category, bool) {
	return nil, false
}

func (c *NoOpCache) SetCategories(ctx context.Context, baseURL string, categories []models.Category) error {
	return nil
}

func (c *NoOpCache) Invalidate(ctx context.Context, baseURL string) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func generateKey(baseURL string) string {
	hash := sha256.Sum256([]byte(baseURL))
	return "categories:" + hex.EncodeToString(hash[:8])
}
