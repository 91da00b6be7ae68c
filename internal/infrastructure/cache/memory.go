package cache

import (
	"context"
	"sync"
	"time"

	"github.com/macrolens/fdc2csv/internal/domain"
)

const cleanupInterval = 10 * time.Minute

// cacheItem represents a single food in the cache with expiration
type cacheItem struct {
	food       domain.Food
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory food cache with TTL support
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
	now   func() time.Time
	done  chan struct{}
	once  sync.Once
}

// NewMemoryCache creates a new in-memory cache. Call Close to stop the
// background cleanup.
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
		now:  time.Now,
		done: make(chan struct{}),
	}

	go cache.cleanupExpired(cleanupInterval)

	return cache
}

// Get retrieves a copy of a cached food
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.Food, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || c.now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}

	food := copyFood(item.food)
	return &food, nil
}

// Set stores a copy of food with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, food *domain.Food, ttl time.Duration) error {
	if food == nil {
		return domain.ErrInvalidRequest
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		food:       copyFood(*food),
		expiration: c.now().Add(ttl),
	}

	return nil
}

// Delete removes a food from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return false, nil
	}
	return !c.now().After(item.expiration), nil
}

// Size returns the current number of items in the cache, expired or not
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *MemoryCache) removeExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	for key, item := range c.data {
		if now.After(item.expiration) {
			delete(c.data, key)
		}
	}
}

// copyFood detaches the volume pointer so callers cannot mutate cached values.
func copyFood(f domain.Food) domain.Food {
	if f.VolumeML != nil {
		v := *f.VolumeML
		f.VolumeML = &v
	}
	return f
}
