// Package cache provides a small TTL cache used to memoize rendered
// preview pages for shared links.
package cache

import (
	"sync"
	"time"
)

// Cache is the caching interface handlers depend on.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	GetOrSet(key string, ttl time.Duration, compute func() (interface{}, error)) (interface{}, error)
	Delete(key string)
	Size() int
	Stop()
}

type cacheItem struct {
	value      interface{}
	expiration time.Time
}

func (item *cacheItem) expired() bool {
	return time.Now().After(item.expiration)
}

// InMemoryCache is a thread-safe in-memory Cache with background cleanup.
type InMemoryCache struct {
	items       map[string]*cacheItem
	mu          sync.RWMutex
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewInMemoryCache creates a cache whose cleanup pass runs every
// cleanupInterval.
func NewInMemoryCache(cleanupInterval time.Duration) *InMemoryCache {
	c := &InMemoryCache{
		items:       make(map[string]*cacheItem),
		stopCleanup: make(chan struct{}),
	}
	go c.cleanup(cleanupInterval)
	return c
}

func (c *InMemoryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || item.expired() {
		return nil, false
	}
	return item.value, true
}

func (c *InMemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = &cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl),
	}
}

// GetOrSet returns the cached value or computes and stores it. The compute
// function runs outside the lock, so concurrent misses for the same key may
// compute more than once; the last writer wins.
func (c *InMemoryCache) GetOrSet(key string, ttl time.Duration, compute func() (interface{}, error)) (interface{}, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}
	c.Set(key, value, ttl)
	return value, nil
}

func (c *InMemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *InMemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (c *InMemoryCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCleanup)
	})
}

func (c *InMemoryCache) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCleanup:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *InMemoryCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, item := range c.items {
		if item.expired() {
			delete(c.items, key)
		}
	}
}
