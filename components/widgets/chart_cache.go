package widgets

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart markup keyed by payload hash.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// DefaultChartCacheEntries bounds a ChartCache built by NewChartCache.
const DefaultChartCacheEntries = 256

// ChartCache is an in-memory TTL cache for chart markup. A zero or negative
// TTL disables caching. Expired entries are swept on insert and the entry
// count never exceeds the limit.
type ChartCache struct {
	ttl     time.Duration
	limit   int
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]cachedChart
}

type cachedChart struct {
	html    string
	expires time.Time
}

// NewChartCache builds a cache with the provided TTL.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		limit:   DefaultChartCacheEntries,
		now:     time.Now,
		entries: make(map[string]cachedChart),
	}
}

// WithLimit changes the maximum number of cached entries. Values below one
// keep the current limit.
func (c *ChartCache) WithLimit(limit int) *ChartCache {
	if c != nil && limit > 0 {
		c.mu.Lock()
		c.limit = limit
		c.mu.Unlock()
	}
	return c
}

// GetOrRender returns a cached entry or renders and stores a new one.
// Render errors are never cached.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if html, ok := c.get(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.set(key, html)
	return html, nil
}

// Len reports the number of live entries.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	now := c.now()
	n := 0
	for _, entry := range c.entries {
		if now.Before(entry.expires) {
			n++
		}
	}
	return n
}

// Purge drops every entry.
func (c *ChartCache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]cachedChart)
	c.mu.Unlock()
}

func (c *ChartCache) get(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !c.now().Before(entry.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}
	return entry.html, true
}

func (c *ChartCache) set(key, html string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.limit {
		c.evict(now)
	}
	c.entries[key] = cachedChart{
		html:    html,
		expires: now.Add(c.ttl),
	}
}

// evict drops expired entries, then the entry closest to expiry when the
// cache is still full. Callers hold the write lock.
func (c *ChartCache) evict(now time.Time) {
	for key, entry := range c.entries {
		if !now.Before(entry.expires) {
			delete(c.entries, key)
		}
	}
	for len(c.entries) >= c.limit {
		var oldest string
		var oldestAt time.Time
		for key, entry := range c.entries {
			if oldest == "" || entry.expires.Before(oldestAt) || (entry.expires.Equal(oldestAt) && key < oldest) {
				oldest, oldestAt = key, entry.expires
			}
		}
		delete(c.entries, oldest)
	}
}

// contentHash returns a deterministic hash of v's JSON form.
func contentHash(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		b = []byte(fmt.Sprintf("%#v", v))
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
