// Package cache provides an in-memory revalidation cache for fetched artifacts.
//
// Entries are served until their revalidation window elapses, after which the
// caller is expected to refetch. Entries may also carry invalidation tags so
// an external mechanism can force-expire them before the window is up.
package cache

import (
	"slices"
	"sync"
	"time"
)

// DefaultWindow is how long an entry may be served before a refetch is due.
const DefaultWindow = 10 * time.Second

const janitorInterval = 10 * time.Minute

type Stats struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	MaxSize int    `json:"max_size"`
	Hits    int64  `json:"hits"`
	Misses  int64  `json:"misses"`
}

type entry[V any] struct {
	value     V
	tags      []string
	expiresAt time.Time
}

type TagCache[V any] struct {
	mu       sync.RWMutex
	name     string
	items    map[string]entry[V]
	maxSize  int
	window   time.Duration
	hits     int64
	misses   int64
	stop     chan struct{}
	stopOnce sync.Once
}

// New returns a cache holding at most `maxSize` entries, each served for at
// most `window` before it expires. Zero values fall back to sane defaults.
func New[V any](name string, maxSize int, window time.Duration) *TagCache[V] {
	if maxSize <= 0 {
		maxSize = 256
	}
	if window <= 0 {
		window = DefaultWindow
	}
	c := &TagCache[V]{
		name:    name,
		items:   make(map[string]entry[V]),
		maxSize: maxSize,
		window:  window,
		stop:    make(chan struct{}),
	}

	go c.janitor()

	return c
}

func (c *TagCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if ok && time.Now().Before(e.expiresAt) {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return e.value, true
	}

	c.mu.Lock()
	if ok {
		delete(c.items, key)
	}
	c.misses++
	c.mu.Unlock()

	var zero V
	return zero, false
}

// Set stores `value` under `key` for the revalidation window, associated with
// the given invalidation tags.
func (c *TagCache[V]) Set(key string, value V, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		c.evictOldest()
	}

	c.items[key] = entry[V]{
		value:     value,
		tags:      tags,
		expiresAt: time.Now().Add(c.window),
	}
}

// Invalidate force-expires every entry carrying `tag`, independent of the
// revalidation window. It returns the number of entries removed.
func (c *TagCache[V]) Invalidate(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.items {
		if slices.Contains(e.tags, tag) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

func (c *TagCache[V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Name:    c.name,
		Size:    len(c.items),
		MaxSize: c.maxSize,
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

// Stop terminates the background janitor. The cache remains usable.
func (c *TagCache[V]) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *TagCache[V]) evictOldest() {
	var oldestKey string
	var oldestTime time.Time
	first := true

	for key, e := range c.items {
		if first || e.expiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = e.expiresAt
			first = false
		}
	}

	if !first {
		delete(c.items, oldestKey)
	}
}

func (c *TagCache[V]) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, e := range c.items {
				if now.After(e.expiresAt) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
