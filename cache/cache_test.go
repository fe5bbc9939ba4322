package cache

import (
	"fmt"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestTagCache(t *testing.T) {
	t.Run("should succeed when", func(t *testing.T) {
		t.Run("getting a fresh entry", func(t *testing.T) {
			c := New[string]("test", 4, time.Minute)
			defer c.Stop()
			c.Set("v1.0.0", "abc123")
			got, ok := c.Get("v1.0.0")
			assert.Equal(t, ok, true)
			assert.Equal(t, got, "abc123")
		})

		t.Run("overwriting an existing key", func(t *testing.T) {
			c := New[string]("test", 4, time.Minute)
			defer c.Stop()
			c.Set("v1.0.0", "abc123")
			c.Set("v1.0.0", "def456")
			got, ok := c.Get("v1.0.0")
			assert.Equal(t, ok, true)
			assert.Equal(t, got, "def456")
		})

		t.Run("invalidating by tag", func(t *testing.T) {
			c := New[string]("test", 8, time.Minute)
			defer c.Stop()
			c.Set("v1.0.0", "abc123", "commit-hash")
			c.Set("v1.1.0", "def456", "commit-hash")
			c.Set("fib.json", "{}", "datasheet")

			removed := c.Invalidate("commit-hash")
			assert.Equal(t, removed, 2)

			_, ok := c.Get("v1.0.0")
			assert.Equal(t, ok, false)
			_, ok = c.Get("v1.1.0")
			assert.Equal(t, ok, false)
			_, ok = c.Get("fib.json")
			assert.Equal(t, ok, true, "untagged entry must survive")
		})

		t.Run("reporting stats", func(t *testing.T) {
			c := New[string]("stats", 4, time.Minute)
			defer c.Stop()
			c.Set("k", "v")
			c.Get("k")
			c.Get("absent")

			stats := c.Stats()
			assert.Equal(t, stats.Name, "stats")
			assert.Equal(t, stats.Size, 1)
			assert.Equal(t, stats.MaxSize, 4)
			assert.Equal(t, stats.Hits, int64(1))
			assert.Equal(t, stats.Misses, int64(1))
		})
	})

	t.Run("should miss when", func(t *testing.T) {
		t.Run("the key was never set", func(t *testing.T) {
			c := New[string]("test", 4, time.Minute)
			defer c.Stop()
			_, ok := c.Get("absent")
			assert.Equal(t, ok, false)
		})

		t.Run("the revalidation window elapsed", func(t *testing.T) {
			c := New[string]("test", 4, 5*time.Millisecond)
			defer c.Stop()
			c.Set("v1.0.0", "abc123")
			time.Sleep(10 * time.Millisecond)
			_, ok := c.Get("v1.0.0")
			assert.Equal(t, ok, false)
		})
	})

	t.Run("should bound the cache size", func(t *testing.T) {
		c := New[int]("bounded", 3, time.Minute)
		defer c.Stop()
		for i := range 5 {
			c.Set(fmt.Sprintf("key-%d", i), i)
		}
		assert.Equal(t, c.Stats().Size, 3)
	})
}
