// Package cache provides small in-process caches for hot lookup paths.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// TTLCache is a bounded in-memory cache with per-entry expiry and LRU
// eviction once capacity is reached. Safe for concurrent use.
type TTLCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[K]*list.Element
	order    *list.List
	now      func() time.Time
}

type ttlEntry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// NewTTLCache creates a cache holding at most capacity entries, each valid
// for ttl after insertion.
func NewTTLCache[K comparable, V any](capacity int, ttl time.Duration) *TTLCache[K, V] {
	if capacity <= 0 {
		capacity = 128
	}
	return &TTLCache[K, V]{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[K]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get returns the cached value for key when present and not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	entry := elem.Value.(*ttlEntry[K, V])
	if c.now().After(entry.expiresAt) {
		c.removeLocked(elem)
		return zero, false
	}
	c.order.MoveToFront(elem)
	return entry.value, true
}

// Set stores a value, evicting the least recently used entry when full.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*ttlEntry[K, V])
		entry.value = value
		entry.expiresAt = c.now().Add(c.ttl)
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.removeLocked(oldest)
		}
	}

	elem := c.order.PushFront(&ttlEntry[K, V]{
		key:       key,
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	})
	c.entries[key] = elem
}

// Invalidate drops the entry for key if present.
func (c *TTLCache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.removeLocked(elem)
	}
}

// Len returns the number of live entries, expired ones included until read.
func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *TTLCache[K, V]) removeLocked(elem *list.Element) {
	entry := elem.Value.(*ttlEntry[K, V])
	delete(c.entries, entry.key)
	c.order.Remove(elem)
}
