package smartfn

import (
	"sync"
	"time"
)

// Cache is the external key->value store consulted before each provider call.
// Keys and values are opaque strings; persistence and eviction policy belong
// to the implementation. The core treats Get/Set as plain operations and does
// not assume check-then-store is atomic across concurrent callers.
type Cache interface {
	Contains(key string) bool
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryCache is an in-process Cache with optional TTL and a max entry count.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration // zero means entries never expire
	maxSize int           // zero means unbounded
	hits    int64
	misses  int64
}

type memoryEntry struct {
	value     string
	timestamp time.Time
}

// NewMemoryCache creates a MemoryCache with the specified TTL and max size.
func NewMemoryCache(ttl time.Duration, maxSize int) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Contains reports whether a live entry exists for key.
func (mc *MemoryCache) Contains(key string) bool {
	_, ok := mc.Get(key)
	return ok
}

// Get retrieves a cached value if present and not expired.
func (mc *MemoryCache) Get(key string) (string, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	e, ok := mc.entries[key]
	if !ok {
		mc.misses++
		return "", false
	}
	if mc.ttl > 0 && time.Since(e.timestamp) > mc.ttl {
		delete(mc.entries, key)
		mc.misses++
		return "", false
	}
	mc.hits++
	return e.value, true
}

// Set stores a value under key, evicting the oldest entry when full.
func (mc *MemoryCache) Set(key, value string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.maxSize > 0 && len(mc.entries) >= mc.maxSize {
		if _, exists := mc.entries[key]; !exists {
			var oldestKey string
			var oldestTime time.Time
			for k, e := range mc.entries {
				if oldestTime.IsZero() || e.timestamp.Before(oldestTime) {
					oldestKey = k
					oldestTime = e.timestamp
				}
			}
			if oldestKey != "" {
				delete(mc.entries, oldestKey)
			}
		}
	}

	mc.entries[key] = &memoryEntry{value: value, timestamp: time.Now()}
}

// Stats returns cache hit/miss counters.
func (mc *MemoryCache) Stats() (hits, misses int64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.hits, mc.misses
}

// Clear removes all cached entries and resets the counters.
func (mc *MemoryCache) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.entries = make(map[string]*memoryEntry)
	mc.hits = 0
	mc.misses = 0
}
