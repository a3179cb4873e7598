package storefront

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/metrics"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cacheName labels this cache in the hit/miss metrics
const cacheName = "storefront"

// liveListKey is the cache key holding the full live-listing snapshot
const liveListKey = "live"

// cachedEntry wraps cached slot data with version metadata for invalidation.
// Exactly one of List or Slot is set: List for the live snapshot key, Slot
// for per-slot keys.
type cachedEntry struct {
	Version  string        `json:"version"`
	List     []domain.Slot `json:"list,omitempty"`
	Slot     *domain.Slot  `json:"slot,omitempty"`
	CachedAt time.Time     `json:"cached_at"`
}

// CacheStats holds cache performance statistics
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// slotCache provides an in-memory LRU cache for storefront reads
// with time-based expiration and version-based invalidation to prevent stale data.
type slotCache struct {
	lru    *expirable.LRU[string, *cachedEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

// newSlotCache creates a new storefront cache with the specified size and TTL.
// size: maximum number of cached entries
// ttl: time-to-live for cached entries
func newSlotCache(size int, ttl time.Duration) *slotCache {
	return &slotCache{
		lru: expirable.NewLRU[string, *cachedEntry](size, nil, ttl),
	}
}

// GetList retrieves the cached live-listing snapshot.
// Returns (slots, true) if present and version matches.
func (c *slotCache) GetList() ([]domain.Slot, bool) {
	entry, found := c.get(liveListKey)
	if !found {
		return nil, false
	}
	return entry.List, true
}

// SetList stores the live-listing snapshot with current schema version.
func (c *slotCache) SetList(slots []domain.Slot) {
	c.lru.Add(liveListKey, &cachedEntry{
		Version:  CacheSchemaVersion,
		List:     slots,
		CachedAt: time.Now(),
	})
}

// GetSlot retrieves a cached slot.
// Returns (slot, true) if present and version matches.
func (c *slotCache) GetSlot(id int) (*domain.Slot, bool) {
	entry, found := c.get(slotKey(id))
	if !found {
		return nil, false
	}
	return entry.Slot, true
}

// SetSlot stores a slot with current schema version.
func (c *slotCache) SetSlot(id int, slot *domain.Slot) {
	c.lru.Add(slotKey(id), &cachedEntry{
		Version:  CacheSchemaVersion,
		Slot:     slot,
		CachedAt: time.Now(),
	})
}

// InvalidateSlot removes a slot entry. The live snapshot goes with it, since
// any slot change may alter the public listing set.
func (c *slotCache) InvalidateSlot(id int) {
	c.lru.Remove(slotKey(id))
	c.lru.Remove(liveListKey)
}

// Clear removes all entries from the cache.
func (c *slotCache) Clear() {
	c.lru.Purge()
}

// GetStats returns current cache performance statistics.
func (c *slotCache) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}

// get looks up a key, auto-invalidating entries with mismatched versions,
// and records hit/miss metrics.
func (c *slotCache) get(key string) (*cachedEntry, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		c.misses.Add(1)
		metrics.CacheMisses.WithLabelValues(cacheName).Inc()
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		c.misses.Add(1)
		metrics.CacheMisses.WithLabelValues(cacheName).Inc()
		return nil, false
	}

	c.hits.Add(1)
	metrics.CacheHits.WithLabelValues(cacheName).Inc()
	return entry, true
}

func slotKey(id int) string {
	return "slot:" + strconv.Itoa(id)
}
