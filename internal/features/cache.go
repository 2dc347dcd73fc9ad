package features

import (
	"fmt"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/prop-edge/internal/metrics"
)

// CacheKey identifies a player's rolling window of a given length
type CacheKey struct {
	PlayerID string
	Window   int
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%d", k.PlayerID, k.Window)
}

// BaselineCache provides in-memory caching of rolling windows. Entries live
// for one run; callers flush it at the start of each run.
type BaselineCache struct {
	cache  *cache.Cache
	ttl    time.Duration
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewBaselineCache creates a new baseline cache
func NewBaselineCache(ttl time.Duration) *BaselineCache {
	return &BaselineCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get retrieves a cached window
func (bc *BaselineCache) Get(key CacheKey) (Window, bool) {
	if v, found := bc.cache.Get(key.String()); found {
		if w, ok := v.(Window); ok {
			bc.hits.Add(1)
			bc.updateMetrics()
			return w, true
		}
	}
	bc.misses.Add(1)
	bc.updateMetrics()
	return Window{}, false
}

// Set stores a window
func (bc *BaselineCache) Set(key CacheKey, w Window) {
	bc.cache.Set(key.String(), w, bc.ttl)
}

// GetOrCompute returns the cached window for key or stores compute's result
func (bc *BaselineCache) GetOrCompute(key CacheKey, compute func() Window) Window {
	if w, ok := bc.Get(key); ok {
		return w
	}
	w := compute()
	bc.Set(key, w)
	return w
}

// Flush empties the cache and resets its statistics
func (bc *BaselineCache) Flush() {
	bc.cache.Flush()
	bc.hits.Store(0)
	bc.misses.Store(0)
}

// Stats returns cache statistics
func (bc *BaselineCache) Stats() (hits, misses uint64, ratio float64) {
	hits = bc.hits.Load()
	misses = bc.misses.Load()
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (bc *BaselineCache) ItemCount() int {
	return bc.cache.ItemCount()
}

func (bc *BaselineCache) updateMetrics() {
	_, _, ratio := bc.Stats()
	metrics.RecordFeatureCacheRatio(ratio)
}
