package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaselineCache(t *testing.T) {
	bc := NewBaselineCache(time.Hour)
	key := CacheKey{PlayerID: "201939", Window: 10}
	assert.Equal(t, "201939:10", key.String())

	_, ok := bc.Get(key)
	assert.False(t, ok)

	bc.Set(key, Window{Games: 10})
	w, ok := bc.Get(key)
	assert.True(t, ok)
	assert.Equal(t, 10, w.Games)

	hits, misses, ratio := bc.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.InDelta(t, 0.5, ratio, 1e-12)

	bc.Flush()
	assert.Zero(t, bc.ItemCount())
	hits, misses, _ = bc.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestBaselineCacheGetOrCompute(t *testing.T) {
	bc := NewBaselineCache(time.Hour)
	key := CacheKey{PlayerID: "1", Window: 5}
	calls := 0
	compute := func() Window {
		calls++
		return Window{Games: 5}
	}

	assert.Equal(t, 5, bc.GetOrCompute(key, compute).Games)
	assert.Equal(t, 5, bc.GetOrCompute(key, compute).Games)
	assert.Equal(t, 1, calls)
}
