// Package scorecache memoizes similarity.Score values for the duration of a
// single Batch call (SPEC_FULL.md §4.3.1 "Score memoization"). It is never
// shared across Batch calls and never consulted by a standalone ApplyEdit
// call, preserving spec.md §3's "no persistent state survives between
// calls" lifecycle rule — the cache just avoids recomputing the same
// (edit, chunk) pair's score twice within one batch.
package scorecache

import (
	"github.com/maypok86/otter"

	"github.com/mvp-joe/agent-booster/internal/similarity"
)

// Cache wraps an otter in-memory cache keyed by a digest of the normalized
// (edit, chunk text) pair (similarity.CacheKey). Grounded on internal/cache/key.go's
// sha256-hex hashing convention.
type Cache struct {
	store otter.Cache[string, similarity.Score]
}

// New builds a Cache sized for capacity entries. A Batch call allocates
// exactly one of these and discards it when the call returns.
func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = 4096
	}
	store, err := otter.MustBuilder[string, similarity.Score](capacity).Build()
	if err != nil {
		return nil, err
	}
	return &Cache{store: store}, nil
}

// Get returns the cached score for key, if present.
func (c *Cache) Get(key string) (similarity.Score, bool) {
	if c == nil {
		return similarity.Score{}, false
	}
	return c.store.GetIfPresent(key)
}

// Set records score under key.
func (c *Cache) Set(key string, score similarity.Score) {
	if c == nil {
		return
	}
	c.store.Set(key, score)
}
