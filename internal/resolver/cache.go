package resolver

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/guidekit-labs/guidekit/internal/facts"
	"github.com/guidekit-labs/guidekit/internal/manifest"
)

// Cache memoizes resolved sets within a process lifetime. Keys combine the
// manifest checksum with the canonical facts fingerprint, so a reload that
// changes the manifest bytes invalidates everything stale wholesale. The
// cache is an optimization only: a cached result is always identical to a
// direct Resolve for the same inputs.
type Cache struct {
	mu       sync.RWMutex
	checksum string
	sets     map[string][]string // facts fingerprint -> resolved set

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache returns an empty resolution cache.
func NewCache() *Cache {
	return &Cache{sets: make(map[string][]string)}
}

// Resolve returns the resolved set for the manifest and facts, serving from
// the cache when the manifest checksum and facts fingerprint match a prior
// call. Concurrent misses for the same key may each compute the set
// redundantly (Resolve is cheap and idempotent) and the last writer wins.
// The returned slice is the caller's to keep; mutating it cannot poison
// later hits.
func (c *Cache) Resolve(m *manifest.Manifest, f facts.Facts) []string {
	fp := facts.Fingerprint(f)

	c.mu.RLock()
	if c.checksum == m.Checksum {
		if set, ok := c.sets[fp]; ok {
			c.mu.RUnlock()
			c.hits.Add(1)
			return slices.Clone(set)
		}
	}
	c.mu.RUnlock()

	set := Resolve(m, f)
	c.misses.Add(1)

	c.mu.Lock()
	if c.checksum != m.Checksum {
		// New manifest: drop every set computed against the old one.
		c.checksum = m.Checksum
		c.sets = make(map[string][]string)
	}
	c.sets[fp] = set
	c.mu.Unlock()

	return slices.Clone(set)
}

// Stats returns cumulative hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached resolved sets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sets)
}
