package wtrie

import "sync"

// memoCache holds, per residual fingerprint, the full unfiltered
// enumeration of (word, residual) pairs reachable from that residual.
// Entries are written once and never mutated afterward, so reads need no
// further synchronization once retrieved.
type memoCache struct {
	mu sync.RWMutex
	m  map[string][]Pair
}

func newMemoCache() *memoCache {
	return &memoCache{m: make(map[string][]Pair)}
}

func (c *memoCache) get(key string) ([]Pair, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pairs, ok := c.m[key]
	return pairs, ok
}

func (c *memoCache) put(key string, pairs []Pair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = pairs
}
