// Package cache provides a sharded, write-once cache for values that are
// expensive to compute and never change once computed, such as decoded
// glyph outlines.
package cache

import (
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards. Must be a power of 2 for fast
	// modulo via bitwise AND.
	ShardCount = 16

	shardMask = ShardCount - 1
)

// Hasher is a function that computes a hash for a key.
// Used by Sharded for shard selection.
type Hasher[K any] func(K) uint64

// Uint64Hasher spreads an integer key with a multiplicative hash so that
// consecutive keys land in different shards.
func Uint64Hasher(u uint64) uint64 {
	return (u * 0x9E3779B97F4A7C15) >> 32
}

// Sharded is a thread-safe map in which each key is written at most once.
// The first value stored for a key wins; later stores return it instead.
// Values are stored as-is, so callers must treat them as immutable.
//
// Computation happens outside the shard lock. Two goroutines that miss on
// the same key both compute, and the loser's result is discarded. This
// lets a compute function reenter the cache (a composite glyph loading
// its components) without deadlocking.
type Sharded[K comparable, V any] struct {
	shards [ShardCount]shard[K, V]
	hasher Hasher[K]

	hits   atomic.Uint64
	misses atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// NewSharded creates an empty cache that uses hasher for shard selection.
func NewSharded[K comparable, V any](hasher Hasher[K]) *Sharded[K, V] {
	c := &Sharded[K, V]{hasher: hasher}
	for i := range c.shards {
		c.shards[i].entries = make(map[K]V)
	}
	return c
}

func (c *Sharded[K, V]) shardFor(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&shardMask]
}

// Load returns the value stored for key.
func (c *Sharded[K, V]) Load(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// LoadOrStore stores value unless key already has one. It returns the
// value now in the cache and whether it was already present.
func (c *Sharded[K, V]) LoadOrStore(key K, value V) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[key]; ok {
		return existing, true
	}
	s.entries[key] = value
	return value, false
}

// LoadOrCompute returns the cached value for key, or calls compute and
// stores its result. A compute error is returned and nothing is stored.
func (c *Sharded[K, V]) LoadOrCompute(key K, compute func() (V, error)) (V, error) {
	if v, ok := c.Load(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ = c.LoadOrStore(key, v)
	return v, nil
}

// Len returns the total number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

// Stats returns current cache statistics.
func (c *Sharded[K, V]) Stats() Stats {
	return Stats{
		Len:    c.Len(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
