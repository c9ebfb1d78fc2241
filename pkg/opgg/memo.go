package opgg

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Stats holds the counters of a single memoized function.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
	MaxSize   int   `json:"maxSize"`
}

// memo caches the results of fetch by its key.
// The cache is bounded by size and has no expiration, the least recently used entry is dropped first.
// Concurrent calls with the same key share a single fetch. Errors are never stored.
// The shared fetch is detached from the caller cancellation and bounded by timeout, when set.
type memo[K comparable, V any] struct {
	cache   *lru.Cache[K, V]
	group   singleflight.Group
	fetch   func(ctx context.Context, key K) (V, error)
	maxSize int
	timeout time.Duration

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

func newMemo[K comparable, V any](size int, timeout time.Duration, fetch func(ctx context.Context, key K) (V, error)) (*memo[K, V], error) {
	m := &memo[K, V]{
		fetch:   fetch,
		maxSize: size,
		timeout: timeout,
	}

	cache, err := lru.NewWithEvict[K, V](size, func(K, V) {
		m.evictions.Add(1)
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't create the memo cache: %w", err)
	}
	m.cache = cache

	return m, nil
}

// Get returns the cached value or runs the fetch.
func (m *memo[K, V]) Get(ctx context.Context, key K) (V, error) {
	if value, ok := m.cache.Get(key); ok {
		m.hits.Add(1)
		return value, nil
	}

	flight := m.group.DoChan(fmt.Sprintf("%#v", key), func() (any, error) {
		// Another call may have filled it while this one waited for the group.
		if value, ok := m.cache.Get(key); ok {
			m.hits.Add(1)
			return value, nil
		}

		m.misses.Add(1)
		fetchCtx, cancel := m.fetchContext(ctx)
		defer cancel()

		value, err := m.fetch(fetchCtx, key)
		if err != nil {
			return value, err
		}

		m.cache.Add(key, value)
		return value, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case result := <-flight:
		if result.Err != nil {
			return zero, result.Err
		}
		return result.Val.(V), nil
	}
}

// A caller leaving doesn't cancel the fetch shared with the other callers.
func (m *memo[K, V]) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if m.timeout <= 0 {
		return detached, func() {}
	}
	return context.WithTimeout(detached, m.timeout)
}

// Stats returns a snapshot of the counters.
func (m *memo[K, V]) Stats() Stats {
	return Stats{
		Hits:      m.hits.Load(),
		Misses:    m.misses.Load(),
		Evictions: m.evictions.Load(),
		Size:      m.cache.Len(),
		MaxSize:   m.maxSize,
	}
}

// Purge drops every cached value.
func (m *memo[K, V]) Purge() {
	m.cache.Purge()
}
