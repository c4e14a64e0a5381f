package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache defines a generic keyed store
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)

	// Size returns the current number of items in the cache
	Size() int
}

// Memo is a load-once cache: entries never expire and are never evicted.
// Concurrent loads of the same key share a single call to the loader.
// Failed loads are not stored.
type Memo[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	group singleflight.Group
}

var _ Cache[int] = (*Memo[int])(nil)

// NewMemo creates an empty memo
func NewMemo[T any]() *Memo[T] {
	return &Memo[T]{items: make(map[string]T)}
}

// Get retrieves a value from the memo
func (m *Memo[T]) Get(key string) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok
}

// Set stores a value, replacing any previous one
func (m *Memo[T]) Set(key string, data T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = data
}

// Size returns the current number of items in the memo
func (m *Memo[T]) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// GetOrLoad returns the memoized value for key, calling load on a miss.
// The returned bool is true when the value came from the memo.
//
// load runs detached from ctx cancellation so that one caller giving up
// does not fail the others waiting on the same key; a caller whose ctx ends
// first returns ctx.Err() while the load carries on.
func (m *Memo[T]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	if v, ok := m.Get(key); ok {
		return v, true, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := m.group.DoChan(key, func() (any, error) {
		// Another caller may have finished between Get and DoChan.
		if v, ok := m.Get(key); ok {
			return v, nil
		}
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, false, res.Err
		}
		return res.Val.(T), false, nil
	}
}
