package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

type loaded[V any] struct {
	value V
	fresh bool
}

// flight tracks one running load. A write or eviction of the same key while
// the load runs supersedes it, and a superseded load never touches the cache.
type flight struct {
	superseded bool
}

// loadingCache is an expiring LRU that shares a single in flight load
// between every concurrent caller of the same key
type loadingCache[K comparable, V any] struct {
	lru   *expirable.LRU[K, V]
	group singleflight.Group

	mu      sync.Mutex
	flights map[K]*flight
}

func newLoadingCache[K comparable, V any](size int, ttl time.Duration) *loadingCache[K, V] {
	return &loadingCache[K, V]{
		lru:     expirable.NewLRU[K, V](size, nil, ttl),
		flights: map[K]*flight{},
	}
}

// load returns the cached value for key or runs fetch. A failed fetch evicts
// the key and the error is handed to every waiter of that attempt. fresh
// reports whether the value came from a fetch.
func (lc *loadingCache[K, V]) load(ctx context.Context, key K, flightKey string, fetch func(context.Context) (V, error)) (value V, fresh bool, err error) {
	if v, ok := lc.lru.Get(key); ok {
		return v, false, nil
	}

	ch := lc.group.DoChan(flightKey, func() (any, error) {
		f, v, hit := lc.begin(key)
		if hit {
			return loaded[V]{v, false}, nil
		}

		v, err := fetch(context.WithoutCancel(ctx))

		lc.mu.Lock()
		defer lc.mu.Unlock()

		if lc.flights[key] == f {
			delete(lc.flights, key)
		}

		if err != nil {
			if !f.superseded {
				lc.lru.Remove(key)
			}
			return nil, err
		}

		if !f.superseded {
			lc.lru.Add(key, v)
		}

		return loaded[V]{v, true}, nil
	})

	select {
	case <-ctx.Done():
		return value, false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return value, false, r.Err
		}
		l := r.Val.(loaded[V])
		return l.value, l.fresh, nil
	}
}

// begin registers a flight for key unless a value was published after the
// initial miss
func (lc *loadingCache[K, V]) begin(key K) (*flight, V, bool) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if v, ok := lc.lru.Get(key); ok {
		return nil, v, true
	}

	f := &flight{}
	lc.flights[key] = f

	var zero V
	return f, zero, false
}

// publish stores v for key, overwriting any cached value and any load that is
// still running
func (lc *loadingCache[K, V]) publish(key K, flightKey string, v V) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.supersede(key, flightKey)
	lc.lru.Add(key, v)
}

func (lc *loadingCache[K, V]) evict(key K, flightKey string) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.supersede(key, flightKey)
	lc.lru.Remove(key)
}

// supersede must be called with lc.mu held
func (lc *loadingCache[K, V]) supersede(key K, flightKey string) {
	if f, ok := lc.flights[key]; ok {
		f.superseded = true
		delete(lc.flights, key)
	}
	lc.group.Forget(flightKey)
}
