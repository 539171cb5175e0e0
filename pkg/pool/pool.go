// Package pool provides a generic, statistics-tracked object pool used to
// recycle short-lived scratch allocations. The one pool actually
// exercised by this module is an int64 permutation-index scratch, reused
// across repeated GroupSortData.Sort calls in a long-running process.
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool wraps sync.Pool with type safety and hit/miss statistics. The
// pool is safe for concurrent use.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
	stats struct {
		allocated int64
		inUse     int64
		hits      int64
		misses    int64
	}
}

// New creates a typed pool. new is called whenever the pool is empty and
// a fresh instance is needed; reset, if non-nil, is called on every
// value returned via Put before it re-enters the pool.
func New[T any](new func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.stats.allocated, 1)
		atomic.AddInt64(&p.stats.misses, 1)
		// Get counted this call as a hit before the pool turned out empty.
		atomic.AddInt64(&p.stats.hits, -1)
		return new()
	}
	return p
}

// Get retrieves a value from the pool, allocating a new one if empty.
func (p *Pool[T]) Get() T {
	atomic.AddInt64(&p.stats.inUse, 1)
	atomic.AddInt64(&p.stats.hits, 1)
	return p.pool.Get().(T)
}

// Put returns a value to the pool, running the reset function first.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	atomic.AddInt64(&p.stats.inUse, -1)
	p.pool.Put(obj)
}

// Stats reports lifetime allocation and usage counters.
func (p *Pool[T]) Stats() (allocated, inUse, hits, misses int64) {
	return atomic.LoadInt64(&p.stats.allocated),
		atomic.LoadInt64(&p.stats.inUse),
		atomic.LoadInt64(&p.stats.hits),
		atomic.LoadInt64(&p.stats.misses)
}
