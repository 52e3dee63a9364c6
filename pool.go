// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	"sync"
	"sync/atomic"
)

// pool is a type-safe wrapper around sync.Pool for one node type.
//
// It tracks allocation and release statistics, the tree teardown is
// verified against them.
type pool[T any] struct {
	sync.Pool

	totalAllocated atomic.Int64 // total number of *T ever allocated
	totalReleased  atomic.Int64 // total number of *T given back
	currentLive    atomic.Int64 // number of *T currently in use
}

// newPool creates a pool for *T instances.
func newPool[T any]() *pool[T] {
	p := &pool[T]{}
	p.New = func() any {
		p.totalAllocated.Add(1)
		return new(T)
	}
	return p
}

// get retrieves a *T from the pool, or creates a new one.
func (p *pool[T]) get() *T {
	p.currentLive.Add(1)
	return p.Pool.Get().(*T)
}

// put gives x back, x must already be reset.
func (p *pool[T]) put(x *T) {
	p.currentLive.Add(-1)
	p.totalReleased.Add(1)
	p.Pool.Put(x)
}

// stats returns a snapshot of the counters.
func (p *pool[T]) stats() KindStats {
	return KindStats{
		Allocated: p.totalAllocated.Load(),
		Released:  p.totalReleased.Load(),
		Live:      p.currentLive.Load(),
	}
}
