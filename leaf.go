// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	"iter"

	"github.com/huandu/skiplist"
)

// Leaf is a terminal node holding the payloads indexed under the term
// path leading to it.
//
// Both storage strategies have set semantics under the comparator of the
// owning Factory: inserting a payload equal to a present one is ignored and
// reported by Insert, removing an absent payload is a contract violation.
type Leaf[D any] struct {
	nodeBase

	cmp     func(a, b D) int
	metrics *Metrics

	// UnsortedList: intrusive singly linked list
	head *listEntry[D]
	size int

	// SkipList: payload keys, no values
	skip *skiplist.SkipList
}

type listEntry[D any] struct {
	data D
	next *listEntry[D]
}

func newPayloadSkipList[D any](cmp func(a, b D) int) *skiplist.SkipList {
	return skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
		return cmp(lhs.(D), rhs.(D))
	}))
}

// IsLeaf returns true.
func (l *Leaf[D]) IsLeaf() bool { return true }

// Size returns the number of payloads, O(1) for both strategies.
func (l *Leaf[D]) Size() int {
	if l.algo == SkipList {
		if l.skip == nil {
			return 0
		}
		return l.skip.Len()
	}
	return l.size
}

// IsEmpty reports whether the leaf holds no payload.
func (l *Leaf[D]) IsEmpty() bool { return l.Size() == 0 }

// Insert adds d and reports whether it was added. A payload equal to d
// under the comparator is left in place and false is returned.
//
// Insert never changes the storage strategy, the caller runs
// [Factory.EnsureLeafEfficiency] afterwards.
func (l *Leaf[D]) Insert(d D) bool {
	if !l.insert(d) {
		return false
	}
	l.metrics.payloadInserted()
	return true
}

func (l *Leaf[D]) payloadCmp() func(a, b D) int { return l.cmp }

func (l *Leaf[D]) insert(d D) bool {
	if l.algo == SkipList {
		if l.skip.Get(d) != nil {
			return false
		}
		l.skip.Set(d, nil)
		return true
	}

	// the list stays below the promotion threshold, a scan is cheap
	for e := l.head; e != nil; e = e.next {
		if l.cmp(e.data, d) == 0 {
			return false
		}
	}
	l.head = &listEntry[D]{data: d, next: l.head}
	l.size++
	return true
}

// Remove deletes d. It panics with a contract violation if d is absent.
func (l *Leaf[D]) Remove(d D) {
	if l.algo == SkipList {
		if l.skip == nil || l.skip.Remove(d) == nil {
			assertf("leaf %s: remove of absent payload %v", l.term, d)
		}
		l.metrics.payloadRemoved()
		return
	}

	for pp := &l.head; *pp != nil; pp = &(*pp).next {
		if l.cmp((*pp).data, d) == 0 {
			*pp = (*pp).next
			l.size--
			l.metrics.payloadRemoved()
			return
		}
	}
	assertf("leaf %s: remove of absent payload %v", l.term, d)
}

// All iterates over the payloads. Skip-list leaves yield them in
// comparator order, unsorted leaves in no documented order.
//
// The leaf must not be modified during iteration.
func (l *Leaf[D]) All() iter.Seq[D] {
	return func(yield func(D) bool) {
		if l.algo == SkipList {
			if l.skip == nil {
				return
			}
			for e := l.skip.Front(); e != nil; e = e.Next() {
				if !yield(e.Key().(D)) {
					return
				}
			}
			return
		}

		for e := l.head; e != nil; e = e.next {
			if !yield(e.data) {
				return
			}
		}
	}
}

// loadChildren bulk inserts payloads, the source is a set already.
func (l *Leaf[D]) loadChildren(seq iter.Seq[D]) {
	for d := range seq {
		l.insert(d)
	}
}

// moveChildren takes over the storage of src, which must use the
// same strategy, and leaves src empty.
func (l *Leaf[D]) moveChildren(src *Leaf[D]) {
	if l.algo != src.algo {
		assertf("leaf move between %s and %s", src.algo, l.algo)
	}
	l.head, l.size, l.skip = src.head, src.size, src.skip
	src.makeEmpty()
}

// makeEmpty detaches the storage without touching the payloads, their
// ownership has moved elsewhere.
func (l *Leaf[D]) makeEmpty() {
	l.head = nil
	l.size = 0
	l.skip = nil
}

func (l *Leaf[D]) reset() {
	*l = Leaf[D]{}
}
