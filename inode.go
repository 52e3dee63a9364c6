// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	"iter"

	"github.com/huandu/skiplist"

	"github.com/gaissmai/substtree/internal/bitset"
	"github.com/gaissmai/substtree/term"
)

// IntermediateNode is a branch node. Its children are discriminated by
// the top symbol of their term at variable position ChildVar.
//
// Higher-order nodes keep a second branch table for children whose term
// has a variable head, keyed by the type of that head. Nodes with sort
// discrimination additionally remember, per result sort, which function
// symbols might exist as top of a child.
//
// Slots returned by ChildByTop and VarHeadChildByType stay valid until
// the next mutation or promotion of the node.
type IntermediateNode[D any] struct {
	nodeBase

	sig       *term.Signature
	cmp       func(a, b D) int
	pool      *multiPool[D]
	childVar  uint32
	withSorts bool

	// UnsortedList: fixed array, keys[i] is the top of the child in
	// nodes[i], recorded when the slot is handed out
	nodes [maxArrayNodeSize]Node[D]
	keys  [maxArrayNodeSize]term.TopKey
	size  int

	// SkipList: term.TopKey -> *Node[D]
	skip *skiplist.SkipList

	// higher order only
	varHeads []varHeadEntry[D]

	// sort discrimination only
	sortIndex map[term.SortID]*bitset.BitSet
}

type varHeadEntry[D any] struct {
	typ  *term.OperatorType
	slot *Node[D]
}

func newChildSkipList() *skiplist.SkipList {
	return skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
		return term.CompareTop(lhs.(term.TopKey), rhs.(term.TopKey))
	}))
}

// IsLeaf returns false.
func (n *IntermediateNode[D]) IsLeaf() bool { return false }

func (n *IntermediateNode[D]) payloadCmp() func(a, b D) int { return n.cmp }

// ChildVar is the number of the special variable the children bind.
func (n *IntermediateNode[D]) ChildVar() uint32 { return n.childVar }

// WithSorts reports whether the node does sort discrimination.
func (n *IntermediateNode[D]) WithSorts() bool { return n.withSorts }

// Size returns the number of children in both branch tables.
func (n *IntermediateNode[D]) Size() int {
	return n.symbolSize() + len(n.varHeads)
}

func (n *IntermediateNode[D]) symbolSize() int {
	if n.algo == SkipList {
		if n.skip == nil {
			return 0
		}
		return n.skip.Len()
	}
	return n.size
}

// IsEmpty reports whether the node has no children.
func (n *IntermediateNode[D]) IsEmpty() bool { return n.Size() == 0 }

// ChildByTop returns the slot of the child with the same top symbol as t.
//
// If there is none and canCreate is set, a new empty slot is created and
// returned for the caller to fill with a node whose term has the top of t.
// Otherwise nil is returned. A slot not filled yet is handed out again
// for the same top.
//
// On higher-order nodes var-headed queries are answered by VarHeadChildByType.
func (n *IntermediateNode[D]) ChildByTop(t term.TermList, canCreate bool) *Node[D] {
	if n.ho && t.HasVarHead() {
		return n.VarHeadChildByType(t, canCreate)
	}
	if !canCreate && n.cannotExistAsTop(t) {
		return nil
	}

	key := term.Top(t)
	if n.algo == SkipList {
		if e := n.skip.Get(key); e != nil {
			return e.Value.(*Node[D])
		}
		if !canCreate {
			return nil
		}
		n.mightExistAsTop(t)
		slot := new(Node[D])
		n.skip.Set(key, slot)
		return slot
	}

	if slot := n.lookupTop(key); slot != nil || !canCreate {
		return slot
	}
	n.mightExistAsTop(t)
	n.checkArrayCapacity(t)
	n.nodes[n.size] = nil
	n.keys[n.size] = key
	n.size++
	return &n.nodes[n.size-1]
}

// VarHeadChildByType returns the slot of the var-headed child whose head
// type equals the head type of t. For terms with a function symbol head
// the declared type of the function is used.
//
// It must only be called on higher-order nodes.
func (n *IntermediateNode[D]) VarHeadChildByType(t term.TermList, canCreate bool) *Node[D] {
	if !n.ho {
		assertf("node %s: var head lookup of %s on first-order node", n.term, t)
	}
	if !t.IsTerm() {
		assertf("node %s: var head lookup of non-term %s", n.term, t)
	}

	typ := n.sig.HeadType(t.Term())
	for _, e := range n.varHeads {
		if e.typ == typ {
			return e.slot
		}
	}
	if !canCreate {
		return nil
	}
	n.checkArrayCapacity(t)
	slot := new(Node[D])
	n.varHeads = append(n.varHeads, varHeadEntry[D]{typ: typ, slot: slot})
	return slot
}

// checkArrayCapacity panics if an array-backed node is full. Promotion
// keeps array nodes below the capacity, both branch tables share it.
func (n *IntermediateNode[D]) checkArrayCapacity(t term.TermList) {
	if n.algo == UnsortedList && n.Size() >= maxArrayNodeSize {
		assertf("node %s: array capacity %d exceeded by %s", n.term, maxArrayNodeSize, t)
	}
}

// Remove detaches the child with the top symbol of t, or for var-headed
// t on higher-order nodes the child with its head type. The child itself
// is not released. It panics with a contract violation if no such child
// exists.
func (n *IntermediateNode[D]) Remove(t term.TermList) {
	if n.ho && t.HasVarHead() {
		typ := n.sig.HeadType(t.Term())
		for i, e := range n.varHeads {
			if e.typ == typ {
				last := len(n.varHeads) - 1
				n.varHeads[i] = n.varHeads[last]
				n.varHeads[last] = varHeadEntry[D]{}
				n.varHeads = n.varHeads[:last]
				return
			}
		}
		assertf("node %s: remove of absent var head child %s", n.term, t)
	}

	key := term.Top(t)
	if n.algo == SkipList {
		if n.skip.Remove(key) == nil {
			assertf("node %s: remove of absent child %s", n.term, t)
		}
		n.forgetTop(t)
		return
	}

	for i := range n.size {
		if n.keys[i] == key {
			n.size--
			n.nodes[i], n.keys[i] = n.nodes[n.size], n.keys[n.size]
			n.nodes[n.size], n.keys[n.size] = nil, term.TopKey{}
			n.forgetTop(t)
			return
		}
	}
	assertf("node %s: remove of absent child %s", n.term, t)
}

// All iterates over the children, symbol table first, then the
// var-headed children. Empty slots are skipped.
func (n *IntermediateNode[D]) All() iter.Seq[Node[D]] {
	return func(yield func(Node[D]) bool) {
		if n.algo == SkipList {
			if n.skip != nil {
				for e := n.skip.Front(); e != nil; e = e.Next() {
					if c := *e.Value.(*Node[D]); c != nil && !yield(c) {
						return
					}
				}
			}
		} else {
			for _, c := range n.nodes[:n.size] {
				if c != nil && !yield(c) {
					return
				}
			}
		}

		for _, e := range n.varHeads {
			if c := *e.slot; c != nil && !yield(c) {
				return
			}
		}
	}
}

// ChildrenBySort iterates over the children whose top is a function
// symbol of result sort s. Only nodes with sort discrimination answer,
// others yield nothing.
func (n *IntermediateNode[D]) ChildrenBySort(s term.SortID) iter.Seq[Node[D]] {
	return func(yield func(Node[D]) bool) {
		bs := n.sortIndex[s]
		if bs == nil {
			return
		}
		for f := range bs.All() {
			// slots handed out but not yet filled
			slot := n.lookupTop(term.FunctionTop(uint32(f)))
			if slot == nil || *slot == nil {
				continue
			}
			if !yield(*slot) {
				return
			}
		}
	}
}

func (n *IntermediateNode[D]) lookupTop(key term.TopKey) *Node[D] {
	if n.algo == SkipList {
		if e := n.skip.Get(key); e != nil {
			return e.Value.(*Node[D])
		}
		return nil
	}
	for i := range n.size {
		if n.keys[i] == key {
			return &n.nodes[i]
		}
	}
	return nil
}

// mightExistAsTop records the top of t before the node grows.
func (n *IntermediateNode[D]) mightExistAsTop(t term.TermList) {
	if !n.withSorts || !t.IsTerm() || t.HasVarHead() {
		return
	}
	s := n.sig.ResultSort(t.Term())
	bs := n.sortIndex[s]
	if bs == nil {
		if n.sortIndex == nil {
			n.sortIndex = make(map[term.SortID]*bitset.BitSet)
		}
		bs = new(bitset.BitSet)
		n.sortIndex[s] = bs
	}
	bs.Set(uint(t.Term().Functor()))
}

// forgetTop clears the bit of a removed top.
func (n *IntermediateNode[D]) forgetTop(t term.TermList) {
	if !n.withSorts || !t.IsTerm() || t.HasVarHead() {
		return
	}
	s := n.sig.ResultSort(t.Term())
	if bs := n.sortIndex[s]; bs != nil {
		bs.Clear(uint(t.Term().Functor()))
		if bs.IsEmpty() {
			delete(n.sortIndex, s)
		}
	}
}

// cannotExistAsTop reports whether a sort discriminating node surely has
// no child with the top of t.
func (n *IntermediateNode[D]) cannotExistAsTop(t term.TermList) bool {
	if !n.withSorts || !t.IsTerm() || t.HasVarHead() {
		return false
	}
	bs := n.sortIndex[n.sig.ResultSort(t.Term())]
	return bs == nil || !bs.Test(uint(t.Term().Functor()))
}

// loadChildren adopts the children, keys are taken from their terms.
func (n *IntermediateNode[D]) loadChildren(seq iter.Seq[Node[D]]) {
	for c := range seq {
		n.adopt(c)
	}
}

func (n *IntermediateNode[D]) adopt(c Node[D]) {
	t := c.Term()

	if n.ho && t.HasVarHead() {
		typ := c.Type()
		if typ == nil {
			typ = n.sig.HeadType(t.Term())
		}
		for _, e := range n.varHeads {
			if e.typ == typ {
				assertf("node %s: duplicate var head type %s for %s", n.term, typ, t)
			}
		}
		n.checkArrayCapacity(t)
		slot := new(Node[D])
		*slot = c
		n.varHeads = append(n.varHeads, varHeadEntry[D]{typ: typ, slot: slot})
		return
	}

	if n.algo == SkipList {
		key := term.Top(t)
		if n.skip.Get(key) != nil {
			assertf("node %s: duplicate child %s", n.term, t)
		}
		n.mightExistAsTop(t)
		slot := new(Node[D])
		*slot = c
		n.skip.Set(key, slot)
		return
	}

	for _, other := range n.nodes[:n.size] {
		if other != nil && term.SameTop(t, other.Term()) {
			assertf("node %s: duplicate child %s", n.term, t)
		}
	}
	n.mightExistAsTop(t)
	n.checkArrayCapacity(t)
	n.nodes[n.size] = c
	n.keys[n.size] = term.Top(t)
	n.size++
}

// varHeadClash returns two var-headed children of a first-order node
// sharing a head type. A higher-order node keys such children by type,
// so they cannot be moved into one.
func (n *IntermediateNode[D]) varHeadClash() (a, b term.TermList, ok bool) {
	if n.ho {
		return a, b, false
	}
	seen := make(map[*term.OperatorType]term.TermList)
	for c := range n.All() {
		t := c.Term()
		if !t.HasVarHead() {
			continue
		}
		typ := n.sig.HeadType(t.Term())
		if prev, dup := seen[typ]; dup {
			return prev, t, true
		}
		seen[typ] = t
	}
	return a, b, false
}

// makeEmpty detaches all children without releasing them.
func (n *IntermediateNode[D]) makeEmpty() {
	clear(n.nodes[:])
	clear(n.keys[:])
	n.size = 0
	if n.skip != nil {
		n.skip.Init()
	}
	clear(n.varHeads)
	n.varHeads = n.varHeads[:0]
	n.sortIndex = nil
}

// RemoveAllChildren detaches all children without releasing them,
// the caller takes over their ownership.
func (n *IntermediateNode[D]) RemoveAllChildren() {
	n.makeEmpty()
}

func (n *IntermediateNode[D]) reset() {
	*n = IntermediateNode[D]{}
}
