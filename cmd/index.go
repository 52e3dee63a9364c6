// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/gaissmai/substtree"
	"github.com/gaissmai/substtree/term"
)

type (
	ld    = substtree.LeafData
	node  = substtree.Node[ld]
	inode = substtree.IntermediateNode[ld]
	leaf  = substtree.Leaf[ld]
)

var errNotIndexed = errors.New("payload not indexed")

// index is a minimal substitution tree: a term is stored along the path
// of the top symbols of its subterms in preorder. The intermediate node at
// depth i branches on S(i), the last subterm leads to the leaf.
type index struct {
	f         *substtree.Factory[ld]
	root      *inode
	withSorts bool
}

func newIndex(f *substtree.Factory[ld], withSorts bool) *index {
	return &index{
		f:         f,
		root:      f.CreateIntermediateNode(0, withSorts),
		withSorts: withSorts,
	}
}

// insert adds d under d.Term and reports whether it was new. Every node
// on the path is promoted when it grew and converted to higher order when
// a var-headed subterm arrives.
func (ix *index) insert(d ld) bool {
	path := slices.Collect(term.Subterms(d.Term))

	var top node = ix.root
	slot := &top

	for i, st := range path {
		n := (*slot).(*inode)
		if st.HasVarHead() && !n.IsHigherOrder() {
			n = ix.f.ConvertToHigherOrder(n).(*inode)
		}

		child := n.ChildByTop(st, true)
		if *child == nil {
			if i == len(path)-1 {
				*child = ix.f.CreateLeafWithTerm(st, false)
			} else {
				*child = ix.f.CreateIntermediateNodeWithTerm(st, uint32(i+1), ix.withSorts, st.HasVarHead())
			}
		}

		// promotion invalidates the child slot, look it up again
		n = ix.f.EnsureIntermediateNodeEfficiency(n, n.IsHigherOrder())
		*slot = n
		slot = n.ChildByTop(st, false)
	}
	ix.root = top.(*inode)

	l := (*slot).(*leaf)
	added := l.Insert(d)
	*slot = ix.f.EnsureLeafEfficiency(l, l.IsHigherOrder())
	return added
}

// remove deletes d and prunes the nodes left empty, the root stays.
func (ix *index) remove(d ld) error {
	path := slices.Collect(term.Subterms(d.Term))
	parents := make([]*inode, 0, len(path))

	var cur node = ix.root
	for _, st := range path {
		n := cur.(*inode)
		parents = append(parents, n)

		slot := n.ChildByTop(st, false)
		if slot == nil || *slot == nil {
			return errors.Wrapf(errNotIndexed, "%s at %s", d, st)
		}
		cur = *slot
	}

	l := cur.(*leaf)
	if !slices.ContainsFunc(slices.Collect(l.All()), func(x ld) bool { return substtree.CompareLeafData(x, d) == 0 }) {
		return errors.Wrapf(errNotIndexed, "%s", d)
	}
	l.Remove(d)
	if !l.IsEmpty() {
		return nil
	}

	var dead node = l
	for i := len(path) - 1; i >= 0; i-- {
		parent := parents[i]
		parent.Remove(path[i])
		ix.f.Destroy(dead)
		if !parent.IsEmpty() || parent == ix.root {
			return nil
		}
		dead = parent
	}
	return nil
}

// destroy releases the whole tree including the root.
func (ix *index) destroy() {
	ix.f.Destroy(ix.root)
	ix.root = nil
}
