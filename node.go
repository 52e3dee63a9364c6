// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	"github.com/gaissmai/substtree/term"
)

// Node is a node of a substitution tree, either a *[Leaf] or an
// *[IntermediateNode]. The set of implementations is closed.
type Node[D any] interface {
	// Term is the term prefix this node stands for, set at creation.
	Term() term.TermList

	IsLeaf() bool
	IsHigherOrder() bool
	Algorithm() Algorithm

	// Type is the function type of the head variable of Term for
	// higher-order nodes, nil otherwise.
	Type() *term.OperatorType

	// Size is the number of payloads of a leaf or the number of
	// children of an intermediate node.
	Size() int
	IsEmpty() bool

	base() *nodeBase

	// payloadCmp ties the node to its payload type.
	payloadCmp() func(a, b D) int
}

// nodeBase holds the attributes shared by leaves and intermediate nodes.
type nodeBase struct {
	term term.TermList
	typ  *term.OperatorType
	algo Algorithm
	ho   bool

	// live is set while the node is checked out of the pool
	live bool
}

func (b *nodeBase) Term() term.TermList      { return b.term }
func (b *nodeBase) IsHigherOrder() bool      { return b.ho }
func (b *nodeBase) Algorithm() Algorithm     { return b.algo }
func (b *nodeBase) Type() *term.OperatorType { return b.typ }
func (b *nodeBase) base() *nodeBase          { return b }

// setHigherOrder marks the node as higher order and caches the type of
// the head variable of its term. Leaves must have a var-headed term,
// intermediate nodes may branch on var-headed children without one.
func (b *nodeBase) setHigherOrder(sig *term.Signature, isLeaf bool) {
	if sig == nil {
		assertf("higher-order node for term %s needs a signature", b.term)
	}
	switch {
	case b.term.HasVarHead():
		b.typ = sig.HeadType(b.term.Term())
	case isLeaf:
		assertf("higher-order leaf for term %s without variable head", b.term)
	}
	b.ho = true
}

// compile time checks
var (
	_ Node[LeafData] = (*Leaf[LeafData])(nil)
	_ Node[LeafData] = (*IntermediateNode[LeafData])(nil)
)
