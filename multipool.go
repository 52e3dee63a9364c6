// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

// KindStats are the pool counters of one node kind.
type KindStats struct {
	Allocated int64 // objects ever created by the pool
	Released  int64 // nodes given back, including reused objects
	Live      int64 // nodes currently owned by a tree or a caller
}

// PoolStats are the pool counters of a Factory.
type PoolStats struct {
	Leaves KindStats
	Nodes  KindStats
}

// multiPool groups the sub-pools for leaves and intermediate nodes.
// Every node of a tree is checked out of it exactly once and given
// back exactly once.
type multiPool[D any] struct {
	leaf    *pool[Leaf[D]]
	node    *pool[IntermediateNode[D]]
	metrics *Metrics
}

func newMultiPool[D any](m *Metrics) *multiPool[D] {
	return &multiPool[D]{
		leaf:    newPool[Leaf[D]](),
		node:    newPool[IntermediateNode[D]](),
		metrics: m,
	}
}

// getLeaf obtains a leaf initialized with b.
func (mp *multiPool[D]) getLeaf(b nodeBase) *Leaf[D] {
	l := mp.leaf.get()
	l.nodeBase = b
	l.live = true
	return l
}

// getNode obtains an intermediate node initialized with b.
func (mp *multiPool[D]) getNode(b nodeBase) *IntermediateNode[D] {
	n := mp.node.get()
	n.nodeBase = b
	n.live = true
	n.pool = mp
	return n
}

// release gives a detached node back. Children of an intermediate node
// are not touched. Releasing a node twice is a contract violation.
func (mp *multiPool[D]) release(n Node[D]) {
	kind := kindOf(n)
	if !n.base().live {
		assertf("double release of %s %s", kind, n.Term())
	}

	switch x := n.(type) {
	case *Leaf[D]:
		x.reset()
		mp.leaf.put(x)
	case *IntermediateNode[D]:
		x.reset()
		mp.node.put(x)
	}
	mp.metrics.nodeReleased(kind)
}

func (mp *multiPool[D]) stats() PoolStats {
	return PoolStats{
		Leaves: mp.leaf.stats(),
		Nodes:  mp.node.stats(),
	}
}

func kindOf[D any](n Node[D]) string {
	if n.IsLeaf() {
		return kindLeaf
	}
	return kindNode
}
