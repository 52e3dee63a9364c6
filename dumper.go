// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

// TreeStats summarizes the shape of a subtree.
type TreeStats struct {
	Nodes       int // intermediate nodes, including the root
	Leaves      int
	Payloads    int
	SkipLists   int // nodes and leaves using skip-list storage
	HigherOrder int // higher-order nodes and leaves
	MaxDepth    int // the root has depth 0
}

// SubtreeStats walks the subtree rooted at n without recursion.
func SubtreeStats[D any](n Node[D]) TreeStats {
	var s TreeStats
	if n == nil {
		return s
	}

	type item struct {
		n     Node[D]
		depth int
	}

	stack := []item{{n, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		s.MaxDepth = max(s.MaxDepth, it.depth)
		if it.n.Algorithm() == SkipList {
			s.SkipLists++
		}
		if it.n.IsHigherOrder() {
			s.HigherOrder++
		}

		switch x := it.n.(type) {
		case *Leaf[D]:
			s.Leaves++
			s.Payloads += x.Size()
		case *IntermediateNode[D]:
			s.Nodes++
			for c := range x.All() {
				stack = append(stack, item{c, it.depth + 1})
			}
		}
	}
	return s
}
