// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	"encoding/json"
	"maps"
	"slices"
)

// DumpNode is the serializable form of a node and its subtree.
type DumpNode[D any] struct {
	Term        string         `json:"term,omitempty"`
	Kind        string         `json:"kind"`
	Algorithm   string         `json:"algorithm"`
	HigherOrder bool           `json:"higherOrder,omitempty"`
	Type        string         `json:"type,omitempty"`
	ChildVar    *uint32        `json:"childVar,omitempty"`
	WithSorts   bool           `json:"withSorts,omitempty"`
	Sorts       []string       `json:"sorts,omitempty"`
	Size        int            `json:"size"`
	Payloads    []D            `json:"payloads,omitempty"`
	Children    []*DumpNode[D] `json:"children,omitempty"`
}

// Dump returns the subtree rooted at n as nested DumpNodes in the
// order of Fprint, or nil for a nil n.
func Dump[D any](n Node[D]) *DumpNode[D] {
	if n == nil {
		return nil
	}

	type item struct {
		n Node[D]
		d *DumpNode[D]
	}

	root := dumpOne(n)
	stack := []item{{n, root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, kid := range sortedChildren(it.n) {
			d := dumpOne(kid)
			it.d.Children = append(it.d.Children, d)
			stack = append(stack, item{kid, d})
		}
	}
	return root
}

func dumpOne[D any](n Node[D]) *DumpNode[D] {
	d := &DumpNode[D]{
		Kind:        kindOf(n),
		Algorithm:   n.Algorithm().String(),
		HigherOrder: n.IsHigherOrder(),
		Size:        n.Size(),
	}
	if t := n.Term(); !t.IsEmpty() {
		d.Term = t.String()
	}
	if typ := n.Type(); typ != nil {
		d.Type = typ.String()
	}

	switch x := n.(type) {
	case *Leaf[D]:
		d.Payloads = sortedPayloads(x)
	case *IntermediateNode[D]:
		cv := x.childVar
		d.ChildVar = &cv
		d.WithSorts = x.withSorts
		d.Sorts = sortNames(x)
	}
	return d
}

// sortNames returns the result sorts recorded by a sort discriminating node.
func sortNames[D any](n *IntermediateNode[D]) []string {
	var names []string
	for _, s := range slices.Sorted(maps.Keys(n.sortIndex)) {
		names = append(names, n.sig.SortName(s))
	}
	return names
}

// DumpJSON dumps the subtree rooted at n as JSON.
func DumpJSON[D any](n Node[D]) ([]byte, error) {
	return json.Marshal(Dump(n))
}
