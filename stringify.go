// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gaissmai/substtree/term"
)

// Sprint returns the diagram of Fprint as string.
// If Fprint returns an error, Sprint panics.
func Sprint[D any](n Node[D]) string {
	w := new(strings.Builder)
	if err := Fprint(w, n); err != nil {
		panic(err)
	}
	return w.String()
}

// Fprint writes a hierarchical diagram of the subtree rooted at n to w.
// Children are ordered by their terms, payloads by the comparator.
//
//	▼
//	└─ <empty> node S0 UnsortedList size=2
//	   ├─ f(S1) node S1 SkipList size=4
//	   │  └─ ...
//	   └─ a leaf UnsortedList size=1 [C1/0:a]
//
// Deep trees are printed without recursion.
func Fprint[D any](w io.Writer, n Node[D]) error {
	if n == nil {
		return nil
	}
	if _, err := fmt.Fprint(w, "▼\n"); err != nil {
		return err
	}

	type item struct {
		n    Node[D]
		pad  string
		last bool
	}

	stack := []item{{n: n, last: true}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// symbols used in tree
		glyphe, spacer := "├─ ", "│  "
		if it.last {
			glyphe, spacer = "└─ ", "   "
		}

		if _, err := fmt.Fprintf(w, "%s%s%s\n", it.pad, glyphe, describe(it.n)); err != nil {
			return err
		}

		kids := sortedChildren(it.n)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, item{n: kids[i], pad: it.pad + spacer, last: i == len(kids)-1})
		}
	}
	return nil
}

// describe formats a single node without its children.
func describe[D any](n Node[D]) string {
	var sb strings.Builder
	sb.WriteString(n.Term().String())

	switch x := n.(type) {
	case *Leaf[D]:
		sb.WriteString(" leaf ")
	case *IntermediateNode[D]:
		fmt.Fprintf(&sb, " node S%d ", x.childVar)
	}
	sb.WriteString(n.Algorithm().String())

	if n.IsHigherOrder() {
		sb.WriteString(" ho")
		if typ := n.Type(); typ != nil {
			sb.WriteString(" type=" + typ.String())
		}
	}
	if in, ok := n.(*IntermediateNode[D]); ok && in.withSorts {
		sb.WriteString(" sorts")
	}
	fmt.Fprintf(&sb, " size=%d", n.Size())

	if l, ok := n.(*Leaf[D]); ok && !l.IsEmpty() {
		fmt.Fprintf(&sb, " %v", sortedPayloads(l))
	}
	return sb.String()
}

func sortedChildren[D any](n Node[D]) []Node[D] {
	in, ok := n.(*IntermediateNode[D])
	if !ok {
		return nil
	}
	return slices.SortedFunc(in.All(), func(a, b Node[D]) int {
		return term.Compare(a.Term(), b.Term())
	})
}

func sortedPayloads[D any](l *Leaf[D]) []D {
	return slices.SortedFunc(l.All(), l.payloadCmp())
}
