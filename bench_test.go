// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	"fmt"
	"testing"

	"github.com/gaissmai/substtree/term"
)

func BenchmarkLeafInsertRemove(b *testing.B) {
	f := newTestFactory(b)

	for _, size := range []int{4, 32, 1_024} {
		for _, algo := range []Algorithm{UnsortedList, SkipList} {
			if algo == UnsortedList && size > leafPromoteThreshold {
				continue
			}
			b.Run(fmt.Sprintf("%s/%d", algo, size), func(b *testing.B) {
				l := f.newLeaf(nodeBase{}, algo)
				for i := range size {
					l.Insert(ld(i))
				}
				query := ld(size)

				for b.Loop() {
					l.Insert(query)
					l.Remove(query)
				}
			})
		}
	}
}

func BenchmarkChildByTop(b *testing.B) {
	sig := term.NewSignature()
	f := newTestFactory(b, WithSignature(sig))

	for _, size := range []int{maxArrayNodeSize, 64, 1_024} {
		algo := SkipList
		if size <= maxArrayNodeSize {
			algo = UnsortedList
		}

		n := f.newNode(nodeBase{}, 0, false, algo)
		var query term.TermList
		for i := range size {
			query = term.MustParse(sig, fmt.Sprintf("c%d", i))
			fill(f, n.ChildByTop(query, true), query, false)
		}

		b.Run(fmt.Sprintf("%s/%d", algo, size), func(b *testing.B) {
			for b.Loop() {
				_ = n.ChildByTop(query, false)
			}
		})
	}
}

func BenchmarkDestroyChildren(b *testing.B) {
	sig := term.NewSignature()
	f := newTestFactory(b)
	var buf []Node[LeafData]

	for b.Loop() {
		b.StopTimer()
		root, _ := buildTree(f, sig, 4, 4)
		b.StartTimer()

		buf = root.DestroyChildrenWith(buf)
		f.Destroy(root)
	}
}
