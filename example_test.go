// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree_test

import (
	"fmt"

	"github.com/gaissmai/substtree"
	"github.com/gaissmai/substtree/term"
)

func Example() {
	sig := term.NewSignature()
	f, err := substtree.NewFactory(substtree.CompareLeafData, substtree.WithSignature(sig))
	if err != nil {
		panic(err)
	}

	root := f.CreateIntermediateNode(0, false)
	for i, src := range []string{"f(a)", "g(b)", "f(c)"} {
		tl := term.MustParse(sig, src)

		slot := root.ChildByTop(tl, true)
		if *slot == nil {
			*slot = f.CreateLeafWithTerm(tl, false)
		}
		leaf := (*slot).(*substtree.Leaf[substtree.LeafData])
		leaf.Insert(substtree.LeafData{Clause: uint64(i), Term: tl})
		*slot = f.EnsureLeafEfficiency(leaf, false)
	}
	root = f.EnsureIntermediateNodeEfficiency(root, false)

	fmt.Print(substtree.Sprint[substtree.LeafData](root))

	// Output:
	// ▼
	// └─ <empty> node S0 UnsortedList size=2
	//    ├─ f(a) leaf UnsortedList size=2 [C0/0:f(a) C2/0:f(c)]
	//    └─ g(b) leaf UnsortedList size=1 [C1/0:g(b)]
}

func ExampleFactory_EnsureLeafEfficiency() {
	f, err := substtree.NewFactory(substtree.CompareLeafData)
	if err != nil {
		panic(err)
	}

	leaf := f.CreateLeaf()
	for i := range 7 {
		leaf.Insert(substtree.LeafData{Clause: uint64(i)})
		leaf = f.EnsureLeafEfficiency(leaf, false)
		fmt.Println(leaf.Size(), leaf.Algorithm())
	}

	// Output:
	// 1 UnsortedList
	// 2 UnsortedList
	// 3 UnsortedList
	// 4 UnsortedList
	// 5 UnsortedList
	// 6 SkipList
	// 7 SkipList
}

func ExampleIsContractViolation() {
	f, err := substtree.NewFactory(substtree.CompareLeafData)
	if err != nil {
		panic(err)
	}

	defer func() {
		fmt.Println("contract violation:", substtree.IsContractViolation(recover()))
	}()

	leaf := f.CreateLeaf()
	leaf.Remove(substtree.LeafData{Clause: 42})

	// Output:
	// contract violation: true
}
