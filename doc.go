// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package substtree provides the node layer of a substitution tree, the
// term index of saturation-based theorem provers.
//
// A substitution tree is a trie over the term structure of the indexed
// terms. Intermediate nodes branch on the top symbol bound to one of the
// special variables S0, S1, ...; leaves hold the payloads, e.g. the
// [LeafData] occurrences of an indexed term. Higher-order nodes branch
// children with a variable head on the type of that head.
//
// Every node starts with cheap unsorted storage and is promoted to a skip
// list by the [Factory] once it grows past a threshold:
//
//   - Leaf:             linked list -> skip list, above 5 payloads
//   - IntermediateNode: fixed array -> skip list, above 3 children
//
// Promotion is a one-way ratchet. The Factory returns the promoted node,
// the caller replaces the old one in the parent slot:
//
//	slot := parent.ChildByTop(t, true)
//	if *slot == nil {
//		*slot = f.CreateLeafWithTerm(t, false)
//	}
//	leaf := (*slot).(*substtree.Leaf[substtree.LeafData])
//	leaf.Insert(ld)
//	*slot = f.EnsureLeafEfficiency(leaf, false)
//
// Broken structural invariants, like removing an absent payload or child,
// panic with an assertion failure, see [IsContractViolation].
//
// The package does no locking. A Factory and its trees must be used by a
// single goroutine at a time, independent indexes use independent factories.
package substtree
