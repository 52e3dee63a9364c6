// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bitset implements a growable set of small non-negative integers.
//
// It is used by intermediate nodes with sort discrimination to remember
// which function symbols might exist as top of a child, per result sort.
// Function numbers are dense, a word slice is the natural representation.
package bitset

import (
	"iter"
	"math/bits"
)

const (
	wordSize     = 64
	log2WordSize = 6
)

// BitSet is a set of bits, the zero value is an empty set.
type BitSet []uint64

func wordsNeeded(i uint) int {
	return int((i + (wordSize - 1)) >> log2WordSize)
}

// Set bit i, the bitset grows as needed.
func (b *BitSet) Set(i uint) {
	if w := int(i >> log2WordSize); w >= len(*b) {
		grown := make(BitSet, wordsNeeded(i+1))
		copy(grown, *b)
		*b = grown
	}
	(*b)[i>>log2WordSize] |= 1 << (i & (wordSize - 1))
}

// Clear bit i, a no-op beyond the current capacity.
func (b BitSet) Clear(i uint) {
	if w := int(i >> log2WordSize); w < len(b) {
		b[w] &^= 1 << (i & (wordSize - 1))
	}
}

// Test whether bit i is set.
func (b BitSet) Test(i uint) bool {
	w := int(i >> log2WordSize)
	return w < len(b) && b[w]&(1<<(i&(wordSize-1))) != 0
}

// IsEmpty reports whether no bit is set.
func (b BitSet) IsEmpty() bool {
	for _, word := range b {
		if word != 0 {
			return false
		}
	}
	return true
}

// All iterates over all the set bits in ascending order.
func (b BitSet) All() iter.Seq[uint] {
	return func(yield func(u uint) bool) {
		for idx, word := range b {
			for word != 0 {
				u := uint(idx<<log2WordSize + bits.TrailingZeros64(word))
				if !yield(u) {
					return
				}
				// clear the rightmost set bit
				word &= word - 1
			}
		}
	}
}
