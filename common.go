// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

const (
	// leafPromoteThreshold is the size an unsorted leaf may reach before
	// it is assimilated into a skip list.
	leafPromoteThreshold = 5

	// nodePromoteThreshold is the fan-out an array-backed intermediate node
	// may reach before it is assimilated into a skip list. It must stay below
	// maxArrayNodeSize.
	nodePromoteThreshold = 3

	// maxArrayNodeSize is the hard capacity of an array-backed intermediate node.
	maxArrayNodeSize = 4
)

// Algorithm is the storage strategy of a node.
type Algorithm uint8

const (
	// UnsortedList is the cheap small-size strategy: a linked list in
	// leaves and a fixed array in intermediate nodes.
	UnsortedList Algorithm = iota

	// SkipList is the ordered strategy nodes are promoted to.
	SkipList
)

func (a Algorithm) String() string {
	switch a {
	case UnsortedList:
		return "UnsortedList"
	case SkipList:
		return "SkipList"
	default:
		return "Algorithm(" + strconv.Itoa(int(a)) + ")"
	}
}

// assertf panics with an assertion failure. It is the single exit for
// broken structural invariants, callers never recover from it.
func assertf(format string, args ...any) {
	panic(errors.AssertionFailedWithDepthf(1, format, args...))
}

// IsContractViolation reports whether a value recovered from a panic
// signals a broken structural invariant of the index, e.g. removing a
// key that is not present.
func IsContractViolation(r any) bool {
	err, ok := r.(error)
	return ok && errors.IsAssertionFailure(err)
}
