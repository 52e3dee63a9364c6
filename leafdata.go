// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	"cmp"
	"strconv"

	"github.com/gaissmai/substtree/term"
)

// LeafData is the default payload: an occurrence of an indexed term in
// a literal of a clause.
type LeafData struct {
	Clause  uint64        `json:"clause"`
	Literal uint32        `json:"literal"`
	Term    term.TermList `json:"term"`
}

// CompareLeafData orders by clause, literal and then term.
func CompareLeafData(a, b LeafData) int {
	if c := cmp.Compare(a.Clause, b.Clause); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Literal, b.Literal); c != 0 {
		return c
	}
	return term.Compare(a.Term, b.Term)
}

func (ld LeafData) String() string {
	return "C" + strconv.FormatUint(ld.Clause, 10) + "/" + strconv.FormatUint(uint64(ld.Literal), 10) + ":" + ld.Term.String()
}
