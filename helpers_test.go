// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaissmai/substtree/term"
)

func newTestFactory(t testing.TB, opts ...Option) *Factory[LeafData] {
	t.Helper()
	f, err := NewFactory(CompareLeafData, opts...)
	require.NoError(t, err)
	return f
}

// ld returns distinct payloads for distinct i.
func ld(i int) LeafData {
	return LeafData{Clause: uint64(i), Literal: uint32(i % 3), Term: term.Var(uint32(i))}
}

// requireContractViolation runs fn and expects it to panic with a
// broken invariant.
func requireContractViolation(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a contract violation")
		require.True(t, IsContractViolation(r), "unexpected panic: %v", r)
	}()
	fn()
}

// hoSignature declares head variables X1 and X2 of type $i > $i and X3
// of type ($i * $i) > $i.
func hoSignature(t testing.TB) *term.Signature {
	t.Helper()
	sig := term.NewSignature()
	term.MustParse(sig, "X1(a)")
	term.MustParse(sig, "X2(a)")
	term.MustParse(sig, "X3(a,a)")
	term.MustParse(sig, "f(a)")
	term.MustParse(sig, "g(a,a)")
	return sig
}
