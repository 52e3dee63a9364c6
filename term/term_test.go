// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package term

import (
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsEmpty(t *testing.T) {
	t.Parallel()

	var tl TermList
	assert.True(t, tl.IsEmpty())
	assert.False(t, tl.IsVar())
	assert.False(t, tl.IsTerm())
	assert.Equal(t, "<empty>", tl.String())
}

func TestSameTop(t *testing.T) {
	t.Parallel()

	sig := NewSignature()
	fa := MustParse(sig, "f(a,X0)")
	fb := MustParse(sig, "f(b,g(X1))")
	ga := MustParse(sig, "g(a)")
	hv := MustParse(sig, "X7(a)")
	hw := MustParse(sig, "X7(b)")

	tests := []struct {
		name string
		a, b TermList
		want bool
	}{
		{"same functor, other args", fa, fb, true},
		{"other functor", fa, ga, false},
		{"same variable", Var(3), Var(3), true},
		{"other variable", Var(3), Var(4), false},
		{"ordinary vs special", Var(3), SpecialVar(3), false},
		{"var vs term", Var(0), ga, false},
		{"same var head", hv, hw, true},
		{"var head vs function", hv, fa, false},
		{"empty", TermList{}, TermList{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameTop(tt.a, tt.b))
			assert.Equal(t, tt.want, Top(tt.a) == Top(tt.b), "TopKey must agree with SameTop")
		})
	}
}

func TestVarHeadDoesNotCollideWithFunction(t *testing.T) {
	t.Parallel()

	sig := NewSignature()
	// function number 0 and head variable number 0
	f := MustParse(sig, "c")
	require.Equal(t, uint32(0), f.Term().Functor())
	v := MustParse(sig, "X0(c)")
	require.Equal(t, uint32(0), v.Term().Functor())

	assert.False(t, SameTop(f, v))
	assert.NotEqual(t, 0, CompareTop(Top(f), Top(v)))
}

func TestCompareIsTotalOrder(t *testing.T) {
	t.Parallel()

	sig := NewSignature()
	srcs := []string{"a", "b", "f(a,b)", "f(a,a)", "f(b,a)", "g(f(a,a))", "X0", "X1", "S0", "X2(a)"}
	var terms []TermList
	for _, s := range srcs {
		terms = append(terms, MustParse(sig, s))
	}

	for _, a := range terms {
		assert.Equal(t, 0, Compare(a, a))
		for _, b := range terms {
			assert.Equal(t, -Compare(b, a), Compare(a, b), "%s vs %s", a, b)
		}
	}

	sorted := slices.Clone(terms)
	slices.SortFunc(sorted, Compare)
	for i := 1; i < len(sorted); i++ {
		assert.Negative(t, Compare(sorted[i-1], sorted[i]))
	}

	assert.Zero(t, Compare(MustParse(sig, "f(a,b)"), MustParse(sig, "f(a,b)")))
}

func TestSubtermsPreorder(t *testing.T) {
	t.Parallel()

	sig := NewSignature()
	tl := MustParse(sig, "f(g(a),X0,h(b,c))")

	var got []string
	for st := range Subterms(tl) {
		got = append(got, st.String())
	}
	want := []string{"f(g(a),X0,h(b,c))", "g(a)", "a", "X0", "h(b,c)", "b", "c"}
	assert.Equal(t, want, got)
}

func TestSubtermsDeepTerm(t *testing.T) {
	t.Parallel()

	sig := NewSignature()
	s := sig.AddFunction("s", sig.DefaultType(1))
	z := sig.AddFunction("z", sig.DefaultType(0))

	tl := sig.Const(z)
	const depth = 100_000
	for range depth {
		tl = sig.App(s, tl)
	}

	n := 0
	for range Subterms(tl) {
		n++
	}
	assert.Equal(t, depth+1, n)
}

func TestSignatureInterning(t *testing.T) {
	t.Parallel()

	sig := NewSignature()
	nat := sig.AddSort("nat")

	t1 := sig.Type(nat, nat, DefaultSort)
	t2 := sig.Type(nat, nat, DefaultSort)
	t3 := sig.Type(nat, DefaultSort, nat)

	assert.Same(t, t1, t2)
	assert.NotSame(t, t1, t3)
	assert.Equal(t, "(nat * $i) > nat", t1.String())
	assert.Equal(t, 2, t1.Arity())
	assert.Equal(t, nat, t1.Result())
	assert.Equal(t, nat, sig.AddSort("nat"))
}

func TestHeadType(t *testing.T) {
	t.Parallel()

	sig := NewSignature()
	ty := sig.Type(DefaultSort, DefaultSort)
	sig.SetVarType(4, ty)
	f := sig.AddFunction("f", ty)

	hv := sig.VarHeadApp(4, MustParse(sig, "a"))
	fa := sig.App(f, MustParse(sig, "a"))

	assert.Same(t, ty, sig.HeadType(hv.Term()))
	assert.Same(t, ty, sig.HeadType(fa.Term()))
	assert.True(t, hv.HasVarHead())
	assert.False(t, fa.HasVarHead())

	// undeclared head variable
	raw := &Term{functor: 99, varHead: true}
	assert.Panics(t, func() { sig.HeadType(raw) })
}

func TestSignaturePanics(t *testing.T) {
	t.Parallel()

	sig := NewSignature()
	f := sig.AddFunction("f", sig.DefaultType(2))

	assert.Panics(t, func() { sig.App(f, Var(0)) }, "arity mismatch")
	assert.Panics(t, func() { sig.AddFunction("f", sig.DefaultType(1)) }, "redeclaration")
	assert.Panics(t, func() { sig.VarHeadApp(3, Var(0)) }, "undeclared head variable")
	assert.Panics(t, func() { Var(0).Term() })
	assert.Panics(t, func() { sig.Const(sig.AddFunction("c", sig.DefaultType(0))).Var() })
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []string{
		"a",
		"X0",
		"S12",
		"f(a,X0)",
		"g(f(a,b),h(X1,S2))",
		"X3(a,f(b,c))",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			sig := NewSignature()
			tl, err := Parse(sig, src)
			require.NoError(t, err)
			assert.Equal(t, src, tl.String())
		})
	}
}

func TestParseWhitespace(t *testing.T) {
	t.Parallel()

	sig := NewSignature()
	tl, err := Parse(sig, "  f( a , X1 )  ")
	require.NoError(t, err)
	assert.Equal(t, "f(a,X1)", tl.String())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []string{
		"",
		"f(",
		"f(a",
		"f(a;b)",
		"X",
		"S1(a)",
		"f(a) b",
		"(a)",
		"X99999999999(a)",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(NewSignature(), src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax), "%v", err)
		})
	}
}

func TestParseArityMismatch(t *testing.T) {
	t.Parallel()

	sig := NewSignature()
	_, err := Parse(sig, "f(a,b)")
	require.NoError(t, err)

	_, err = Parse(sig, "f(a)")
	require.ErrorIs(t, err, ErrSyntax)

	_, err = Parse(sig, "X1(a)")
	require.NoError(t, err)
	_, err = Parse(sig, "X1(a,b)")
	require.ErrorIs(t, err, ErrSyntax)
}
