// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package term provides the minimal first-order and applicative term
// representation consumed by the substitution tree node layer.
//
// A [TermList] is a small value: empty, an ordinary variable, a special
// variable (the slot variables of a substitution tree) or a pointer to a
// compound [Term]. Terms are immutable after construction and are built
// through a [Signature], which owns the symbol and type tables.
package term

import (
	"cmp"
	"iter"
	"strconv"
	"strings"
)

// Kind discriminates the variants of a TermList.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindOrdinaryVar
	KindSpecialVar
	KindTerm
)

// TermList is a variable or a reference to a compound term.
// The zero value is the empty term list.
type TermList struct {
	kind Kind
	num  uint32
	term *Term
}

// Term is a compound term: a functor applied to arguments.
//
// For applicative higher-order terms the head may itself be a variable;
// then varHead is set and functor holds the number of that variable.
type Term struct {
	functor uint32
	name    string
	varHead bool
	args    []TermList
}

// Var returns the ordinary variable Xn.
func Var(n uint32) TermList {
	return TermList{kind: KindOrdinaryVar, num: n}
}

// SpecialVar returns the special variable Sn.
func SpecialVar(n uint32) TermList {
	return TermList{kind: KindSpecialVar, num: n}
}

// Kind returns the variant of tl.
func (tl TermList) Kind() Kind { return tl.kind }

// IsEmpty reports whether tl is the zero value.
func (tl TermList) IsEmpty() bool { return tl.kind == KindEmpty }

// IsVar reports whether tl is an ordinary or special variable.
func (tl TermList) IsVar() bool {
	return tl.kind == KindOrdinaryVar || tl.kind == KindSpecialVar
}

func (tl TermList) IsOrdinaryVar() bool { return tl.kind == KindOrdinaryVar }
func (tl TermList) IsSpecialVar() bool { return tl.kind == KindSpecialVar }
func (tl TermList) IsTerm() bool { return tl.kind == KindTerm }

// Var returns the variable number, it panics if tl is not a variable.
func (tl TermList) Var() uint32 {
	if !tl.IsVar() {
		panic("term: Var called on non-variable " + tl.String())
	}
	return tl.num
}

// Term returns the compound term, it panics if tl is not a term.
func (tl TermList) Term() *Term {
	if tl.kind != KindTerm {
		panic("term: Term called on non-term " + tl.String())
	}
	return tl.term
}

// HasVarHead reports whether tl is a compound term with a variable head.
func (tl TermList) HasVarHead() bool {
	return tl.kind == KindTerm && tl.term.varHead
}

// String returns the textual form, e.g. "f(X0,g(a))".
func (tl TermList) String() string {
	var sb strings.Builder
	tl.write(&sb)
	return sb.String()
}

// MarshalText implements [encoding.TextMarshaler] with the textual form.
func (tl TermList) MarshalText() ([]byte, error) {
	return []byte(tl.String()), nil
}

func (tl TermList) write(sb *strings.Builder) {
	switch tl.kind {
	case KindEmpty:
		sb.WriteString("<empty>")
	case KindOrdinaryVar:
		sb.WriteByte('X')
		sb.WriteString(strconv.FormatUint(uint64(tl.num), 10))
	case KindSpecialVar:
		sb.WriteByte('S')
		sb.WriteString(strconv.FormatUint(uint64(tl.num), 10))
	case KindTerm:
		tl.term.write(sb)
	}
}

func (t *Term) Functor() uint32 { return t.functor }
func (t *Term) Name() string { return t.name }
func (t *Term) Arity() int { return len(t.args) }
func (t *Term) Arg(i int) TermList { return t.args[i] }
func (t *Term) HasVarHead() bool { return t.varHead }
func (t *Term) Args() []TermList { return t.args }
func (t *Term) TermList() TermList { return TermList{kind: KindTerm, term: t} }
func (t *Term) String() string { return t.TermList().String() }
func (t *Term) isConstant() bool { return len(t.args) == 0 }

func (t *Term) headString() string {
	if t.varHead {
		return "X" + strconv.FormatUint(uint64(t.functor), 10)
	}
	return t.name
}

func (t *Term) write(sb *strings.Builder) {
	sb.WriteString(t.headString())
	if t.isConstant() {
		return
	}
	sb.WriteByte('(')
	for i, arg := range t.args {
		if i != 0 {
			sb.WriteByte(',')
		}
		arg.write(sb)
	}
	sb.WriteByte(')')
}

// SameTop reports whether a and b have the same top symbol: the same
// variable, or compound terms with the same functor and head kind.
// Arguments are not compared.
func SameTop(a, b TermList) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindEmpty:
		return true
	case KindTerm:
		return a.term.functor == b.term.functor && a.term.varHead == b.term.varHead
	default:
		return a.num == b.num
	}
}

// TopKey is the comparable form of a term list's top symbol.
// Two term lists have equal keys iff SameTop holds.
type TopKey struct {
	Kind    Kind
	VarHead bool
	ID      uint32
}

// Top returns the top key of tl.
func Top(tl TermList) TopKey {
	switch tl.kind {
	case KindEmpty:
		return TopKey{}
	case KindTerm:
		return TopKey{Kind: KindTerm, VarHead: tl.term.varHead, ID: tl.term.functor}
	default:
		return TopKey{Kind: tl.kind, ID: tl.num}
	}
}

// FunctionTop returns the top key of any term headed by function symbol f.
func FunctionTop(f uint32) TopKey {
	return TopKey{Kind: KindTerm, ID: f}
}

// CompareTop is a total order on top keys.
func CompareTop(a, b TopKey) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	if a.VarHead != b.VarHead {
		if a.VarHead {
			return 1
		}
		return -1
	}
	return cmp.Compare(a.ID, b.ID)
}

// Compare is a structural total order on term lists.
func Compare(a, b TermList) int {
	if c := CompareTop(Top(a), Top(b)); c != 0 {
		return c
	}
	if a.kind != KindTerm || a.term == b.term {
		return 0
	}
	if c := cmp.Compare(len(a.term.args), len(b.term.args)); c != 0 {
		return c
	}
	for i := range a.term.args {
		if c := Compare(a.term.args[i], b.term.args[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Subterms yields tl and all its subterms in preorder.
// The traversal uses an explicit stack, deep terms are safe.
func Subterms(tl TermList) iter.Seq[TermList] {
	return func(yield func(TermList) bool) {
		stack := []TermList{tl}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(cur) {
				return
			}
			if cur.kind != KindTerm {
				continue
			}
			for i := len(cur.term.args) - 1; i >= 0; i-- {
				stack = append(stack, cur.term.args[i])
			}
		}
	}
}
