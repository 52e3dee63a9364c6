// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/gaissmai/substtree/term"
)

// generator builds random terms over its own signature.
type generator struct {
	sig      *term.Signature
	prng     *rand.Rand
	maxDepth int

	consts   []uint32
	funcs    []uint32
	headVars []uint32
	nat      term.SortID
}

const ordinaryVars = 4

func newGenerator(sig *term.Signature, prng *rand.Rand, w Workload) *generator {
	g := &generator{sig: sig, prng: prng, maxDepth: w.MaxDepth}
	g.nat = sig.AddSort("nat")

	// constants of both sorts, the others are $i functions of arity 1..3
	for i := range 3 {
		g.consts = append(g.consts, sig.AddFunction(fmt.Sprintf("c%d", i), sig.DefaultType(0)))
	}
	g.consts = append(g.consts, sig.AddFunction("zero", sig.Type(g.nat)))
	for i := range w.Functions {
		g.funcs = append(g.funcs, sig.AddFunction(fmt.Sprintf("f%d", i), sig.DefaultType(1+i%3)))
	}

	// head variables are numbered above the ordinary ones
	for i := range w.HeadVars {
		v := uint32(ordinaryVars + i)
		sig.SetVarType(v, sig.DefaultType(1+i%2))
		g.headVars = append(g.headVars, v)
	}
	return g
}

func (g *generator) term() term.TermList {
	return g.build(0)
}

func (g *generator) build(depth int) term.TermList {
	if depth >= g.maxDepth || g.prng.IntN(3) == 0 {
		if g.prng.IntN(2) == 0 {
			return term.Var(uint32(g.prng.IntN(ordinaryVars)))
		}
		return g.sig.Const(g.consts[g.prng.IntN(len(g.consts))])
	}

	if len(g.headVars) > 0 && g.prng.IntN(8) == 0 {
		v := g.headVars[g.prng.IntN(len(g.headVars))]
		typ, _ := g.sig.VarType(v)
		return g.sig.VarHeadApp(v, g.args(typ.Arity(), depth)...)
	}

	f := g.funcs[g.prng.IntN(len(g.funcs))]
	return g.sig.App(f, g.args(g.sig.Function(f).Arity, depth)...)
}

func (g *generator) args(n, depth int) []term.TermList {
	args := make([]term.TermList, n)
	for i := range args {
		args[i] = g.build(depth + 1)
	}
	return args
}
