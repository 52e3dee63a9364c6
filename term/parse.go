// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package term

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// ErrSyntax is wrapped by all errors returned from Parse.
var ErrSyntax = errors.New("term: syntax error")

// Parse reads a term in the textual form produced by TermList.String.
//
//	X3          ordinary variable
//	S0          special variable
//	a, f(X0,b)  function symbols, lower case
//	X1(a,b)     applicative term with a variable head
//
// Unknown function symbols and undeclared head variables are declared in sig
// with the default type $i^n -> $i. Using a known symbol with another arity
// is an error.
func Parse(sig *Signature, src string) (TermList, error) {
	p := &parser{sig: sig, src: src}
	tl, err := p.term()
	if err != nil {
		return TermList{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return TermList{}, p.errorf("trailing input %q", p.src[p.pos:])
	}
	return tl, nil
}

// MustParse is like Parse but panics on error, for tests and examples.
func MustParse(sig *Signature, src string) TermList {
	tl, err := Parse(sig, src)
	if err != nil {
		panic(err)
	}
	return tl
}

type parser struct {
	sig *Signature
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return errors.Wrapf(ErrSyntax, "offset %d: "+format, append([]any{p.pos}, args...)...)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdent(c byte) bool {
	return isLower(c) || isDigit(c) || c == '_' || (c >= 'A' && c <= 'Z')
}

func (p *parser) term() (TermList, error) {
	p.skipSpace()
	c := p.peek()
	switch {
	case c == 'X' || c == 'S':
		return p.variable()
	case isLower(c):
		return p.application()
	case c == 0:
		return TermList{}, p.errorf("unexpected end of input")
	default:
		return TermList{}, p.errorf("unexpected %q", c)
	}
}

func (p *parser) variable() (TermList, error) {
	special := p.src[p.pos] == 'S'
	p.pos++
	start := p.pos
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if start == p.pos {
		return TermList{}, p.errorf("variable without number")
	}
	n, err := strconv.ParseUint(p.src[start:p.pos], 10, 32)
	if err != nil {
		return TermList{}, p.errorf("variable number: %v", err)
	}
	v := uint32(n)

	p.skipSpace()
	if p.peek() != '(' {
		if special {
			return SpecialVar(v), nil
		}
		return Var(v), nil
	}
	if special {
		return TermList{}, p.errorf("special variable S%d cannot be applied", v)
	}

	args, err := p.args()
	if err != nil {
		return TermList{}, err
	}
	ot, ok := p.sig.VarType(v)
	if !ok {
		ot = p.sig.DefaultType(len(args))
		p.sig.SetVarType(v, ot)
	}
	if ot.Arity() != len(args) {
		return TermList{}, p.errorf("head variable X%d of type %s applied to %d arguments", v, ot, len(args))
	}
	return p.sig.VarHeadApp(v, args...), nil
}

func (p *parser) application() (TermList, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdent(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]

	var args []TermList
	p.skipSpace()
	if p.peek() == '(' {
		var err error
		if args, err = p.args(); err != nil {
			return TermList{}, err
		}
	}

	f, ok := p.sig.FunctionByName(name)
	if !ok {
		f = p.sig.AddFunction(name, p.sig.DefaultType(len(args)))
	}
	if fn := p.sig.Function(f); fn.Arity != len(args) {
		return TermList{}, p.errorf("%s/%d applied to %d arguments", name, fn.Arity, len(args))
	}
	return p.sig.App(f, args...), nil
}

func (p *parser) args() ([]TermList, error) {
	p.pos++ // '('
	var args []TermList
	for {
		arg, err := p.term()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return args, nil
		default:
			return nil, p.errorf("expected ',' or ')'")
		}
	}
}
