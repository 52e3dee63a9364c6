// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package term

import (
	"fmt"
	"strconv"
	"strings"
)

// SortID identifies a sort registered in a Signature.
type SortID uint32

// DefaultSort is the sort $i every Signature starts with.
const DefaultSort SortID = 0

// OperatorType is the type of a function symbol or of a head variable:
// argument sorts and a result sort.
//
// Types are interned by their Signature, two types are equal iff the
// pointers are equal.
type OperatorType struct {
	args   []SortID
	result SortID
	key    string
}

func (ot *OperatorType) Arity() int { return len(ot.args) }
func (ot *OperatorType) Arg(i int) SortID { return ot.args[i] }
func (ot *OperatorType) Result() SortID { return ot.result }
func (ot *OperatorType) String() string { return ot.key }

// Function is a declared function symbol.
type Function struct {
	Name  string
	Arity int
	Type  *OperatorType
}

// Signature owns sorts, function symbols, interned operator types and
// the declared types of head variables.
//
// A Signature is not safe for concurrent mutation.
type Signature struct {
	sorts      []string
	sortByName map[string]SortID

	funcs      []Function
	funcByName map[string]uint32

	types    map[string]*OperatorType
	varTypes map[uint32]*OperatorType
}

// NewSignature returns a signature holding only the default sort $i.
func NewSignature() *Signature {
	s := &Signature{
		sortByName: make(map[string]SortID),
		funcByName: make(map[string]uint32),
		types:      make(map[string]*OperatorType),
		varTypes:   make(map[uint32]*OperatorType),
	}
	s.AddSort("$i")
	return s
}

// AddSort registers a sort, idempotent by name.
func (s *Signature) AddSort(name string) SortID {
	if id, ok := s.sortByName[name]; ok {
		return id
	}
	id := SortID(len(s.sorts))
	s.sorts = append(s.sorts, name)
	s.sortByName[name] = id
	return id
}

// SortName returns the name of sort id.
func (s *Signature) SortName(id SortID) string {
	return s.sorts[id]
}

// Type returns the interned operator type args -> result.
func (s *Signature) Type(result SortID, args ...SortID) *OperatorType {
	key := s.typeKey(result, args)
	if ot, ok := s.types[key]; ok {
		return ot
	}
	ot := &OperatorType{args: append([]SortID(nil), args...), result: result, key: key}
	s.types[key] = ot
	return ot
}

func (s *Signature) typeKey(result SortID, args []SortID) string {
	var sb strings.Builder
	if len(args) > 0 {
		sb.WriteByte('(')
		for i, a := range args {
			if i != 0 {
				sb.WriteString(" * ")
			}
			sb.WriteString(s.sortString(a))
		}
		sb.WriteString(") > ")
	}
	sb.WriteString(s.sortString(result))
	return sb.String()
}

func (s *Signature) sortString(id SortID) string {
	if int(id) < len(s.sorts) {
		return s.sorts[id]
	}
	return "s" + strconv.FormatUint(uint64(id), 10)
}

// DefaultType returns the type $i^arity -> $i.
func (s *Signature) DefaultType(arity int) *OperatorType {
	args := make([]SortID, arity)
	return s.Type(DefaultSort, args...)
}

// AddFunction declares a function symbol and returns its number.
// Declaring an existing name again returns the existing number, it panics
// if the type differs.
func (s *Signature) AddFunction(name string, typ *OperatorType) uint32 {
	if f, ok := s.funcByName[name]; ok {
		if s.funcs[f].Type != typ {
			panic(fmt.Sprintf("term: function %s redeclared with type %s, was %s", name, typ, s.funcs[f].Type))
		}
		return f
	}
	f := uint32(len(s.funcs))
	s.funcs = append(s.funcs, Function{Name: name, Arity: typ.Arity(), Type: typ})
	s.funcByName[name] = f
	return f
}

// FunctionByName looks up a declared function symbol.
func (s *Signature) FunctionByName(name string) (uint32, bool) {
	f, ok := s.funcByName[name]
	return f, ok
}

// Function returns the declaration of function symbol f.
func (s *Signature) Function(f uint32) Function {
	return s.funcs[f]
}

// FunctionType returns the declared type of function symbol f.
func (s *Signature) FunctionType(f uint32) *OperatorType {
	return s.funcs[f].Type
}

// SetVarType declares the type of head variable v.
func (s *Signature) SetVarType(v uint32, typ *OperatorType) {
	s.varTypes[v] = typ
}

// VarType returns the declared type of head variable v.
func (s *Signature) VarType(v uint32) (*OperatorType, bool) {
	ot, ok := s.varTypes[v]
	return ot, ok
}

// HeadType resolves the type of the head of t: the declared type of the
// head variable for var-headed terms, the function type otherwise.
// It panics if a head variable has no declared type.
func (s *Signature) HeadType(t *Term) *OperatorType {
	if !t.varHead {
		return s.FunctionType(t.functor)
	}
	ot, ok := s.varTypes[t.functor]
	if !ok {
		panic(fmt.Sprintf("term: head variable X%d of %s has no declared type", t.functor, t))
	}
	return ot
}

// App builds the term f(args...). It panics on arity mismatch.
func (s *Signature) App(f uint32, args ...TermList) TermList {
	fn := s.funcs[f]
	if fn.Arity != len(args) {
		panic(fmt.Sprintf("term: %s/%d applied to %d arguments", fn.Name, fn.Arity, len(args)))
	}
	t := &Term{functor: f, name: fn.Name, args: append([]TermList(nil), args...)}
	return t.TermList()
}

// Const builds the constant f.
func (s *Signature) Const(f uint32) TermList {
	return s.App(f)
}

// VarHeadApp builds the applicative term Xv(args...).
// The head variable must have a declared type of matching arity.
func (s *Signature) VarHeadApp(v uint32, args ...TermList) TermList {
	ot, ok := s.varTypes[v]
	if !ok {
		panic(fmt.Sprintf("term: head variable X%d has no declared type", v))
	}
	if ot.Arity() != len(args) {
		panic(fmt.Sprintf("term: head variable X%d of type %s applied to %d arguments", v, ot, len(args)))
	}
	t := &Term{functor: v, varHead: true, args: append([]TermList(nil), args...)}
	return t.TermList()
}

// ResultSort returns the sort of the top symbol of a compound term.
func (s *Signature) ResultSort(t *Term) SortID {
	return s.HeadType(t).Result()
}
