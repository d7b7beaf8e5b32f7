// Package alg provides a read-only view of finite algebras and relational
// structures together with the structural predicates used to filter search
// results: conservativeness, tournaments, congruence lattices, subdirect
// irreducibility and subdirect decompositions.
//
// Views are cheap interfaces so that a structure still under search can be
// inspected in place. Snapshot copies a view into an independent Finite
// value when a result has to outlive the search step that produced it.
package alg

import (
	"errors"
	"fmt"
)

// ErrShape is returned when table dimensions do not match size and arity.
var ErrShape = errors.New("table shape mismatch")

// Operation is a total function on {0..size-1}.
type Operation interface {
	Symbol() string
	Arity() int
	Value(args ...int) int
}

// Relation is a subset of {0..size-1}^arity.
type Relation interface {
	Symbol() string
	Arity() int
	Holds(args ...int) bool
}

// Algebra is a finite structure with universe {0..Size()-1}.
type Algebra interface {
	Size() int
	Operations() []Operation
	Relations() []Relation
}

// Table is a dense operation table in row-major, base-size order.
type Table struct {
	name   string
	size   int
	arity  int
	values []int
}

// NewTable builds an operation table. values must have size^arity entries,
// each in [0,size).
func NewTable(name string, size, arity int, values []int) (*Table, error) {
	if len(values) != Power(size, arity) {
		return nil, fmt.Errorf("%w: %s has %d entries, want %d", ErrShape, name, len(values), Power(size, arity))
	}
	for i, v := range values {
		if v < 0 || v >= size {
			return nil, fmt.Errorf("%w: %s entry %d = %d outside [0,%d)", ErrShape, name, i, v, size)
		}
	}
	return &Table{name: name, size: size, arity: arity, values: append([]int(nil), values...)}, nil
}

func (t *Table) Symbol() string { return t.name }
func (t *Table) Arity() int     { return t.arity }

func (t *Table) Value(args ...int) int {
	return t.values[Index(t.size, args)]
}

// RelationTable is a dense relation table in row-major, base-size order.
type RelationTable struct {
	name   string
	size   int
	arity  int
	values []bool
}

// NewRelationTable builds a relation table with size^arity entries.
func NewRelationTable(name string, size, arity int, values []bool) (*RelationTable, error) {
	if len(values) != Power(size, arity) {
		return nil, fmt.Errorf("%w: %s has %d entries, want %d", ErrShape, name, len(values), Power(size, arity))
	}
	return &RelationTable{name: name, size: size, arity: arity, values: append([]bool(nil), values...)}, nil
}

func (r *RelationTable) Symbol() string { return r.name }
func (r *RelationTable) Arity() int     { return r.arity }

func (r *RelationTable) Holds(args ...int) bool {
	return r.values[Index(r.size, args)]
}

// Finite is a concrete Algebra.
type Finite struct {
	size int
	ops  []Operation
	rels []Relation
}

// New returns a Finite algebra over the given tables.
func New(size int, ops []Operation, rels []Relation) *Finite {
	return &Finite{size: size, ops: ops, rels: rels}
}

func (a *Finite) Size() int               { return a.size }
func (a *Finite) Operations() []Operation { return a.ops }
func (a *Finite) Relations() []Relation   { return a.rels }

// Snapshot copies every table of a into a new Finite.
func Snapshot(a Algebra) *Finite {
	n := a.Size()
	out := &Finite{size: n}
	for _, op := range a.Operations() {
		t := &Table{name: op.Symbol(), size: n, arity: op.Arity(), values: make([]int, Power(n, op.Arity()))}
		ForEachTuple(n, op.Arity(), func(i int, args []int) {
			t.values[i] = op.Value(args...)
		})
		out.ops = append(out.ops, t)
	}
	for _, rel := range a.Relations() {
		t := &RelationTable{name: rel.Symbol(), size: n, arity: rel.Arity(), values: make([]bool, Power(n, rel.Arity()))}
		ForEachTuple(n, rel.Arity(), func(i int, args []int) {
			t.values[i] = rel.Holds(args...)
		})
		out.rels = append(out.rels, t)
	}
	return out
}

// Power returns base^exp for small non-negative exponents.
func Power(base, exp int) int {
	p := 1
	for i := 0; i < exp; i++ {
		p *= base
	}
	return p
}

// CheckedPower returns base^exp and true, or 0 and false when the result
// would exceed limit. base and exp must be non-negative.
func CheckedPower(base, exp, limit int) (int, bool) {
	p := 1
	for i := 0; i < exp; i++ {
		if base != 0 && p > limit/base {
			return 0, false
		}
		p *= base
	}
	if p > limit {
		return 0, false
	}
	return p, true
}

// Index returns the row-major position of args in a base-size table.
// The caller guarantees 0 <= args[i] < size.
func Index(size int, args []int) int {
	idx := 0
	for _, a := range args {
		idx = idx*size + a
	}
	return idx
}

// ForEachTuple calls fn for every tuple of the given arity over {0..size-1}
// in row-major order. The args slice is reused between calls.
func ForEachTuple(size, arity int, fn func(index int, args []int)) {
	args := make([]int, arity)
	total := Power(size, arity)
	for i := 0; i < total; i++ {
		fn(i, args)
		for j := arity - 1; j >= 0; j-- {
			args[j]++
			if args[j] < size {
				break
			}
			args[j] = 0
		}
	}
}
