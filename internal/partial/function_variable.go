package partial

import (
	"fmt"

	"github.com/roach88/modelgen/internal/alg"
)

// MaxCells bounds the number of cells a single table may hold.
const MaxCells = 1 << 24

// FunctionVariable is a table of size^arity cells, each a Variable with
// domain [0,codomain). Cells are stored row-major in base size.
//
// A FunctionVariable doubles as an alg.Operation so a fully assigned
// structure can be handed to printers and predicates without copying.
type FunctionVariable struct {
	name  string
	size  int
	arity int
	cells []*Variable
}

// NewFunctionVariable allocates the table. Its cells have no markers yet;
// callers issue them with TakeMarker in the order the search visits them.
func NewFunctionVariable(name string, size, arity, codomain int) (*FunctionVariable, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d for %s", ErrDomain, size, name)
	}
	if arity < 0 {
		return nil, fmt.Errorf("%w: negative arity %d for %s", ErrArity, arity, name)
	}
	n, ok := alg.CheckedPower(size, arity, MaxCells)
	if !ok {
		return nil, fmt.Errorf("%w: %s needs more than %d cells at size %d", ErrDomain, name, MaxCells, size)
	}
	cells := make([]*Variable, n)
	for i := range cells {
		c, err := newCell(codomain)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		cells[i] = c
	}
	return &FunctionVariable{name: name, size: size, arity: arity, cells: cells}, nil
}

// newFunctionVariable allocates the table and issues every cell a marker in
// row-major order.
func newFunctionVariable(pool *MarkerPool, name string, size, arity, codomain int) (*FunctionVariable, error) {
	f, err := NewFunctionVariable(name, size, arity, codomain)
	if err != nil {
		return nil, err
	}
	for _, c := range f.cells {
		if err := c.TakeMarker(pool); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return f, nil
}

// Symbol, Arity and Size describe the table's shape.
func (f *FunctionVariable) Symbol() string { return f.name }
func (f *FunctionVariable) Arity() int     { return f.arity }
func (f *FunctionVariable) Size() int      { return f.size }

// Cells returns the cells in row-major order. The slice is shared.
func (f *FunctionVariable) Cells() []*Variable { return f.cells }

// Tuple decodes a flat cell index back into its argument tuple.
func (f *FunctionVariable) Tuple(i int) []int {
	args := make([]int, f.arity)
	for k := f.arity - 1; k >= 0; k-- {
		args[k] = i % f.size
		i /= f.size
	}
	return args
}

func (f *FunctionVariable) index(args []int) (int, error) {
	if len(args) != f.arity {
		return 0, &BoundsError{Symbol: f.name, Args: args, Size: f.size, Arity: f.arity}
	}
	i := 0
	for _, a := range args {
		if a < 0 || a >= f.size {
			return 0, &BoundsError{Symbol: f.name, Args: append([]int(nil), args...), Size: f.size, Arity: f.arity}
		}
		i = i*f.size + a
	}
	return i, nil
}

// Variable returns the cell for args.
func (f *FunctionVariable) Variable(args ...int) (*Variable, error) {
	i, err := f.index(args)
	if err != nil {
		return nil, err
	}
	return f.cells[i], nil
}

// Value returns the current value of the cell for args. It panics on a bad
// tuple.
func (f *FunctionVariable) Value(args ...int) int {
	return f.Lookup(args)
}

// Lookup is Value without the variadic copy, used on the evaluation path.
func (f *FunctionVariable) Lookup(args []int) int {
	i, err := f.index(args)
	if err != nil {
		panic(err)
	}
	return f.cells[i].Value
}

// Holds reports whether the cell for args is 1. Relation tables use it to
// satisfy alg.Relation.
func (f *FunctionVariable) Holds(args ...int) bool {
	return f.Lookup(args) == 1
}

// Unassigned returns the number of cells still at their marker.
func (f *FunctionVariable) Unassigned() int {
	n := 0
	for _, c := range f.cells {
		if !c.Assigned() {
			n++
		}
	}
	return n
}

func (f *FunctionVariable) String() string {
	return fmt.Sprintf("%s/%d%v", f.name, f.arity, f.cells)
}
