package partial

import (
	"github.com/roach88/modelgen/internal/alg"
)

// cell is one table entry in search order.
type cell struct {
	table *FunctionVariable
	args  []int
	v     *Variable
}

// Structure is the set of tables being searched, viewed as an alg.Algebra.
// Values are only meaningful once Complete reports true.
type Structure struct {
	size  int
	ops   []*FunctionVariable
	rels  []*FunctionVariable
	order []cell
}

func newStructure(size int, ops, rels []*FunctionVariable) *Structure {
	s := &Structure{size: size, ops: ops, rels: rels}
	s.order = sphereOrder(size, append(append([]*FunctionVariable(nil), ops...), rels...))
	return s
}

// sphereOrder lists every cell of tables by increasing radius, the largest
// argument of its tuple. Within one radius tables keep their given order and
// tuples are lexicographic. Nullary tables have radius 0.
//
// A structure on {0..r} is thus fully assigned before any cell mentioning
// r+1, which lets the canonicality check settle small prefixes early.
func sphereOrder(size int, tables []*FunctionVariable) []cell {
	var order []cell
	for r := 0; r < size; r++ {
		for _, t := range tables {
			for i, v := range t.cells {
				args := t.Tuple(i)
				if radius(args) == r {
					order = append(order, cell{table: t, args: args, v: v})
				}
			}
		}
	}
	return order
}

func radius(args []int) int {
	r := 0
	for _, a := range args {
		r = max(r, a)
	}
	return r
}

func (s *Structure) Size() int { return s.size }

func (s *Structure) Operations() []alg.Operation {
	out := make([]alg.Operation, len(s.ops))
	for i, f := range s.ops {
		out[i] = f
	}
	return out
}

func (s *Structure) Relations() []alg.Relation {
	out := make([]alg.Relation, len(s.rels))
	for i, f := range s.rels {
		out[i] = f
	}
	return out
}

// Cells returns every cell Variable in search order.
func (s *Structure) Cells() []*Variable {
	out := make([]*Variable, len(s.order))
	for i, c := range s.order {
		out[i] = c.v
	}
	return out
}

// pending returns the marker of the last unassigned cell in search order.
// That cell belongs to the innermost quantifier still to run, so returning
// its marker hands control back to the right loop.
func (s *Structure) pending() (int, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		if v := s.order[i].v; !v.Assigned() {
			return v.Marker, true
		}
	}
	return 0, false
}

// Complete reports whether every cell holds a value.
func (s *Structure) Complete() bool {
	_, open := s.pending()
	return !open
}
