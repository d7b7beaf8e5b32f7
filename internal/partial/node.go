package partial

import "fmt"

// Node is a vertex of a partially evaluable expression tree.
//
// Evaluate returns 0 or 1 for boolean nodes, a domain element for term
// nodes, or a negative marker when the result still depends on the
// Variable holding that marker. The set of node kinds is closed.
type Node interface {
	Evaluate() int
	node()
}

// minNegative folds v into the smallest marker seen so far. acc starts at 1,
// which doubles as "nothing undetermined"; definite values leave it alone.
func minNegative(acc, v int) int {
	if v < 0 && v < acc {
		return v
	}
	return acc
}

// Constant is a fixed value.
type Constant struct {
	value int
}

// NewConstant returns a node that always evaluates to v.
func NewConstant(v int) *Constant {
	return &Constant{value: v}
}

// Evaluate returns the fixed value.
func (c *Constant) Evaluate() int { return c.value }

func (*Constant) node() {}

// Not swaps 0 and 1 and passes markers through.
type Not struct {
	sub Node
}

// NewNot negates sub.
func NewNot(sub Node) *Not {
	return &Not{sub: sub}
}

// Evaluate returns 1-v for a definite v and a marker unchanged.
func (n *Not) Evaluate() int {
	v := n.sub.Evaluate()
	if v < 0 {
		return v
	}
	return 1 - v
}

func (*Not) node() {}

// And is n-ary conjunction. Children are evaluated in order and a 0 ends the
// evaluation even when earlier children were undetermined.
type And struct {
	subs []Node
}

// NewAnd returns the conjunction of subs. An empty And holds.
func NewAnd(subs ...Node) *And {
	return &And{subs: subs}
}

// Evaluate returns 0 on the first false child, 1 if all hold, and
// otherwise the smallest marker seen.
func (a *And) Evaluate() int {
	acc := 1
	for _, sub := range a.subs {
		v := sub.Evaluate()
		if v == 0 {
			return 0
		}
		acc = minNegative(acc, v)
	}
	return acc
}

func (*And) node() {}

// Or is n-ary disjunction, the dual of And.
type Or struct {
	subs []Node
}

// NewOr returns the disjunction of subs. An empty Or fails.
func NewOr(subs ...Node) *Or {
	return &Or{subs: subs}
}

// Evaluate returns 1 on the first true child, 0 if none holds, and
// otherwise the smallest marker seen.
func (o *Or) Evaluate() int {
	acc := 0
	for _, sub := range o.subs {
		v := sub.Evaluate()
		if v == 1 {
			return 1
		}
		acc = min(acc, v)
	}
	return acc
}

func (*Or) node() {}

// Implies is material implication.
type Implies struct {
	premise, conclusion Node
}

// NewImplies returns premise -> conclusion.
func NewImplies(premise, conclusion Node) *Implies {
	return &Implies{premise: premise, conclusion: conclusion}
}

// Evaluate skips the conclusion when the premise is false.
func (i *Implies) Evaluate() int {
	a := i.premise.Evaluate()
	if a == 0 {
		return 1
	}
	b := i.conclusion.Evaluate()
	if b >= 1 {
		return 1
	}
	return min(a, b)
}

func (*Implies) node() {}

// Equals compares two values. It also serves as boolean equivalence.
type Equals struct {
	left, right Node
}

// NewEquals returns a node holding when left and right agree.
func NewEquals(left, right Node) *Equals {
	return &Equals{left: left, right: right}
}

// Evaluate reads both sides before comparing.
func (e *Equals) Evaluate() int {
	l := e.left.Evaluate()
	r := e.right.Evaluate()
	if l < 0 || r < 0 {
		return min(l, r)
	}
	if l == r {
		return 1
	}
	return 0
}

func (*Equals) node() {}

// AllEqual holds when every child has the same value.
type AllEqual struct {
	subs []Node
}

// NewAllEqual returns an n-ary equality over subs.
func NewAllEqual(subs ...Node) *AllEqual {
	return &AllEqual{subs: subs}
}

// Evaluate reads every child, so a mismatch after an undetermined child
// still yields 0.
func (a *AllEqual) Evaluate() int {
	acc := 1
	first := -1
	for _, sub := range a.subs {
		v := sub.Evaluate()
		if v < 0 {
			acc = minNegative(acc, v)
			continue
		}
		if first < 0 {
			first = v
		} else if v != first {
			return 0
		}
	}
	return acc
}

func (*AllEqual) node() {}

// AllDistinct holds when no two children share a value.
type AllDistinct struct {
	subs []Node
	seen map[int]struct{}
}

// NewAllDistinct returns a node holding when subs are pairwise distinct.
func NewAllDistinct(subs ...Node) *AllDistinct {
	return &AllDistinct{subs: subs, seen: make(map[int]struct{}, len(subs))}
}

// Evaluate returns 0 on the first repeated definite value.
func (a *AllDistinct) Evaluate() int {
	defer clear(a.seen)
	acc := 1
	for _, sub := range a.subs {
		v := sub.Evaluate()
		if v < 0 {
			acc = minNegative(acc, v)
			continue
		}
		if _, dup := a.seen[v]; dup {
			return 0
		}
		a.seen[v] = struct{}{}
	}
	return acc
}

func (*AllDistinct) node() {}

// LexLessThan compares two vectors lexicographically.
type LexLessThan struct {
	left, right []Node
	orEquals    bool
}

// NewLexLessThan returns a node holding when left < right, or left <= right
// if orEquals is set.
func NewLexLessThan(left, right []Node, orEquals bool) (*LexLessThan, error) {
	if len(left) != len(right) {
		return nil, fmt.Errorf("%w: lex vectors of length %d and %d", ErrLength, len(left), len(right))
	}
	return &LexLessThan{left: left, right: right, orEquals: orEquals}, nil
}

// Evaluate stops at the first position that differs or is undetermined.
func (l *LexLessThan) Evaluate() int {
	for i := range l.left {
		a := l.left[i].Evaluate()
		b := l.right[i].Evaluate()
		if a < 0 || b < 0 {
			return min(a, b)
		}
		if a != b {
			if a < b {
				return 1
			}
			return 0
		}
	}
	if l.orEquals {
		return 1
	}
	return 0
}

func (*LexLessThan) node() {}

// Table is what a Function node looks values up in.
type Table interface {
	Arity() int
	Lookup(args []int) int
}

// Function applies a table to its argument nodes.
type Function struct {
	table Table
	args  []Node
	buf   []int
}

// NewFunction wires args into table. The argument count must match the
// table's arity.
func NewFunction(table Table, args ...Node) (*Function, error) {
	if len(args) != table.Arity() {
		return nil, fmt.Errorf("%w: %d arguments for arity %d", ErrArity, len(args), table.Arity())
	}
	return &Function{table: table, args: args, buf: make([]int, len(args))}, nil
}

// Evaluate returns the smallest undetermined argument if any, otherwise the
// table entry, which is itself a marker while that cell is unassigned.
func (f *Function) Evaluate() int {
	acc := 1
	for i, arg := range f.args {
		v := arg.Evaluate()
		f.buf[i] = v
		acc = minNegative(acc, v)
	}
	if acc < 0 {
		return acc
	}
	return f.table.Lookup(f.buf)
}

func (*Function) node() {}
