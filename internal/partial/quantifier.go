package partial

import "fmt"

// ForAll iterates one Variable and holds when the body holds for every value.
type ForAll struct {
	v    *Variable
	body Node
}

// NewForAll quantifies body over vars, vars[0] outermost. With no vars the
// body itself is returned.
func NewForAll(vars []*Variable, body Node) Node {
	for i := len(vars) - 1; i >= 0; i-- {
		body = &ForAll{v: vars[i], body: body}
	}
	return body
}

// Evaluate returns the body's answer directly when it does not read the
// variable, and otherwise stops at the first value where the body fails.
func (q *ForAll) Evaluate() int {
	v := q.v
	v.Reset()
	r := q.body.Evaluate()
	if r != v.Marker {
		return r
	}
	acc := 1
	for x := 0; x < v.Max; x++ {
		v.Value = x
		r := q.body.Evaluate()
		if r == 0 {
			v.Reset()
			return 0
		}
		acc = minNegative(acc, r)
	}
	v.Reset()
	return acc
}

func (*ForAll) node() {}

// Exists iterates one Variable and holds when the body holds for some value.
type Exists struct {
	v    *Variable
	body Node
}

// NewExists quantifies body over vars, vars[0] outermost. With no vars the
// body itself is returned.
func NewExists(vars []*Variable, body Node) Node {
	for i := len(vars) - 1; i >= 0; i-- {
		body = &Exists{v: vars[i], body: body}
	}
	return body
}

// Evaluate is the dual of ForAll.Evaluate, stopping at the first value
// where the body holds.
func (q *Exists) Evaluate() int {
	v := q.v
	v.Reset()
	r := q.body.Evaluate()
	if r != v.Marker {
		return r
	}
	acc := 0
	for x := 0; x < v.Max; x++ {
		v.Value = x
		r := q.body.Evaluate()
		if r == 1 {
			v.Reset()
			return 1
		}
		acc = min(acc, r)
	}
	v.Reset()
	return acc
}

func (*Exists) node() {}

// ForAllPerm is one step of a quantifier over permutations of [0,n).
//
// slot is permutation[index] or inverse[index]; other is the opposite
// vector. Assigning slot=j claims other[j]=index, so the two vectors stay
// mutually inverse as far as they are assigned.
type ForAllPerm struct {
	slot  *Variable
	index int
	other []*Variable
	body  Node
}

// NewForAllPerm quantifies body over every permutation of [0,len(permutation))
// with its inverse. Index 0 is outermost; for each index the permutation slot
// encloses the inverse slot.
func NewForAllPerm(permutation, inverse []*Variable, body Node) (Node, error) {
	if len(permutation) != len(inverse) {
		return nil, fmt.Errorf("%w: permutation of length %d, inverse of length %d",
			ErrLength, len(permutation), len(inverse))
	}
	for i := len(permutation) - 1; i >= 0; i-- {
		body = &ForAllPerm{slot: inverse[i], index: i, other: permutation, body: body}
		body = &ForAllPerm{slot: permutation[i], index: i, other: inverse, body: body}
	}
	return body, nil
}

// Evaluate tries every unclaimed value for the slot and stops on 0.
func (q *ForAllPerm) Evaluate() int {
	slot := q.slot
	if slot.Assigned() {
		// Claimed by the opposite vector further out.
		return q.body.Evaluate()
	}
	r := q.body.Evaluate()
	if r != slot.Marker {
		return r
	}
	acc := 1
	for j, o := range q.other {
		if o.Assigned() {
			continue
		}
		slot.Value = j
		o.Value = q.index
		r := q.body.Evaluate()
		o.Reset()
		if r == 0 {
			slot.Reset()
			return 0
		}
		acc = minNegative(acc, r)
	}
	slot.Reset()
	return acc
}

func (*ForAllPerm) node() {}
