package partial

import "fmt"

// Variable is a mutable integer cell with domain [0,Max).
//
// Value equals Marker while the Variable is unassigned. A Variable has no
// marker until TakeMarker is called and must not be evaluated before that.
type Variable struct {
	Value  int
	Max    int
	Marker int
}

// NewVariable returns a Variable with domain [0,max) that already holds a
// marker from pool.
func NewVariable(pool *MarkerPool, max int) (*Variable, error) {
	v, err := newCell(max)
	if err != nil {
		return nil, err
	}
	if err := v.TakeMarker(pool); err != nil {
		return nil, err
	}
	return v, nil
}

// newCell returns a Variable without a marker.
func newCell(max int) (*Variable, error) {
	if max <= 0 {
		return nil, fmt.Errorf("%w: variable domain %d", ErrDomain, max)
	}
	return &Variable{Max: max}, nil
}

// TakeMarker issues the Variable its marker and parks it there.
func (v *Variable) TakeMarker(pool *MarkerPool) error {
	if v.Marker != 0 {
		return fmt.Errorf("%w: %d", ErrMarkerAssigned, v.Marker)
	}
	m, err := pool.Take()
	if err != nil {
		return err
	}
	v.Marker = m
	v.Value = m
	return nil
}

// Assigned reports whether the Variable currently holds a domain value.
func (v *Variable) Assigned() bool {
	return v.Value >= 0
}

// Reset parks the Variable at its marker.
func (v *Variable) Reset() {
	v.Value = v.Marker
}

// Evaluate returns the current value, which is the marker when unassigned.
func (v *Variable) Evaluate() int {
	return v.Value
}

func (*Variable) node() {}

func (v *Variable) String() string {
	if v.Assigned() {
		return fmt.Sprintf("%d", v.Value)
	}
	return fmt.Sprintf("?%d", -v.Marker)
}
