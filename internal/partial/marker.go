package partial

import (
	"fmt"
	"math"
)

// MarkerPool issues the unique negative markers that identify unassigned
// Variables.
//
// Markers start at -1 and strictly decrease, so a Variable that received its
// marker later compares smaller. A pool belongs to one search; it is not
// safe for concurrent use and never needs to be, since a search is
// single-threaded.
type MarkerPool struct {
	next   int
	issued int
}

// NewMarkerPool creates a pool whose first marker is -1.
func NewMarkerPool() *MarkerPool {
	return &MarkerPool{next: -1}
}

// newMarkerPoolAt creates a pool whose first marker is next. Used by tests
// to exercise exhaustion.
func newMarkerPoolAt(next int) *MarkerPool {
	return &MarkerPool{next: next}
}

// Take returns the next marker.
func (p *MarkerPool) Take() (int, error) {
	m := p.next
	if m == math.MinInt {
		return 0, fmt.Errorf("%w after %d markers", ErrMarkersExhausted, p.issued)
	}
	p.next--
	p.issued++
	return m, nil
}

// Issued returns how many markers have been handed out.
func (p *MarkerPool) Issued() int {
	return p.issued
}
