package partial

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain is returned for a non-positive size or domain.
	ErrDomain = errors.New("domain must be positive")

	// ErrArity is returned when an argument count does not match an arity.
	ErrArity = errors.New("arity mismatch")

	// ErrOutOfBounds is returned when an argument lies outside [0,size).
	ErrOutOfBounds = errors.New("argument out of bounds")

	// ErrLength is returned when paired vectors differ in length.
	ErrLength = errors.New("length mismatch")

	// ErrMarkerAssigned is returned when a Variable is issued a second marker.
	ErrMarkerAssigned = errors.New("marker already assigned")

	// ErrMarkersExhausted is returned when a MarkerPool cannot issue more markers.
	ErrMarkersExhausted = errors.New("marker pool exhausted")
)

// BoundsError describes a table lookup with a bad argument tuple.
//
// Lookups on the evaluation path panic with a *BoundsError; they can only be
// caused by a malformed tree, never by the search itself.
type BoundsError struct {
	Symbol string
	Args   []int
	Size   int
	Arity  int
}

func (e *BoundsError) Error() string {
	if len(e.Args) != e.Arity {
		return fmt.Sprintf("%s: %d arguments, want %d", e.Symbol, len(e.Args), e.Arity)
	}
	return fmt.Sprintf("%s%v: argument outside [0,%d)", e.Symbol, e.Args, e.Size)
}

// Unwrap lets errors.Is match ErrArity or ErrOutOfBounds.
func (e *BoundsError) Unwrap() error {
	if len(e.Args) != e.Arity {
		return ErrArity
	}
	return ErrOutOfBounds
}
