package testutil

import (
	"sync"

	"github.com/roach88/modelgen/internal/alg"
)

// CollectingSink records every model it receives.
//
// Algebras are snapshotted on arrival since the search reuses its tables.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type CollectingSink struct {
	mu       sync.Mutex
	comments []string
	models   []*alg.Finite

	// FailAfter makes Algebra return Err once that many models have been
	// recorded. Zero disables failure.
	FailAfter int
	Err       error
}

// NewCollectingSink creates an empty sink.
func NewCollectingSink() *CollectingSink {
	return &CollectingSink{}
}

// Comment records a comment line.
func (s *CollectingSink) Comment(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, text)
	return nil
}

// Algebra records a snapshot of a.
func (s *CollectingSink) Algebra(a alg.Algebra) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append(s.models, alg.Snapshot(a))
	if s.FailAfter > 0 && len(s.models) >= s.FailAfter {
		return s.Err
	}
	return nil
}

// Models returns the recorded algebras in arrival order.
func (s *CollectingSink) Models() []*alg.Finite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*alg.Finite(nil), s.models...)
}

// Comments returns the recorded comment lines in arrival order.
func (s *CollectingSink) Comments() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.comments...)
}

// Tables flattens every recorded model into its operation tables followed
// by its relation tables, row-major, relations as 0/1. Handy for comparing
// against expected literals.
func (s *CollectingSink) Tables() [][]int {
	var out [][]int
	for _, m := range s.Models() {
		var row []int
		for _, op := range m.Operations() {
			alg.ForEachTuple(m.Size(), op.Arity(), func(_ int, args []int) {
				row = append(row, op.Value(args...))
			})
		}
		for _, rel := range m.Relations() {
			alg.ForEachTuple(m.Size(), rel.Arity(), func(_ int, args []int) {
				if rel.Holds(args...) {
					row = append(row, 1)
				} else {
					row = append(row, 0)
				}
			})
		}
		out = append(out, row)
	}
	return out
}
