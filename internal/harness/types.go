package harness

import (
	"github.com/roach88/modelgen/internal/alg"
	"github.com/roach88/modelgen/internal/search"
)

// Model is one emitted model together with the comment preceding it.
type Model struct {
	Comment     string
	Algebra     *alg.Finite
	Fingerprint string
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every expectation matched.
	Pass bool

	// Search summarises the run.
	Search *search.Result

	// Models holds every emitted model in order.
	Models []Model

	// Errors contains expectation mismatches.
	// Empty if Pass is true.
	Errors []string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
