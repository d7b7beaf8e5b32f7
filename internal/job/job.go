// Package job loads batch search jobs from CUE files.
//
// A job directory holds one CUE package whose top-level "job" struct maps
// job names to job bodies:
//
//	job: semigroups: {
//		size:    3
//		formula: "(x*y)*z = x*(y*z)"
//	}
//	job: first_poset: {
//		size:    4
//		formula: "poset"
//		mode:    "first"
//	}
//
// Fields: size (required, > 0), formula (required, problem text), mode
// ("all" or "first", default "all"), only (filter tokens) and limit
// (>= 0, 0 meaning no limit).
package job

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/hashicorp/go-multierror"

	"github.com/roach88/modelgen/internal/search"
)

// schema constrains every job body.
const schema = `
#Job: {
	size:    int & >0
	formula: string
	mode?:   "all" | "first"
	only?:   string
	limit?:  int & >=0
}
`

// Job is one compiled job.
type Job struct {
	Name    string
	Size    int
	Formula string
	Mode    search.Mode
	Only    string
	Limit   int
	Pos     token.Pos
}

// Request converts the job into a search request.
func (j Job) Request() search.Request {
	return search.Request{
		Name:    j.Name,
		Problem: j.Formula,
		Filter:  j.Only,
		Size:    j.Size,
		Mode:    j.Mode,
		Limit:   j.Limit,
	}
}

// CompileError is a job that does not fit the schema.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// jobDef returns the #Job definition in ctx.
func jobDef(ctx *cue.Context) cue.Value {
	return ctx.CompileString(schema).LookupPath(cue.ParsePath("#Job"))
}

// CompileJob validates v against the job schema and extracts it. The job
// name is the last selector of v's path.
func CompileJob(v cue.Value) (*Job, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	j := &Job{Pos: v.Pos()}
	if sels := v.Path().Selectors(); len(sels) > 0 {
		sel := sels[len(sels)-1]
		j.Name = sel.String()
		if sel.LabelType() == cue.StringLabel {
			j.Name = sel.Unquoted()
		}
	}

	unified := jobDef(v.Context()).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	size, err := unified.LookupPath(cue.ParsePath("size")).Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}
	j.Size = int(size)

	if j.Formula, err = unified.LookupPath(cue.ParsePath("formula")).String(); err != nil {
		return nil, formatCUEError(err)
	}
	problem, err := search.ParseProblem(j.Formula)
	if err == nil {
		_, err = problem.Compile()
	}
	if err != nil {
		return nil, &CompileError{Field: "formula", Message: err.Error(), Pos: v.Pos()}
	}

	mode := "all"
	if mv := unified.LookupPath(cue.ParsePath("mode")); mv.Exists() {
		if mode, err = mv.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}
	if j.Mode, err = search.ParseMode(mode); err != nil {
		return nil, &CompileError{Field: "mode", Message: err.Error(), Pos: v.Pos()}
	}

	if ov := unified.LookupPath(cue.ParsePath("only")); ov.Exists() {
		if j.Only, err = ov.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}
	if lv := unified.LookupPath(cue.ParsePath("limit")); lv.Exists() {
		limit, err := lv.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		j.Limit = int(limit)
	}
	return j, nil
}

// CompileString compiles CUE source holding a "job" struct. Used for
// single-file input and in tests.
func CompileString(src string) ([]Job, error) {
	v := cuecontext.New().CompileString(src)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return compileJobs(v)
}

func compileJobs(v cue.Value) ([]Job, error) {
	jobsVal := v.LookupPath(cue.ParsePath("job"))
	if !jobsVal.Exists() {
		return nil, &CompileError{Field: "job", Message: "no jobs defined", Pos: v.Pos()}
	}
	iter, err := jobsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	// Every job is compiled so that all invalid ones are reported at once.
	var jobs []Job
	var errs *multierror.Error
	for iter.Next() {
		j, err := CompileJob(iter.Value())
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("job %s: %w", iter.Selector(), err))
			continue
		}
		jobs = append(jobs, *j)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, &CompileError{Field: "job", Message: "no jobs defined", Pos: jobsVal.Pos()}
	}
	return jobs, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return &CompileError{Field: "cue", Message: first.Error()}
}
