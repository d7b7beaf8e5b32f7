// Package search runs model-enumeration requests.
//
// A Request names a problem in the line-oriented problem syntax (see
// ParseProblem), a size and a mode. The Runner compiles it, drives a
// partial.ModelPrinter into a caller-supplied sink, and reports a Result
// tagged with a run ID. The CLI, the batch job loader and the scenario
// harness all go through the Runner.
package search
