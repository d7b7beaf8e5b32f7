// Package harness runs model-search scenarios and compares their output
// against expectations and golden files.
//
// A scenario is a YAML file naming one search and what it should find:
//
//	name: semigroups_2
//	description: associative binary operations on two elements
//	size: 2
//	formula: (x*y)*z = x*(y*z)
//	expect:
//	  count: 5
//
// Run executes the scenario with a fixed run ID, so the same scenario always
// produces the same Snapshot. RunWithGolden compares that snapshot against
// testdata/golden/{name}.golden using goldie.
package harness
