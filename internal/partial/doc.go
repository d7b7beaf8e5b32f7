// Package partial enumerates finite models of a first-order formula by
// partial evaluation.
//
// The search space is the set of all assignments to the cells of the
// operation and relation tables of a structure of a given size. Rather than
// materialising assignments, the formula is compiled once into a tree of
// Nodes whose leaves are mutable Variables. Evaluating the tree returns a
// three-valued answer:
//
//   - 0 or 1 (or a domain element for term nodes) when the answer no longer
//     depends on any unassigned Variable, and
//   - a negative marker when it does. The marker identifies the Variable
//     that blocked evaluation.
//
// ARCHITECTURE:
//
// Search Is Evaluation:
// A quantifier node first evaluates its body with its Variable parked at its
// marker. If the answer does not mention the marker the body does not depend
// on the Variable and the loop is skipped entirely. Otherwise the quantifier
// iterates the Variable over its domain. Wrapping every table cell in an
// outer quantifier turns a single Evaluate call into a depth-first search
// whose backtracking is the native call stack.
//
// Short-Circuit Pruning:
// And returns 0 as soon as one child is 0, even if its other children are
// still undetermined. A partially assigned structure that already violates
// the formula is therefore rejected without enumerating the cells it has not
// reached yet.
//
// Isomorph Rejection:
// The ModelPrinter adds a canonicality constraint: the structure read in
// sphere order must be lexicographically no greater than its image under any
// permutation of the universe. ForAllPerm extends a partial permutation one
// slot at a time, binding a permutation slot and the matching inverse slot
// together, so only the part of each permutation that the comparison
// actually inspects is ever built.
//
// INVARIANTS:
//
// Markers are unique negative integers issued by a MarkerPool owned by one
// search; they are never reused.
//
// A Variable is only mutated by the innermost quantifier currently iterating
// it, and is back at its marker before that quantifier returns.
//
// A definite answer under a partial assignment holds for every completion of
// that assignment. Every combinator preserves this; the enumeration is only
// correct because of it.
//
// The package is single-threaded. Independent ModelPrinters share nothing
// and may run in separate goroutines.
package partial
