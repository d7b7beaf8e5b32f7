// Package symbol provides the first-order formula representation consumed by
// the model search.
//
// A Formula is a tree of Symbols. Each Symbol identifies an operation,
// relation, variable or connective together with its arity; sub-formulas are
// ordered. The package also answers the inventory questions the search needs
// before it can allocate tables:
//
//   - Operations(): operation symbols with their arity (constants have arity 0)
//   - Relations(): relation symbols with their arity
//   - Variables(): every first-order variable name, free or bound
//   - FreeVariables(): the free subset (implicitly universally quantified)
//   - RenameBound(): a copy where every binder introduces a fresh name
//
// SYNTAX:
//
//	forall x y. φ        exists z. φ           (body extends to the right)
//	φ <-> ψ              φ -> ψ                (-> is right associative)
//	φ | ψ                φ & ψ                 !φ  (also ~φ)
//	s = t = u            s != t                s <= t   (binary relation "<=")
//	s + t                s * t                 f(s, t)  r(s, t)
//	0  1  2              constants (nullary operations)
//	distinct(s, t, u)    true  false
//
// A call in term position is an operation; a call in atomic-formula position
// is a relation. Bare identifiers are always variables.
//
// The package performs no semantic evaluation. Formulas are immutable once
// returned by Parse; RenameBound returns a new tree.
package symbol
