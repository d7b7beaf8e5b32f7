package alg

// Conservative reports whether every operation returns one of its
// arguments, i.e. every subset is a subuniverse. An algebra with a nullary
// operation is never conservative.
func Conservative(a Algebra) bool {
	for _, op := range a.Operations() {
		if op.Arity() == 0 {
			return false
		}
		ok := true
		ForEachTuple(a.Size(), op.Arity(), func(_ int, args []int) {
			if !ok {
				return
			}
			v := op.Value(args...)
			for _, x := range args {
				if x == v {
					return
				}
			}
			ok = false
		})
		if !ok {
			return false
		}
	}
	return true
}

// Tournament reports whether a has at least one operation and every
// operation is binary, commutative and conservative.
func Tournament(a Algebra) bool {
	ops := a.Operations()
	if len(ops) == 0 {
		return false
	}
	n := a.Size()
	for _, op := range ops {
		if op.Arity() != 2 {
			return false
		}
		for x := 0; x < n; x++ {
			for y := x; y < n; y++ {
				v := op.Value(x, y)
				if v != op.Value(y, x) || (v != x && v != y) {
					return false
				}
			}
		}
	}
	return true
}

// SubdirectlyIrreducible reports whether a has a monolith: a non-trivial
// congruence below every other non-trivial congruence. One-element algebras
// are not subdirectly irreducible.
func SubdirectlyIrreducible(a Algebra) bool {
	n := a.Size()
	if n < 2 {
		return false
	}
	var meet *Partition
	for x := 0; x < n; x++ {
		for y := x + 1; y < n; y++ {
			c := PrincipalCongruence(a, x, y)
			if meet == nil {
				meet = c
			} else {
				meet = meet.Meet(c)
			}
			if meet.IsZero() {
				return false
			}
		}
	}
	return true
}

// SubdirectProductOf reports whether a is a subdirect product of quotients
// satisfying member: every pair of distinct elements is separated by some
// congruence θ with member(a/θ). member should be closed under homomorphic
// images for the answer to coincide with membership in SP_s of the class.
func SubdirectProductOf(a Algebra, member func(Algebra) bool) bool {
	n := a.Size()
	if n < 2 {
		return member(a)
	}
	var good []*Partition
	for _, theta := range Congruences(a) {
		if theta.NumBlocks() > 1 && member(Quotient(a, theta)) {
			good = append(good, theta)
		}
	}
	for x := 0; x < n; x++ {
		for y := x + 1; y < n; y++ {
			separated := false
			for _, theta := range good {
				if !theta.Same(x, y) {
					separated = true
					break
				}
			}
			if !separated {
				return false
			}
		}
	}
	return true
}

// SmallTournament returns a predicate accepting tournaments with at most
// maxSize elements.
func SmallTournament(maxSize int) func(Algebra) bool {
	return func(a Algebra) bool {
		return a.Size() <= maxSize && Tournament(a)
	}
}
