package alg

// PrincipalCongruence returns Cg(x, y), the least congruence of a that
// identifies x and y.
func PrincipalCongruence(a Algebra, x, y int) *Partition {
	return generate(a, Zero(a.Size()), [][2]int{{x, y}})
}

// generate closes p under the operations of a after merging pending.
//
// Only pairs that actually merge two blocks are translated: the translates of
// a spanning set of the merged pairs generate the same congruence, because
// unary polynomials map chains of related elements to chains.
func generate(a Algebra, p *Partition, pending [][2]int) *Partition {
	n := a.Size()
	ops := a.Operations()
	for len(pending) > 0 {
		pair := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if !p.Union(pair[0], pair[1]) {
			continue
		}
		for _, op := range ops {
			k := op.Arity()
			if k == 0 {
				continue
			}
			left := make([]int, k)
			right := make([]int, k)
			for pos := 0; pos < k; pos++ {
				ForEachTuple(n, k-1, func(_ int, rest []int) {
					for i, j := 0, 0; i < k; i++ {
						if i == pos {
							left[i], right[i] = pair[0], pair[1]
							continue
						}
						left[i], right[i] = rest[j], rest[j]
						j++
					}
					u, v := op.Value(left...), op.Value(right...)
					if u != v && !p.Same(u, v) {
						pending = append(pending, [2]int{u, v})
					}
				})
			}
		}
	}
	return p
}

// Congruences returns every congruence of a, ordered from the finest
// (fewest identifications) to the coarsest, ties broken by Key.
func Congruences(a Algebra) []*Partition {
	n := a.Size()
	var principal []*Partition
	seenPrincipal := map[string]bool{}
	for x := 0; x < n; x++ {
		for y := x + 1; y < n; y++ {
			c := PrincipalCongruence(a, x, y)
			if !seenPrincipal[c.Key()] {
				seenPrincipal[c.Key()] = true
				principal = append(principal, c)
			}
		}
	}

	zero := Zero(n)
	seen := map[string]bool{zero.Key(): true}
	all := []*Partition{zero}
	for i := 0; i < len(all); i++ {
		for _, c := range principal {
			j := all[i].Join(c)
			if key := j.Key(); !seen[key] {
				seen[key] = true
				all = append(all, j)
			}
		}
	}
	sortPartitions(all)
	return all
}

// Quotient returns a/θ. Block i of the quotient is the i-th block of θ
// ordered by least element. Relations are not carried over.
func Quotient(a Algebra, theta *Partition) *Finite {
	blocks := theta.Blocks()
	blockOf := make([]int, a.Size())
	for i, block := range blocks {
		for _, x := range block {
			blockOf[x] = i
		}
	}

	m := len(blocks)
	out := &Finite{size: m}
	for _, op := range a.Operations() {
		k := op.Arity()
		t := &Table{name: op.Symbol(), size: m, arity: k, values: make([]int, Power(m, k))}
		reps := make([]int, k)
		ForEachTuple(m, k, func(i int, args []int) {
			for j, b := range args {
				reps[j] = blocks[b][0]
			}
			t.values[i] = blockOf[op.Value(reps...)]
		})
		out.ops = append(out.ops, t)
	}
	return out
}
