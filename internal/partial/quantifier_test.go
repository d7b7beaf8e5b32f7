package partial

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assignAll writes code, a base-max number, into vs.
func assignAll(vs []*Variable, code int) {
	for i := len(vs) - 1; i >= 0; i-- {
		vs[i].Value = code % vs[i].Max
		code /= vs[i].Max
	}
}

func resetAll(vs []*Variable) {
	for _, v := range vs {
		v.Reset()
	}
}

func assertParked(t *testing.T, vs ...*Variable) {
	t.Helper()
	for _, v := range vs {
		assert.False(t, v.Assigned(), "variable left at %d", v.Value)
	}
}

// Every unary operation on n elements checked for surjectivity by
// forall x. exists y. f(y) = x, against a direct loop.
func TestQuantifiers_MatchBruteForce(t *testing.T) {
	for _, n := range []int{2, 3} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			pool := NewMarkerPool()
			f, err := newFunctionVariable(pool, "f", n, 1, n)
			require.NoError(t, err)
			vs := newVars(t, pool, 2, n)
			x, y := vs[0], vs[1]

			fy, err := NewFunction(f, y)
			require.NoError(t, err)
			surjective := NewForAll([]*Variable{x}, NewExists([]*Variable{y}, NewEquals(fy, x)))

			fxy, err := NewFunction(f, x)
			require.NoError(t, err)
			constant := NewForAll([]*Variable{x, y}, NewEquals(fxy, fy))

			total := 1
			for range f.Cells() {
				total *= n
			}
			for code := 0; code < total; code++ {
				assignAll(f.Cells(), code)

				hit := map[int]bool{}
				for i := 0; i < n; i++ {
					hit[f.Value(i)] = true
				}
				want := 0
				if len(hit) == n {
					want = 1
				}
				assert.Equal(t, want, surjective.Evaluate(), "surjective, table %v", f)

				want = 0
				if len(hit) == 1 {
					want = 1
				}
				assert.Equal(t, want, constant.Evaluate(), "constant, table %v", f)
				assertParked(t, x, y)
			}
		})
	}
}

func TestQuantifiers_SkipIndependentVariable(t *testing.T) {
	pool := NewMarkerPool()
	vs := newVars(t, pool, 2, 3)
	x, y := vs[0], vs[1]

	calls := 0
	body := &probe{fn: func() int {
		calls++
		if !y.Assigned() {
			return y.Marker
		}
		return 1
	}}
	// x never appears in the body, so ForAll x evaluates it once per y.
	n := NewForAll([]*Variable{y, x}, body)
	assert.Equal(t, 1, n.Evaluate())
	assert.Equal(t, 1+3, calls)
	assertParked(t, x, y)
}

func TestQuantifiers_Vacuous(t *testing.T) {
	one := NewConstant(1)
	assert.Same(t, Node(one), NewForAll(nil, one))
	assert.Same(t, Node(one), NewExists(nil, one))
}

func TestQuantifiers_ShortCircuit(t *testing.T) {
	pool := NewMarkerPool()
	x := newVars(t, pool, 1, 4)[0]

	var seen []int
	body := &probe{fn: func() int {
		if !x.Assigned() {
			return x.Marker
		}
		seen = append(seen, x.Value)
		if x.Value == 1 {
			return 0
		}
		return 1
	}}
	assert.Equal(t, 0, NewForAll([]*Variable{x}, body).Evaluate())
	assert.Equal(t, []int{0, 1}, seen)

	seen = nil
	assert.Equal(t, 1, NewExists([]*Variable{x}, body).Evaluate())
	assert.Equal(t, []int{0}, seen)
	assertParked(t, x)
}

// ForAllPerm must visit every permutation exactly once with inverse slots
// consistent.
func TestForAllPerm_VisitsEveryPermutation(t *testing.T) {
	factorial := []int{1, 1, 2, 6, 24}
	for n := 1; n <= 4; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			pool := NewMarkerPool()
			perm := newVars(t, pool, n, n)
			inv := newVars(t, pool, n, n)

			seen := map[string]bool{}
			body := &probe{fn: func() int {
				for i := 0; i < n; i++ {
					if !perm[i].Assigned() {
						return perm[i].Marker
					}
					if !inv[i].Assigned() {
						return inv[i].Marker
					}
				}
				key := ""
				for i := 0; i < n; i++ {
					assert.Equal(t, i, inv[perm[i].Value].Value, "inverse of slot %d", i)
					key += fmt.Sprint(perm[i].Value)
				}
				assert.False(t, seen[key], "permutation %s visited twice", key)
				seen[key] = true
				return 1
			}}
			node, err := NewForAllPerm(perm, inv, body)
			require.NoError(t, err)

			assert.Equal(t, 1, node.Evaluate())
			assert.Len(t, seen, factorial[n])
			assertParked(t, perm...)
			assertParked(t, inv...)
		})
	}
}

func TestForAllPerm_StopsOnZero(t *testing.T) {
	pool := NewMarkerPool()
	perm := newVars(t, pool, 3, 3)
	inv := newVars(t, pool, 3, 3)

	var visited []string
	body := &probe{fn: func() int {
		for _, v := range append(append([]*Variable(nil), perm...), inv...) {
			if !v.Assigned() {
				return v.Marker
			}
		}
		key := fmt.Sprint(perm[0].Value, perm[1].Value, perm[2].Value)
		visited = append(visited, key)
		if perm[0].Value == 1 {
			return 0
		}
		return 1
	}}
	node, err := NewForAllPerm(perm, inv, body)
	require.NoError(t, err)
	assert.Equal(t, 0, node.Evaluate())

	sort.Strings(visited)
	assert.Contains(t, visited, "1 0 2")
	assert.Less(t, len(visited), 6)
	assertParked(t, perm...)
	assertParked(t, inv...)
}

func TestForAllPerm_LengthMismatch(t *testing.T) {
	pool := NewMarkerPool()
	_, err := NewForAllPerm(newVars(t, pool, 2, 2), newVars(t, pool, 3, 3), NewConstant(1))
	assert.ErrorIs(t, err, ErrLength)
}

// probe is a test-only node backed by a closure.
type probe struct {
	fn func() int
}

func (p *probe) Evaluate() int { return p.fn() }
func (*probe) node()           {}
