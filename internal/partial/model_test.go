package partial

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/modelgen/internal/alg"
	"github.com/roach88/modelgen/internal/symbol"
	"github.com/roach88/modelgen/internal/testutil"
)

const posetAxioms = "x<=x & (x<=y & y<=x -> x=y) & (x<=y & y<=z -> x<=z)"

func countModels(t *testing.T, src string, size int, opts ...Option) (int, *testutil.CollectingSink) {
	t.Helper()
	sink := testutil.NewCollectingSink()
	m, err := NewModelPrinter(symbol.MustParse(src), size, append(opts, WithSink(sink))...)
	require.NoError(t, err)
	stats, err := m.PrintAllModels()
	require.NoError(t, err)
	assert.Len(t, sink.Models(), stats.Models)
	assertParked(t, m.Structure().Cells()...)
	return stats.Models, sink
}

func TestPrintAllModels_Counts(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		size    int
		want    int
	}{
		{"trivial", "x = x", 2, 1},
		{"groupoids", "x*y = x*y", 2, 10},
		{"semigroups 2", "(x*y)*z = x*(y*z)", 2, 5},
		{"semigroups 3", "(x*y)*z = x*(y*z)", 3, 24},
		{"unary 3", "f(x) = f(x)", 3, 7},
		{"posets 3", posetAxioms, 3, 5},
		{"total orders 3", posetAxioms + " & (x<=y | y<=x)", 3, 1},
		{"semilattices 3", "x*x = x & x*y = y*x & (x*y)*z = x*(y*z)", 3, 2},
		{"size one", "f(x, y) = f(y, x)", 1, 1},
		{"unsatisfiable", "x = y", 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := countModels(t, tt.formula, tt.size)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintAllModels_Groups4(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive size-4 search")
	}
	group := "(x*y)*z = x*(y*z) & 1*x = x & x*1 = x & i(x)*x = 1 & x*i(x) = 1"
	got, _ := countModels(t, group, 4)
	assert.Equal(t, 2, got)
}

// Each emitted model must be the least of its isomorphism class, read in
// search order, and no two may be isomorphic.
func TestPrintAllModels_Canonical(t *testing.T) {
	src := "(x*y)*z = x*(y*z)"
	m, err := NewModelPrinter(symbol.MustParse(src), 3)
	require.NoError(t, err)
	order := m.Structure().order

	sink := testutil.NewCollectingSink()
	m.sink = sink
	_, err = m.PrintAllModels()
	require.NoError(t, err)

	read := func(a alg.Algebra, perm []int) []int {
		inv := make([]int, len(perm))
		for i, p := range perm {
			inv[p] = i
		}
		out := make([]int, len(order))
		op := a.Operations()[0]
		for i, c := range order {
			args := make([]int, len(c.args))
			for k, x := range c.args {
				args[k] = inv[x]
			}
			out[i] = perm[op.Value(args...)]
		}
		return out
	}
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	seen := map[string]bool{}
	for _, model := range sink.Models() {
		original := read(model, perms[0])
		for _, p := range perms[1:] {
			image := read(model, p)
			assert.False(t, lexLess(image, original), "model %v has smaller image %v", original, image)
		}
		// The least member identifies the class.
		key := fmt.Sprint(original)
		assert.False(t, seen[key], "isomorphic models emitted twice: %s", key)
		seen[key] = true
	}
	assert.Len(t, seen, 24)
}

func lexLess(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func TestPrintFirstModel_EmitsOnce(t *testing.T) {
	sink := testutil.NewCollectingSink()
	m, err := NewModelPrinter(symbol.MustParse("x*y = x*y"), 2, WithSink(sink))
	require.NoError(t, err)

	stats, err := m.PrintFirstModel()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Models)
	assert.Len(t, sink.Models(), 1)
	assert.Equal(t, []string{"model 1"}, sink.Comments())

	stats, err = m.PrintFirstModel()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Models, "runs are independent")
}

func TestPrintFirstModel_None(t *testing.T) {
	m, err := NewModelPrinter(symbol.MustParse("x = y"), 3)
	require.NoError(t, err)
	stats, err := m.PrintFirstModel()
	require.NoError(t, err)
	assert.Zero(t, stats.Models)
}

func TestPrintAllModels_Limit(t *testing.T) {
	got, sink := countModels(t, "x*y = x*y", 2, WithLimit(3))
	assert.Equal(t, 3, got)
	assert.Equal(t, []string{"model 1", "model 2", "model 3"}, sink.Comments())
}

func TestPrintAllModels_SinkError(t *testing.T) {
	boom := errors.New("disk full")
	sink := &testutil.CollectingSink{FailAfter: 2, Err: boom}
	m, err := NewModelPrinter(symbol.MustParse("x*y = x*y"), 2, WithSink(sink))
	require.NoError(t, err)

	stats, err := m.PrintAllModels()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, stats.Models, "only models the sink accepted are counted")
	assert.Len(t, sink.Comments(), 2)
	assertParked(t, m.Structure().Cells()...)
}

func TestPrintAllModels_Filter(t *testing.T) {
	semilattice := "x*x = x & x*y = y*x & (x*y)*z = x*(y*z)"
	tests := []struct {
		filter string
		want   int
		tokens []string
	}{
		{"noncon", 1, []string{"noncon"}},
		{"si", 0, []string{"si"}},
		{"toursp", 2, []string{"toursp"}},
		{"nontoursp", 0, []string{"nontoursp"}},
		{"bogus", 2, nil},
		{"si bogus noncon", 0, []string{"si", "noncon"}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			m, err := NewModelPrinter(symbol.MustParse(semilattice), 3, WithFilter(tt.filter))
			require.NoError(t, err)
			assert.Equal(t, tt.tokens, m.Filter())
			stats, err := m.PrintAllModels()
			require.NoError(t, err)
			assert.Equal(t, tt.want, stats.Models)
		})
	}
}

func TestNewModelPrinter_Errors(t *testing.T) {
	_, err := NewModelPrinter(symbol.MustParse("x = x"), 0)
	assert.ErrorIs(t, err, ErrDomain)

	_, err = NewModelPrinter(symbol.MustParse("x*y = y*x"), 3037000500)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = NewModelPrinter(symbol.MustParse("x = x"), MaxCells+1)
	assert.ErrorIs(t, err, ErrDomain, "permutation table")
}

func TestSphereOrder(t *testing.T) {
	f, err := NewFunctionVariable("f", 3, 2, 3)
	require.NoError(t, err)
	c, err := NewFunctionVariable("c", 3, 0, 3)
	require.NoError(t, err)

	var got [][]int
	var names []string
	for _, cl := range sphereOrder(3, []*FunctionVariable{c, f}) {
		got = append(got, cl.args)
		names = append(names, cl.table.Symbol())
	}
	assert.Equal(t, [][]int{
		{},
		{0, 0},
		{0, 1}, {1, 0}, {1, 1},
		{0, 2}, {1, 2}, {2, 0}, {2, 1}, {2, 2},
	}, got)
	assert.Equal(t, "c", names[0])
}
