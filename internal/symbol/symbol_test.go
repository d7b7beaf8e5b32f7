package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormula_Inventory(t *testing.T) {
	f := MustParse("forall y. x*y = y*x & r(x, 0) & (exists z. f(z) = y)")

	assert.Equal(t, []Symbol{
		{Kind: KindOperation, Name: "*", Arity: 2},
		{Kind: KindOperation, Name: "0", Arity: 0},
		{Kind: KindOperation, Name: "f", Arity: 1},
	}, f.Operations())
	assert.Equal(t, []Symbol{{Kind: KindRelation, Name: "r", Arity: 2}}, f.Relations())
	assert.Equal(t, []string{"x", "y", "z"}, f.Variables())
	assert.Equal(t, []string{"x"}, f.FreeVariables())
}

func TestFormula_FreeVariables_Shadowing(t *testing.T) {
	// x is free in the left conjunct and bound in the right one.
	f := MustParse("r(x) & forall x. s(x)")
	assert.Equal(t, []string{"x"}, f.FreeVariables())

	g := MustParse("forall x. r(x) & exists x. s(x)")
	assert.Empty(t, g.FreeVariables())
}

func TestFormula_RenameBound(t *testing.T) {
	f := MustParse("r(x) & (forall x. s(x) & exists x. t(x)) & forall y. s(y)")
	renamed := f.RenameBound()

	assert.Equal(t, "r(x) & (forall x.1. s(x.1) & (exists x.2. t(x.2))) & (forall y.1. s(y.1))", renamed.String())
	assert.Equal(t, []string{"x"}, renamed.FreeVariables())
	assert.Equal(t, []string{"x", "x.1", "x.2", "y.1"}, renamed.Variables())

	// The original is untouched.
	assert.Equal(t, []string{"x", "y"}, f.Variables())
}

func TestFormula_RenameBound_Restores_Outer_Scope(t *testing.T) {
	f := MustParse("forall x. (exists x. r(x)) & s(x)")
	renamed := f.RenameBound()
	assert.Equal(t, "forall x.1. (exists x.2. r(x.2)) & s(x.1)", renamed.String())
}

func TestSymbol_String(t *testing.T) {
	assert.Equal(t, "f/2", Symbol{Kind: KindOperation, Name: "f", Arity: 2}.String())
	assert.Equal(t, "forall x", Symbol{Kind: KindForAll, Name: "x", Arity: 1}.String())
	assert.Equal(t, "and", Symbol{Kind: KindAnd, Arity: 3}.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestKind_IsTerm(t *testing.T) {
	require.True(t, KindVariable.IsTerm())
	require.True(t, KindOperation.IsTerm())
	require.False(t, KindRelation.IsTerm())
	require.False(t, KindEquals.IsTerm())
}
