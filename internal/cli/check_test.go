package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_JSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "check", "x*y = 0 & r(x, y) & forall z. z <= x")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []SymbolInfo{{"*", 2}, {"0", 0}}, resp.Data.Operations)
	assert.Equal(t, []SymbolInfo{{"<=", 2}, {"r", 2}}, resp.Data.Relations)
	assert.Equal(t, []string{"x", "y", "z"}, resp.Data.Variables)
	assert.Equal(t, []string{"x", "y"}, resp.Data.Free)
	assert.NotEmpty(t, resp.Data.Formula)
}

func TestCheck_Text(t *testing.T) {
	path := writeFile(t, t.TempDir(), "groups.txt", "only si\n(x*y)*z = x*(y*z)\ni(x)*x = 1\n")
	out, _, err := execute(t, "check", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "operations: */2 1/0 i/1\n")
	assert.Contains(t, out, "relations:  \n")
	assert.Contains(t, out, "variables:  x y z\n")
	assert.Contains(t, out, "filter:     si\n")
}

func TestCheck_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"no formula", []string{"check"}, ErrCodeArgs},
		{"syntax", []string{"check", "x * = y"}, ErrCodeFormula},
		{"operation and relation", []string{"check", "f(x) = x & f(x)"}, ErrCodeFormula},
		{"only comments", []string{"check", "% nothing here"}, ErrCodeFormula},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.code+"]")
		})
	}
}
