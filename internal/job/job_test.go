package job

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/modelgen/internal/search"
)

func writeJobs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	}
	return dir
}

func TestCompileString(t *testing.T) {
	jobs, err := CompileString(`
job: semigroups: {
	size:    3
	formula: "(x*y)*z = x*(y*z)"
}
job: first_poset: {
	size:    4
	formula: "poset"
	mode:    "first"
	only:    "si"
	limit:   2
}
`)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "semigroups", jobs[0].Name)
	assert.Equal(t, 3, jobs[0].Size)
	assert.Equal(t, search.ModeAll, jobs[0].Mode)
	assert.Zero(t, jobs[0].Limit)
	assert.True(t, jobs[0].Pos.IsValid())

	assert.Equal(t, search.Request{
		Name:    "first_poset",
		Problem: "poset",
		Filter:  "si",
		Size:    4,
		Mode:    search.ModeFirst,
		Limit:   2,
	}, jobs[1].Request())
}

func TestCompileString_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"no jobs", `other: 1`, "no jobs defined"},
		{"empty", `job: {}`, "no jobs defined"},
		{"missing size", `job: a: formula: "x = x"`, "job a"},
		{"zero size", `job: a: {size: 0, formula: "x = x"}`, "job a"},
		{"bad mode", `job: a: {size: 2, formula: "x = x", mode: "some"}`, "job a"},
		{"unknown field", `job: a: {size: 2, formula: "x = x", colour: "red"}`, "job a"},
		{"bad formula", `job: a: {size: 2, formula: "x = "}`, "formula"},
		{"negative limit", `job: a: {size: 2, formula: "x = x", limit: -1}`, "job a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileString(tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := writeJobs(t, map[string]string{
		"groups.cue": `package jobs

job: groups: {
	size:    4
	formula: "(x*y)*z = x*(y*z) & 1*x = x & x*1 = x & i(x)*x = 1 & x*i(x) = 1"
}
`,
		"orders.cue": `package jobs

job: orders: {
	size:    3
	formula: """
		poset
		x<=y | y<=x
		"""
}
`,
		"notes.txt": "ignored",
	})

	jobs, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	names := []string{jobs[0].Name, jobs[1].Name}
	assert.ElementsMatch(t, []string{"groups", "orders"}, names)
	for _, j := range jobs {
		if j.Name == "orders" {
			assert.Equal(t, "poset\nx<=y | y<=x", j.Formula)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope"))
		assertCode(t, err, ErrCodeNotFound)
	})

	t.Run("not a dir", func(t *testing.T) {
		dir := writeJobs(t, map[string]string{"a.cue": "package jobs\n"})
		_, err := Load(filepath.Join(dir, "a.cue"))
		assertCode(t, err, ErrCodeNotFound)
	})

	t.Run("no files", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assertCode(t, err, ErrCodeNoFiles)
	})

	t.Run("syntax", func(t *testing.T) {
		dir := writeJobs(t, map[string]string{"a.cue": "package jobs\njob: {"})
		_, err := Load(dir)
		assertCode(t, err, ErrCodeLoadFailed)
	})

	t.Run("conflict", func(t *testing.T) {
		dir := writeJobs(t, map[string]string{
			"a.cue": "package jobs\njob: a: size: 2\n",
			"b.cue": "package jobs\njob: a: size: 3\n",
		})
		_, err := Load(dir)
		assertCode(t, err, ErrCodeBuildFailed)
	})

	t.Run("invalid job", func(t *testing.T) {
		dir := writeJobs(t, map[string]string{"a.cue": "package jobs\njob: a: {size: 2, mode: \"first\"}\n"})
		_, err := Load(dir)
		assertCode(t, err, ErrCodeInvalidJob)
	})
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var le *LoadError
	require.True(t, errors.As(err, &le), "got %T: %v", err, err)
	assert.Equal(t, code, le.Code, le.Error())
}

func TestCompileError_Format(t *testing.T) {
	err := &CompileError{Field: "size", Message: "must be positive"}
	assert.Equal(t, "size: must be positive", err.Error())
}

func TestCompileString_QuotedName(t *testing.T) {
	jobs, err := CompileString(`job: "size-4 groups": {size: 4, formula: "x = x"}`)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "size-4 groups", jobs[0].Name)
}

func TestCompileString_ReportsEveryInvalidJob(t *testing.T) {
	_, err := CompileString(`
job: good: {size: 2, formula: "x = x"}
job: nosize: {formula: "x = x"}
job: badmode: {size: 2, formula: "x = x", mode: "most"}
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.Contains(t, err.Error(), "job nosize")
	assert.Contains(t, err.Error(), "job badmode")

	var ce *CompileError
	assert.True(t, errors.As(err, &ce))
}
