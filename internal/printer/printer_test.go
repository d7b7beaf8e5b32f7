package printer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/modelgen/internal/alg"
)

// sample is a 3-element chain with a constant, a cyclic unary operation and
// two relations.
func sample(t *testing.T) *alg.Finite {
	t.Helper()
	meet, err := alg.NewTable("*", 3, 2, []int{0, 0, 0, 0, 1, 1, 0, 1, 2})
	require.NoError(t, err)
	c, err := alg.NewTable("c", 3, 0, []int{2})
	require.NoError(t, err)
	f, err := alg.NewTable("f", 3, 1, []int{1, 2, 0})
	require.NoError(t, err)
	leq, err := alg.NewRelationTable("<=", 3, 2, []bool{true, true, true, false, true, true, false, false, true})
	require.NoError(t, err)
	p, err := alg.NewRelationTable("p", 3, 1, []bool{true, false, true})
	require.NoError(t, err)
	return alg.New(3, []alg.Operation{meet, c, f}, []alg.Relation{leq, p})
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestTextPrinter_Golden(t *testing.T) {
	var buf bytes.Buffer
	p := NewTextPrinter(&buf)
	require.NoError(t, p.Comment("model 1"))
	require.NoError(t, p.Algebra(sample(t)))
	golden(t).Assert(t, "text_sample", buf.Bytes())
}

func TestJSONPrinter_Golden(t *testing.T) {
	var buf bytes.Buffer
	p := NewJSONPrinter(&buf)
	require.NoError(t, p.Comment("model 1"))
	require.NoError(t, p.Algebra(sample(t)))
	golden(t).Assert(t, "json_sample", buf.Bytes())
}

func TestJSONPrinter_CommentConsumed(t *testing.T) {
	var buf bytes.Buffer
	p := NewJSONPrinter(&buf)
	a := alg.New(1, nil, nil)
	require.NoError(t, p.Comment("first"))
	require.NoError(t, p.Algebra(a))
	require.NoError(t, p.Algebra(a))
	assert.Equal(t,
		`{"comment":"first","operations":{},"relations":{},"size":1}`+"\n"+
			`{"operations":{},"relations":{},"size":1}`+"\n",
		buf.String())
}

func TestTextPrinter_HigherArity(t *testing.T) {
	maj, err := alg.NewTable("m", 2, 3, []int{0, 0, 0, 1, 0, 1, 1, 1})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, NewTextPrinter(&buf).Algebra(alg.New(2, []alg.Operation{maj}, nil)))
	assert.Equal(t, "m(0,0,0) = 0\nm(0,0,1) = 0\nm(0,1,0) = 0\nm(0,1,1) = 1\n"+
		"m(1,0,0) = 0\nm(1,0,1) = 1\nm(1,1,0) = 1\nm(1,1,1) = 1\n\n", buf.String())
}

func TestTextPrinter_WideCayley(t *testing.T) {
	values := make([]int, 11*11)
	for i := range values {
		values[i] = i % 11
	}
	tbl, err := alg.NewTable("op", 11, 2, values)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, NewTextPrinter(&buf).Algebra(alg.New(11, []alg.Operation{tbl}, nil)))
	lines := bytes.Split(buf.Bytes(), []byte("\n"))
	assert.Equal(t, "op |  0  1  2  3  4  5  6  7  8  9 10", string(lines[0]))
	assert.Equal(t, "---+---------------------------------", string(lines[1]))
	assert.Equal(t, "10 |  0  1  2  3  4  5  6  7  8  9 10", string(lines[12]))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrinters_PropagateWriteErrors(t *testing.T) {
	a := sample(t)
	assert.Error(t, NewTextPrinter(failingWriter{}).Algebra(a))
	assert.Error(t, NewTextPrinter(failingWriter{}).Comment("x"))
	assert.Error(t, NewJSONPrinter(failingWriter{}).Algebra(a))
}

func TestCounter(t *testing.T) {
	var c Counter
	a := sample(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Comment("ignored"))
		require.NoError(t, c.Algebra(a))
	}
	assert.Equal(t, 3, c.N)
}

func TestMarshalCanonical(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"sorted keys", map[string]any{"b": 1, "a": true}, `{"a":true,"b":1}`},
		{"no html escape", "<a&b>", `"<a&b>"`},
		{"nfc", "cafe\u0301", "\"caf\u00e9\""},
		{"nested", []any{[]int{1, 2}, map[string]any{}}, `[[1,2],{}]`},
		{"utf16 order", map[string]any{"\U0001F600": 1, "\uffff": 2}, "{\"\U0001F600\":1,\"\uffff\":2}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCanonical(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}

	_, err := MarshalCanonical(1.5)
	assert.Error(t, err)
	_, err = MarshalCanonical(map[string]any{"x": nil})
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	a := sample(t)
	fp, err := Fingerprint(a)
	require.NoError(t, err)
	assert.Equal(t, "7120bdb95d4a5226e8213a133ddb300f2a32841262e26492c4903667c0297673", fp)

	again, err := Fingerprint(alg.Snapshot(a))
	require.NoError(t, err)
	assert.Equal(t, fp, again, "snapshots share the fingerprint")

	f, err := alg.NewTable("f", 3, 1, []int{1, 2, 1})
	require.NoError(t, err)
	other, err := Fingerprint(alg.New(3, []alg.Operation{f}, nil))
	require.NoError(t, err)
	assert.NotEqual(t, fp, other)
}
