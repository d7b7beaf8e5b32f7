package printer

import (
	"fmt"
	"io"

	"github.com/roach88/modelgen/internal/alg"
)

// JSONPrinter writes one canonical JSON object per model and line:
//
//	{"comment":"model 1","operations":{"*":{"arity":2,"values":[0,0,0,1]}},"relations":{},"size":2}
//
// Values are row-major; relation values are 0 or 1. The comment seen last
// is attached to the next model.
type JSONPrinter struct {
	w       io.Writer
	comment string
}

// NewJSONPrinter creates a JSONPrinter writing to w.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{w: w}
}

// Comment stores text for the next model.
func (p *JSONPrinter) Comment(text string) error {
	p.comment = text
	return nil
}

// Algebra writes a as one JSON line.
func (p *JSONPrinter) Algebra(a alg.Algebra) error {
	data, err := MarshalCanonical(Document(a, p.comment))
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	p.comment = ""
	data = append(data, '\n')
	_, err = p.w.Write(data)
	return err
}

// Document converts a into the map MarshalCanonical encodes.
func Document(a alg.Algebra, comment string) map[string]any {
	n := a.Size()
	ops := map[string]any{}
	for _, op := range a.Operations() {
		var values []int
		alg.ForEachTuple(n, op.Arity(), func(_ int, args []int) {
			values = append(values, op.Value(args...))
		})
		ops[op.Symbol()] = map[string]any{"arity": op.Arity(), "values": values}
	}
	rels := map[string]any{}
	for _, rel := range a.Relations() {
		var values []int
		alg.ForEachTuple(n, rel.Arity(), func(_ int, args []int) {
			if rel.Holds(args...) {
				values = append(values, 1)
			} else {
				values = append(values, 0)
			}
		})
		rels[rel.Symbol()] = map[string]any{"arity": rel.Arity(), "values": values}
	}
	doc := map[string]any{
		"size":       n,
		"operations": ops,
		"relations":  rels,
	}
	if comment != "" {
		doc["comment"] = comment
	}
	return doc
}
