package printer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/modelgen/internal/alg"
)

// TextPrinter writes models as tables.
//
// Nullary operations print as "c = 0", unary ones as "f = [1 2 0]", binary
// operations and relations as Cayley tables, everything else one tuple per
// line. Each model is followed by a blank line.
type TextPrinter struct {
	w io.Writer
}

// NewTextPrinter creates a TextPrinter writing to w.
func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{w: w}
}

// Comment writes "# text".
func (p *TextPrinter) Comment(text string) error {
	_, err := fmt.Fprintf(p.w, "# %s\n", text)
	return err
}

// Algebra writes every table of a.
func (p *TextPrinter) Algebra(a alg.Algebra) error {
	var buf bytes.Buffer
	n := a.Size()
	for _, op := range a.Operations() {
		writeTable(&buf, op.Symbol(), n, op.Arity(), func(args []int) int { return op.Value(args...) })
	}
	for _, rel := range a.Relations() {
		holds := func(args []int) int {
			if rel.Holds(args...) {
				return 1
			}
			return 0
		}
		if rel.Arity() == 1 {
			writeSet(&buf, rel.Symbol(), n, holds)
			continue
		}
		writeTable(&buf, rel.Symbol(), n, rel.Arity(), holds)
	}
	buf.WriteByte('\n')
	_, err := p.w.Write(buf.Bytes())
	return err
}

func writeTable(buf *bytes.Buffer, name string, n, arity int, value func([]int) int) {
	switch arity {
	case 0:
		fmt.Fprintf(buf, "%s = %d\n", name, value(nil))
	case 1:
		vals := make([]string, n)
		for x := 0; x < n; x++ {
			vals[x] = strconv.Itoa(value([]int{x}))
		}
		fmt.Fprintf(buf, "%s = [%s]\n", name, strings.Join(vals, " "))
	case 2:
		writeCayley(buf, name, n, value)
	default:
		alg.ForEachTuple(n, arity, func(_ int, args []int) {
			fmt.Fprintf(buf, "%s(%s) = %d\n", name, joinInts(args, ","), value(args))
		})
	}
}

func writeCayley(buf *bytes.Buffer, name string, n int, value func([]int) int) {
	w := len(strconv.Itoa(n - 1))
	lw := max(len(name), w)

	fmt.Fprintf(buf, "%-*s |", lw, name)
	for y := 0; y < n; y++ {
		fmt.Fprintf(buf, " %*d", w, y)
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat("-", lw+1) + "+" + strings.Repeat("-", n*(w+1)) + "\n")

	args := make([]int, 2)
	for x := 0; x < n; x++ {
		fmt.Fprintf(buf, "%-*d |", lw, x)
		for y := 0; y < n; y++ {
			args[0], args[1] = x, y
			fmt.Fprintf(buf, " %*d", w, value(args))
		}
		buf.WriteByte('\n')
	}
}

func writeSet(buf *bytes.Buffer, name string, n int, holds func([]int) int) {
	var in []int
	for x := 0; x < n; x++ {
		if holds([]int{x}) == 1 {
			in = append(in, x)
		}
	}
	fmt.Fprintf(buf, "%s = {%s}\n", name, joinInts(in, " "))
}

func joinInts(xs []int, sep string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, sep)
}
