package search

import (
	"fmt"
	"strings"

	"github.com/roach88/modelgen/internal/symbol"
)

// PosetAxioms is what the "poset" shorthand expands to.
const PosetAxioms = "x<=x & (x<=y & y<=x -> x=y) & (x<=y & y<=z -> x<=z)"

// Problem is a formula together with its filter tokens.
type Problem struct {
	Formula string
	Filter  string
}

// ParseProblem reads the line-oriented problem syntax:
//
//   - blank lines and lines starting with '#' or '%' are ignored,
//   - lines starting with "only" before the first formula line add their
//     remaining words to the filter,
//   - a line consisting of "poset" stands for the partial-order axioms,
//   - every other line is a formula; formula lines are conjoined.
func ParseProblem(text string) (Problem, error) {
	var p Problem
	var filter, parts []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "%") {
			continue
		}
		if len(parts) == 0 {
			if fields := strings.Fields(line); fields[0] == "only" {
				filter = append(filter, fields[1:]...)
				continue
			}
		}
		if line == "poset" {
			line = PosetAxioms
		}
		parts = append(parts, line)
	}
	if len(parts) == 0 {
		return p, fmt.Errorf("problem has no formula")
	}
	p.Filter = strings.Join(filter, " ")
	if len(parts) == 1 {
		p.Formula = parts[0]
		return p, nil
	}
	for i, part := range parts {
		parts[i] = "(" + part + ")"
	}
	p.Formula = strings.Join(parts, " & ")
	return p, nil
}

// Compile parses the problem's formula.
func (p Problem) Compile() (*symbol.Formula, error) {
	return symbol.Parse(p.Formula)
}
