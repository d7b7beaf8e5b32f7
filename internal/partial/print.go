package partial

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/modelgen/internal/alg"
)

// Sink receives accepted models. Comment is called once before each
// Algebra. The Algebra passed in is live; implementations that keep it past
// the call must take an alg.Snapshot.
type Sink interface {
	Comment(text string) error
	Algebra(a alg.Algebra) error
}

// discardSink drops every model.
type discardSink struct{}

func (discardSink) Comment(string) error       { return nil }
func (discardSink) Algebra(alg.Algebra) error { return nil }

// PrintAlgebraNode emits the structure each time its sub-node holds on a
// complete assignment.
//
// In exhaustive mode every definite answer is reported as 1 so that an
// enclosing ForAll keeps enumerating, and 0 is returned once the limit is
// reached or the sink failed, which stops it. Otherwise the sub-node's
// answer is returned unchanged, so an enclosing Exists stops on the first
// emitted model.
type PrintAlgebraNode struct {
	sub        Node
	structure  *Structure
	sink       Sink
	exhaustive bool
	limit      int

	models int
	err    error
}

func (p *PrintAlgebraNode) Evaluate() int {
	if p.stopped() {
		return 0
	}
	r := p.sub.Evaluate()
	if r < 0 {
		return r
	}
	if r == 1 {
		if m, open := p.structure.pending(); open {
			return m
		}
		p.emit()
	}
	if p.exhaustive {
		if p.stopped() {
			return 0
		}
		return 1
	}
	return r
}

func (*PrintAlgebraNode) node() {}

func (p *PrintAlgebraNode) stopped() bool {
	return p.err != nil || (p.limit > 0 && p.models >= p.limit)
}

// emit counts a model only once the sink has accepted it.
func (p *PrintAlgebraNode) emit() {
	if err := p.sink.Comment(fmt.Sprintf("model %d", p.models+1)); err != nil {
		p.err = fmt.Errorf("sink comment: %w", err)
		return
	}
	if err := p.sink.Algebra(p.structure); err != nil {
		p.err = fmt.Errorf("sink algebra: %w", err)
		return
	}
	p.models++
}

// Models returns how many models were emitted.
func (p *PrintAlgebraNode) Models() int { return p.models }

// Err returns the first sink error.
func (p *PrintAlgebraNode) Err() error { return p.err }

// check is one algebraic filter predicate.
type check struct {
	token string
	holds func(alg.Algebra) bool
}

var filterChecks = []check{
	{"si", alg.SubdirectlyIrreducible},
	{"noncon", func(a alg.Algebra) bool { return !alg.Conservative(a) }},
	{"toursp", func(a alg.Algebra) bool { return alg.SubdirectProductOf(a, alg.Tournament) }},
	{"nontoursp", func(a alg.Algebra) bool { return !alg.SubdirectProductOf(a, alg.Tournament) }},
	{"intour3", func(a alg.Algebra) bool { return alg.SubdirectProductOf(a, alg.SmallTournament(3)) }},
}

// FilterNode rejects complete structures that fail an algebraic predicate.
type FilterNode struct {
	structure *Structure
	checks    []check
}

// newFilterNode selects the predicates named in filter. Tokens are matched
// as whole words; unknown ones are ignored and returned.
func newFilterNode(structure *Structure, filter string) (*FilterNode, []string) {
	padded := " " + filter + " "
	f := &FilterNode{structure: structure}
	known := map[string]bool{}
	for _, c := range filterChecks {
		known[c.token] = true
		if strings.Contains(padded, " "+c.token+" ") {
			f.checks = append(f.checks, c)
		}
	}
	var ignored []string
	for _, tok := range strings.Fields(filter) {
		if !known[tok] {
			ignored = append(ignored, tok)
		}
	}
	return f, ignored
}

func (f *FilterNode) Evaluate() int {
	if m, open := f.structure.pending(); open {
		return m
	}
	for _, c := range f.checks {
		if !c.holds(f.structure) {
			return 0
		}
	}
	return 1
}

func (*FilterNode) node() {}

// Tokens returns the predicates the filter applies, in evaluation order.
func (f *FilterNode) Tokens() []string {
	var out []string
	for _, c := range f.checks {
		out = append(out, c.token)
	}
	return out
}

func logIgnored(logger *slog.Logger, ignored []string) {
	if len(ignored) > 0 {
		logger.Debug("ignoring unknown filter tokens", "tokens", ignored)
	}
}
