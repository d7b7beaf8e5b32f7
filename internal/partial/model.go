package partial

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/modelgen/internal/symbol"
)

// Option configures a ModelPrinter.
type Option func(*ModelPrinter)

// WithLimit stops an all-models run after n models. n <= 0 means no limit.
func WithLimit(n int) Option {
	return func(m *ModelPrinter) { m.limit = n }
}

// WithFilter restricts models to those passing the named algebraic
// predicates: si, noncon, toursp, nontoursp, intour3.
func WithFilter(filter string) Option {
	return func(m *ModelPrinter) { m.filter = filter }
}

// WithSink sets where accepted models go. The default discards them.
func WithSink(s Sink) Option {
	return func(m *ModelPrinter) { m.sink = s }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *ModelPrinter) { m.logger = l }
}

// Stats summarises one run.
type Stats struct {
	Models  int
	Cells   int
	Markers int
}

// ModelPrinter enumerates the models of one formula at one size, one per
// isomorphism class.
type ModelPrinter struct {
	size      int
	formula   *symbol.Formula
	pool      *MarkerPool
	structure *Structure

	permutation *FunctionVariable
	inverse     *FunctionVariable
	vars        map[string]*Variable

	body      Node
	canonical Node
	filterNd  *FilterNode

	limit  int
	filter string
	sink   Sink
	logger *slog.Logger
}

// NewModelPrinter compiles formula for structures of the given size.
// Free variables are read as universally quantified.
func NewModelPrinter(formula *symbol.Formula, size int, opts ...Option) (*ModelPrinter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrDomain, size)
	}
	if err := formula.Check(); err != nil {
		return nil, err
	}
	m := &ModelPrinter{
		size:    size,
		formula: formula.RenameBound(),
		pool:    NewMarkerPool(),
		sink:    discardSink{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.build(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ModelPrinter) build() error {
	tables := map[string]*FunctionVariable{}
	var ops, rels []*FunctionVariable
	for _, s := range m.formula.Operations() {
		f, err := NewFunctionVariable(s.Name, m.size, s.Arity, m.size)
		if err != nil {
			return err
		}
		tables[s.Name] = f
		ops = append(ops, f)
	}
	for _, s := range m.formula.Relations() {
		f, err := NewFunctionVariable(s.Name, m.size, s.Arity, 2)
		if err != nil {
			return err
		}
		tables[s.Name] = f
		rels = append(rels, f)
	}
	m.structure = newStructure(m.size, ops, rels)

	// Earlier cells get smaller markers so that, among the cells blocking
	// an answer, the first in search order is reported and assigned next.
	cells := m.structure.Cells()
	for i := len(cells) - 1; i >= 0; i-- {
		if err := cells[i].TakeMarker(m.pool); err != nil {
			return err
		}
	}

	var err error
	if m.permutation, err = newFunctionVariable(m.pool, "perm", m.size, 1, m.size); err != nil {
		return err
	}
	if m.inverse, err = newFunctionVariable(m.pool, "inv", m.size, 1, m.size); err != nil {
		return err
	}

	m.vars = map[string]*Variable{}
	for _, name := range m.formula.Variables() {
		v, err := NewVariable(m.pool, m.size)
		if err != nil {
			return fmt.Errorf("variable %s: %w", name, err)
		}
		m.vars[name] = v
	}

	c := &compiler{vars: m.vars, tables: tables}
	body, err := c.formula(m.formula)
	if err != nil {
		return err
	}
	var free []*Variable
	for _, name := range m.formula.FreeVariables() {
		free = append(free, m.vars[name])
	}
	m.body = NewForAll(free, body)

	if m.canonical, err = m.canonicalNode(); err != nil {
		return err
	}

	if m.filter != "" {
		var ignored []string
		m.filterNd, ignored = newFilterNode(m.structure, m.filter)
		logIgnored(m.logger, ignored)
	}

	m.logger.Debug("search compiled",
		"size", m.size,
		"formula", m.formula.String(),
		"cells", len(cells),
		"markers", m.pool.Issued())
	return nil
}

// canonicalNode holds when the structure, read in search order, is no
// greater than its image under every permutation of the universe.
func (m *ModelPrinter) canonicalNode() (Node, error) {
	inv := m.inverse.Cells()
	var original, permuted []Node
	for _, c := range m.structure.order {
		original = append(original, c.v)

		args := make([]Node, len(c.args))
		for k, a := range c.args {
			args[k] = inv[a]
		}
		image, err := NewFunction(c.table, args...)
		if err != nil {
			return nil, err
		}
		if slices.Contains(m.structure.rels, c.table) {
			permuted = append(permuted, image)
			continue
		}
		mapped, err := NewFunction(m.permutation, image)
		if err != nil {
			return nil, err
		}
		permuted = append(permuted, mapped)
	}
	lex, err := NewLexLessThan(original, permuted, true)
	if err != nil {
		return nil, err
	}
	return NewForAllPerm(m.permutation.Cells(), inv, lex)
}

// searchNode assembles the tree evaluated by one run.
func (m *ModelPrinter) searchNode(exhaustive bool) (*PrintAlgebraNode, Node) {
	conj := []Node{m.body, m.canonical}
	if m.filterNd != nil {
		conj = append(conj, m.filterNd)
	}
	p := &PrintAlgebraNode{
		sub:        NewAnd(conj...),
		structure:  m.structure,
		sink:       m.sink,
		exhaustive: exhaustive,
	}
	if exhaustive {
		p.limit = m.limit
		return p, NewForAll(m.structure.Cells(), p)
	}
	return p, NewExists(m.structure.Cells(), p)
}

// PrintAllModels emits one model per isomorphism class.
func (m *ModelPrinter) PrintAllModels() (Stats, error) {
	return m.run(true)
}

// PrintFirstModel emits the first model found, if any.
func (m *ModelPrinter) PrintFirstModel() (Stats, error) {
	return m.run(false)
}

func (m *ModelPrinter) run(exhaustive bool) (Stats, error) {
	p, root := m.searchNode(exhaustive)
	root.Evaluate()
	stats := Stats{
		Models:  p.Models(),
		Cells:   len(m.structure.order),
		Markers: m.pool.Issued(),
	}
	m.logger.Debug("search finished", "exhaustive", exhaustive, "models", stats.Models)
	return stats, p.Err()
}

// Structure exposes the tables being searched.
func (m *ModelPrinter) Structure() *Structure { return m.structure }

// Size returns the universe size.
func (m *ModelPrinter) Size() int { return m.size }

// Filter returns the predicates applied to complete structures.
func (m *ModelPrinter) Filter() []string {
	if m.filterNd == nil {
		return nil
	}
	return m.filterNd.Tokens()
}
