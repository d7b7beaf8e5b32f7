package partial

import (
	"fmt"

	"github.com/roach88/modelgen/internal/symbol"
)

// compiler turns a formula into a Node tree over the search's tables and
// first-order variables.
type compiler struct {
	vars   map[string]*Variable
	tables map[string]*FunctionVariable
}

// formula compiles a boolean-valued formula.
func (c *compiler) formula(f *symbol.Formula) (Node, error) {
	switch f.Symbol.Kind {
	case symbol.KindTrue:
		return NewConstant(1), nil
	case symbol.KindFalse:
		return NewConstant(0), nil
	case symbol.KindRelation:
		return c.apply(f)
	case symbol.KindEquals, symbol.KindDistinct:
		args, err := c.terms(f.Subs)
		if err != nil {
			return nil, err
		}
		if f.Symbol.Kind == symbol.KindDistinct {
			return NewAllDistinct(args...), nil
		}
		if len(args) == 2 {
			return NewEquals(args[0], args[1]), nil
		}
		return NewAllEqual(args...), nil
	case symbol.KindNot:
		sub, err := c.formula(f.Subs[0])
		if err != nil {
			return nil, err
		}
		return NewNot(sub), nil
	case symbol.KindAnd, symbol.KindOr:
		subs, err := c.formulas(f.Subs)
		if err != nil {
			return nil, err
		}
		if f.Symbol.Kind == symbol.KindAnd {
			return NewAnd(subs...), nil
		}
		return NewOr(subs...), nil
	case symbol.KindImplies, symbol.KindEquiv:
		subs, err := c.formulas(f.Subs)
		if err != nil {
			return nil, err
		}
		if f.Symbol.Kind == symbol.KindImplies {
			return NewImplies(subs[0], subs[1]), nil
		}
		return NewEquals(subs[0], subs[1]), nil
	case symbol.KindForAll, symbol.KindExists:
		v, ok := c.vars[f.Symbol.Name]
		if !ok {
			return nil, fmt.Errorf("%s: unknown bound variable %q", f.Pos, f.Symbol.Name)
		}
		body, err := c.formula(f.Subs[0])
		if err != nil {
			return nil, err
		}
		if f.Symbol.Kind == symbol.KindForAll {
			return NewForAll([]*Variable{v}, body), nil
		}
		return NewExists([]*Variable{v}, body), nil
	}
	return nil, fmt.Errorf("%s: %s is not a formula", f.Pos, f.Symbol)
}

// term compiles a domain-valued term.
func (c *compiler) term(f *symbol.Formula) (Node, error) {
	switch f.Symbol.Kind {
	case symbol.KindVariable:
		v, ok := c.vars[f.Symbol.Name]
		if !ok {
			return nil, fmt.Errorf("%s: unknown variable %q", f.Pos, f.Symbol.Name)
		}
		return v, nil
	case symbol.KindOperation:
		return c.apply(f)
	}
	return nil, fmt.Errorf("%s: %s is not a term", f.Pos, f.Symbol)
}

func (c *compiler) apply(f *symbol.Formula) (Node, error) {
	table, ok := c.tables[f.Symbol.Name]
	if !ok {
		return nil, fmt.Errorf("%s: unknown symbol %s", f.Pos, f.Symbol)
	}
	args, err := c.terms(f.Subs)
	if err != nil {
		return nil, err
	}
	fn, err := NewFunction(table, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", f.Pos, f.Symbol, err)
	}
	return fn, nil
}

func (c *compiler) terms(fs []*symbol.Formula) ([]Node, error) {
	out := make([]Node, len(fs))
	for i, f := range fs {
		n, err := c.term(f)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func (c *compiler) formulas(fs []*symbol.Formula) ([]Node, error) {
	out := make([]Node, len(fs))
	for i, f := range fs {
		n, err := c.formula(f)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
