package symbol

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies what a Symbol denotes.
type Kind int

const (
	KindVariable Kind = iota
	KindOperation
	KindRelation
	KindEquals
	KindDistinct
	KindAnd
	KindOr
	KindNot
	KindImplies
	KindEquiv
	KindForAll
	KindExists
	KindTrue
	KindFalse
)

var kindNames = map[Kind]string{
	KindVariable:  "variable",
	KindOperation: "operation",
	KindRelation:  "relation",
	KindEquals:    "equals",
	KindDistinct:  "distinct",
	KindAnd:       "and",
	KindOr:        "or",
	KindNot:       "not",
	KindImplies:   "implies",
	KindEquiv:     "equiv",
	KindForAll:    "forall",
	KindExists:    "exists",
	KindTrue:      "true",
	KindFalse:     "false",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsTerm reports whether formulas of this kind denote domain elements.
func (k Kind) IsTerm() bool {
	return k == KindVariable || k == KindOperation
}

// Symbol is the identity of one formula node.
//
// For operations and relations Name is the symbol name and Arity the number
// of arguments. For quantifiers Name is the bound variable. For connectives
// Arity equals the number of sub-formulas.
type Symbol struct {
	Kind  Kind
	Name  string
	Arity int
}

func (s Symbol) String() string {
	switch s.Kind {
	case KindVariable, KindOperation, KindRelation:
		return fmt.Sprintf("%s/%d", s.Name, s.Arity)
	case KindForAll, KindExists:
		return fmt.Sprintf("%s %s", s.Kind, s.Name)
	default:
		return s.Kind.String()
	}
}

// Formula is a node of a parsed first-order formula.
type Formula struct {
	Symbol Symbol
	Subs   []*Formula
	Pos    Pos
}

// Operations returns the distinct operation symbols, sorted by name.
func (f *Formula) Operations() []Symbol {
	return f.collect(KindOperation)
}

// Relations returns the distinct relation symbols, sorted by name.
func (f *Formula) Relations() []Symbol {
	return f.collect(KindRelation)
}

// Variables returns every variable name occurring in the formula, including
// names that only appear as binders, sorted.
func (f *Formula) Variables() []string {
	seen := map[string]bool{}
	f.walk(func(n *Formula) {
		switch n.Symbol.Kind {
		case KindVariable, KindForAll, KindExists:
			seen[n.Symbol.Name] = true
		}
	})
	return sortedKeys(seen)
}

// FreeVariables returns the variables with at least one free occurrence,
// sorted.
func (f *Formula) FreeVariables() []string {
	free := map[string]bool{}
	var visit func(n *Formula, bound map[string]int)
	visit = func(n *Formula, bound map[string]int) {
		switch n.Symbol.Kind {
		case KindVariable:
			if bound[n.Symbol.Name] == 0 {
				free[n.Symbol.Name] = true
			}
			return
		case KindForAll, KindExists:
			bound[n.Symbol.Name]++
			for _, sub := range n.Subs {
				visit(sub, bound)
			}
			bound[n.Symbol.Name]--
			return
		}
		for _, sub := range n.Subs {
			visit(sub, bound)
		}
	}
	visit(f, map[string]int{})
	return sortedKeys(free)
}

// Check verifies that every operation and relation name is used with a
// single arity and that no name is both an operation and a relation.
func (f *Formula) Check() error {
	type use struct {
		kind  Kind
		arity int
		pos   Pos
	}
	uses := map[string]use{}
	var err error
	f.walk(func(n *Formula) {
		if err != nil {
			return
		}
		k := n.Symbol.Kind
		if k != KindOperation && k != KindRelation {
			return
		}
		prev, ok := uses[n.Symbol.Name]
		if !ok {
			uses[n.Symbol.Name] = use{kind: k, arity: n.Symbol.Arity, pos: n.Pos}
			return
		}
		if prev.kind != k {
			err = &ParseError{Pos: n.Pos, Message: fmt.Sprintf("%q used as both %s and %s", n.Symbol.Name, prev.kind, k)}
			return
		}
		if prev.arity != n.Symbol.Arity {
			err = &ParseError{Pos: n.Pos, Message: fmt.Sprintf("%q used with arity %d and %d", n.Symbol.Name, prev.arity, n.Symbol.Arity)}
		}
	})
	return err
}

func (f *Formula) collect(kind Kind) []Symbol {
	seen := map[string]Symbol{}
	f.walk(func(n *Formula) {
		if n.Symbol.Kind == kind {
			if _, ok := seen[n.Symbol.Name]; !ok {
				seen[n.Symbol.Name] = n.Symbol
			}
		}
	})
	out := make([]Symbol, 0, len(seen))
	for _, s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *Formula) walk(fn func(*Formula)) {
	fn(f)
	for _, sub := range f.Subs {
		sub.walk(fn)
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// String renders the formula in the input syntax, fully parenthesised below
// the top level.
func (f *Formula) String() string {
	var b strings.Builder
	f.format(&b, true)
	return b.String()
}

var infix = map[Kind]string{
	KindAnd:     " & ",
	KindOr:      " | ",
	KindImplies: " -> ",
	KindEquiv:   " <-> ",
	KindEquals:  " = ",
}

func (f *Formula) format(b *strings.Builder, top bool) {
	s := f.Symbol
	switch s.Kind {
	case KindVariable:
		b.WriteString(s.Name)
	case KindTrue, KindFalse:
		b.WriteString(s.Kind.String())
	case KindOperation, KindRelation:
		if isInfixName(s.Name) && len(f.Subs) == 2 {
			if !top {
				b.WriteByte('(')
			}
			f.Subs[0].format(b, false)
			b.WriteString(s.Name)
			f.Subs[1].format(b, false)
			if !top {
				b.WriteByte(')')
			}
			return
		}
		b.WriteString(s.Name)
		if s.Arity > 0 {
			f.formatArgs(b)
		}
	case KindDistinct:
		b.WriteString("distinct")
		f.formatArgs(b)
	case KindNot:
		b.WriteByte('!')
		f.Subs[0].format(b, false)
	case KindForAll, KindExists:
		if !top {
			b.WriteByte('(')
		}
		fmt.Fprintf(b, "%s %s. ", s.Kind, s.Name)
		f.Subs[0].format(b, true)
		if !top {
			b.WriteByte(')')
		}
	default:
		if !top {
			b.WriteByte('(')
		}
		for i, sub := range f.Subs {
			if i > 0 {
				b.WriteString(infix[s.Kind])
			}
			sub.format(b, false)
		}
		if !top {
			b.WriteByte(')')
		}
	}
}

func (f *Formula) formatArgs(b *strings.Builder) {
	b.WriteByte('(')
	for i, sub := range f.Subs {
		if i > 0 {
			b.WriteString(", ")
		}
		sub.format(b, true)
	}
	b.WriteByte(')')
}

func isInfixName(name string) bool {
	return name == "*" || name == "+" || name == "<="
}
