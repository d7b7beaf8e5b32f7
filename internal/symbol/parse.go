package symbol

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// ParseError reports a syntax or typing error at a source position.
type ParseError struct {
	Pos     Pos
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

var keywords = map[string]bool{
	"forall":   true,
	"exists":   true,
	"true":     true,
	"false":    true,
	"distinct": true,
}

// Parse parses a formula. The source is NFC-normalised first so that
// visually identical symbol names compare equal.
func Parse(src string) (*Formula, error) {
	toks, err := newLexer(norm.NFC.String(src)).tokens()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseTop()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, &ParseError{Pos: tok.pos, Message: fmt.Sprintf("unexpected %s", tok)}
	}
	f, err := n.formula()
	if err != nil {
		return nil, err
	}
	if err := f.Check(); err != nil {
		return nil, err
	}
	return f, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// fixed axiom strings.
func MustParse(src string) *Formula {
	f, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("symbol.MustParse(%q): %v", src, err))
	}
	return f
}

// expr is the untyped parse tree. Whether a node is a term or a formula is
// decided afterwards from its position.
type expr struct {
	op   string // "forall", "exists", "<->", "->", "|", "&", "!", "=", "!=", "<=", "+", "*", "ident", "num", "call", "true", "false"
	name string
	args []*expr
	pos  Pos
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) take() token {
	tok := p.toks[p.i]
	if tok.kind != tokEOF {
		p.i++
	}
	return tok
}

func (p *parser) isPunct(text string) bool {
	tok := p.peek()
	return tok.kind == tokPunct && tok.text == text
}

func (p *parser) isKeyword(text string) bool {
	tok := p.peek()
	return tok.kind == tokIdent && tok.text == text
}

func (p *parser) expect(text string) (token, error) {
	if !p.isPunct(text) {
		tok := p.peek()
		return tok, &ParseError{Pos: tok.pos, Message: fmt.Sprintf("expected %q, found %s", text, tok)}
	}
	return p.take(), nil
}

func (p *parser) parseTop() (*expr, error) {
	left, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	for p.isPunct("<->") {
		tok := p.take()
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		left = &expr{op: "<->", args: []*expr{left, right}, pos: tok.pos}
	}
	return left, nil
}

func (p *parser) parseImplies() (*expr, error) {
	left, err := p.parseBinary("|", (*parser).parseAnd)
	if err != nil {
		return nil, err
	}
	if !p.isPunct("->") {
		return left, nil
	}
	tok := p.take()
	right, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	return &expr{op: "->", args: []*expr{left, right}, pos: tok.pos}, nil
}

func (p *parser) parseAnd() (*expr, error) {
	return p.parseBinary("&", (*parser).parseUnary)
}

// parseBinary parses a flat, associative chain of op.
func (p *parser) parseBinary(op string, operand func(*parser) (*expr, error)) (*expr, error) {
	first, err := operand(p)
	if err != nil {
		return nil, err
	}
	if !p.isPunct(op) {
		return first, nil
	}
	n := &expr{op: op, args: []*expr{first}, pos: p.peek().pos}
	for p.isPunct(op) {
		p.take()
		next, err := operand(p)
		if err != nil {
			return nil, err
		}
		n.args = append(n.args, next)
	}
	return n, nil
}

func (p *parser) parseUnary() (*expr, error) {
	if p.isPunct("!") || p.isPunct("~") {
		tok := p.take()
		sub, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &expr{op: "!", args: []*expr{sub}, pos: tok.pos}, nil
	}
	if p.isKeyword("forall") || p.isKeyword("exists") {
		return p.parseQuantifier()
	}
	return p.parseCompare()
}

func (p *parser) parseQuantifier() (*expr, error) {
	q := p.take()
	var vars []token
	for p.peek().kind == tokIdent && !keywords[p.peek().text] {
		vars = append(vars, p.take())
	}
	if len(vars) == 0 {
		tok := p.peek()
		return nil, &ParseError{Pos: tok.pos, Message: fmt.Sprintf("%s needs at least one variable, found %s", q.text, tok)}
	}
	if _, err := p.expect("."); err != nil {
		return nil, err
	}
	body, err := p.parseTop()
	if err != nil {
		return nil, err
	}
	for i := len(vars) - 1; i >= 0; i-- {
		body = &expr{op: q.text, name: vars[i].text, args: []*expr{body}, pos: vars[i].pos}
	}
	return body, nil
}

func (p *parser) parseCompare() (*expr, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	switch {
	case p.isPunct("="):
		n := &expr{op: "=", args: []*expr{left}, pos: p.peek().pos}
		for p.isPunct("=") {
			p.take()
			next, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			n.args = append(n.args, next)
		}
		return n, nil
	case p.isPunct("!=") || p.isPunct("<="):
		tok := p.take()
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		return &expr{op: tok.text, args: []*expr{left, right}, pos: tok.pos}, nil
	}
	return left, nil
}

func (p *parser) parseSum() (*expr, error) {
	return p.parseLeft("+", (*parser).parseProduct)
}

func (p *parser) parseProduct() (*expr, error) {
	return p.parseLeft("*", (*parser).parsePrimary)
}

// parseLeft parses a left-associative chain of a binary operation.
func (p *parser) parseLeft(op string, operand func(*parser) (*expr, error)) (*expr, error) {
	left, err := operand(p)
	if err != nil {
		return nil, err
	}
	for p.isPunct(op) {
		tok := p.take()
		right, err := operand(p)
		if err != nil {
			return nil, err
		}
		left = &expr{op: op, args: []*expr{left, right}, pos: tok.pos}
	}
	return left, nil
}

func (p *parser) parsePrimary() (*expr, error) {
	tok := p.peek()
	switch tok.kind {
	case tokNumber:
		p.take()
		return &expr{op: "num", name: tok.text, pos: tok.pos}, nil
	case tokIdent:
		p.take()
		switch tok.text {
		case "true", "false":
			return &expr{op: tok.text, pos: tok.pos}, nil
		case "forall", "exists":
			return nil, &ParseError{Pos: tok.pos, Message: fmt.Sprintf("quantifier %q must be parenthesised here", tok.text)}
		}
		if !p.isPunct("(") {
			if tok.text == "distinct" {
				return nil, &ParseError{Pos: tok.pos, Message: "distinct needs an argument list"}
			}
			return &expr{op: "ident", name: tok.text, pos: tok.pos}, nil
		}
		p.take()
		n := &expr{op: "call", name: tok.text, pos: tok.pos}
		if p.isPunct(")") {
			p.take()
			return n, nil
		}
		for {
			arg, err := p.parseTop()
			if err != nil {
				return nil, err
			}
			n.args = append(n.args, arg)
			if p.isPunct(",") {
				p.take()
				continue
			}
			if _, err := p.expect(")"); err != nil {
				return nil, err
			}
			return n, nil
		}
	case tokPunct:
		if tok.text == "(" {
			p.take()
			inner, err := p.parseTop()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(")"); err != nil {
				return nil, err
			}
			return inner, nil
		}
	}
	return nil, &ParseError{Pos: tok.pos, Message: fmt.Sprintf("unexpected %s", tok)}
}

// formula converts e, which must be in formula position.
func (e *expr) formula() (*Formula, error) {
	switch e.op {
	case "forall", "exists":
		body, err := e.args[0].formula()
		if err != nil {
			return nil, err
		}
		kind := KindForAll
		if e.op == "exists" {
			kind = KindExists
		}
		return &Formula{Symbol: Symbol{Kind: kind, Name: e.name, Arity: 1}, Subs: []*Formula{body}, Pos: e.pos}, nil
	case "<->", "->", "|", "&", "!":
		kind := map[string]Kind{"<->": KindEquiv, "->": KindImplies, "|": KindOr, "&": KindAnd, "!": KindNot}[e.op]
		subs, err := mapExprs(e.args, (*expr).formula)
		if err != nil {
			return nil, err
		}
		return &Formula{Symbol: Symbol{Kind: kind, Arity: len(subs)}, Subs: subs, Pos: e.pos}, nil
	case "=":
		subs, err := mapExprs(e.args, (*expr).term)
		if err != nil {
			return nil, err
		}
		return &Formula{Symbol: Symbol{Kind: KindEquals, Arity: len(subs)}, Subs: subs, Pos: e.pos}, nil
	case "!=":
		subs, err := mapExprs(e.args, (*expr).term)
		if err != nil {
			return nil, err
		}
		eq := &Formula{Symbol: Symbol{Kind: KindEquals, Arity: 2}, Subs: subs, Pos: e.pos}
		return &Formula{Symbol: Symbol{Kind: KindNot, Arity: 1}, Subs: []*Formula{eq}, Pos: e.pos}, nil
	case "<=":
		subs, err := mapExprs(e.args, (*expr).term)
		if err != nil {
			return nil, err
		}
		return &Formula{Symbol: Symbol{Kind: KindRelation, Name: "<=", Arity: 2}, Subs: subs, Pos: e.pos}, nil
	case "call":
		subs, err := mapExprs(e.args, (*expr).term)
		if err != nil {
			return nil, err
		}
		if e.name == "distinct" {
			if len(subs) < 2 {
				return nil, &ParseError{Pos: e.pos, Message: "distinct needs at least two arguments"}
			}
			return &Formula{Symbol: Symbol{Kind: KindDistinct, Arity: len(subs)}, Subs: subs, Pos: e.pos}, nil
		}
		if len(subs) == 0 {
			return nil, &ParseError{Pos: e.pos, Message: fmt.Sprintf("relation %q needs arguments", e.name)}
		}
		return &Formula{Symbol: Symbol{Kind: KindRelation, Name: e.name, Arity: len(subs)}, Subs: subs, Pos: e.pos}, nil
	case "true":
		return &Formula{Symbol: Symbol{Kind: KindTrue}, Pos: e.pos}, nil
	case "false":
		return &Formula{Symbol: Symbol{Kind: KindFalse}, Pos: e.pos}, nil
	}
	return nil, &ParseError{Pos: e.pos, Message: fmt.Sprintf("expected a formula, found term %s", e.describe())}
}

// term converts e, which must be in term position.
func (e *expr) term() (*Formula, error) {
	switch e.op {
	case "ident":
		return &Formula{Symbol: Symbol{Kind: KindVariable, Name: e.name}, Pos: e.pos}, nil
	case "num":
		return &Formula{Symbol: Symbol{Kind: KindOperation, Name: e.name}, Pos: e.pos}, nil
	case "+", "*":
		subs, err := mapExprs(e.args, (*expr).term)
		if err != nil {
			return nil, err
		}
		return &Formula{Symbol: Symbol{Kind: KindOperation, Name: e.op, Arity: 2}, Subs: subs, Pos: e.pos}, nil
	case "call":
		if e.name == "distinct" {
			return nil, &ParseError{Pos: e.pos, Message: "distinct is a formula, not a term"}
		}
		subs, err := mapExprs(e.args, (*expr).term)
		if err != nil {
			return nil, err
		}
		return &Formula{Symbol: Symbol{Kind: KindOperation, Name: e.name, Arity: len(subs)}, Subs: subs, Pos: e.pos}, nil
	}
	return nil, &ParseError{Pos: e.pos, Message: fmt.Sprintf("expected a term, found %s", e.describe())}
}

func (e *expr) describe() string {
	switch e.op {
	case "ident", "num", "call":
		return fmt.Sprintf("%q", e.name)
	}
	return fmt.Sprintf("%q", e.op)
}

func mapExprs(in []*expr, fn func(*expr) (*Formula, error)) ([]*Formula, error) {
	out := make([]*Formula, len(in))
	for i, e := range in {
		f, err := fn(e)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
