package symbol

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Pos is a 1-based line and column in the formula source.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	pos  Pos
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}

// punctuation longest-first so that "<->" wins over "<=" and "->".
var punctuation = []string{"<->", "->", "!=", "<=", "(", ")", ",", ".", "&", "|", "!", "~", "=", "*", "+"}

type lexer struct {
	src  string
	off  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) tokens() ([]token, error) {
	var out []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.kind == tokEOF {
			return out, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	pos := Pos{Line: l.line, Column: l.col}
	if l.off >= len(l.src) {
		return token{kind: tokEOF, pos: pos}, nil
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.off:])
	switch {
	case unicode.IsLetter(r) || r == '_':
		start := l.off
		for l.off < len(l.src) {
			r, _ := utf8.DecodeRuneInString(l.src[l.off:])
			if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '\'') {
				break
			}
			l.advance()
		}
		return token{kind: tokIdent, text: l.src[start:l.off], pos: pos}, nil
	case unicode.IsDigit(r):
		start := l.off
		for l.off < len(l.src) {
			r, _ := utf8.DecodeRuneInString(l.src[l.off:])
			if !unicode.IsDigit(r) {
				break
			}
			l.advance()
		}
		return token{kind: tokNumber, text: l.src[start:l.off], pos: pos}, nil
	}

	for _, p := range punctuation {
		if len(l.src)-l.off >= len(p) && l.src[l.off:l.off+len(p)] == p {
			for range p {
				l.advance()
			}
			return token{kind: tokPunct, text: p, pos: pos}, nil
		}
	}
	return token{}, &ParseError{Pos: pos, Message: fmt.Sprintf("unexpected character %q", r)}
}

func (l *lexer) skipSpace() {
	for l.off < len(l.src) {
		r, _ := utf8.DecodeRuneInString(l.src[l.off:])
		if !unicode.IsSpace(r) {
			return
		}
		l.advance()
	}
}

// advance consumes one rune and keeps line/column current.
func (l *lexer) advance() {
	r, size := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += size
	if r == '\n' {
		l.line++
		l.col = 1
		return
	}
	l.col++
}
