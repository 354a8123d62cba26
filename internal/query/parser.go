package query

import (
	"strings"
	"unicode"

	"github.com/heartmarshall/topicreview-backend/internal/domain"
)

// Grammar:
//
//	query   = or EOF
//	or      = and { "OR" and }
//	and     = unary { ["AND"] unary }
//	unary   = ("NOT" | "-") unary | primary
//	primary = "(" or ")" | term
//	term    = [field ":"] (word | quoted)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLParen
	tokRParen
	tokAnd
	tokOr
	tokNot
	tokTerm
)

type token struct {
	kind  tokenKind
	field string
	value string
	pos   int
}

type nodeKind int

const (
	nodeTerm nodeKind = iota
	nodeAnd
	nodeOr
	nodeNot
)

// node is the syntax tree produced by parse.
type node struct {
	kind     nodeKind
	field    string
	value    string
	children []*node
}

// ---------------------------------------------------------------------------
// Lexer
// ---------------------------------------------------------------------------

type lexer struct {
	src []rune
	pos int
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
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}

	switch r := l.src[l.pos]; {
	case r == '(':
		l.pos++
		return token{kind: tokLParen, pos: start}, nil
	case r == ')':
		l.pos++
		return token{kind: tokRParen, pos: start}, nil
	case r == '-' && l.pos+1 < len(l.src) && !unicode.IsSpace(l.src[l.pos+1]):
		l.pos++
		return token{kind: tokNot, pos: start}, nil
	case r == '"':
		v, err := l.quoted()
		if err != nil {
			return token{}, err
		}
		return token{kind: tokTerm, value: v, pos: start}, nil
	}

	word := l.word()
	switch word {
	case "AND":
		return token{kind: tokAnd, pos: start}, nil
	case "OR":
		return token{kind: tokOr, pos: start}, nil
	case "NOT":
		return token{kind: tokNot, pos: start}, nil
	}

	field, value, ok := strings.Cut(word, ":")
	if !ok || !isFieldName(field) {
		return token{kind: tokTerm, value: word, pos: start}, nil
	}
	if value == "" && l.pos < len(l.src) && l.src[l.pos] == '"' {
		v, err := l.quoted()
		if err != nil {
			return token{}, err
		}
		return token{kind: tokTerm, field: field, value: v, pos: start}, nil
	}
	if value == "" {
		return token{}, domain.NewQueryParseError("missing value for field %q at position %d", field, start)
	}
	return token{kind: tokTerm, field: field, value: value, pos: start}, nil
}

// word reads up to whitespace, a parenthesis or a quote.
func (l *lexer) word() string {
	start := l.pos
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == '"' {
			break
		}
		l.pos++
	}
	return string(l.src[start:l.pos])
}

// quoted reads a double-quoted string starting at the opening quote.
func (l *lexer) quoted() (string, error) {
	start := l.pos
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		switch {
		case r == '\\' && l.pos+1 < len(l.src):
			b.WriteRune(l.src[l.pos+1])
			l.pos += 2
		case r == '"':
			l.pos++
			return b.String(), nil
		default:
			b.WriteRune(r)
			l.pos++
		}
	}
	return "", domain.NewQueryParseError("unterminated quote at position %d", start)
}

func isFieldName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Parser
// ---------------------------------------------------------------------------

type parser struct {
	toks []token
	pos  int
}

// parse turns query text into a syntax tree.
func parse(text string) (*node, error) {
	toks, err := (&lexer{src: []rune(text)}).tokens()
	if err != nil {
		return nil, err
	}
	if len(toks) == 1 {
		return nil, domain.NewQueryParseError("empty query")
	}

	p := &parser{toks: toks}
	n, err := p.or()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, domain.NewQueryParseError("unexpected input at position %d", tok.pos)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) or() (*node, error) {
	first, err := p.and()
	if err != nil {
		return nil, err
	}
	children := []*node{first}
	for p.peek().kind == tokOr {
		p.advance()
		next, err := p.and()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return first, nil
	}
	return &node{kind: nodeOr, children: children}, nil
}

func (p *parser) and() (*node, error) {
	first, err := p.unary()
	if err != nil {
		return nil, err
	}
	children := []*node{first}
	for {
		switch p.peek().kind {
		case tokAnd:
			p.advance()
		case tokNot, tokLParen, tokTerm:
		default:
			if len(children) == 1 {
				return first, nil
			}
			return &node{kind: nodeAnd, children: children}, nil
		}
		next, err := p.unary()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
}

func (p *parser) unary() (*node, error) {
	if p.peek().kind == tokNot {
		p.advance()
		child, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeNot, children: []*node{child}}, nil
	}
	return p.primary()
}

func (p *parser) primary() (*node, error) {
	tok := p.advance()
	switch tok.kind {
	case tokLParen:
		n, err := p.or()
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.kind != tokRParen {
			return nil, domain.NewQueryParseError("missing ) for ( at position %d", tok.pos)
		}
		return n, nil
	case tokTerm:
		return &node{kind: nodeTerm, field: strings.ToLower(tok.field), value: tok.value}, nil
	case tokEOF:
		return nil, domain.NewQueryParseError("unexpected end of query")
	default:
		return nil, domain.NewQueryParseError("unexpected input at position %d", tok.pos)
	}
}
