package parser

import (
	"fmt"
	"iter"

	"elread/internal/ast"
	"elread/internal/errors"
	"elread/token"
)

// Parser is the reader: it pulls tokens from a Scanner with one token of
// lookahead and builds one expression tree per top-level form. Malformed
// input is reported to the sink and degrades the tree; it never stops the
// read.
type Parser struct {
	scanner *Scanner
	sink    errors.Sink
	current *token.Token
}

func NewParser(scanner *Scanner, sink errors.Sink) *Parser {
	if sink == nil {
		sink = errors.Discard
	}
	p := &Parser{scanner: scanner, sink: sink}
	p.advance()
	return p
}

// Next reads the next top-level form. It returns false exactly when the
// input is exhausted.
func (p *Parser) Next() (ast.Expr, bool) {
	if p.isAtEnd() {
		return nil, false
	}
	return p.parseExpression(), true
}

// All yields the remaining top-level forms. A Parser cannot be rewound;
// build a new one to read the buffer again.
func (p *Parser) All() iter.Seq[ast.Expr] {
	return func(yield func(ast.Expr) bool) {
		for {
			expr, ok := p.Next()
			if !ok || !yield(expr) {
				return
			}
		}
	}
}

// ParseAll reads every remaining form.
func (p *Parser) ParseAll() []ast.Expr {
	var exprs []ast.Expr
	for expr := range p.All() {
		exprs = append(exprs, expr)
	}
	return exprs
}

// ParseSource reads all forms of source and returns them with the
// diagnostics reported along the way.
func ParseSource(filename, source string) ([]ast.Expr, []errors.Diagnostic) {
	collector := errors.NewCollector(filename, source)
	p := NewParser(NewScanner(source, collector), collector)
	return p.ParseAll(), collector.Diagnostics
}

func (p *Parser) parseExpression() ast.Expr {
	tok := p.current

	switch tok.Kind {
	case token.CHARACTER, token.STRING, token.NUMBER, token.SYMBOL, token.ARGSPEC, token.EOF:
		p.advance()
		return &ast.Constant{Tok: tok}
	case token.SPECIAL:
		if head, ok := ast.MacroHead(tok.Text); ok {
			p.advance()
			return ast.NewQuoted(tok, head, p.parseExpression())
		}
		if tok.Is(token.LPAREN) {
			return p.parseList()
		}
		if tok.IsVectorOpen() {
			return p.parseVector()
		}
	}

	p.errorAt(tok, errors.ErrorUnexpectedToken, fmt.Sprintf("unexpected token %s", tok))
	if !p.isAtEnd() {
		p.advance()
	}
	return &ast.Constant{Tok: tok}
}

func (p *Parser) parseList() *ast.List {
	list := &ast.List{Open: p.advance()}

	for !p.check(token.RPAREN) && !p.check(token.DOT) && !p.isAtEnd() {
		list.Elements = append(list.Elements, p.parseExpression())
	}
	if p.match(token.DOT) {
		list.Tail = p.parseExpression()
	}

	switch {
	case p.check(token.RPAREN):
		list.Close = p.advance()
	case p.isAtEnd():
		p.errorAt(list.Open, errors.ErrorUnterminatedList, "unterminated list")
	default:
		p.errorAt(p.current, errors.ErrorMalformedDottedList, "expected ) after dotted tail")
	}
	return list
}

func (p *Parser) parseVector() *ast.Vector {
	vector := &ast.Vector{Open: p.advance()}

	for !p.check(token.RBRACKET) && !p.isAtEnd() {
		vector.Elements = append(vector.Elements, p.parseExpression())
	}

	if p.check(token.RBRACKET) {
		vector.Close = p.advance()
	} else {
		p.errorAt(vector.Open, errors.ErrorUnterminatedVector, "unterminated vector")
	}
	return vector
}
