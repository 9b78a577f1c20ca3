package parser

import (
	"elread/internal/errors"
	"elread/token"
)

// advance moves the lookahead forward and returns the token it replaced.
// Once the scanner is exhausted the lookahead stays on the EOF sentinel.
func (p *Parser) advance() *token.Token {
	previous := p.current
	if tok, ok := p.scanner.Next(); ok {
		p.current = tok
	} else {
		p.current = p.scanner.EOF()
	}
	return previous
}

func (p *Parser) check(text string) bool {
	return p.current.Is(text)
}

func (p *Parser) match(text string) bool {
	if p.check(text) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) isAtEnd() bool {
	return p.current == p.scanner.EOF()
}

func (p *Parser) errorAt(tok *token.Token, code errors.Code, message string) {
	p.sink.Report(tok.Offset, code, message)
}
