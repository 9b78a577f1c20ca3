package ast

import "elread/token"

// Constant wraps a single non-aggregate token: a string, character,
// argument keyword, symbol or number. The reader also wraps the EOF
// sentinel and stray tokens in a Constant when recovering from errors.
type Constant struct {
	Tok *token.Token
}

// List is a parenthesized list, or a reader shorthand such as 'x whose
// opening token is the shorthand itself. Tail is non-nil for a dotted
// list (a . b).
type List struct {
	Open     *token.Token
	Close    *token.Token // nil when the list was never closed
	Elements []Expr
	Tail     Expr
}

// Vector is a bracketed vector. Open records which of [, #[, #^[ and #^^[
// introduced it.
type Vector struct {
	Open     *token.Token
	Close    *token.Token
	Elements []Expr
}

func (c *Constant) Token() *token.Token { return c.Tok }
func (l *List) Token() *token.Token     { return l.Open }
func (v *Vector) Token() *token.Token   { return v.Open }

// Reader shorthands and the head symbol each expands to.
var macroHeads = map[string]string{
	token.QUOTE:     "quote",
	token.BACKQUOTE: "semiquote",
	token.COMMA:     "-comma",
	token.COMMA_AT:  "-comma-at",
	token.FUNCQUOTE: "-funcquote",
}

var macroSpellings = map[string]string{
	"quote":      token.QUOTE,
	"semiquote":  token.BACKQUOTE,
	"-comma":     token.COMMA,
	"-comma-at":  token.COMMA_AT,
	"-funcquote": token.FUNCQUOTE,
}

// MacroHead returns the head symbol a reader shorthand expands to.
func MacroHead(spelling string) (string, bool) {
	head, ok := macroHeads[spelling]
	return head, ok
}

// NewQuoted builds the two-element list a shorthand expands to. The head
// symbol is synthesized at the shorthand's offset.
func NewQuoted(open *token.Token, head string, body Expr) *List {
	return &List{
		Open: open,
		Elements: []Expr{
			&Constant{Tok: &token.Token{Kind: token.SYMBOL, Text: head, Offset: open.Offset}},
			body,
		},
	}
}

// IsSymbol reports whether c is the symbol name.
func (c *Constant) IsSymbol(name string) bool {
	return c.Tok.Kind == token.SYMBOL && c.Tok.Text == name
}

// Shorthand returns the reader shorthand l prints as, if any: a proper
// two-element list headed by quote, semiquote, -comma, -comma-at or
// -funcquote.
func (l *List) Shorthand() (string, bool) {
	if l.Tail != nil || len(l.Elements) != 2 {
		return "", false
	}
	head, ok := l.Elements[0].(*Constant)
	if !ok || head.Tok.Kind != token.SYMBOL {
		return "", false
	}
	spelling, ok := macroSpellings[head.Tok.Text]
	return spelling, ok
}
