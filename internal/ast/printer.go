package ast

import (
	"strings"

	"elread/token"
)

func (c *Constant) String() string {
	if c.Tok.Kind == token.EOF {
		return ""
	}
	return c.Tok.Text
}

func (l *List) String() string {
	var b strings.Builder
	writeExpr(&b, l)
	return b.String()
}

func (v *Vector) String() string {
	var b strings.Builder
	writeExpr(&b, v)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *Constant:
		b.WriteString(e.String())
	case *List:
		if spelling, ok := e.Shorthand(); ok {
			body := e.Elements[1].String()
			b.WriteString(spelling)
			// ", @x" must not re-read as ",@x".
			if spelling == token.COMMA && strings.HasPrefix(body, "@") {
				b.WriteString(" ")
			}
			b.WriteString(body)
			return
		}
		b.WriteString(token.LPAREN)
		writeElements(b, e.Elements)
		last := lastOf(e.Elements)
		if e.Tail != nil {
			if last != nil && endsInLoneQuestion(last) {
				b.WriteString("\n. ")
			} else {
				b.WriteString(" . ")
			}
			writeExpr(b, e.Tail)
			last = e.Tail
		}
		writeCloser(b, last, token.RPAREN)
	case *Vector:
		b.WriteString(e.Open.Text)
		writeElements(b, e.Elements)
		writeCloser(b, lastOf(e.Elements), token.RBRACKET)
	}
}

func writeElements(b *strings.Builder, elements []Expr) {
	for i, element := range elements {
		if i > 0 {
			b.WriteString(separator(elements[i-1]))
		}
		writeExpr(b, element)
	}
}

func writeCloser(b *strings.Builder, last Expr, closer string) {
	if last != nil && endsInLoneQuestion(last) {
		b.WriteString("\n")
	}
	b.WriteString(closer)
}

func separator(prev Expr) string {
	if endsInLoneQuestion(prev) {
		return "\n"
	}
	return " "
}

func lastOf(elements []Expr) Expr {
	if len(elements) == 0 {
		return nil
	}
	return elements[len(elements)-1]
}

// endsInLoneQuestion reports whether e renders ending in the symbol ?.
// Only a newline may follow it; anything else would read as a character
// literal.
func endsInLoneQuestion(e Expr) bool {
	switch e := e.(type) {
	case *Constant:
		return e.IsSymbol("?")
	case *List:
		if _, ok := e.Shorthand(); ok {
			return endsInLoneQuestion(e.Elements[1])
		}
	}
	return false
}
