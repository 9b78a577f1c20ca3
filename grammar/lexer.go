package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// PropLineLexer tokenizes the body of a "-*- ... -*-" property line.
var PropLineLexer = lexer.MustSimple([]lexer.SimpleRule{
	// The marker must win over Ident, which would otherwise swallow it.
	{Name: "Marker", Pattern: `-\*-`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Sexp", Pattern: `\([^()]*\)`},
	{Name: "Punct", Pattern: `[:;]`},
	{Name: "Ident", Pattern: `[^\s:;"()*]+`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})
