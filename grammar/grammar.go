package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// PropLine is the file-variables line Emacs reads from the first line of a
// file, either "-*- Mode -*-" or "-*- name: value; ... -*-".
type PropLine struct {
	Pos  lexer.Position
	Body *PropBody `Marker @@? Marker`
}

type PropBody struct {
	Vars []*Var `  @@ ( ";" @@? )*`
	Mode string `| @Ident`
}

type Var struct {
	Pos   lexer.Position
	Name  string `@Ident ":"`
	Value string `@(Ident | String | Sexp)`
}
