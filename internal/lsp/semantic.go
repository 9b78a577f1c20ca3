package lsp

import (
	"strings"

	"elread/internal/ast"
	"elread/internal/parser"
	"elread/token"
)

// SemanticToken is one entry before delta encoding. Line and StartChar are
// zero-based; StartChar and Length count UTF-16 units.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask over SemanticTokenModifiers
}

type classification struct {
	tokenType string
	modifiers []string
}

// Forms whose second element names a function or variable.
var definers = map[string]classification{
	"defun":         {"function", []string{"declaration"}},
	"defmacro":      {"function", []string{"declaration"}},
	"defsubst":      {"function", []string{"declaration"}},
	"define-inline": {"function", []string{"declaration"}},
	"cl-defun":      {"function", []string{"declaration"}},
	"cl-defmacro":   {"function", []string{"declaration"}},
	"defvar":        {"variable", []string{"declaration"}},
	"defvar-local":  {"variable", []string{"declaration"}},
	"defcustom":     {"variable", []string{"declaration"}},
	"defconst":      {"variable", []string{"declaration", "readonly"}},
}

var kindTypes = map[token.Kind]string{
	token.STRING:    "string",
	token.CHARACTER: "string",
	token.NUMBER:    "number",
	token.ARGSPEC:   "keyword",
	token.SPECIAL:   "operator",
	token.SYMBOL:    "variable",
}

// collectSemanticTokens classifies every token of text. Symbols default to
// variables; the head of a parenthesized list is a function, and the name
// introduced by a defining form gets the declaration modifier.
func collectSemanticTokens(text string, forms []ast.Expr) []SemanticToken {
	overrides := map[int]classification{}
	eachCall(forms, func(list *ast.List, head *ast.Constant) {
		overrides[head.Tok.Offset] = classification{tokenType: "function"}
		if name, class, ok := definedName(list, head); ok {
			overrides[name.Offset] = class
		}
	})

	var tokens []SemanticToken
	for tok := range parser.NewScanner(text, nil).All() {
		class, ok := overrides[tok.Offset]
		if !ok {
			class = classification{tokenType: kindTypes[tok.Kind]}
		}
		tokens = append(tokens, makeTokens(text, tok, class)...)
	}
	return tokens
}

// eachCall calls fn for every parenthesized list headed by a symbol.
func eachCall(forms []ast.Expr, fn func(list *ast.List, head *ast.Constant)) {
	for _, form := range forms {
		ast.Inspect(form, func(e ast.Expr) bool {
			list, ok := e.(*ast.List)
			if !ok || !list.Open.Is(token.LPAREN) || len(list.Elements) == 0 {
				return true
			}
			if head, ok := list.Elements[0].(*ast.Constant); ok && head.Tok.Kind == token.SYMBOL {
				fn(list, head)
			}
			return true
		})
	}
}

// definedName returns the symbol a defining form such as (defun name ...)
// introduces.
func definedName(list *ast.List, head *ast.Constant) (*token.Token, classification, bool) {
	class, ok := definers[head.Tok.Text]
	if !ok || len(list.Elements) < 2 {
		return nil, classification{}, false
	}
	name, ok := list.Elements[1].(*ast.Constant)
	if !ok || name.Tok.Kind != token.SYMBOL {
		return nil, classification{}, false
	}
	return name.Tok, class, true
}

// makeTokens emits one entry per source line the token spans, since
// multi-line tokens are optional for clients.
func makeTokens(text string, tok *token.Token, class classification) []SemanticToken {
	tokenType := indexOf(class.tokenType, SemanticTokenTypes)
	if tokenType < 0 {
		return nil
	}
	modifiers := 0
	for _, m := range class.modifiers {
		if i := indexOf(m, SemanticTokenModifiers); i >= 0 {
			modifiers |= 1 << i
		}
	}

	var tokens []SemanticToken
	offset := tok.Offset
	for _, part := range strings.SplitAfter(tok.Text, "\n") {
		segment := strings.TrimRight(part, "\r\n")
		if segment != "" {
			pos := positionAt(text, offset)
			tokens = append(tokens, SemanticToken{
				Line:           uint32(pos.Line),
				StartChar:      uint32(pos.Character),
				Length:         uint32(utf16Len(segment)),
				TokenType:      tokenType,
				TokenModifiers: modifiers,
			})
		}
		offset += len(part)
	}
	return tokens
}

// encodeSemanticTokens produces the LSP wire format: five integers per
// token with line and start relative to the previous token.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, t := range tokens {
		deltaLine := t.Line - prevLine
		deltaStart := t.StartChar
		if deltaLine == 0 {
			deltaStart = t.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, t.Length, uint32(t.TokenType), uint32(t.TokenModifiers))

		prevLine = t.Line
		prevStart = t.StartChar
	}

	return data
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
