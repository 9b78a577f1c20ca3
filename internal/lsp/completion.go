package lsp

import (
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"elread/internal/ast"
	"elread/internal/parser"
)

// Characters that end a symbol when scanning back from the cursor.
const symbolDelimiters = " \t\n\r\f()[]'`,\";#"

// symbolPrefix returns the part of a symbol that ends at offset.
func symbolPrefix(text string, offset int) string {
	start := offset
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if strings.ContainsRune(symbolDelimiters, r) {
			break
		}
		start -= size
	}
	return text[start:offset]
}

func completionItems(forms []ast.Expr, prefix string) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	seen := map[string]bool{}

	eachCall(forms, func(list *ast.List, head *ast.Constant) {
		name, class, ok := definedName(list, head)
		if !ok || seen[name.Text] || !strings.HasPrefix(name.Text, prefix) {
			return
		}
		seen[name.Text] = true
		items = append(items, protocol.CompletionItem{
			Label:  name.Text,
			Kind:   ptrCompletionKind(completionKind(class)),
			Detail: ptrString(head.Tok.Text),
		})
	})

	if strings.HasPrefix(prefix, "&") {
		for _, keyword := range parser.ArgSpecs {
			if strings.HasPrefix(keyword, prefix) {
				items = append(items, protocol.CompletionItem{
					Label: keyword,
					Kind:  ptrCompletionKind(protocol.CompletionItemKindKeyword),
				})
			}
		}
	}

	return items
}

func completionKind(class classification) protocol.CompletionItemKind {
	switch {
	case class.tokenType == "function":
		return protocol.CompletionItemKindFunction
	case indexOf("readonly", class.modifiers) >= 0:
		return protocol.CompletionItemKindConstant
	default:
		return protocol.CompletionItemKindVariable
	}
}

func ptrCompletionKind(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}
