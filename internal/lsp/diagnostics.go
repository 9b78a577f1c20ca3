package lsp

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"elread/internal/errors"
)

const diagnosticSource = "elread"

// ConvertDiagnostics turns reader diagnostics into LSP diagnostics. Each
// one covers the character it was reported at.
func ConvertDiagnostics(text string, diagnostics []errors.Diagnostic) []protocol.Diagnostic {
	converted := make([]protocol.Diagnostic, 0, len(diagnostics))

	for _, d := range diagnostics {
		end := d.Offset
		if end < len(text) {
			_, size := utf8.DecodeRuneInString(text[end:])
			end += size
		}

		converted = append(converted, protocol.Diagnostic{
			Range: protocol.Range{
				Start: positionAt(text, d.Offset),
				End:   positionAt(text, end),
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Code:     &protocol.IntegerOrString{Value: string(d.Code)},
			Source:   ptrString(diagnosticSource),
			Message:  d.Message,
		})
	}

	return converted
}

// positionAt converts a byte offset to a zero-based line and UTF-16
// character, the unit LSP positions are counted in.
func positionAt(text string, offset int) protocol.Position {
	offset = min(max(offset, 0), len(text))
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	return protocol.Position{
		Line:      protocol.UInteger(strings.Count(text[:start], "\n")),
		Character: protocol.UInteger(utf16Len(text[start:offset])),
	}
}

// offsetAt is the inverse of positionAt. Positions past the end of a line
// clamp to the line end.
func offsetAt(text string, pos protocol.Position) int {
	offset := 0
	for line := protocol.UInteger(0); line < pos.Line; line++ {
		next := strings.IndexByte(text[offset:], '\n')
		if next < 0 {
			return len(text)
		}
		offset += next + 1
	}

	units := protocol.UInteger(0)
	for i, r := range text[offset:] {
		if r == '\n' || units >= pos.Character {
			return offset + i
		}
		units += protocol.UInteger(utf16.RuneLen(r))
	}
	return len(text)
}

func applyChange(text string, change protocol.TextDocumentContentChangeEvent) string {
	if change.Range == nil {
		return change.Text
	}
	start := offsetAt(text, change.Range.Start)
	end := max(offsetAt(text, change.Range.End), start)
	return text[:start] + change.Text + text[end:]
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
