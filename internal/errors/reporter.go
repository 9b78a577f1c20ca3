package errors

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fatih/color"
)

const tabWidth = 8

// Sink receives reader diagnostics. Reporting never stops the reader.
type Sink interface {
	Report(offset int, code Code, message string)
}

// Diagnostic is one recorded report.
type Diagnostic struct {
	Code    Code
	Message string
	Offset  int
	Pos     lexer.Position // 1-based line and character column
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.Pos.Filename, d.Pos.Line, d.Pos.Column, d.Message)
}

// Locate returns the 1-based line and character column of offset in source.
// Tabs count as one character here; see Reporter for the display column.
func Locate(filename, source string, offset int) lexer.Position {
	offset = clamp(offset, source)
	start := lineStart(source, offset)
	return lexer.Position{
		Filename: filename,
		Offset:   offset,
		Line:     strings.Count(source[:start], "\n") + 1,
		Column:   utf8.RuneCountInString(source[start:offset]) + 1,
	}
}

// Reporter prints each diagnostic as a "name:line:column: message" header
// followed by the offending source line and a caret under the column.
type Reporter struct {
	filename string
	source   string
	out      io.Writer
	colored  bool
	count    int
}

// NewReporter creates a reporter writing to out.
func NewReporter(filename, source string, out io.Writer) *Reporter {
	return &Reporter{
		filename: filename,
		source:   source,
		out:      out,
	}
}

// SetColor turns ANSI colouring on or off regardless of color.NoColor.
func (r *Reporter) SetColor(enabled bool) {
	r.colored = enabled
}

// Count returns how many diagnostics were reported so far.
func (r *Reporter) Count() int {
	return r.count
}

func (r *Reporter) Report(offset int, code Code, message string) {
	r.count++
	fmt.Fprint(r.out, r.FormatError(offset, message))
}

// FormatError renders one diagnostic as three lines.
func (r *Reporter) FormatError(offset int, message string) string {
	offset = clamp(offset, r.source)
	start := lineStart(r.source, offset)
	end := strings.IndexByte(r.source[offset:], '\n')
	if end < 0 {
		end = len(r.source)
	} else {
		end += offset
	}

	line := strings.Count(r.source[:start], "\n") + 1
	column := utf8.RuneCountInString(expandTabs(r.source[start:offset])) + 1

	text := expandTabs(r.source[start:end])
	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	margin := utf8.RuneCountInString(text) - utf8.RuneCountInString(trimmed)
	trimmed = strings.TrimRight(trimmed, "\r")

	bold := r.paint(color.Bold)
	warn := r.paint(color.FgYellow)
	caret := r.paint(color.FgRed, color.Bold)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", bold(fmt.Sprintf("%s:%d:%d:", r.filename, line, column)), warn(message)))
	b.WriteString(fmt.Sprintf("  %s\n", trimmed))
	b.WriteString(fmt.Sprintf("  %s%s\n", strings.Repeat(" ", max(0, column-1-margin)), caret("^")))
	return b.String()
}

func (r *Reporter) paint(attrs ...color.Attribute) func(...interface{}) string {
	c := color.New(attrs...)
	if r.colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// Collector records diagnostics for later inspection.
type Collector struct {
	filename    string
	source      string
	Diagnostics []Diagnostic
}

func NewCollector(filename, source string) *Collector {
	return &Collector{filename: filename, source: source}
}

func (c *Collector) Report(offset int, code Code, message string) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{
		Code:    code,
		Message: message,
		Offset:  offset,
		Pos:     Locate(c.filename, c.source, offset),
	})
}

// Codes lists the codes reported so far, in order.
func (c *Collector) Codes() []Code {
	codes := make([]Code, 0, len(c.Diagnostics))
	for _, d := range c.Diagnostics {
		codes = append(codes, d.Code)
	}
	return codes
}

// Tee forwards every report to each of its sinks.
type Tee []Sink

func (t Tee) Report(offset int, code Code, message string) {
	for _, s := range t {
		s.Report(offset, code, message)
	}
}

type discard struct{}

func (discard) Report(int, Code, string) {}

// Discard drops all diagnostics.
var Discard Sink = discard{}

func clamp(offset int, source string) int {
	return min(max(offset, 0), len(source))
}

func lineStart(source string, offset int) int {
	return strings.LastIndexByte(source[:offset], '\n') + 1
}

func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	column := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabWidth - column%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			column += n
		case '\n', '\r':
			b.WriteRune(r)
			column = 0
		default:
			b.WriteRune(r)
			column++
		}
	}
	return b.String()
}
