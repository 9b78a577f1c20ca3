package grammar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

const marker = "-*-"

// ErrNoPropLine is returned when the text carries no property line.
var ErrNoPropLine = errors.New("no -*- property line")

var propLineParser = participle.MustBuild[PropLine](
	participle.Lexer(PropLineLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(3),
)

// FindPropLine returns the "-*- ... -*-" span of the first line, or of the
// second line when the first is a "#!" interpreter line.
func FindPropLine(text string) (string, bool) {
	line, rest, _ := strings.Cut(text, "\n")
	if strings.HasPrefix(line, "#!") {
		line, _, _ = strings.Cut(rest, "\n")
	}

	start := strings.Index(line, marker)
	if start < 0 {
		return "", false
	}
	end := strings.Index(line[start+len(marker):], marker)
	if end < 0 {
		return "", false
	}
	return line[start : start+len(marker)+end+len(marker)], true
}

// ParsePropLine locates and parses the property line of text.
func ParsePropLine(filename, text string) (*PropLine, error) {
	line, ok := FindPropLine(text)
	if !ok {
		return nil, ErrNoPropLine
	}

	propLine, err := propLineParser.ParseString(filename, line)
	if err != nil {
		return nil, fmt.Errorf("failed to parse property line %q: %w", line, err)
	}
	return propLine, nil
}

// Var returns the value of the named file variable. Names compare
// case-insensitively; string values are unquoted.
func (p *PropLine) Var(name string) (string, bool) {
	if p == nil || p.Body == nil {
		return "", false
	}
	for _, v := range p.Body.Vars {
		if strings.EqualFold(v.Name, name) {
			return v.Unquoted(), true
		}
	}
	return "", false
}

// Mode returns the major mode, from either form of the line.
func (p *PropLine) Mode() string {
	if p == nil || p.Body == nil {
		return ""
	}
	if p.Body.Mode != "" {
		return p.Body.Mode
	}
	mode, _ := p.Var("mode")
	return mode
}

func (v *Var) Unquoted() string {
	if strings.HasPrefix(v.Value, `"`) {
		if s, err := strconv.Unquote(v.Value); err == nil {
			return s
		}
	}
	return v.Value
}
