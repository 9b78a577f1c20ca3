// Package token SPDX-License-Identifier: Apache-2.0
package token

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

type Kind string

const (
	SPECIAL   Kind = "SPECIAL"
	STRING    Kind = "STRING"
	CHARACTER Kind = "CHARACTER"
	ARGSPEC   Kind = "ARGSPEC"
	SYMBOL    Kind = "SYMBOL"
	NUMBER    Kind = "NUMBER"
	EOF       Kind = "EOF"
)

// Spellings of SPECIAL tokens.
const (
	LPAREN    = "("
	RPAREN    = ")"
	LBRACKET  = "["
	RBRACKET  = "]"
	QUOTE     = "'"
	BACKQUOTE = "`"
	COMMA     = ","
	COMMA_AT  = ",@"
	DOT       = "."
	FUNCQUOTE = "#'"

	BYTECODE_OPEN  = "#["
	CHARTABLE_OPEN = "#^["
	SUBTABLE_OPEN  = "#^^["
)

// Token is immutable once the scanner has produced it.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}

func (t *Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return t.Text
}

// Is reports whether t is a SPECIAL token spelled text.
func (t *Token) Is(text string) bool {
	return t.Kind == SPECIAL && t.Text == text
}

// IsVectorOpen reports whether t opens a vector in any of its spellings.
func (t *Token) IsVectorOpen() bool {
	if t.Kind != SPECIAL {
		return false
	}
	switch t.Text {
	case LBRACKET, BYTECODE_OPEN, CHARTABLE_OPEN, SUBTABLE_OPEN:
		return true
	}
	return false
}

// End returns the offset just past the token.
func (t *Token) End() int {
	return t.Offset + len(t.Text)
}

// Number is the decoded value of a NUMBER token. Exactly one of Int and
// Float is meaningful, selected by IsFloat.
type Number struct {
	Int     *big.Int
	Float   float64
	IsFloat bool
}

func (n Number) String() string {
	if n.IsFloat {
		return strconv.FormatFloat(n.Float, 'g', -1, 64)
	}
	return n.Int.String()
}

// Number decodes the value of a NUMBER token. Radix literals such as #xFF
// and #3r21 yield integers; a trailing decimal point still denotes an
// integer, as in "1.".
func (t *Token) Number() (Number, error) {
	if t.Kind != NUMBER {
		return Number{}, fmt.Errorf("token %q is %s, not a number", t.Text, t.Kind)
	}

	text := t.Text
	if strings.HasPrefix(text, "#") {
		return parseRadix(text)
	}

	mantissa, exponent, hasExponent := strings.Cut(text, "e")
	if !hasExponent && !strings.Contains(strings.TrimSuffix(mantissa, "."), ".") {
		n, ok := new(big.Int).SetString(strings.TrimPrefix(strings.TrimSuffix(mantissa, "."), "+"), 10)
		if !ok {
			return Number{}, fmt.Errorf("invalid integer %q", text)
		}
		return Number{Int: n}, nil
	}

	switch exponent {
	case "+INF":
		if strings.HasPrefix(mantissa, "-") {
			return Number{Float: math.Inf(-1), IsFloat: true}, nil
		}
		return Number{Float: math.Inf(1), IsFloat: true}, nil
	case "+NaN":
		return Number{Float: math.NaN(), IsFloat: true}, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Number{}, fmt.Errorf("invalid float %q: %w", text, err)
	}
	return Number{Float: f, IsFloat: true}, nil
}

func parseRadix(text string) (Number, error) {
	var base int
	var digits string

	switch {
	case strings.HasPrefix(text, "#b"):
		base, digits = 2, text[2:]
	case strings.HasPrefix(text, "#o"):
		base, digits = 8, text[2:]
	case strings.HasPrefix(text, "#x"):
		base, digits = 16, text[2:]
	default:
		spec, rest, ok := strings.Cut(text[1:], "r")
		if !ok {
			return Number{}, fmt.Errorf("invalid radix literal %q", text)
		}
		b, err := strconv.Atoi(spec)
		if err != nil || b < 2 || b > 36 {
			return Number{}, fmt.Errorf("invalid radix in %q", text)
		}
		base, digits = b, rest
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return Number{}, fmt.Errorf("invalid digits for radix %d in %q", base, text)
	}
	return Number{Int: n}, nil
}
