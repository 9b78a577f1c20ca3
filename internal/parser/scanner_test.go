package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elread/internal/errors"
	"elread/token"
)

type expectedToken struct {
	kind token.Kind
	text string
}

func scan(t *testing.T, input string) ([]*token.Token, *errors.Collector) {
	t.Helper()
	collector := errors.NewCollector("test.el", input)
	return NewScanner(input, collector).ScanTokens(), collector
}

func assertTokens(t *testing.T, input string, expected []expectedToken) {
	t.Helper()
	tokens, collector := scan(t, input)
	assert.Empty(t, collector.Diagnostics, "unexpected diagnostics for %q", input)
	require.Len(t, tokens, len(expected), "token count for %q", input)
	for i, exp := range expected {
		assert.Equal(t, exp.kind, tokens[i].Kind, "kind of token %d in %q", i, input)
		assert.Equal(t, exp.text, tokens[i].Text, "text of token %d in %q", i, input)
	}
}

func TestBlankInputHasNoTokens(t *testing.T) {
	inputs := []string{
		"",
		"   \t\n\f\r\n",
		"; a comment\n;; another",
		"  ;; trailing comment without newline",
		"#@3abc",
		"#@10 short",
	}

	for _, input := range inputs {
		tokens, collector := scan(t, input)
		assert.Empty(t, tokens, "input %q", input)
		assert.Empty(t, collector.Diagnostics, "input %q", input)
	}
}

func TestNumbers(t *testing.T) {
	for _, input := range []string{"42", "-3.14", "1.5e+3", "1.0e+INF", "0.0e+NaN", "+1", "1.", ".5", "1e5", "-0"} {
		assertTokens(t, input, []expectedToken{{token.NUMBER, input}})
	}
}

func TestNumberLookalikesAreSymbols(t *testing.T) {
	for _, input := range []string{"1+", "-", "+", "1.2.3", "e5", "1e", "1.5E3", "--1", "1/2"} {
		assertTokens(t, input, []expectedToken{{token.SYMBOL, input}})
	}
}

func TestRadixNumbers(t *testing.T) {
	cases := []struct {
		input string
		value int64
	}{
		{"#xFF", 255},
		{"#xff", 255},
		{"#b101", 5},
		{"#o17", 15},
		{"#3r21", 7},
		{"#36rZz", 35*36 + 35},
	}

	for _, tc := range cases {
		tokens, collector := scan(t, tc.input)
		require.Empty(t, collector.Diagnostics, tc.input)
		require.Len(t, tokens, 1, tc.input)
		assert.Equal(t, token.NUMBER, tokens[0].Kind)
		assert.Equal(t, tc.input, tokens[0].Text)

		n, err := tokens[0].Number()
		require.NoError(t, err)
		assert.False(t, n.IsFloat)
		assert.Equal(t, tc.value, n.Int.Int64(), tc.input)
	}
}

func TestRadixStopsAtInvalidDigit(t *testing.T) {
	assertTokens(t, "#b1012", []expectedToken{
		{token.NUMBER, "#b101"},
		{token.NUMBER, "2"},
	})
}

func TestInvalidRadix(t *testing.T) {
	tokens, collector := scan(t, "#99r1 x")

	assert.Equal(t, []errors.Code{errors.ErrorInvalidRadix}, collector.Codes())
	require.Len(t, tokens, 2)
	assert.Equal(t, "99r1", tokens[0].Text)
	assert.Equal(t, token.SYMBOL, tokens[0].Kind)
	assert.Equal(t, 1, tokens[0].Offset)
	assert.Equal(t, "x", tokens[1].Text)
}

func TestRadixWithoutDigits(t *testing.T) {
	tokens, collector := scan(t, "#xZ")

	assert.Equal(t, []errors.Code{errors.ErrorInvalidNumber}, collector.Codes())
	assert.Equal(t, 0, collector.Diagnostics[0].Offset)
	require.Len(t, tokens, 1)
	assert.Equal(t, "xZ", tokens[0].Text)
}

func TestSpecials(t *testing.T) {
	input := "( ) [ ] ' ` , ,@ #' #[ #^[ #^^[ ."
	expected := []expectedToken{}
	for _, text := range []string{"(", ")", "[", "]", "'", "`", ",", ",@", "#'", "#[", "#^[", "#^^[", "."} {
		expected = append(expected, expectedToken{token.SPECIAL, text})
	}
	assertTokens(t, input, expected)
}

func TestSpecialsNeedNoSeparators(t *testing.T) {
	assertTokens(t, "'(a,@b)", []expectedToken{
		{token.SPECIAL, "'"},
		{token.SPECIAL, "("},
		{token.SYMBOL, "a"},
		{token.SPECIAL, ",@"},
		{token.SYMBOL, "b"},
		{token.SPECIAL, ")"},
	})
}

func TestStrings(t *testing.T) {
	assertTokens(t, `"hello" "say \"hi\"" "a\\" "multi
line"`, []expectedToken{
		{token.STRING, `"hello"`},
		{token.STRING, `"say \"hi\""`},
		{token.STRING, `"a\\"`},
		{token.STRING, "\"multi\nline\""},
	})
}

func TestUnterminatedString(t *testing.T) {
	tokens, collector := scan(t, `"abc`)

	assert.Equal(t, []errors.Code{errors.ErrorUnterminatedString}, collector.Codes())
	require.Len(t, tokens, 1)
	assert.Equal(t, token.SYMBOL, tokens[0].Kind)
	assert.Equal(t, "abc", tokens[0].Text)
}

func TestCharacters(t *testing.T) {
	for _, input := range []string{"?a", "?\\n", "?\\101", "?\\C-a", "?\\M-\\C-x", "?(", "?é", "?\\\\"} {
		assertTokens(t, input, []expectedToken{{token.CHARACTER, input}})
	}
}

func TestCharacterModifiersAreGivenBack(t *testing.T) {
	assertTokens(t, "?\\C-\n", []expectedToken{
		{token.CHARACTER, "?\\C"},
		{token.SYMBOL, "-"},
	})
}

func TestLoneQuestionMarkIsSymbol(t *testing.T) {
	assertTokens(t, "?", []expectedToken{{token.SYMBOL, "?"}})
	assertTokens(t, "foo?", []expectedToken{{token.SYMBOL, "foo?"}})
}

func TestArgSpecs(t *testing.T) {
	assertTokens(t, "&optional &rest &key &body &allow-other-keys", []expectedToken{
		{token.ARGSPEC, "&optional"},
		{token.ARGSPEC, "&rest"},
		{token.ARGSPEC, "&key"},
		{token.ARGSPEC, "&body"},
		{token.ARGSPEC, "&allow-other-keys"},
	})
}

func TestArgSpecTakesPrecedenceOverSymbols(t *testing.T) {
	assertTokens(t, "&rest-args &keys &optional2 &other", []expectedToken{
		{token.ARGSPEC, "&rest"},
		{token.SYMBOL, "-args"},
		{token.ARGSPEC, "&key"},
		{token.SYMBOL, "s"},
		{token.ARGSPEC, "&optional"},
		{token.NUMBER, "2"},
		{token.SYMBOL, "&other"},
	})
}

func TestSymbols(t *testing.T) {
	for _, input := range []string{
		"foo", "foo-bar", "+", "1+", "a.b", "<=", "{}|", "foo\\ bar", "\\(", "#:uninterned", "λ", "über", ":keyword",
	} {
		assertTokens(t, input, []expectedToken{{token.SYMBOL, input}})
	}
}

func TestDotIsSpecial(t *testing.T) {
	assertTokens(t, "(a . b)", []expectedToken{
		{token.SPECIAL, "("},
		{token.SYMBOL, "a"},
		{token.SPECIAL, "."},
		{token.SYMBOL, "b"},
		{token.SPECIAL, ")"},
	})
	assertTokens(t, "..", []expectedToken{{token.SYMBOL, ".."}})
}

func TestSkipDirective(t *testing.T) {
	tokens, collector := scan(t, "#@5abcdefoo")

	assert.Empty(t, collector.Diagnostics)
	require.Len(t, tokens, 1)
	assert.Equal(t, "foo", tokens[0].Text)
	assert.Equal(t, 8, tokens[0].Offset)
}

func TestSkipDirectiveCountsCharacters(t *testing.T) {
	tokens, _ := scan(t, "#@2éé x")

	require.Len(t, tokens, 1)
	assert.Equal(t, "x", tokens[0].Text)
}

func TestUnexpectedCharacters(t *testing.T) {
	tokens, collector := scan(t, "a # \x01 b")

	assert.Equal(t, []errors.Code{errors.ErrorUnexpectedCharacter, errors.ErrorUnexpectedCharacter}, collector.Codes())
	assert.Equal(t, "unexpected character #", collector.Diagnostics[0].Message)
	assert.Equal(t, 2, collector.Diagnostics[0].Offset)

	require.Len(t, tokens, 2)
	assert.Equal(t, "a", tokens[0].Text)
	assert.Equal(t, "b", tokens[1].Text)
}

func TestOffsetsIncrease(t *testing.T) {
	tokens, _ := scan(t, "(defun f (x &optional y)\n  \"doc\" ; c\n  `(,x ,@y #'car [1 2] ?a #xff))")

	require.NotEmpty(t, tokens)
	for i := 1; i < len(tokens); i++ {
		assert.Greater(t, tokens[i].Offset, tokens[i-1].Offset)
	}
}

func TestEOFSentinel(t *testing.T) {
	input := "a b"
	s := NewScanner(input, nil)

	assert.Len(t, s.ScanTokens(), 2)

	eof := s.EOF()
	assert.Equal(t, token.EOF, eof.Kind)
	assert.Equal(t, len(input), eof.Offset)
	assert.Same(t, eof, s.EOF())
	assert.NotSame(t, eof, NewScanner(input, nil).EOF(), "each scanner owns its sentinel")

	_, ok := s.Next()
	assert.False(t, ok, "a drained scanner stays drained")
}

func TestAllStopsEarly(t *testing.T) {
	s := NewScanner("a b c", nil)

	for tok := range s.All() {
		assert.Equal(t, "a", tok.Text)
		break
	}

	tok, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, "b", tok.Text)
}
