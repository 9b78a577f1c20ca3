package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedCompleteForms(t *testing.T) {
	session := NewSession(NAME, false)

	result := session.Feed("(quote a) [1 2] ?x")
	assert.False(t, result.Incomplete)
	assert.Equal(t, []string{"'a", "[1 2]", "?x"}, result.Forms)
	assert.Empty(t, result.Diagnostics)
	assert.False(t, session.Pending())
}

func TestFeedContinuesOpenForms(t *testing.T) {
	session := NewSession(NAME, false)

	assert.True(t, session.Feed("(defun f (x)").Incomplete)
	assert.True(t, session.Pending())
	assert.True(t, session.Feed("  \"doc").Incomplete)

	result := session.Feed("string\" x)")
	require.False(t, result.Incomplete)
	assert.Equal(t, []string{"(defun f (x) \"doc\nstring\" x)"}, result.Forms)
	assert.False(t, session.Pending())
}

func TestEmptyLineForcesRead(t *testing.T) {
	session := NewSession(NAME, false)

	assert.True(t, session.Feed("(a b").Incomplete)

	result := session.Feed("")
	assert.False(t, result.Incomplete)
	assert.Equal(t, []string{"(a b)"}, result.Forms)
	assert.Contains(t, result.Diagnostics, "<repl>:1:1: unterminated list")
}

func TestFeedReportsOtherErrorsImmediately(t *testing.T) {
	session := NewSession(NAME, false)

	result := session.Feed("a)")
	assert.False(t, result.Incomplete)
	assert.Equal(t, []string{"a", ")"}, result.Forms)
	assert.Contains(t, result.Diagnostics, "<repl>:1:2: unexpected token )")
}

func TestReset(t *testing.T) {
	session := NewSession(NAME, false)
	session.Feed("(a")
	session.Reset()

	assert.False(t, session.Pending())
	assert.Equal(t, []string{"b"}, session.Feed("b").Forms)
}

func TestStart(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("'x\n(a\nb)\n(c\n"), &out)

	expected := ">> 'x\n" +
		">> .. (a b)\n" +
		">> .. (c)\n" +
		"<repl>:1:1: unterminated list\n  (c\n  ^\n"
	assert.Equal(t, expected, out.String())
}
