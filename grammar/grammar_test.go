package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elread/grammar"
)

func TestFindPropLine(t *testing.T) {
	cases := []struct {
		text     string
		expected string
		found    bool
	}{
		{";;; foo.el --- Foo -*- lexical-binding: t -*-\n(foo)", "-*- lexical-binding: t -*-", true},
		{"#!/usr/bin/emacs --script\n;; -*- coding: utf-8 -*-\n", "-*- coding: utf-8 -*-", true},
		{";; no markers here\n;; -*- coding: utf-8 -*-", "", false},
		{";; -*- unterminated\n", "", false},
	}

	for _, tc := range cases {
		line, found := grammar.FindPropLine(tc.text)
		assert.Equal(t, tc.found, found, tc.text)
		assert.Equal(t, tc.expected, line, tc.text)
	}
}

func TestParseVariables(t *testing.T) {
	propLine, err := grammar.ParsePropLine("vars.el",
		`;;; vars.el -*- mode: emacs-lisp; coding: iso-latin-1-unix; lexical-binding: t; byte-compile-warnings: (not free-vars); comment: "a;b" -*-`)
	require.NoError(t, err)
	require.NotNil(t, propLine.Body)
	require.Len(t, propLine.Body.Vars, 5)

	coding, ok := propLine.Var("coding")
	assert.True(t, ok)
	assert.Equal(t, "iso-latin-1-unix", coding)

	warnings, _ := propLine.Var("byte-compile-warnings")
	assert.Equal(t, "(not free-vars)", warnings)

	comment, _ := propLine.Var("comment")
	assert.Equal(t, "a;b", comment)

	assert.Equal(t, "emacs-lisp", propLine.Mode())

	_, ok = propLine.Var("fill-column")
	assert.False(t, ok)
}

func TestParseTrailingSemicolon(t *testing.T) {
	propLine, err := grammar.ParsePropLine("t.el", ";; -*- Coding: utf-8; -*-")
	require.NoError(t, err)

	coding, ok := propLine.Var("coding")
	assert.True(t, ok)
	assert.Equal(t, "utf-8", coding)
}

func TestParseModeOnly(t *testing.T) {
	propLine, err := grammar.ParsePropLine("m.el", ";; -*- Emacs-Lisp -*-")
	require.NoError(t, err)

	assert.Equal(t, "Emacs-Lisp", propLine.Mode())
	_, ok := propLine.Var("coding")
	assert.False(t, ok)
	assert.Equal(t, "-*- Emacs-Lisp -*-", propLine.String())
}

func TestParseEmptyPropLine(t *testing.T) {
	propLine, err := grammar.ParsePropLine("e.el", ";; -*- -*-")
	require.NoError(t, err)
	assert.Nil(t, propLine.Body)
	assert.Equal(t, "", propLine.Mode())
}

func TestPropLineString(t *testing.T) {
	propLine, err := grammar.ParsePropLine("s.el", ";; -*-mode:lisp;coding:utf-8 -*-")
	require.NoError(t, err)
	assert.Equal(t, "-*- mode: lisp; coding: utf-8 -*-", propLine.String())
}

func TestMissingPropLine(t *testing.T) {
	_, err := grammar.ParsePropLine("none.el", "(defun f ())")
	assert.ErrorIs(t, err, grammar.ErrNoPropLine)
}
