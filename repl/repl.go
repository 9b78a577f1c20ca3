// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"elread/internal/errors"
	"elread/internal/parser"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
	NAME         = "<repl>"
)

// Session accumulates input lines until they hold complete forms.
type Session struct {
	name    string
	colored bool
	pending strings.Builder
}

// Result is what one line of input produced.
type Result struct {
	Forms       []string // canonical rendering of each form read
	Diagnostics string   // formatted diagnostics, if any
	Incomplete  bool     // more input is needed
}

func NewSession(name string, colored bool) *Session {
	return &Session{name: name, colored: colored}
}

// Pending reports whether earlier lines are waiting for completion.
func (s *Session) Pending() bool {
	return s.pending.Len() > 0
}

func (s *Session) Reset() {
	s.pending.Reset()
}

// Feed adds a line. While the input only lacks closing delimiters or a
// closing quote, Feed asks for more; an empty line reads whatever has
// accumulated anyway.
func (s *Session) Feed(line string) Result {
	force := line == "" && s.Pending()
	s.pending.WriteString(line)
	s.pending.WriteString("\n")
	text := s.pending.String()

	collector := errors.NewCollector(s.name, text)
	exprs := parser.NewParser(parser.NewScanner(text, collector), collector).ParseAll()
	if !force && incomplete(collector.Diagnostics) {
		return Result{Incomplete: true}
	}
	s.pending.Reset()

	var result Result
	for _, expr := range exprs {
		result.Forms = append(result.Forms, expr.String())
	}

	var out bytes.Buffer
	reporter := errors.NewReporter(s.name, text, &out)
	reporter.SetColor(s.colored)
	for _, d := range collector.Diagnostics {
		reporter.Report(d.Offset, d.Code, d.Message)
	}
	result.Diagnostics = out.String()
	return result
}

func incomplete(diagnostics []errors.Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Code.Incomplete() {
			return true
		}
	}
	return false
}

func (r Result) write(out io.Writer) {
	for _, form := range r.Forms {
		fmt.Fprintln(out, form)
	}
	fmt.Fprint(out, r.Diagnostics)
}

// Start reads lines from in without line editing, for piped input.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	session := NewSession(NAME, false)

	for {
		if session.Pending() {
			fmt.Fprint(out, CONTINUATION)
		} else {
			fmt.Fprint(out, PROMPT)
		}
		if !scanner.Scan() {
			if session.Pending() {
				session.Feed("").write(out)
			}
			return
		}
		session.Feed(scanner.Text()).write(out)
	}
}

// StartInteractive runs the loop on a terminal with history and line
// editing. Ctrl-C discards pending input; Ctrl-D ends the session.
func StartInteractive(out io.Writer, colored bool) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	session := NewSession(NAME, colored)
	for {
		prompt := PROMPT
		if session.Pending() {
			prompt = CONTINUATION
		}

		text, err := line.Prompt(prompt)
		switch {
		case err == liner.ErrPromptAborted:
			session.Reset()
			continue
		case err == io.EOF:
			fmt.Fprintln(out)
			return nil
		case err != nil:
			return fmt.Errorf("failed to read line: %w", err)
		}

		if strings.TrimSpace(text) != "" {
			line.AppendHistory(text)
		}
		session.Feed(text).write(out)
	}
}
