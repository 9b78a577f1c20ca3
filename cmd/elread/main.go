// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/michaelmacinnis/adapted"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"elread/internal/errors"
	"elread/internal/options"
	"elread/internal/parser"
	"elread/internal/source"
)

const version = "elread 0.1.0"

var log = commonlog.GetLogger("elread.cli")

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

func main() {
	opts, err := options.Parse(os.Args[1:], version)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	verbosity := 0
	if opts.Verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	os.Exit(run(opts, os.Stdin, os.Stdout, os.Stderr))
}

type stats struct {
	files       int
	skipped     int
	failed      int
	diagnostics int
}

func (s stats) ok() bool {
	return s.failed == 0 && s.diagnostics == 0
}

// run reads every input named by opts and returns the exit status.
func run(opts *options.Options, stdin io.Reader, stdout, stderr io.Writer) int {
	startTime := time.Now()
	var st stats

	if len(opts.Paths) == 0 {
		buffer, err := source.LoadReader(source.StdinName, stdin, opts.Source)
		st.read(buffer, err, opts, stdout, stderr)
	}

	for _, path := range opts.Paths {
		files, err := expand(path)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			st.failed++
			continue
		}
		for _, file := range files {
			buffer, err := source.Load(file, opts.Source)
			st.read(buffer, err, opts, stdout, stderr)
		}
	}

	duration := formatDuration(time.Since(startTime))
	if !opts.Quiet {
		summary := color.New(color.FgGreen)
		if !st.ok() {
			summary = color.New(color.FgRed)
		}
		if opts.Color {
			summary.EnableColor()
		} else {
			summary.DisableColor()
		}
		summary.Fprintf(stderr, "Read %d file(s), %d skipped, %d failed, %d diagnostic(s) in %s\n",
			st.files, st.skipped, st.failed, st.diagnostics, duration)
	}

	if !st.ok() {
		return 1
	}
	return 0
}

// expand turns a directory argument into the Lisp files below it.
func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return source.Walk(path)
}

func (st *stats) read(buffer *source.Buffer, err error, opts *options.Options, stdout, stderr io.Writer) {
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		st.failed++
		return
	}
	if buffer.Unsupported {
		log.Infof("skipping %s (coding %s)", buffer.Name, buffer.Declared)
		st.skipped++
		return
	}
	st.files++
	log.Debugf("reading %s (%s)", buffer.Name, buffer.Coding)

	collector := errors.NewCollector(buffer.Name, buffer.Text)
	var sink errors.Sink = collector
	if !opts.Quiet {
		reporter := errors.NewReporter(buffer.Name, buffer.Text, stderr)
		reporter.SetColor(opts.Color)
		sink = errors.Tee{collector, reporter}
	}

	scanner := parser.NewScanner(buffer.Text, sink)
	if opts.Output == options.Tokens {
		for tok := range scanner.All() {
			fmt.Fprintf(stdout, "%d\t%s\t%s\n", tok.Offset, tok.Kind, adapted.CanonicalString(tok.Text))
		}
	} else {
		for expr := range parser.NewParser(scanner, sink).All() {
			switch opts.Output {
			case options.Print:
				fmt.Fprintln(stdout, expr.String())
			case options.Dump:
				dumper.Fdump(stdout, expr)
			}
		}
	}

	st.diagnostics += len(collector.Diagnostics)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
