// Package options parses the elread command line.
package options

import (
	"fmt"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"

	"elread/internal/source"
)

const usage = `elread

Read Emacs Lisp files and report malformed forms.

Usage:
  elread [-p | -t | -d] [-q] [-v] [--no-color] [--unsupported=CODINGS] [PATH...]
  elread -h | --help
  elread --version

Arguments:
  PATH  File or directory to read. Directories are searched for *.el
        files. Standard input is read when no path is given.

Options:
  -p, --print                Print every form in canonical form.
  -t, --tokens               Print the token stream instead of forms.
  -d, --dump                 Dump every expression tree.
  -q, --quiet                Do not print diagnostics.
  -v, --verbose              Enable debug logging.
  --no-color                 Never colour diagnostics.
  --unsupported=CODINGS      Comma-separated codings read as empty buffers
                             [default: euc-japan,iso-2022-7bit].
  -h, --help                 Display this help.
  --version                  Print elread version.
`

type Output int

const (
	Check Output = iota // diagnostics only
	Print
	Tokens
	Dump
)

type Options struct {
	Paths   []string
	Output  Output
	Quiet   bool
	Verbose bool
	Color   bool
	Source  source.Options
}

// Parse reads argv (without the program name). Help, version and usage
// errors are handled by docopt, which exits the process.
func Parse(argv []string, version string) (*Options, error) {
	opts, err := docopt.ParseArgs(usage, argv, version)
	if err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}
	return fromOpts(opts)
}

func fromOpts(opts docopt.Opts) (*Options, error) {
	o := &Options{}

	o.Paths, _ = opts["PATH"].([]string)

	switch {
	case flag(opts, "--print"):
		o.Output = Print
	case flag(opts, "--tokens"):
		o.Output = Tokens
	case flag(opts, "--dump"):
		o.Output = Dump
	}

	o.Quiet = flag(opts, "--quiet")
	o.Verbose = flag(opts, "--verbose")
	o.Color = !flag(opts, "--no-color") && StderrIsTerminal()

	unsupported, err := opts.String("--unsupported")
	if err != nil {
		return nil, fmt.Errorf("invalid --unsupported: %w", err)
	}
	for _, coding := range strings.Split(unsupported, ",") {
		if coding = strings.TrimSpace(coding); coding != "" {
			o.Source.Unsupported = append(o.Source.Unsupported, coding)
		}
	}

	return o, nil
}

func flag(opts docopt.Opts, name string) bool {
	b, _ := opts.Bool(name)
	return b
}

// StdinIsTerminal reports whether standard input is interactive.
func StdinIsTerminal() bool {
	return isTerminal(0)
}

// StderrIsTerminal reports whether diagnostics go to a terminal.
func StderrIsTerminal() bool {
	return isTerminal(2)
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
