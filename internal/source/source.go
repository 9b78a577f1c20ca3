// Package source acquires and decodes the buffers handed to the reader.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"

	"elread/grammar"
)

// StdinName is the display name used for standard input.
const StdinName = "<stdin>"

var log = commonlog.GetLogger("elread.source")

// ErrUnknownCoding is returned when the declared coding has no decoder.
var ErrUnknownCoding = errors.New("unknown coding")

// Buffer is a decoded source text ready for the reader.
type Buffer struct {
	Name     string
	Text     string
	Coding   string // coding the text was decoded with
	Declared string // coding named by the property line, if any

	// Unsupported is set when the declared coding is one the reader
	// deliberately skips; Text is then empty.
	Unsupported bool
}

type Options struct {
	// Unsupported lists codings read as an empty buffer instead of being
	// decoded.
	Unsupported []string
}

func DefaultOptions() Options {
	return Options{Unsupported: []string{"euc-japan", "iso-2022-7bit"}}
}

func (o Options) unsupported(coding string) bool {
	return slices.ContainsFunc(o.Unsupported, func(name string) bool {
		return strings.EqualFold(strings.TrimSpace(name), coding)
	})
}

// Emacs coding names that differ from their IANA counterparts.
var aliases = map[string]string{
	"iso-latin-1":   "iso-8859-1",
	"latin-1":       "iso-8859-1",
	"iso-latin-2":   "iso-8859-2",
	"latin-2":       "iso-8859-2",
	"iso-latin-3":   "iso-8859-3",
	"iso-latin-4":   "iso-8859-4",
	"iso-latin-5":   "iso-8859-9",
	"iso-latin-9":   "iso-8859-15",
	"latin-9":       "iso-8859-15",
	"latin-0":       "iso-8859-15",
	"cp1252":        "windows-1252",
	"utf-8-emacs":   "utf-8",
	"mule-utf-8":    "utf-8",
	"prefer-utf-8":  "utf-8",
	"undecided":     "utf-8",
	"us-ascii":      "utf-8",
	"raw-text":      "iso-8859-1",
	"no-conversion": "iso-8859-1",
	"binary":        "iso-8859-1",
}

// Load reads and decodes the file at path.
func Load(path string, opts Options) (*Buffer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Decode(path, raw, opts)
}

// LoadReader reads r to the end and decodes it under the given name.
func LoadReader(name string, r io.Reader, opts Options) (*Buffer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return Decode(name, raw, opts)
}

// Decode turns raw bytes into a Buffer. A coding declared in the property
// line wins; otherwise valid UTF-8 is used as is and anything else is read
// as ISO-8859-1.
func Decode(name string, raw []byte, opts Options) (*Buffer, error) {
	declared := DeclaredCoding(name, raw)
	if declared == "" {
		if utf8.Valid(raw) {
			return &Buffer{Name: name, Text: string(raw), Coding: "utf-8"}, nil
		}
		text, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
		return &Buffer{Name: name, Text: string(text), Coding: "iso-8859-1"}, nil
	}

	coding := stripEOL(strings.ToLower(declared))
	if opts.unsupported(coding) {
		log.Noticef("%s: skipping unsupported coding %s", name, declared)
		return &Buffer{Name: name, Coding: coding, Declared: declared, Unsupported: true}, nil
	}
	if alias, ok := aliases[coding]; ok {
		coding = alias
	}

	enc, err := lookup(coding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	text, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s as %s: %w", name, coding, err)
	}

	log.Debugf("%s: decoded as %s", name, coding)
	return &Buffer{Name: name, Text: string(text), Coding: coding, Declared: declared}, nil
}

// DeclaredCoding returns the coding named in the property line of raw, or
// "" when there is none.
func DeclaredCoding(name string, raw []byte) string {
	head := raw
	for i, n := 0, 0; i < len(raw); i++ {
		if raw[i] == '\n' {
			if n++; n == 2 {
				head = raw[:i]
				break
			}
		}
	}

	propLine, err := grammar.ParsePropLine(name, string(head))
	if err != nil {
		if !errors.Is(err, grammar.ErrNoPropLine) {
			log.Debugf("%s: ignoring property line: %s", name, err)
		}
		return ""
	}
	coding, _ := propLine.Var("coding")
	return coding
}

func stripEOL(coding string) string {
	for _, suffix := range []string{"-unix", "-dos", "-mac"} {
		if trimmed, ok := strings.CutSuffix(coding, suffix); ok {
			return trimmed
		}
	}
	return coding
}

func lookup(coding string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(coding)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownCoding, coding)
	}
	return enc, nil
}
