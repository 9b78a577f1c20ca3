package parser

import (
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"elread/internal/errors"
	"elread/token"
)

// A symbol run is a number when it matches this; "." alone is the dotted
// pair marker and never reaches it.
var numberPattern = regexp.MustCompile(`^[-+]?([0-9]*\.[0-9]+|[0-9]+\.?)(e([-+]?[0-9]+|\+INF|\+NaN))?$`)

// ArgSpecs lists the argument keywords, longest first so that a prefix
// never shadows a longer keyword.
var ArgSpecs = []string{"&allow-other-keys", "&optional", "&body", "&rest", "&key"}

// Scanner produces tokens from a decoded buffer on demand. It only moves
// forward and can be drained once.
type Scanner struct {
	source  string
	start   int
	current int
	sink    errors.Sink
	eof     *token.Token
}

func NewScanner(source string, sink errors.Sink) *Scanner {
	if sink == nil {
		sink = errors.Discard
	}
	return &Scanner{
		source: source,
		sink:   sink,
		eof:    &token.Token{Kind: token.EOF, Offset: len(source)},
	}
}

// EOF returns the end of input sentinel. It is never yielded by Next;
// callers compare against it by identity.
func (s *Scanner) EOF() *token.Token {
	return s.eof
}

// Next returns the next token, or false once the input is exhausted.
func (s *Scanner) Next() (*token.Token, bool) {
	for !s.isAtEnd() {
		s.start = s.current
		if tok := s.scanToken(); tok != nil {
			return tok, true
		}
	}
	return nil, false
}

// All yields the remaining tokens.
func (s *Scanner) All() iter.Seq[*token.Token] {
	return func(yield func(*token.Token) bool) {
		for {
			tok, ok := s.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// ScanTokens drains the scanner into a slice, without the EOF sentinel.
func (s *Scanner) ScanTokens() []*token.Token {
	var tokens []*token.Token
	for tok := range s.All() {
		tokens = append(tokens, tok)
	}
	return tokens
}

// scanToken tries each token class in priority order. It returns nil when
// the input at s.start was skipped, either as blank space or after a
// lexical error.
func (s *Scanner) scanToken() *token.Token {
	if s.skipIgnored() {
		return nil
	}
	if n := s.matchSpecial(); n > 0 {
		s.current += n
		return s.addToken(token.SPECIAL)
	}

	c := s.peek()
	if c == '"' {
		return s.scanString()
	}
	if c == '?' {
		if tok := s.scanCharacter(); tok != nil {
			return tok
		}
	}
	if c == '&' {
		if tok := s.scanArgSpec(); tok != nil {
			return tok
		}
	}
	if tok := s.scanSymbol(); tok != nil {
		return tok
	}
	if c == '#' {
		if tok, matched := s.scanRadix(); matched {
			return tok
		}
	}

	r, size := utf8.DecodeRuneInString(s.source[s.current:])
	s.reportError(errors.ErrorUnexpectedCharacter, fmt.Sprintf("unexpected character %s", string(r)))
	s.current += size
	return nil
}

// skipIgnored consumes whitespace, a line comment, or a #@N skip directive.
func (s *Scanner) skipIgnored() bool {
	switch c := s.peek(); {
	case isWhitespace(c):
		for !s.isAtEnd() && isWhitespace(s.peek()) {
			s.current++
		}
	case c == ';':
		if end := strings.IndexByte(s.source[s.current:], '\n'); end >= 0 {
			s.current += end + 1
		} else {
			s.current = len(s.source)
		}
	case c == '#' && s.peekAt(1) == '@' && isDigit(s.peekAt(2)):
		s.current += 2
		digits := s.current
		for isDigit(s.peek()) {
			s.current++
		}
		count, err := strconv.Atoi(s.source[digits:s.current])
		if err != nil {
			count = len(s.source)
		}
		for ; count > 0 && !s.isAtEnd(); count-- {
			_, size := utf8.DecodeRuneInString(s.source[s.current:])
			s.current += size
		}
	default:
		return false
	}
	return true
}

// matchSpecial returns the length of the punctuation at the current
// position, or 0.
func (s *Scanner) matchSpecial() int {
	switch s.peek() {
	case '(', ')', '[', ']', '\'', '`':
		return 1
	case ',':
		if s.peekAt(1) == '@' {
			return 2
		}
		return 1
	case '#':
		switch s.peekAt(1) {
		case '[', '\'':
			return 2
		case '^':
			if s.peekAt(2) == '[' {
				return 3
			}
			if s.peekAt(2) == '^' && s.peekAt(3) == '[' {
				return 4
			}
		}
	}
	return 0
}

func (s *Scanner) scanString() *token.Token {
	i := s.current + 1
	for i < len(s.source) {
		switch s.source[i] {
		case '\\':
			i += 2
			continue
		case '"':
			s.current = i + 1
			return s.addToken(token.STRING)
		}
		i++
	}
	s.reportError(errors.ErrorUnterminatedString, "unterminated string")
	s.current++
	return nil
}

// scanCharacter matches ?\NNN, or modifiers \C- and \M- followed by a
// possibly escaped character. When the modifiers leave nothing to apply to,
// they are given back one at a time, so ?\C- followed by a newline reads
// as ?\C.
func (s *Scanner) scanCharacter() *token.Token {
	i := s.current + 1
	if s.peekAt(1) == '\\' && isOctal(s.peekAt(2)) && isOctal(s.peekAt(3)) && isOctal(s.peekAt(4)) {
		s.current += 5
		return s.addToken(token.CHARACTER)
	}

	stops := []int{i}
	for strings.HasPrefix(s.source[i:], `\C-`) || strings.HasPrefix(s.source[i:], `\M-`) {
		i += 3
		stops = append(stops, i)
	}
	for k := len(stops) - 1; k >= 0; k-- {
		if end, ok := s.characterEnd(stops[k]); ok {
			s.current = end
			return s.addToken(token.CHARACTER)
		}
	}
	return nil
}

func (s *Scanner) characterEnd(i int) (int, bool) {
	if i >= len(s.source) || s.source[i] == '\n' {
		return 0, false
	}
	if s.source[i] == '\\' && i+1 < len(s.source) && s.source[i+1] != '\n' {
		_, size := utf8.DecodeRuneInString(s.source[i+1:])
		return i + 1 + size, true
	}
	_, size := utf8.DecodeRuneInString(s.source[i:])
	return i + size, true
}

func (s *Scanner) scanArgSpec() *token.Token {
	rest := s.source[s.current:]
	for _, spec := range ArgSpecs {
		if !strings.HasPrefix(rest, spec) {
			continue
		}
		s.current += len(spec)
		return s.addToken(token.ARGSPEC)
	}
	return nil
}

func (s *Scanner) scanSymbol() *token.Token {
	i := s.current
	if strings.HasPrefix(s.source[i:], "#:") {
		i += 2
	}
	body := i
	for {
		n := s.symbolCharAt(i)
		if n == 0 {
			break
		}
		i += n
	}
	if i == body {
		return nil
	}

	s.current = i
	text := s.source[s.start:s.current]
	switch {
	case text == token.DOT:
		return s.addToken(token.SPECIAL)
	case numberPattern.MatchString(text):
		return s.addToken(token.NUMBER)
	default:
		return s.addToken(token.SYMBOL)
	}
}

// symbolCharAt returns the byte length of the symbol constituent at i, or 0.
func (s *Scanner) symbolCharAt(i int) int {
	if i >= len(s.source) {
		return 0
	}
	c := s.source[i]
	switch {
	case c == '\\':
		if i+1 >= len(s.source) || s.source[i+1] == '\n' {
			return 0
		}
		_, size := utf8.DecodeRuneInString(s.source[i+1:])
		return 1 + size
	case c >= utf8.RuneSelf:
		_, size := utf8.DecodeRuneInString(s.source[i:])
		return size
	case isSymbolChar(c):
		return 1
	}
	return 0
}

// scanRadix reads #b, #o, #x and #NNr literals. matched is false when the
// input does not even look like a radix prefix.
func (s *Scanner) scanRadix() (tok *token.Token, matched bool) {
	i := s.current + 1
	var radix int

	switch s.peekAt(1) {
	case 'b':
		radix, i = 2, i+1
	case 'o':
		radix, i = 8, i+1
	case 'x':
		radix, i = 16, i+1
	default:
		j := i
		for j < len(s.source) && isDigit(s.source[j]) {
			j++
		}
		if j == i || j >= len(s.source) || s.source[j] != 'r' {
			return nil, false
		}
		n, err := strconv.Atoi(s.source[i:j])
		if err == nil {
			radix = n
		}
		i = j + 1
	}

	if radix < 2 || radix > 36 {
		s.reportError(errors.ErrorInvalidRadix, "invalid number radix")
		s.current++
		return nil, true
	}

	j := i
	for j < len(s.source) && digitValue(s.source[j]) < radix {
		j++
	}
	if j == i {
		s.reportError(errors.ErrorInvalidNumber, "invalid number")
		s.current++
		return nil, true
	}

	s.current = j
	return s.addToken(token.NUMBER), true
}

func (s *Scanner) addToken(kind token.Kind) *token.Token {
	return &token.Token{
		Kind:   kind,
		Text:   s.source[s.start:s.current],
		Offset: s.start,
	}
}

func (s *Scanner) reportError(code errors.Code, message string) {
	s.sink.Report(s.start, code, message)
}

func (s *Scanner) peek() byte {
	return s.peekAt(0)
}

func (s *Scanner) peekAt(n int) byte {
	if s.current+n >= len(s.source) {
		return 0
	}
	return s.source[s.current+n]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\f' || c == '\r'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isOctal(c byte) bool {
	return '0' <= c && c <= '7'
}

func isSymbolChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', isDigit(c):
		return true
	}
	return strings.IndexByte("-+=*/_~!@$%^&:<>{}|.?", c) >= 0
}

// digitValue returns the value of c as a digit in radixes up to 36, or 36.
func digitValue(c byte) int {
	switch {
	case isDigit(c):
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}
