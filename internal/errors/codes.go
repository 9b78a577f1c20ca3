package errors

// Code identifies the kind of a reader diagnostic.
//
// Error code ranges:
// E0100-E0109: Lexical errors (scanner)
// E0110-E0119: Syntax errors (reader)
// E0900-E0999: Reserved for tooling errors
type Code string

const (
	// Lexical errors. The scanner skips one character and resumes.

	// E0100: A character no token can start with
	ErrorUnexpectedCharacter Code = "E0100"

	// E0101: Radix prefix outside 2..36, as in #99r1
	ErrorInvalidRadix Code = "E0101"

	// E0102: Radix prefix without a valid digit, as in #xZ
	ErrorInvalidNumber Code = "E0102"

	// E0103: String literal missing its closing quote
	ErrorUnterminatedString Code = "E0103"

	// Syntax errors. The reader returns the best-effort tree.

	// E0110: List still open at end of input
	ErrorUnterminatedList Code = "E0110"

	// E0111: Vector still open at end of input
	ErrorUnterminatedVector Code = "E0111"

	// E0112: Token that cannot start an expression
	ErrorUnexpectedToken Code = "E0112"

	// E0113: Dotted tail not followed by a closing parenthesis
	ErrorMalformedDottedList Code = "E0113"
)

// Incomplete reports whether the code means the input ended too early,
// so that more input could still complete the form.
func (c Code) Incomplete() bool {
	switch c {
	case ErrorUnterminatedString, ErrorUnterminatedList, ErrorUnterminatedVector:
		return true
	}
	return false
}
