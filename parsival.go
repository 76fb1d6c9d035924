package parsival

import "fmt"

// --- Tokens -----------------------------------------------------------------

// TokType is the category of a token, e.g. an identifier or a keyword.
// Values for terminals are application defined; scanners hand them out and
// parser tables are indexed by them. EOF is the only value reserved by
// this module.
type TokType int

// EOF is the token type signalling end of input. It mirrors the convention
// of text/scanner.
const EOF TokType = -1

// TokTypeStringer translates a token type to a readable name, usually the
// tag of the token definition which produced it.
type TokTypeStringer func(TokType) string

// Token is a single unit of input, produced by a scanner and consumed by a
// parser. A token knows its category, the lexeme as it appeared in the
// input, an optional semantic value, and the input span it covers.
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------------

// Span is a region of input text, given as a start position and the position
// just past the end. Scanners attach spans to tokens; the parser extends them
// over reduced handles.
type Span [2]uint64

// From returns the start position of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the position just past the end of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of the span.
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend grows s to cover other as well.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
