/*
Package scanner defines the Tokenizer interface parsers rely on, and
implements tokenizers on top of it.

The principal implementation drives a merged DFA (package dfa) over input
text with a maximal-munch policy. An adapter for lexmachine, suitable for
hand-specified token sets, lives in sub-package lexmach.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 The parsival authors
*/
package scanner

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/parsival/parsival"
)

// tracer traces with key 'parsival.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("parsival.scanner")
}

// EOF is the token type signalling end of input.
const EOF = parsival.EOF

// Tokenizer is the scanner interface. A Tokenizer produces one token per
// call; after the input is exhausted every further call returns a token of
// type EOF.
type Tokenizer interface {
	NextToken() parsival.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners.
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is an unsophisticated token type: a category, the lexeme, and
// the input span it covers.
type DefaultToken struct {
	kind   parsival.TokType
	lexeme string
	Val    interface{}
	span   parsival.Span
}

// MakeDefaultToken creates a DefaultToken from its parts.
func MakeDefaultToken(typ parsival.TokType, lexeme string, span parsival.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() parsival.TokType {
	return t.kind
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Span() parsival.Span {
	return t.span
}

var _ parsival.Token = DefaultToken{}
