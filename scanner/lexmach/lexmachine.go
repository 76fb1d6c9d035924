/*
Package lexmach adapts lexmachine to the scanner.Tokenizer interface.

The DFA tokenizer of package scanner is built from textual token
definitions. For token sets which are specified in code — literals, keywords
and a handful of patterns — lexmachine is a convenient alternative backend,
and this package wraps it so that parsers cannot tell the two apart.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 The parsival authors
*/
package lexmach

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/parsival/parsival"
	"github.com/parsival/parsival/scanner"
)

// tracer traces with key 'parsival.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("parsival.scanner")
}

// Adapter wraps a compiled lexmachine lexer.
type Adapter struct {
	Lexer *lexmachine.Lexer
}

// NewAdapter creates a lexmachine adapter. It receives an init function for
// custom patterns, a list of literals ('[', ';', …), a list of keywords
// ("if", "for", …), and a map translating token names to their values.
//
// NewAdapter returns an error if compiling the automaton failed.
func NewAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string,
	tokenIds map[string]int) (*Adapter, error) {
	//
	adapter := &Adapter{Lexer: lexmachine.NewLexer()}
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, kw := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(kw)), MakeToken(kw, tokenIds[kw]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("error compiling automaton: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a Tokenizer for a given input.
func (a *Adapter) Scanner(input string) (*Scanner, error) {
	s, err := a.Lexer.Scanner([]byte(input))
	if err != nil {
		return &Scanner{}, err
	}
	return &Scanner{scanner: s, Error: logError}, nil
}

// Scanner wraps a lexmachine scanner as a scanner.Tokenizer.
type Scanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*Scanner)(nil)

func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// SetErrorHandler sets an error handler for the scanner.
func (s *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		s.Error = logError
		return
	}
	s.Error = h
}

// NextToken is part of the Tokenizer interface. Scan errors are reported to
// the error handler; scanning resumes after the unconsumed input.
func (s *Scanner) NextToken() parsival.Token {
	tok, err, eof := s.scanner.Next()
	for err != nil {
		s.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			s.scanner.TC = ui.FailTC
		}
		tok, err, eof = s.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", parsival.Span{0, 0})
	}
	token := tok.(*lexmachine.Token)
	return scanner.MakeDefaultToken(
		parsival.TokType(token.Type),
		string(token.Lexeme),
		parsival.Span{uint64(token.StartColumn), uint64(token.EndColumn)},
	)
}

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
