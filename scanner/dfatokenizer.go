package scanner

import (
	"fmt"

	"github.com/parsival/parsival"
	"github.com/parsival/parsival/dfa"
)

// UnrecognizedCharError reports an input position where the automaton has no
// viable transition and no prior accepting state to fall back to.
type UnrecognizedCharError struct {
	Char rune
	Pos  int // rune offset within the input
}

func (e *UnrecognizedCharError) Error() string {
	return fmt.Sprintf("unrecognized character %q at position %d", e.Char, e.Pos)
}

// DFATokenizer drives a merged automaton over input text. Scanning is
// maximal munch: within one scan, a later accepting state always overrides
// an earlier one, and on a dead end the tokenizer backtracks to the last
// accept. Tokens of suppressed tags consume input but are not emitted.
//
// On an unrecognized character the tokenizer reports the error through its
// error handler and, by default, skips one rune and resumes scanning. With
// FailFast set, scanning aborts instead and only EOF tokens are produced
// from then on.
type DFATokenizer struct {
	dfa      *dfa.DFA
	input    []rune
	cursor   int // rune offset where the next scan starts
	types    map[string]parsival.TokType
	names    map[parsival.TokType]string
	skip     map[string]bool
	failFast bool
	dead     bool // fail-fast tripped, emit only EOF
	Error    func(error)
}

var _ Tokenizer = (*DFATokenizer)(nil)

// Option configures a DFATokenizer.
type Option func(*DFATokenizer)

// SkipTags suppresses tokens of the given tags from the emitted stream.
// Suppressed tokens still consume input, which is the usual treatment of
// whitespace definitions.
func SkipTags(tags ...string) Option {
	return func(t *DFATokenizer) {
		for _, tag := range tags {
			t.skip[tag] = true
		}
	}
}

// FailFast makes an unrecognized character fatal to the scan instead of
// skipping it.
func FailFast(b bool) Option {
	return func(t *DFATokenizer) {
		t.failFast = b
	}
}

// TokenTypes overrides the token type assigned to definition tags. Tags not
// present in the map keep their default value (declaration index + 1).
func TokenTypes(types map[string]parsival.TokType) Option {
	return func(t *DFATokenizer) {
		for tag, typ := range types {
			t.types[tag] = typ
		}
		t.names = nil // rebuilt on demand
	}
}

// NewDFATokenizer creates a tokenizer for input, driven by a merged
// automaton. By default the tag of definition i is mapped to token type i+1,
// following declaration order.
func NewDFATokenizer(d *dfa.DFA, input string, opts ...Option) *DFATokenizer {
	t := &DFATokenizer{
		dfa:   d,
		input: []rune(input),
		types: make(map[string]parsival.TokType),
		skip:  make(map[string]bool),
		Error: logError,
	}
	for i, tag := range d.Tags {
		t.types[tag] = parsival.TokType(i + 1)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DFATokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// TokenType returns the token type assigned to a definition tag.
func (t *DFATokenizer) TokenType(tag string) parsival.TokType {
	return t.types[tag]
}

// TypeName translates a token type back to its definition tag. It may be
// used as a parsival.TokTypeStringer.
func (t *DFATokenizer) TypeName(typ parsival.TokType) string {
	if typ == EOF {
		return "#eof"
	}
	if t.names == nil {
		t.names = make(map[parsival.TokType]string, len(t.types))
		for tag, tt := range t.types {
			t.names[tt] = tag
		}
	}
	return t.names[typ]
}

// NextToken scans the next token. At end of input, and after a fail-fast
// abort, it returns a token of type EOF.
func (t *DFATokenizer) NextToken() parsival.Token {
	for {
		if t.dead || t.cursor >= len(t.input) {
			pos := uint64(t.cursor)
			return MakeDefaultToken(EOF, "", parsival.Span{pos, pos})
		}
		state := t.dfa.Start
		best := -1 // rune offset just past the last accept
		bestTag := ""
		i := t.cursor
		for i < len(t.input) {
			next, ok := t.dfa.Step(state, t.input[i])
			if !ok {
				break
			}
			state = next
			i++
			if tag, accept := t.dfa.AcceptTag(state); accept {
				best, bestTag = i, tag
			}
		}
		if best < 0 {
			err := &UnrecognizedCharError{Char: t.input[t.cursor], Pos: t.cursor}
			t.Error(err)
			if t.failFast {
				t.dead = true
				continue
			}
			t.cursor++ // skip the offending rune and resume
			continue
		}
		lexeme := string(t.input[t.cursor:best])
		span := parsival.Span{uint64(t.cursor), uint64(best)}
		t.cursor = best
		if t.skip[bestTag] {
			tracer().Debugf("suppressing %q token %q", bestTag, lexeme)
			continue
		}
		tracer().Debugf("token %q/%s %v", lexeme, bestTag, span)
		return MakeDefaultToken(t.types[bestTag], lexeme, span)
	}
}
