package langdef

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/parsival/parsival"
	"github.com/parsival/parsival/dfa"
	"github.com/parsival/parsival/lr"
)

// LineError is returned for a malformed line of a definition file.
type LineError struct {
	Line int    // 1-based line number
	Text string // the offending line
	msg  string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.msg, e.Text)
}

func lineError(lineno int, text, format string, args ...interface{}) *LineError {
	return &LineError{Line: lineno, Text: text, msg: fmt.Sprintf(format, args...)}
}

// skippable is true for lines carrying no definition.
func skippable(line string) bool {
	return line == "" || strings.HasPrefix(line, "#")
}

// === Token Definitions =====================================================

// TokenDefs reads token definitions in the format
//
//	tag: pattern
//
// one per line, and returns them in declaration order. Declaration order
// matters: it determines the default token values of a tokenizer built from
// the definitions, and earlier definitions win ties during automaton merging.
func TokenDefs(r io.Reader) ([]dfa.Def, error) {
	var defs []dfa.Def
	seen := map[string]int{}
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if skippable(line) {
			continue
		}
		colon := strings.Index(line, ":")
		if colon < 0 {
			return nil, lineError(lineno, line, "token definition without ':'")
		}
		tag := strings.TrimSpace(line[:colon])
		pattern := strings.TrimSpace(line[colon+1:])
		if tag == "" {
			return nil, lineError(lineno, line, "token definition without tag")
		}
		if pattern == "" {
			return nil, lineError(lineno, line, "token definition without pattern")
		}
		if prev, ok := seen[tag]; ok {
			return nil, lineError(lineno, line, "tag %q already defined in line %d", tag, prev)
		}
		seen[tag] = lineno
		defs = append(defs, dfa.Def{Tag: tag, Pattern: pattern})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	tracer().Debugf("read %d token definitions", len(defs))
	return defs, nil
}

// === Grammars ==============================================================

// Option configures reading of a grammar file.
type Option func(*options)

type options struct {
	name  string
	start string
	types map[string]parsival.TokType
}

// Name sets the name of the resulting grammar.
func Name(name string) Option {
	return func(o *options) { o.name = name }
}

// Start overrides the start symbol; the default is the left-hand side of the
// first production.
func Start(name string) Option {
	return func(o *options) { o.start = name }
}

// Types provides token values for terminals, keyed by terminal name. This is
// how a grammar gets wired to a tokenizer: pass the tokenizer's tag-to-type
// mapping and name the grammar's terminals after the token tags. Terminals
// not present in the map get a token value assigned (single-rune terminals
// their rune value, all others a running number).
func Types(types map[string]parsival.TokType) Option {
	return func(o *options) { o.types = types }
}

// production is one parsed alternative of a grammar file line.
type production struct {
	lhs string
	rhs []string // empty = epsilon
}

// Grammar reads a grammar in the format
//
//	LHS ::= sym sym … | sym …
//
// one or more productions per line, and builds it. Symbols occurring on a
// left-hand side are the non-terminals; all others are terminals.
func Grammar(r io.Reader, opts ...Option) (*lr.Grammar, error) {
	o := options{name: "G"}
	for _, opt := range opts {
		opt(&o)
	}
	prods, err := readProductions(r)
	if err != nil {
		return nil, err
	}
	if len(prods) == 0 {
		return nil, fmt.Errorf("grammar file contains no productions")
	}
	nonterms := map[string]bool{}
	for _, p := range prods {
		nonterms[p.lhs] = true
	}
	types := terminalTypes(prods, nonterms, o.types)
	b := lr.NewGrammarBuilder(o.name)
	if o.start != "" {
		if !nonterms[o.start] {
			return nil, fmt.Errorf("start symbol %q has no production", o.start)
		}
		b.Start(o.start)
	} else {
		b.Start(prods[0].lhs)
	}
	for _, p := range prods {
		rb := b.LHS(p.lhs)
		if len(p.rhs) == 0 {
			rb.Epsilon()
			continue
		}
		for _, sym := range p.rhs {
			if nonterms[sym] {
				rb.N(sym)
			} else {
				rb.T(sym, int(types[sym]))
			}
		}
		rb.End()
	}
	return b.Grammar()
}

// readProductions parses the raw productions of a grammar file.
func readProductions(r io.Reader) ([]production, error) {
	var prods []production
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if skippable(line) {
			continue
		}
		sep := strings.Index(line, "::=")
		if sep < 0 {
			return nil, lineError(lineno, line, "production without '::='")
		}
		lhs := strings.TrimSpace(line[:sep])
		if lhs == "" || len(strings.Fields(lhs)) != 1 {
			return nil, lineError(lineno, line, "production needs a single left-hand side symbol")
		}
		for _, alt := range strings.Split(line[sep+3:], "|") {
			rhs := strings.Fields(alt)
			if len(rhs) == 1 && (rhs[0] == "ε" || rhs[0] == "''") {
				rhs = nil // epsilon production
			}
			prods = append(prods, production{lhs: lhs, rhs: rhs})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	tracer().Debugf("read %d productions", len(prods))
	return prods, nil
}

// terminalTypes assigns a token value to every terminal of the grammar:
// the client-provided value if present, the rune value for single-rune
// terminals, and a running number for the remaining terminals. The running
// number starts above the ASCII range and above every fixed value, so
// auto-numbered terminals cannot collide with client-mapped values or with
// non-ASCII rune values.
func terminalTypes(prods []production, nonterms map[string]bool,
	client map[string]parsival.TokType) map[string]parsival.TokType {
	//
	types := map[string]parsival.TokType{}
	next := parsival.TokType(128)
	for _, p := range prods {
		for _, sym := range p.rhs {
			if nonterms[sym] {
				continue
			}
			if _, ok := types[sym]; ok {
				continue
			}
			if t, ok := client[sym]; ok {
				types[sym] = t
			} else if utf8.RuneCountInString(sym) == 1 {
				r, _ := utf8.DecodeRuneInString(sym)
				types[sym] = parsival.TokType(r)
			} else {
				continue // numbered in the second pass
			}
			if types[sym] >= next {
				next = types[sym] + 1
			}
		}
	}
	for _, p := range prods {
		for _, sym := range p.rhs {
			if nonterms[sym] {
				continue
			}
			if _, ok := types[sym]; ok {
				continue
			}
			types[sym] = next
			next++
		}
	}
	return types
}
