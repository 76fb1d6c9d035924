/*
Package slr provides an SLR(1)-parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The SLR parser
utilizes these tables to create a right derivation for a given input,
provided through a scanner interface.

This parser is intended for small to moderate grammars, e.g. for
configuration input or small domain-specific languages. The main focus is
adaptability and on-the-fly usage: clients construct the parse tables from
a grammar at runtime and use the parser directly, without a code-generation
or compile step.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("id", 2).End()   // Var  --> Sign id
	b.LHS("Sign").T("+", '+').End()           // Sign --> +
	b.LHS("Sign").T("-", '-').End()           // Sign --> -
	b.LHS("Sign").Epsilon()                   // Sign -->
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation:

	ga := lr.Analysis(g)
	lrgen := lr.NewTableGenerator(ga)
	if err := lrgen.CreateTables(); err != nil { ... }  // not an SLR(1) grammar

Finally parse some input:

	p := slr.NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	accepted, err := p.Parse(lrgen.CFSM().S0, tokenizer)

After an accepting parse, p.SymbolTable() lists every input token in the
order it was consumed.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 The parsival authors
*/
package slr

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/parsival/parsival"
	"github.com/parsival/parsival/lr"
	"github.com/parsival/parsival/scanner"
)

// tracer traces with key 'parsival.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parsival.lr")
}

// Parser is an SLR(1)-parser type. Create and initialize one with
// slr.NewParser(…).
type Parser struct {
	G       *lr.Grammar
	stack   []stackitem // parser stack
	gotoT   *lr.Table   // GOTO table
	actionT *lr.Table   // ACTION table
	symtab  []Entry     // symbol table, one entry per consumed terminal
}

// We store triples of state-IDs, symbol-IDs and spans on the parse stack.
type stackitem struct {
	stateID uint          // ID of a CFSM state
	symID   int           // ID of a grammar symbol (terminal or non-terminal)
	span    parsival.Span // input span over which this symbol reaches
}

// Entry is a symbol table entry: one consumed input token, in order of
// consumption, together with the grammar terminal it matched.
type Entry struct {
	Index  int    // running number, starting at 1
	Lexeme string // the input substring
	Tag    string // name of the grammar terminal
}

func (e Entry) String() string {
	return fmt.Sprintf("%d: %q %s", e.Index, e.Lexeme, e.Tag)
}

// UnexpectedTokenError is returned when the ACTION table holds no entry for
// the current state and lookahead token, i.e. the input is not a sentence of
// the grammar.
type UnexpectedTokenError struct {
	Token parsival.Token // offending lookahead token
	State uint           // CFSM state the parser was in
}

func (e *UnexpectedTokenError) Error() string {
	if e.Token.TokType() == parsival.EOF {
		return fmt.Sprintf("syntax error: unexpected end of input in state %d", e.State)
	}
	return fmt.Sprintf("syntax error: unexpected token %q at position %d in state %d",
		e.Token.Lexeme(), e.Token.Span().From(), e.State)
}

// NewParser creates an SLR(1) parser from a grammar and its parse tables.
func NewParser(g *lr.Grammar, gotoTable *lr.Table, actionTable *lr.Table) *Parser {
	return &Parser{
		G:       g,
		stack:   make([]stackitem, 0, 512),
		gotoT:   gotoTable,
		actionT: actionTable,
	}
}

// SymbolTable returns the symbol table of the last parse: every terminal
// token consumed from the input, in order.
func (p *Parser) SymbolTable() []Entry {
	return p.symtab
}

// Parse starts a new parse, given a start state and a scanner tokenizing the
// input. The parser must have been initialized.
//
// The parser returns true if the input string has been accepted.
func (p *Parser) Parse(S *lr.CFSMState, scan scanner.Tokenizer) (bool, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.G == nil || p.gotoT == nil || p.actionT == nil {
		return false, fmt.Errorf("SLR(1)-parser not initialized")
	}
	p.stack = p.stack[:0]
	p.symtab = nil
	p.stack = append(p.stack, stackitem{S.ID, 0, parsival.Span{0, 0}}) // push S
	token := scan.NextToken()
	tokval := token.TokType()
	for {
		tracer().Debugf("got token %q/%d from scanner", token.Lexeme(), tokval)
		state := p.stack[len(p.stack)-1] // TOS
		action := p.actionT.Value(state.stateID, tokval)
		tracer().Debugf("action(%d,%d)=%s", state.stateID, tokval, valstring(action, p.actionT))
		switch {
		case action == p.actionT.NullValue():
			return false, &UnexpectedTokenError{Token: token, State: state.stateID}
		case action == lr.AcceptAction:
			return true, nil
		case action == lr.ShiftAction:
			nextstate := p.gotoT.Value(state.stateID, tokval)
			if nextstate == p.gotoT.NullValue() {
				return false, fmt.Errorf("no shift transition in state %d on token %q",
					state.stateID, token.Lexeme())
			}
			tracer().Debugf("shifting, next state = %d", nextstate)
			p.record(token)
			p.stack = append(p.stack, // push a terminal state onto stack
				stackitem{uint(nextstate), int(tokval), token.Span()})
			token = scan.NextToken()
			tokval = token.TokType()
		default: // action > 0, reduce action
			rule := p.G.Rule(int(action))
			nextstate, handlespan, err := p.reduce(rule)
			if err != nil {
				return false, err
			}
			if handlespan.IsNull() { // resulted from an epsilon production
				pos := token.Span().From() // epsilon was just before lookahead
				if pos > 0 {
					pos--
				}
				handlespan = parsival.Span{pos, pos}
			}
			tracer().Debugf("reduced to next state = %d", nextstate)
			p.stack = append(p.stack, // push a non-terminal state onto stack
				stackitem{nextstate, rule.LHS.Value, handlespan})
		}
	}
}

// record appends a consumed terminal to the symbol table.
func (p *Parser) record(token parsival.Token) {
	tag := fmt.Sprintf("#%d", token.TokType())
	if t := p.G.TerminalByValue(int(token.TokType())); t != nil {
		tag = t.Name
	}
	p.symtab = append(p.symtab, Entry{
		Index:  len(p.symtab) + 1,
		Lexeme: token.Lexeme(),
		Tag:    tag,
	})
}

// reduce performs a reduce action for a rule
//
//	LHS --> X1 … Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stack as states
//
//	[TOS]  Sn(Xn, span_n) … S1(X1, span_1)  …
//
// which get popped; the resulting state is found in the GOTO table for the
// then-exposed state and LHS.
func (p *Parser) reduce(rule *lr.Rule) (uint, parsival.Span, error) {
	tracer().Infof("reduce %v", rule)
	handle := reverse(rule.RHS())
	var handlespan parsival.Span
	for _, sym := range handle {
		tos := p.stack[len(p.stack)-1]
		if tos.symID != sym.Value {
			tracer().Errorf("expected %v on top of stack, got %d", sym, tos.symID)
		}
		handlespan = handlespan.Extend(tos.span)
		p.stack = p.stack[:len(p.stack)-1] // pop TOS
	}
	state := p.stack[len(p.stack)-1] // TOS
	nextstate := p.gotoT.Value(state.stateID, rule.LHS.TokenType())
	if nextstate == p.gotoT.NullValue() {
		return 0, handlespan, fmt.Errorf("no goto transition in state %d for %s",
			state.stateID, rule.LHS.Name)
	}
	return uint(nextstate), handlespan, nil
}

// --- Helpers ---------------------------------------------------------------

// reverse the symbols of a RHS of a rule (i.e., a handle).
func reverse(syms []*lr.Symbol) []*lr.Symbol {
	r := append([]*lr.Symbol(nil), syms...) // make copy first
	for i := len(syms)/2 - 1; i >= 0; i-- {
		opp := len(syms) - 1 - i
		r[i], r[opp] = r[opp], r[i]
	}
	return r
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *lr.Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == lr.AcceptAction {
		return "<accept>"
	} else if v == lr.ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("%d", v)
}
