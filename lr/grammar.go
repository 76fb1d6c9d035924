package lr

import (
	"fmt"
	"strings"

	"github.com/parsival/parsival"
	"github.com/parsival/parsival/lr/iteratable"
)

// EpsilonType is the token value representing the empty string in FIRST
// sets. Clients must not use it for terminals.
const EpsilonType = 0

// EOFType is the token value of the end-of-input marker.
const EOFType = int(parsival.EOF)

// nonTermType is the first value handed out to non-terminal symbols.
// Terminal token values must stay below it.
const nonTermType = 1000

// --- Symbols ----------------------------------------------------------------

// Symbol is a grammar symbol, terminal or non-terminal. Terminals carry the
// token value a scanner produces for them; non-terminals get values assigned
// by the grammar builder, starting at 1000.
type Symbol struct {
	Name  string
	Value int
}

// IsTerminal is true for terminal symbols.
func (sym *Symbol) IsTerminal() bool {
	return sym.Value < nonTermType
}

// TokenType returns the symbol's value as a token type.
func (sym *Symbol) TokenType() parsival.TokType {
	return parsival.TokType(sym.Value)
}

func (sym *Symbol) String() string {
	return sym.Name
}

// --- Rules ------------------------------------------------------------------

// Rule is a grammar production. Rule 0 of a grammar is always the synthetic
// start rule  S' -> S  created by the builder.
type Rule struct {
	Serial int
	LHS    *Symbol
	rhs    []*Symbol
}

// RHS returns the right-hand side symbols of a rule. The returned slice is
// shared with the rule and must not be modified.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// IsEpsilon is true for epsilon-productions, i.e. rules with an empty RHS.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d: %s ::=", r.Serial, r.LHS.Name)
	for _, sym := range r.rhs {
		b.WriteString(" ")
		b.WriteString(sym.Name)
	}
	return b.String()
}

// eqRHS compares a rule's RHS to a sequence of symbols.
func (r *Rule) eqRHS(handle []*Symbol) bool {
	if len(r.rhs) != len(handle) {
		return false
	}
	for i, sym := range r.rhs {
		if sym != handle[i] {
			return false
		}
	}
	return true
}

// --- Grammar ----------------------------------------------------------------

// Grammar is a context-free grammar: terminals, non-terminals, and an
// ordered list of productions. Grammars are immutable once built by a
// GrammarBuilder.
type Grammar struct {
	Name         string
	rules        []*Rule
	terminals    []*Symbol // in order of first appearance
	nonterminals []*Symbol // in order of first appearance
	symbols      map[string]*Symbol
}

// Rule returns the rule with a given serial number, or nil.
func (g *Grammar) Rule(serial int) *Rule {
	if serial < 0 || serial >= len(g.rules) {
		return nil
	}
	return g.rules[serial]
}

// Size returns the number of rules, the augmented start rule included.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// StartSymbol returns the synthetic start symbol of the augmented grammar.
func (g *Grammar) StartSymbol() *Symbol {
	return g.rules[0].LHS
}

// SymbolByName returns the symbol with a given name, or nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.symbols[name]
}

// TerminalByValue returns the terminal with a given token value, or nil.
func (g *Grammar) TerminalByValue(value int) *Symbol {
	for _, t := range g.terminals {
		if t.Value == value {
			return t
		}
	}
	return nil
}

// EachSymbol iterates over all symbols, terminals first. The mapper may
// return a non-nil value to abort the iteration; EachSymbol returns that
// value.
func (g *Grammar) EachSymbol(mapper func(sym *Symbol) interface{}) interface{} {
	for _, sym := range g.terminals {
		if r := mapper(sym); r != nil {
			return r
		}
	}
	for _, sym := range g.nonterminals {
		if r := mapper(sym); r != nil {
			return r
		}
	}
	return nil
}

// EachTerminal iterates over all terminal symbols.
func (g *Grammar) EachTerminal(mapper func(sym *Symbol) interface{}) interface{} {
	for _, sym := range g.terminals {
		if r := mapper(sym); r != nil {
			return r
		}
	}
	return nil
}

// EachNonTerminal iterates over all non-terminal symbols.
func (g *Grammar) EachNonTerminal(mapper func(sym *Symbol) interface{}) interface{} {
	for _, sym := range g.nonterminals {
		if r := mapper(sym); r != nil {
			return r
		}
	}
	return nil
}

// EachRule iterates over all rules in serial order.
func (g *Grammar) EachRule(mapper func(r *Rule) interface{}) interface{} {
	for _, r := range g.rules {
		if ret := mapper(r); ret != nil {
			return ret
		}
	}
	return nil
}

// FindNonTermRules collects the start items of all rules with a given LHS.
// With withEps set, items for epsilon-rules are included.
func (g *Grammar) FindNonTermRules(sym *Symbol, withEps bool) *iteratable.Set {
	set := newItemSet()
	for _, r := range g.rules {
		if r.LHS == sym && (withEps || !r.IsEpsilon()) {
			item, _ := StartItem(r)
			set.Add(item)
		}
	}
	return set
}

// matchesRHS finds the rule with a given LHS and RHS, returning the rule and
// its serial, or (nil, -1).
func (g *Grammar) matchesRHS(lhs *Symbol, handle []*Symbol) (*Rule, int) {
	for _, r := range g.rules {
		if r.LHS == lhs && r.eqRHS(handle) {
			return r, r.Serial
		}
	}
	return nil, -1
}

// Dump logs the grammar's rules. Visible in debug mode only.
func (g *Grammar) Dump() {
	tracer().Debugf("grammar %s:", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("  %v", r)
	}
}

// --- Errors -----------------------------------------------------------------

// SymbolError reports a grammar symbol which is referenced on a right-hand
// side but never declared, i.e. a non-terminal without productions.
type SymbolError struct {
	Name string
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("undeclared grammar symbol %q referenced in production", e.Name)
}

// --- Grammar builder --------------------------------------------------------

// GrammarBuilder collects rules and produces an immutable, augmented
// Grammar. The LHS of the first rule added becomes the start symbol, unless
// overridden with Start.
type GrammarBuilder struct {
	name      string
	rules     []*Rule
	symbols   map[string]*Symbol
	termOrder []*Symbol
	ntOrder   []*Symbol
	start     string
	err       error
}

// NewGrammarBuilder creates a builder for a named grammar.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:    name,
		symbols: make(map[string]*Symbol),
	}
}

// Start overrides the default start symbol (the first rule's LHS).
func (b *GrammarBuilder) Start(name string) *GrammarBuilder {
	b.start = name
	return b
}

func (b *GrammarBuilder) nonterminal(name string) *Symbol {
	if sym, ok := b.symbols[name]; ok {
		if sym.IsTerminal() {
			b.err = fmt.Errorf("grammar symbol %q is used both as terminal and non-terminal", name)
		}
		return sym
	}
	sym := &Symbol{Name: name, Value: nonTermType + len(b.ntOrder)}
	b.symbols[name] = sym
	b.ntOrder = append(b.ntOrder, sym)
	return sym
}

func (b *GrammarBuilder) terminal(name string, tokval int) *Symbol {
	if tokval >= nonTermType || tokval <= EOFType || tokval == EpsilonType {
		b.err = fmt.Errorf("illegal token value %d for terminal %q", tokval, name)
	}
	if sym, ok := b.symbols[name]; ok {
		if !sym.IsTerminal() {
			b.err = fmt.Errorf("grammar symbol %q is used both as terminal and non-terminal", name)
		} else if sym.Value != tokval {
			b.err = fmt.Errorf("terminal %q re-declared with token value %d (was %d)",
				name, tokval, sym.Value)
		}
		return sym
	}
	sym := &Symbol{Name: name, Value: tokval}
	b.symbols[name] = sym
	b.termOrder = append(b.termOrder, sym)
	return sym
}

// LHS starts a new rule for a non-terminal.
func (b *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{gb: b, lhs: b.nonterminal(name)}
}

// Grammar validates the collected rules and returns the augmented grammar.
// Returns a *SymbolError if a non-terminal is referenced without having any
// production.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.rules) == 0 {
		return nil, fmt.Errorf("grammar %q has no rules", b.name)
	}
	produced := make(map[*Symbol]bool)
	for _, r := range b.rules {
		produced[r.LHS] = true
	}
	for _, sym := range b.ntOrder {
		if !produced[sym] {
			return nil, &SymbolError{Name: sym.Name}
		}
	}
	start := b.rules[0].LHS
	if b.start != "" {
		sym, ok := b.symbols[b.start]
		if !ok || sym.IsTerminal() {
			return nil, &SymbolError{Name: b.start}
		}
		start = sym
	}
	// augment with  S' ::= S  as rule 0
	primed := start.Name + "'"
	for b.symbols[primed] != nil {
		primed += "'"
	}
	s := &Symbol{Name: primed, Value: nonTermType + len(b.ntOrder)}
	g := &Grammar{
		Name:         b.name,
		terminals:    b.termOrder,
		nonterminals: append(b.ntOrder, s),
		symbols:      b.symbols,
	}
	g.symbols[primed] = s
	g.rules = append(g.rules, &Rule{Serial: 0, LHS: s, rhs: []*Symbol{start}})
	for i, r := range b.rules {
		r.Serial = i + 1
		g.rules = append(g.rules, r)
	}
	tracer().Debugf("grammar %q has %d rules, %d terminals, %d non-terminals",
		g.Name, len(g.rules), len(g.terminals), len(g.nonterminals))
	return g, nil
}

// RuleBuilder collects the right-hand side of one rule.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs *Symbol
	rhs []*Symbol
}

// N appends a non-terminal to the RHS.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.gb.nonterminal(name))
	return rb
}

// T appends a terminal with a token value to the RHS.
func (rb *RuleBuilder) T(name string, tokval int) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.gb.terminal(name, tokval))
	return rb
}

// End finishes the rule and hands it to the grammar builder.
func (rb *RuleBuilder) End() {
	rb.gb.rules = append(rb.gb.rules, &Rule{LHS: rb.lhs, rhs: rb.rhs})
}

// Epsilon finishes the rule as an epsilon-production.
func (rb *RuleBuilder) Epsilon() {
	rb.rhs = nil
	rb.End()
}
