package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a", 1).End()
	b.LHS("A").T("b", 2).End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	if g.Size() != 4 { // 3 user rules + augmentation
		t.Errorf("expected 4 rules, got %d", g.Size())
	}
	r0 := g.Rule(0)
	if r0.LHS.Name != "S'" {
		t.Errorf("rule 0 should derive from the augmented start symbol, got %q", r0.LHS.Name)
	}
	if len(r0.RHS()) != 1 || r0.RHS()[0].Name != "S" {
		t.Errorf("rule 0 should be S' ::= S, got %v", r0)
	}
	if g.StartSymbol() != r0.LHS {
		t.Errorf("start symbol should be the augmented symbol")
	}
}

func TestGrammarSymbolRoles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("a", 1).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	a := g.SymbolByName("a")
	if a == nil || !a.IsTerminal() {
		t.Errorf("symbol a should be a terminal")
	}
	if a.TokenType() != 1 {
		t.Errorf("terminal a should carry token value 1, got %d", a.TokenType())
	}
	S := g.SymbolByName("S")
	if S == nil || S.IsTerminal() {
		t.Errorf("symbol S should be a non-terminal")
	}
	if g.TerminalByValue(1) != a {
		t.Errorf("TerminalByValue(1) should return a")
	}
}

func TestGrammarBuilderMisuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.lr")
	defer teardown()
	//
	// a name may not denote both a terminal and a non-terminal
	b := NewGrammarBuilder("G")
	b.LHS("S").T("x", 1).End()
	b.LHS("x").T("y", 2).End()
	if _, err := b.Grammar(); err == nil {
		t.Error("expected error for symbol used as terminal and non-terminal")
	}
	//
	// epsilon is reserved and may not be used as a token value
	b = NewGrammarBuilder("G")
	b.LHS("S").T("e", EpsilonType).End()
	if _, err := b.Grammar(); err == nil {
		t.Error("expected error for terminal with reserved token value")
	}
	//
	// every non-terminal needs at least one production
	b = NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	if _, err := b.Grammar(); err == nil {
		t.Error("expected error for unproduced non-terminal")
	}
}

func TestGrammarRuleFinding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	b.LHS("A").T("a", 1).End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	A := g.SymbolByName("A")
	withEps := g.FindNonTermRules(A, true)
	if withEps.Size() != 2 {
		t.Errorf("expected 2 start items for A, got %d", withEps.Size())
	}
	withoutEps := g.FindNonTermRules(A, false)
	if withoutEps.Size() != 1 {
		t.Errorf("expected 1 non-epsilon start item for A, got %d", withoutEps.Size())
	}
}
