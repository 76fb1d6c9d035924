package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// The classic LL/LR textbook expression grammar:
//
//	E  ::= T E2
//	E2 ::= + T E2 | ε
//	T  ::= F T2
//	T2 ::= * F T2 | ε
//	F  ::= ( E ) | id
func exprGrammar(t *testing.T) *Grammar {
	t.Helper()
	b := NewGrammarBuilder("Expr")
	b.LHS("E").N("T").N("E2").End()
	b.LHS("E2").T("+", '+').N("T").N("E2").End()
	b.LHS("E2").Epsilon()
	b.LHS("T").N("F").N("T2").End()
	b.LHS("T2").T("*", '*').N("F").N("T2").End()
	b.LHS("T2").Epsilon()
	b.LHS("F").T("(", '(').N("E").T(")", ')').End()
	b.LHS("F").T("id", 4).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	return g
}

func checkSet(t *testing.T, what string, got *SymSet, want ...int) {
	t.Helper()
	if !got.Equals(NewSymSet(want...)) {
		t.Errorf("%s = %v, want %v", what, got, NewSymSet(want...))
	}
}

func TestAnalysisFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	ga := Analysis(g)
	sym := g.SymbolByName
	checkSet(t, "FIRST(E)", ga.First(sym("E")), '(', 4)
	checkSet(t, "FIRST(T)", ga.First(sym("T")), '(', 4)
	checkSet(t, "FIRST(F)", ga.First(sym("F")), '(', 4)
	checkSet(t, "FIRST(E2)", ga.First(sym("E2")), '+', EpsilonType)
	checkSet(t, "FIRST(T2)", ga.First(sym("T2")), '*', EpsilonType)
	if !ga.DerivesEpsilon(sym("E2")) || ga.DerivesEpsilon(sym("E")) {
		t.Errorf("epsilon-derivation misclassified")
	}
}

func TestAnalysisFirstOfTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	ga := Analysis(g)
	checkSet(t, "FIRST(id)", ga.First(g.SymbolByName("id")), 4)
}

func TestAnalysisFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	ga := Analysis(g)
	sym := g.SymbolByName
	checkSet(t, "FOLLOW(E)", ga.Follow(sym("E")), EOFType, ')')
	checkSet(t, "FOLLOW(E2)", ga.Follow(sym("E2")), EOFType, ')')
	checkSet(t, "FOLLOW(T)", ga.Follow(sym("T")), EOFType, '+', ')')
	checkSet(t, "FOLLOW(T2)", ga.Follow(sym("T2")), EOFType, '+', ')')
	checkSet(t, "FOLLOW(F)", ga.Follow(sym("F")), EOFType, '+', '*', ')')
	checkSet(t, "FOLLOW(S')", ga.Follow(g.StartSymbol()), EOFType)
}

// Analysing the same grammar twice must give identical sets; the fixed-point
// iteration has a unique result.
func TestAnalysisIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.lr")
	defer teardown()
	//
	g := exprGrammar(t)
	ga1 := Analysis(g)
	ga2 := Analysis(g)
	g.EachNonTerminal(func(A *Symbol) interface{} {
		if !ga1.First(A).Equals(ga2.First(A)) {
			t.Errorf("FIRST(%s) differs between runs", A.Name)
		}
		if !ga1.Follow(A).Equals(ga2.Follow(A)) {
			t.Errorf("FOLLOW(%s) differs between runs", A.Name)
		}
		return nil
	})
}
