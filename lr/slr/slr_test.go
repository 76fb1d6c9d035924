package slr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/parsival/parsival"
	"github.com/parsival/parsival/dfa"
	"github.com/parsival/parsival/lr"
	"github.com/parsival/parsival/scanner"
)

// A small statement grammar over keyword, identifier and punctuation tokens:
//
//	S ::= for E | if E else E | id
//	E ::= id
func statementGrammar(t *testing.T) *lr.Grammar {
	t.Helper()
	b := lr.NewGrammarBuilder("Stmt")
	b.LHS("S").T("for", 1).N("E").End()
	b.LHS("S").T("if", 2).N("E").T("else", 3).N("E").End()
	b.LHS("S").T("id", 4).End()
	b.LHS("E").T("id", 4).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar builder returned error: %v", err)
	}
	return g
}

func statementTokenizer(t *testing.T, input string) *scanner.DFATokenizer {
	t.Helper()
	auto, err := dfa.CompileDefs([]dfa.Def{
		{Tag: "for", Pattern: "for"},
		{Tag: "if", Pattern: "if"},
		{Tag: "else", Pattern: "else"},
		{Tag: "id", Pattern: "[a-z][a-z]*"},
		{Tag: "ws", Pattern: "\\ \\ *"},
	})
	if err != nil {
		t.Fatalf("CompileDefs returned error: %v", err)
	}
	return scanner.NewDFATokenizer(auto, input, scanner.SkipTags("ws"))
}

func parseInput(t *testing.T, input string) (*Parser, bool, error) {
	t.Helper()
	g := statementGrammar(t)
	lrgen := lr.NewTableGenerator(lr.Analysis(g))
	if err := lrgen.CreateTables(); err != nil {
		t.Fatalf("CreateTables returned error: %v", err)
	}
	p := NewParser(g, lrgen.GotoTable(), lrgen.ActionTable())
	accepted, err := p.Parse(lrgen.CFSM().S0, statementTokenizer(t, input))
	return p, accepted, err
}

func TestParseAccept(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.lr")
	defer teardown()
	//
	for _, input := range []string{"for x", "if x else y", "x"} {
		_, accepted, err := parseInput(t, input)
		if err != nil {
			t.Errorf("parser returned error for %q: %v", input, err)
		}
		if !accepted {
			t.Errorf("parser did not accept input %q", input)
		}
	}
}

func TestParseSymbolTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.lr")
	defer teardown()
	//
	p, accepted, err := parseInput(t, "for x")
	if err != nil || !accepted {
		t.Fatalf("parser did not accept input: %v", err)
	}
	entries := p.SymbolTable()
	want := []Entry{
		{Index: 1, Lexeme: "for", Tag: "for"},
		{Index: 2, Lexeme: "x", Tag: "id"},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d symbol table entries, got %d", len(want), len(entries))
	}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("entry %d = %v, want %v", i, entries[i], w)
		}
	}
}

func TestParseRejectAtEndOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.lr")
	defer teardown()
	//
	// "if x" is a proper prefix of a sentence; the parser must reject it
	// when the else-branch is missing at end of input
	_, accepted, err := parseInput(t, "if x")
	if accepted {
		t.Fatal("parser accepted incomplete input")
	}
	uerr, ok := err.(*UnexpectedTokenError)
	if !ok {
		t.Fatalf("expected *UnexpectedTokenError, got %T", err)
	}
	if uerr.Token.TokType() != parsival.EOF {
		t.Errorf("expected the offending token to be EOF, got %v", uerr.Token.TokType())
	}
}

func TestParseRejectUnexpectedToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.lr")
	defer teardown()
	//
	_, accepted, err := parseInput(t, "else x")
	if accepted {
		t.Fatal("parser accepted invalid input")
	}
	uerr, ok := err.(*UnexpectedTokenError)
	if !ok {
		t.Fatalf("expected *UnexpectedTokenError, got %T", err)
	}
	if uerr.Token.Lexeme() != "else" {
		t.Errorf("expected the offending token to be else, got %q", uerr.Token.Lexeme())
	}
}

func TestParseSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.lr")
	defer teardown()
	//
	// after accepting, the stack below the start symbol carries the full
	// input span; verify indirectly via a fresh parse of a longer input
	p, accepted, err := parseInput(t, "if foo else bar")
	if err != nil || !accepted {
		t.Fatalf("parser did not accept input: %v", err)
	}
	entries := p.SymbolTable()
	if len(entries) != 4 {
		t.Fatalf("expected 4 symbol table entries, got %d", len(entries))
	}
	if entries[3].Lexeme != "bar" || entries[3].Tag != "id" {
		t.Errorf("last entry = %v, want bar/id", entries[3])
	}
}
