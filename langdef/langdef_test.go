package langdef

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/parsival/parsival"
	"github.com/parsival/parsival/lr"
)

const tokenFile = `
# lexical definitions
for:  for
if:   if
else: else
id:   [a-z][a-z]*
`

const grammarFile = `
# statements
S ::= for E | if E else E | id
E ::= id
`

func TestTokenDefs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.langdef")
	defer teardown()
	//
	defs, err := TokenDefs(strings.NewReader(tokenFile))
	if err != nil {
		t.Fatalf("TokenDefs returned error: %v", err)
	}
	if len(defs) != 4 {
		t.Fatalf("expected 4 definitions, got %d", len(defs))
	}
	if defs[0].Tag != "for" || defs[0].Pattern != "for" {
		t.Errorf("first definition = %v, want for/for", defs[0])
	}
	if defs[3].Tag != "id" || defs[3].Pattern != "[a-z][a-z]*" {
		t.Errorf("last definition = %v", defs[3])
	}
}

func TestTokenDefsErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.langdef")
	defer teardown()
	//
	cases := []string{
		"id [a-z]",          // no colon
		": [a-z]",           // no tag
		"id:",               // no pattern
		"id: a\nid: b",      // duplicate tag
	}
	for _, input := range cases {
		if _, err := TokenDefs(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for input %q, got none", input)
		} else if _, ok := err.(*LineError); !ok {
			t.Errorf("expected *LineError for input %q, got %T", input, err)
		}
	}
}

func TestGrammarFromFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.langdef")
	defer teardown()
	//
	types := map[string]parsival.TokType{"for": 1, "if": 2, "else": 3, "id": 4}
	g, err := Grammar(strings.NewReader(grammarFile), Types(types), Name("Stmt"))
	if err != nil {
		t.Fatalf("Grammar returned error: %v", err)
	}
	if g.Name != "Stmt" {
		t.Errorf("grammar name = %q, want Stmt", g.Name)
	}
	if g.Size() != 5 { // 4 productions + augmentation
		t.Errorf("expected 5 rules, got %d", g.Size())
	}
	S := g.SymbolByName("S")
	if S == nil || S.IsTerminal() {
		t.Fatalf("S should be a non-terminal")
	}
	if g.StartSymbol().Name != "S'" {
		t.Errorf("start symbol = %q, want S'", g.StartSymbol().Name)
	}
	id := g.SymbolByName("id")
	if id == nil || !id.IsTerminal() || id.TokenType() != 4 {
		t.Errorf("terminal id should carry token value 4")
	}
}

func TestGrammarEpsilonAlternative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.langdef")
	defer teardown()
	//
	g, err := Grammar(strings.NewReader("S ::= a S | ε"))
	if err != nil {
		t.Fatalf("Grammar returned error: %v", err)
	}
	eps := 0
	g.EachRule(func(r *lr.Rule) interface{} {
		if r.IsEpsilon() {
			eps++
		}
		return nil
	})
	if eps != 1 {
		t.Errorf("expected 1 epsilon production, got %d", eps)
	}
}

func TestGrammarSingleRuneTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.langdef")
	defer teardown()
	//
	g, err := Grammar(strings.NewReader("E ::= E + n | n"))
	if err != nil {
		t.Fatalf("Grammar returned error: %v", err)
	}
	plus := g.SymbolByName("+")
	if plus == nil || plus.TokenType() != '+' {
		t.Errorf("single-rune terminal should carry its rune value")
	}
	n := g.SymbolByName("n")
	if n == nil || n.TokenType() != 'n' {
		t.Errorf("terminal n should carry its rune value")
	}
}

func TestGrammarTerminalValuesDisjoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.langdef")
	defer teardown()
	//
	// '§' is U+00A7 = 167, above the default numbering base of 128, and the
	// client pins kw above it. Auto-numbered terminals must clear both.
	types := map[string]parsival.TokType{"kw": 200}
	g, err := Grammar(strings.NewReader("S ::= § num | kw num"), Types(types))
	if err != nil {
		t.Fatalf("Grammar returned error: %v", err)
	}
	section := g.SymbolByName("§")
	if section == nil || section.TokenType() != '§' {
		t.Fatalf("terminal § should carry its rune value")
	}
	num := g.SymbolByName("num")
	if num == nil || num.TokenType() != 201 {
		t.Errorf("auto-numbered terminal should get 201, got %d", num.TokenType())
	}
	seen := map[parsival.TokType]string{}
	g.EachTerminal(func(sym *lr.Symbol) interface{} {
		if other, ok := seen[sym.TokenType()]; ok {
			t.Errorf("terminals %q and %q share token value %d", other, sym.Name, sym.TokenType())
		}
		seen[sym.TokenType()] = sym.Name
		return nil
	})
}

func TestGrammarStartOverride(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.langdef")
	defer teardown()
	//
	input := "A ::= a B\nB ::= b"
	g, err := Grammar(strings.NewReader(input), Start("B"))
	if err != nil {
		t.Fatalf("Grammar returned error: %v", err)
	}
	if g.StartSymbol().Name != "B'" {
		t.Errorf("start symbol = %q, want B'", g.StartSymbol().Name)
	}
	if _, err := Grammar(strings.NewReader(input), Start("X")); err == nil {
		t.Error("expected error for unknown start symbol")
	}
}

func TestGrammarMalformedLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.langdef")
	defer teardown()
	//
	if _, err := Grammar(strings.NewReader("S = a b")); err == nil {
		t.Error("expected error for line without '::='")
	}
	if _, err := Grammar(strings.NewReader("S T ::= a")); err == nil {
		t.Error("expected error for multi-symbol left-hand side")
	}
}
