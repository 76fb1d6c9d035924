package lexmach

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"

	"github.com/parsival/parsival/scanner"
)

var inputStrings = []string{
	"1",
	"1+12",
	"(1)",
	"if 2 = 2",
	"for for",
}

var tokenCounts = []int{1, 3, 3, 4, 2}

func TestLexmachAdapter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.scanner")
	defer teardown()
	//
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	adapter, err := NewAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := adapter.Scanner(input)
		if err != nil {
			t.Fatal(err)
		}
		count := 0
		for token := sc.NextToken(); token.TokType() != scanner.EOF; token = sc.NextToken() {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLexmachTokenSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.scanner")
	defer teardown()
	//
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	adapter, err := NewAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := adapter.Scanner("if (1+2)")
	if err != nil {
		t.Fatal(err)
	}
	expected := []struct {
		tokval int
		lexeme string
	}{
		{tokenIds["if"], "if"},
		{tokenIds["("], "("},
		{tokenIds["NUM"], "1"},
		{tokenIds["+"], "+"},
		{tokenIds["NUM"], "2"},
		{tokenIds[")"], ")"},
	}
	for _, exp := range expected {
		token := sc.NextToken()
		if int(token.TokType()) != exp.tokval || token.Lexeme() != exp.lexeme {
			t.Errorf("expected token %d/%q, got %d/%q", exp.tokval, exp.lexeme,
				token.TokType(), token.Lexeme())
		}
	}
	if token := sc.NextToken(); token.TokType() != scanner.EOF {
		t.Errorf("expected EOF after the last token, got %d/%q", token.TokType(), token.Lexeme())
	}
}

var literals []string       // the tokens representing literal strings
var keywords []string       // the keyword tokens
var tokenIds map[string]int // a map from the token names to their int ids

func initTokens() {
	literals = []string{
		"(",
		")",
		"=",
		"+",
	}
	keywords = []string{
		"if",
		"for",
	}
	tokenIds = map[string]int{
		"NUM": 4,
	}
	next := 10
	for _, tok := range append(append([]string{}, keywords...), literals...) {
		tokenIds[tok] = next
		next++
	}
}
