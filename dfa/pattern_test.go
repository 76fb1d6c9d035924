package dfa

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func postfixString(toks []patToken) string {
	runes := make([]rune, len(toks))
	for i, t := range toks {
		runes[i] = t.sym
	}
	return string(runes)
}

func TestPatternPostfix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.dfa")
	defer teardown()
	//
	cases := []struct {
		pattern string
		want    string
	}{
		{"a", "a#."},
		{"ab", "ab.#."},
		{"a|b", "ab|#."},
		{"(a|b)*abb", "ab|*a.b.b.#."},
		{"a+", "a+#."},
		{"ab?", "ab?.#."},
		{"[a-c]", "ab|c|#."},
		{"[a-c]x", "ab|c|x.#."},
		{"a | b", "ab|#."}, // whitespace between tokens is ignored
	}
	for _, c := range cases {
		post, err := postfix(c.pattern)
		if err != nil {
			t.Errorf("postfix(%q) returned error: %v", c.pattern, err)
			continue
		}
		if got := postfixString(post); got != c.want {
			t.Errorf("postfix(%q) = %q, want %q", c.pattern, got, c.want)
		}
	}
}

func TestPatternEscapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.dfa")
	defer teardown()
	//
	toks, err := tokenize(`\*\|a`)
	if err != nil {
		t.Fatalf("tokenize returned error: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(toks))
	}
	for _, tok := range toks {
		if tok.kind != literalTok {
			t.Errorf("escaped token %q should be a literal", tok.sym)
		}
	}
}

func TestPatternErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.dfa")
	defer teardown()
	//
	bad := []string{
		"(a|b",
		"a)b",
		"[a-z",
		"[]",
		"[z-a]",
		`a\`,
	}
	for _, pattern := range bad {
		if _, err := postfix(pattern); err == nil {
			t.Errorf("expected error for pattern %q, got none", pattern)
		} else if _, ok := err.(*PatternError); !ok {
			t.Errorf("expected *PatternError for pattern %q, got %T", pattern, err)
		}
	}
}
