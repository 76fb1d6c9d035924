package dfa

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// The running example from the Dragon Book: positions of (a|b)*abb are
// numbered 1–5 in reading order, the end-marker is position 6.
func TestTreeFollowpos(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.dfa")
	defer teardown()
	//
	tree, err := ParsePattern("(a|b)*abb")
	if err != nil {
		t.Fatalf("ParsePattern returned error: %v", err)
	}
	if tree.Positions() != 6 {
		t.Fatalf("expected 6 positions, got %d", tree.Positions())
	}
	want := map[int][]int{
		1: {1, 2, 3},
		2: {1, 2, 3},
		3: {4},
		4: {5},
		5: {6},
		6: {},
	}
	for pos, expected := range want {
		got := tree.Followpos(pos)
		if !equalInts(got, expected) {
			t.Errorf("followpos(%d) = %v, want %v", pos, got, expected)
		}
	}
}

func TestTreeNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.dfa")
	defer teardown()
	//
	cases := []struct {
		pattern  string
		nullable bool
	}{
		{"a*", true},
		{"a?", true},
		{"a+", false},
		{"a|b", false},
		{"a*b*", true},
	}
	for _, c := range cases {
		tree, err := ParsePattern(c.pattern)
		if err != nil {
			t.Fatalf("ParsePattern(%q) returned error: %v", c.pattern, err)
		}
		// The root concatenates the pattern with the end-marker, so the
		// pattern itself is the root's left child.
		if got := tree.root.left.nullable; got != c.nullable {
			t.Errorf("nullable(%q) = %v, want %v", c.pattern, got, c.nullable)
		}
	}
}

func TestTreeOperandUnderflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsival.dfa")
	defer teardown()
	//
	if _, err := ParsePattern("|a"); err == nil {
		t.Error("expected error for pattern starting with '|', got none")
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
