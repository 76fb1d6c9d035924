package dfa

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// DFA is a deterministic finite automaton over runes. States are dense
// integer ids starting at 0. The transition function is total under an
// implicit error state: a missing entry means the automaton dies on that
// input. Accepting states carry the tag of the token definition they accept
// for.
//
// A DFA is immutable once built.
type DFA struct {
	Tags   []string             // definition tags, in declaration order
	Start  int                  // start state
	Trans  map[int]map[rune]int // state -> input symbol -> state
	Accept map[int]string       // accepting state -> token tag
}

// StateCount returns the number of states.
func (d *DFA) StateCount() int {
	states := make(map[int]struct{})
	for from, row := range d.Trans {
		states[from] = struct{}{}
		for _, to := range row {
			states[to] = struct{}{}
		}
	}
	states[d.Start] = struct{}{}
	return len(states)
}

// Step advances the automaton by one input symbol. The second return value
// is false if no transition exists, i.e. the automaton would enter the
// implicit error state.
func (d *DFA) Step(state int, sym rune) (int, bool) {
	row, ok := d.Trans[state]
	if !ok {
		return 0, false
	}
	next, ok := row[sym]
	return next, ok
}

// AcceptTag returns the token tag of a state, if it is accepting.
func (d *DFA) AcceptTag(state int) (string, bool) {
	tag, ok := d.Accept[state]
	return tag, ok
}

// Alphabet returns the sorted input alphabet actually used by transitions.
func (d *DFA) Alphabet() []rune {
	seen := make(map[rune]struct{})
	for _, row := range d.Trans {
		for sym := range row {
			seen[sym] = struct{}{}
		}
	}
	alpha := make([]rune, 0, len(seen))
	for sym := range seen {
		alpha = append(alpha, sym)
	}
	sort.Slice(alpha, func(i, j int) bool { return alpha[i] < alpha[j] })
	return alpha
}

// sortedStates returns all state ids in ascending order.
func (d *DFA) sortedStates() []int {
	seen := make(map[int]struct{})
	seen[d.Start] = struct{}{}
	for from, row := range d.Trans {
		seen[from] = struct{}{}
		for _, to := range row {
			seen[to] = struct{}{}
		}
	}
	states := make([]int, 0, len(seen))
	for s := range seen {
		states = append(states, s)
	}
	sort.Ints(states)
	return states
}

// Dump writes a textual description of the automaton: state count, start
// state, accepting states, alphabet, and one transition per line. Input
// symbols are written Go-quoted, so runes like ',' or '\t' in the alphabet
// stay unambiguous. The format is stable and intended for artifact files.
func (d *DFA) Dump(w io.Writer) {
	states := d.sortedStates()
	fmt.Fprintf(w, "%d\n", len(states))
	fmt.Fprintf(w, "%d\n", d.Start)
	accepting := make([]string, 0, len(d.Accept))
	for _, s := range states {
		if tag, ok := d.Accept[s]; ok {
			accepting = append(accepting, fmt.Sprintf("%d=%s", s, tag))
		}
	}
	fmt.Fprintln(w, strings.Join(accepting, ","))
	var alpha []string
	for _, sym := range d.Alphabet() {
		alpha = append(alpha, fmt.Sprintf("%q", string(sym)))
	}
	fmt.Fprintln(w, strings.Join(alpha, " "))
	for _, from := range states {
		row := d.Trans[from]
		syms := make([]rune, 0, len(row))
		for sym := range row {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		for _, sym := range syms {
			fmt.Fprintf(w, "%d %q %d\n", from, string(sym), row[sym])
		}
	}
}

// GraphViz exports the automaton to the Graphviz Dot format.
func (d *DFA) GraphViz(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=circle, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range d.sortedStates() {
		if tag, ok := d.Accept[s]; ok {
			fmt.Fprintf(w, "s%03d [shape=doublecircle label=\"%d\\n%s\"]\n", s, s, tag)
		} else {
			fmt.Fprintf(w, "s%03d [label=\"%d\"]\n", s, s)
		}
	}
	for _, from := range d.sortedStates() {
		row := d.Trans[from]
		syms := make([]rune, 0, len(row))
		for sym := range row {
			syms = append(syms, sym)
		}
		sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
		for _, sym := range syms {
			fmt.Fprintf(w, "s%03d -> s%03d [label=%q]\n", from, row[sym], string(sym))
		}
	}
	io.WriteString(w, "}\n")
}
