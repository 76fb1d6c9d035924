package lr

import (
	"fmt"
	"sort"
	"strings"
)

// --- Token sets -------------------------------------------------------------

// SymSet is a set of token values, kept as a sorted slice. FIRST and FOLLOW
// sets are SymSets; EpsilonType marks the empty string, EOFType the end of
// input.
type SymSet struct {
	items []int
}

// NewSymSet creates a set from initial values.
func NewSymSet(values ...int) *SymSet {
	s := &SymSet{}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts a value and reports whether the set changed.
func (s *SymSet) Add(v int) bool {
	at := sort.SearchInts(s.items, v)
	if at < len(s.items) && s.items[at] == v {
		return false
	}
	s.items = append(s.items, 0)
	copy(s.items[at+1:], s.items[at:])
	s.items[at] = v
	return true
}

// AddAll inserts all values of other, except the listed ones. It reports
// whether the set changed.
func (s *SymSet) AddAll(other *SymSet, except ...int) bool {
	changed := false
	for _, v := range other.items {
		skip := false
		for _, x := range except {
			if v == x {
				skip = true
				break
			}
		}
		if !skip && s.Add(v) {
			changed = true
		}
	}
	return changed
}

// Contains tells whether v is in the set.
func (s *SymSet) Contains(v int) bool {
	at := sort.SearchInts(s.items, v)
	return at < len(s.items) && s.items[at] == v
}

// Size returns the number of values.
func (s *SymSet) Size() int {
	return len(s.items)
}

// AppendTo appends the values in ascending order to buf.
func (s *SymSet) AppendTo(buf []int) []int {
	return append(buf, s.items...)
}

// Clone returns an independent copy of the set.
func (s *SymSet) Clone() *SymSet {
	return &SymSet{items: append([]int(nil), s.items...)}
}

// Equals compares two sets for equal content.
func (s *SymSet) Equals(other *SymSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i, v := range s.items {
		if other.items[i] != v {
			return false
		}
	}
	return true
}

func (s *SymSet) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, v := range s.items {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteString("]")
	return b.String()
}

// --- Grammar analysis -------------------------------------------------------

// LRAnalysis is the static analysis of a grammar: FIRST and FOLLOW sets for
// all non-terminals, computed to a fixed point. The sets are immutable once
// the analysis exists; they are the read-only input to table generation.
type LRAnalysis struct {
	g      *Grammar
	first  map[*Symbol]*SymSet
	follow map[*Symbol]*SymSet
}

// Analysis analyses a grammar, computing FIRST and FOLLOW for every
// non-terminal.
func Analysis(g *Grammar) *LRAnalysis {
	ga := &LRAnalysis{g: g}
	ga.first = ga.computeFirst()
	ga.follow = ga.computeFollow()
	return ga
}

// Grammar returns the grammar under analysis.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// First returns FIRST(A). For a terminal this is the terminal's own token
// value; for non-terminals the set may contain EpsilonType.
func (ga *LRAnalysis) First(sym *Symbol) *SymSet {
	if sym.IsTerminal() {
		return NewSymSet(sym.Value)
	}
	return ga.first[sym]
}

// Follow returns FOLLOW(A) for a non-terminal. FOLLOW of the start symbol
// always contains EOFType.
func (ga *LRAnalysis) Follow(sym *Symbol) *SymSet {
	return ga.follow[sym]
}

// DerivesEpsilon is true if a symbol can derive the empty string.
func (ga *LRAnalysis) DerivesEpsilon(sym *Symbol) bool {
	if sym.IsTerminal() {
		return false
	}
	return ga.first[sym].Contains(EpsilonType)
}

// firstOfSeq computes FIRST of a symbol sequence under a given snapshot of
// FIRST sets: walk the sequence left to right, accumulating FIRST of each
// symbol until one is not nullable; an exhausted walk contributes the
// epsilon marker.
func (ga *LRAnalysis) firstOfSeq(first map[*Symbol]*SymSet, syms []*Symbol) *SymSet {
	result := NewSymSet()
	for _, sym := range syms {
		if sym.IsTerminal() {
			result.Add(sym.Value)
			return result
		}
		result.AddAll(first[sym], EpsilonType)
		if !first[sym].Contains(EpsilonType) {
			return result
		}
	}
	result.Add(EpsilonType)
	return result
}

// computeFirst iterates the FIRST equations to a fixed point. Every pass
// reads only the previous pass's snapshot and writes a fresh one, which is
// swapped in at the end of the pass; half-updated state is never observable.
func (ga *LRAnalysis) computeFirst() map[*Symbol]*SymSet {
	first := make(map[*Symbol]*SymSet)
	ga.g.EachNonTerminal(func(A *Symbol) interface{} {
		first[A] = NewSymSet()
		return nil
	})
	for pass := 1; ; pass++ {
		next := cloneSets(first)
		for _, r := range ga.g.rules {
			if r.IsEpsilon() {
				next[r.LHS].Add(EpsilonType)
				continue
			}
			next[r.LHS].AddAll(ga.firstOfSeq(first, r.rhs))
		}
		if setsEqual(next, first) {
			tracer().Debugf("FIRST sets stable after %d passes", pass)
			return next
		}
		first = next
	}
}

// computeFollow iterates the FOLLOW equations to a fixed point, using the
// final FIRST sets. Same snapshot discipline as computeFirst.
func (ga *LRAnalysis) computeFollow() map[*Symbol]*SymSet {
	follow := make(map[*Symbol]*SymSet)
	ga.g.EachNonTerminal(func(A *Symbol) interface{} {
		follow[A] = NewSymSet()
		return nil
	})
	follow[ga.g.StartSymbol()].Add(EOFType)
	for pass := 1; ; pass++ {
		next := cloneSets(follow)
		for _, r := range ga.g.rules {
			for i, B := range r.rhs {
				if B.IsTerminal() {
					continue
				}
				beta := r.rhs[i+1:]
				firstBeta := ga.firstOfSeq(ga.first, beta)
				next[B].AddAll(firstBeta, EpsilonType)
				if firstBeta.Contains(EpsilonType) {
					next[B].AddAll(follow[r.LHS])
				}
			}
		}
		if setsEqual(next, follow) {
			tracer().Debugf("FOLLOW sets stable after %d passes", pass)
			return next
		}
		follow = next
	}
}

func cloneSets(m map[*Symbol]*SymSet) map[*Symbol]*SymSet {
	c := make(map[*Symbol]*SymSet, len(m))
	for sym, set := range m {
		c[sym] = set.Clone()
	}
	return c
}

func setsEqual(a, b map[*Symbol]*SymSet) bool {
	if len(a) != len(b) {
		return false
	}
	for sym, set := range a {
		other, ok := b[sym]
		if !ok || !set.Equals(other) {
			return false
		}
	}
	return true
}
