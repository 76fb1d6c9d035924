package dfa

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
)

// MergeOption configures the merge of per-definition automata.
type MergeOption func(*merger)

// WithTieBreak installs a policy for resolving the tag of a merged state on
// which several definitions accept simultaneously. The candidate tags are
// passed in declaration order. The default policy picks the first, i.e. the
// earliest-declared definition wins.
func WithTieBreak(pick func(tags []string) string) MergeOption {
	return func(m *merger) {
		m.tieBreak = pick
	}
}

// member identifies a state of one source automaton within a merged state.
type member struct {
	Def   int // index of the source automaton, declaration order
	State int // state id within that automaton
}

// memberSet is a canonicalized set of members, the identity of one merged
// state during subset construction.
type memberSet struct {
	items []member
}

func (s *memberSet) add(m member) {
	at := sort.Search(len(s.items), func(i int) bool {
		x := s.items[i]
		return x.Def > m.Def || (x.Def == m.Def && x.State >= m.State)
	})
	if at < len(s.items) && s.items[at] == m {
		return
	}
	s.items = append(s.items, member{})
	copy(s.items[at+1:], s.items[at:])
	s.items[at] = m
}

func (s *memberSet) key() string {
	return fmt.Sprintf("%x", structhash.Md5(struct{ M []member }{s.items}, 1))
}

type merger struct {
	dfas     []*DFA
	tieBreak func(tags []string) string
}

// Merge composes per-definition automata into one automaton recognizing the
// union language. The composite starts with an ε-transition into every
// input automaton's start state; subset construction over the composite
// state space then yields a deterministic result. A merged state is
// accepting iff any member is, and its tag is resolved over the accepting
// members' tags, by default in favor of the earliest-declared definition.
//
// The order of dfas is the declaration order and is significant for tag
// resolution only; the recognized language is order-independent.
func Merge(dfas []*DFA, opts ...MergeOption) *DFA {
	m := &merger{dfas: dfas}
	for _, opt := range opts {
		opt(m)
	}
	if m.tieBreak == nil {
		m.tieBreak = func(tags []string) string { return tags[0] }
	}
	merged := &DFA{
		Start:  0,
		Trans:  make(map[int]map[rune]int),
		Accept: make(map[int]string),
	}
	for _, d := range dfas {
		merged.Tags = append(merged.Tags, d.Tags...)
	}
	// ε-closure of the synthetic start state: every automaton's start
	start := &memberSet{}
	for i, d := range dfas {
		start.add(member{Def: i, State: d.Start})
	}
	ids := map[string]int{start.key(): 0}
	sets := []*memberSet{start}
	worklist := []*memberSet{start}
	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]
		from := ids[current.key()]
		successors := make(map[rune]*memberSet)
		for _, mem := range current.items {
			for sym, to := range dfas[mem.Def].Trans[mem.State] {
				if successors[sym] == nil {
					successors[sym] = &memberSet{}
				}
				successors[sym].add(member{Def: mem.Def, State: to})
			}
		}
		for sym, target := range successors {
			id, ok := ids[target.key()]
			if !ok {
				id = len(sets)
				ids[target.key()] = id
				sets = append(sets, target)
				worklist = append(worklist, target)
			}
			if merged.Trans[from] == nil {
				merged.Trans[from] = make(map[rune]int)
			}
			merged.Trans[from][sym] = id
		}
	}
	for i, set := range sets {
		var tags []string
		for _, mem := range set.items { // members are sorted by Def
			if tag, ok := m.dfas[mem.Def].Accept[mem.State]; ok {
				tags = append(tags, tag)
			}
		}
		if len(tags) > 0 {
			merged.Accept[i] = m.tieBreak(tags)
		}
	}
	tracer().Debugf("merged %d automata into %d states", len(dfas), len(sets))
	return merged
}

// CompileDefs is a convenience running the complete lexer-side pipeline for
// a list of named definitions: each pattern is parsed, annotated, built into
// a DFA, and the automata are merged in declaration order.
func CompileDefs(defs []Def, opts ...MergeOption) (*DFA, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("no token definitions given")
	}
	automata := make([]*DFA, len(defs))
	for i, def := range defs {
		tree, err := ParsePattern(def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("definition %q: %w", def.Tag, err)
		}
		automata[i] = BuildDFA(tree, def.Tag)
	}
	return Merge(automata, opts...), nil
}

// Def is a named token definition: a tag and the pattern recognizing it.
// Definition order is declaration order and decides tag priority on merge.
type Def struct {
	Tag     string
	Pattern string
}
