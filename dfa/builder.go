package dfa

// BuildDFA runs the subset construction over the followpos relation of an
// annotated syntax tree and returns the automaton for one token definition.
//
// The start state is firstpos(root). For an unmarked state S and each input
// symbol c occurring among S's positions, the successor is the union of
// followpos(p) over all p in S whose leaf symbol is c. States are
// canonicalized position sets; a set seen before maps to the id assigned on
// first discovery, so the result is deterministic by construction. A state
// is accepting iff it contains the end-marker position.
func BuildDFA(t *SyntaxTree, tag string) *DFA {
	d := &DFA{
		Tags:   []string{tag},
		Start:  0,
		Trans:  make(map[int]map[rune]int),
		Accept: make(map[int]string),
	}
	start := t.root.firstpos
	ids := map[string]int{start.Key(): 0} // canonical set key -> state id
	worklist := []*posSet{start}
	sets := []*posSet{start}
	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]
		from := ids[current.Key()]
		// group follow positions by the symbol of the source position
		successors := make(map[rune]*posSet)
		for _, p := range current.Values() {
			if p == t.endPos {
				continue
			}
			sym := t.leaves[p]
			if successors[sym] == nil {
				successors[sym] = newPosSet()
			}
			successors[sym].UnionInPlace(t.follow[p])
		}
		for sym, target := range successors {
			if target.Empty() {
				continue
			}
			id, ok := ids[target.Key()]
			if !ok {
				id = len(sets)
				ids[target.Key()] = id
				sets = append(sets, target)
				worklist = append(worklist, target)
			}
			if d.Trans[from] == nil {
				d.Trans[from] = make(map[rune]int)
			}
			d.Trans[from][sym] = id
		}
	}
	for i, set := range sets {
		if set.Contains(t.endPos) {
			d.Accept[i] = tag
		}
	}
	tracer().Debugf("DFA for %q has %d states, %d accepting", tag, len(sets), len(d.Accept))
	return d
}
