package lr

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/parsival/parsival"
	"github.com/parsival/parsival/lr/iteratable"
	"github.com/parsival/parsival/lr/sparse"
)

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Actions for parser action tables. Reduce actions are encoded as the serial
// number of the rule to reduce (always > 0; rule 0 is the augmented start
// rule and reduces as Accept).
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// === Closure and Goto-Set Operations =======================================

// closure computes the closure of a single item.
func (ga *LRAnalysis) closure(i Item) *iteratable.Set {
	S := newItemSet()
	S.Add(i)
	return ga.closureSet(S)
}

// closureSet computes the closure of an item set: for every item with a
// non-terminal B after the dot, the start items of all of B's rules join the
// set, until nothing changes. The iteration sees items appended along the
// way, so a worklist is implicit in the set itself.
func (ga *LRAnalysis) closureSet(S *iteratable.Set) *iteratable.Set {
	C := S.Copy()
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		B := item.PeekSymbol()
		if B != nil && !B.IsTerminal() {
			R := ga.g.FindNonTermRules(B, true)
			if New := R.Difference(C); !New.Empty() {
				C.Union(New)
			}
		}
	}
	return C
}

// gotoSet advances the dot over symbol A for every fitting item of a closed
// set.
func (ga *LRAnalysis) gotoSet(closure *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := newItemSet()
	for _, x := range closure.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			ii := i.Advance()
			tracer().Debugf("goto(%s) -%s-> %s", i, A, ii)
			gotoset.Add(ii)
		}
	}
	return gotoset
}

func (ga *LRAnalysis) gotoSetClosure(S *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := ga.gotoSet(S, A)
	gclosure := ga.closureSet(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(S), A, itemSetString(gclosure))
	return gclosure
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     uint            // serial ID of this state
	items  *iteratable.Set // configuration items within this state
	Accept bool            // does this state contain the completed start rule?
}

// CFSM edge between 2 states, directed and labelled with a grammar symbol.
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

func (s *CFSMState) isErrorState() bool {
	return s.items.Size() == 0
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, x := range s.items.Values() {
		i := asItem(x)
		if i.rule.Serial == 0 && i.PeekSymbol() == nil {
			return true
		}
	}
	return false
}

// Items returns the configuration items of a state.
func (s *CFSMState) Items() []Item {
	values := s.items.Values()
	items := make([]Item, len(values))
	for k, x := range values {
		items[k] = asItem(x)
	}
	return items
}

// Dump logs the items of a state. Debugging helper.
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(int(c1.ID), int(c2.ID))
}

// CFSM is the characteristic finite state machine for an LR grammar, i.e.
// the LR(0) state diagram. It is constructed by a TableGenerator. Clients
// normally do not use it directly, but it is kept around for debugging and
// for exporting.
type CFSM struct {
	g       *Grammar
	states  *treeset.Set    // all the states
	edges   *arraylist.List // all the edges between states
	S0      *CFSMState      // start state
	cfsmIds uint            // serial IDs for CFSM states
}

func emptyCFSM(g *Grammar) *CFSM {
	c := &CFSM{g: g}
	c.states = treeset.NewWith(stateComparator)
	c.edges = arraylist.New()
	return c
}

// addState adds a state to the CFSM, unless an equal item set is present.
func (c *CFSM) addState(iset *iteratable.Set) *CFSMState {
	s := c.findStateByItems(iset)
	if s == nil {
		s = &CFSMState{ID: c.cfsmIds, items: iset}
		c.cfsmIds++
	}
	c.states.Add(s)
	return s
}

// findStateByItems finds a CFSM state by the contained item set. State
// identity is item-set equality, not insertion order.
func (c *CFSM) findStateByItems(iset *iteratable.Set) *CFSMState {
	it := c.states.Iterator()
	for it.Next() {
		s := it.Value().(*CFSMState)
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) {
	c.edges.Add(&cfsmEdge{from: s0, to: s1, label: sym})
}

func (c *CFSM) allEdges(s *CFSMState) []*cfsmEdge {
	it := c.edges.Iterator()
	r := make([]*cfsmEdge, 0, 2)
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			r = append(r, e)
		}
	}
	return r
}

// States returns all states of the CFSM in ID order.
func (c *CFSM) States() []*CFSMState {
	values := c.states.Values()
	states := make([]*CFSMState, len(values))
	for k, x := range values {
		states[k] = x.(*CFSMState)
	}
	return states
}

// StateCount returns the number of states.
func (c *CFSM) StateCount() int {
	return c.states.Size()
}

// === Conflicts ==============================================================

// Conflict describes one ACTION table cell with competing entries: a
// shift/reduce or reduce/reduce conflict at (state, terminal).
type Conflict struct {
	State    uint
	Terminal *Symbol
	Have     int32 // action already in the table
	Proposed int32 // action which competed for the cell
}

func (c Conflict) kind() string {
	if c.Have == ShiftAction || c.Proposed == ShiftAction {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict in state %d on terminal %s",
		c.kind(), c.State, c.Terminal.Name)
}

// ConflictError is the error returned for grammars which are not SLR(1). It
// lists every conflicting (state, terminal) pair found during ACTION table
// construction.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	descr := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		descr[i] = c.String()
	}
	return fmt.Sprintf("grammar is not SLR(1): %s", strings.Join(descr, "; "))
}

// === Table Generation =======================================================

// TableGenerator constructs LR parser tables. Clients create a Grammar G,
// then an LRAnalysis for G, and then a table generator.
// TableGenerator.CreateTables() constructs the CFSM and the parser tables
// for an SLR(1)-parser recognizing grammar G.
type TableGenerator struct {
	g           *Grammar
	ga          *LRAnalysis
	dfa         *CFSM
	gototable   *Table
	actiontable *Table
	conflicts   []Conflict
}

// NewTableGenerator creates a TableGenerator for a (previously analysed)
// grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	return &TableGenerator{
		g:  ga.Grammar(),
		ga: ga,
	}
}

// CFSM returns the characteristic finite state machine for the grammar,
// constructing it if necessary.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table. The tables have to be built by calling
// CreateTables() previously.
func (lrgen *TableGenerator) GotoTable() *Table {
	if lrgen.gototable == nil {
		tracer().Errorf("tables not yet initialized, call CreateTables() first")
	}
	return lrgen.gototable
}

// ActionTable returns the SLR(1) ACTION table. The tables have to be built
// by calling CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *Table {
	if lrgen.actiontable == nil {
		tracer().Errorf("tables not yet initialized, call CreateTables() first")
	}
	return lrgen.actiontable
}

// Conflicts returns the conflicts found by the last CreateTables() run.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return lrgen.conflicts
}

// CreateTables creates the necessary data structures for an SLR parser: the
// CFSM, the GOTO table, and the ACTION table. A grammar which is not SLR(1)
// is rejected with a *ConflictError; tables of a rejected grammar must not
// be used for parsing.
func (lrgen *TableGenerator) CreateTables() error {
	lrgen.dfa = lrgen.buildCFSM()
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable = lrgen.BuildSLR1ActionTable()
	if len(lrgen.conflicts) > 0 {
		return &ConflictError{Conflicts: lrgen.conflicts}
	}
	return nil
}

// buildCFSM constructs the characteristic finite state machine for the
// grammar: the canonical collection of LR(0) item sets, starting from the
// closure of the augmented start item, connected by goto-transitions.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	start, _ := StartItem(G.rules[0])
	closure0 := lrgen.ga.closure(start)
	cfsm.S0 = cfsm.addState(closure0)
	cfsm.S0.Dump()
	S := treeset.NewWith(stateComparator)
	S.Add(cfsm.S0)
	for S.Size() > 0 {
		s := S.Values()[0].(*CFSMState)
		S.Remove(s)
		G.EachSymbol(func(A *Symbol) interface{} {
			gotoset := lrgen.ga.gotoSetClosure(s.items, A)
			if gotoset.Empty() {
				return nil // no transition on A out of s
			}
			snew := cfsm.findStateByItems(gotoset)
			if snew == nil {
				snew = cfsm.addState(gotoset)
				S.Add(snew)
				if snew.containsCompletedStartRule() {
					snew.Accept = true
				}
			}
			cfsm.addEdge(s, snew, A)
			return nil
		})
	}
	tracer().Debugf("CFSM has %d states", cfsm.states.Size())
	return cfsm
}

// tokenRange finds the extent of token values over all grammar symbols; the
// sparse tables are allocated over this range. The end-of-input marker is
// always part of the range, since FOLLOW-driven reduce entries and the
// accept entry live in its column.
func (lrgen *TableGenerator) tokenRange() (parsival.TokType, parsival.TokType) {
	var maxtok parsival.TokType
	mintok := parsival.TokType(EOFType)
	lrgen.g.EachSymbol(func(A *Symbol) interface{} {
		if A.TokenType() > maxtok {
			maxtok = A.TokenType()
		} else if A.TokenType() < mintok {
			mintok = A.TokenType()
		}
		return nil
	})
	return mintok, maxtok
}

// BuildGotoTable builds the GOTO table. This is normally not called
// directly, but rather via CreateTables(). The GOTO table contains the
// state transitions for all grammar symbols; shift actions consult it for
// terminals, reduce actions for non-terminals.
func (lrgen *TableGenerator) BuildGotoTable() *Table {
	statescnt := lrgen.dfa.states.Size()
	mintok, maxtok := lrgen.tokenRange()
	extent := int(maxtok - mintok + 1)
	tracer().Debugf("GOTO table of size %d x %d", statescnt, extent)
	gototable := &Table{
		matrix: sparse.NewIntMatrix(statescnt, extent, sparse.DefaultNullValue),
		mincol: mintok,
	}
	states := lrgen.dfa.states.Iterator()
	for states.Next() {
		state := states.Value().(*CFSMState)
		for _, e := range lrgen.dfa.allEdges(state) {
			gototable.set(state.ID, e.label.TokenType(), int32(e.to.ID))
		}
	}
	return gototable
}

// BuildSLR1ActionTable constructs the SLR(1) ACTION table, using the
// FOLLOW sets of the grammar analysis as lookahead for reduce actions.
// This is normally not called directly, but rather via CreateTables().
//
// For every CFSM state we iterate over its items. An item with a terminal
// after the dot contributes a shift entry. A completed item contributes a
// reduce entry for every terminal in FOLLOW(LHS) — except for the completed
// augmented start rule, which contributes Accept at end-of-input.
//
// A cell which would receive two different actions is a conflict. The
// competing entry is detected before it is committed: the cell keeps its
// first action, the conflict is recorded, and CreateTables() turns the
// record into an error. Proposing the same action twice (e.g. the same
// shift via two items) is not a conflict.
func (lrgen *TableGenerator) BuildSLR1ActionTable() *Table {
	statescnt := lrgen.dfa.states.Size()
	mintok, maxtok := lrgen.tokenRange()
	extent := int(maxtok - mintok + 1)
	tracer().Debugf("ACTION table of size %d x %d", statescnt, extent)
	actions := &Table{
		matrix: sparse.NewIntMatrix(statescnt, extent, sparse.DefaultNullValue),
		mincol: mintok,
	}
	lrgen.conflicts = nil
	states := lrgen.dfa.states.Iterator()
	for states.Next() {
		state := states.Value().(*CFSMState)
		for _, x := range state.items.Values() {
			i := asItem(x)
			A := i.PeekSymbol()
			if A != nil && A.IsTerminal() { // shift entry
				lrgen.propose(actions, state, A, ShiftAction)
			}
			if A == nil { // completed item, reduce or accept entry
				if i.rule.Serial == 0 {
					eof := &Symbol{Name: "#eof", Value: EOFType}
					lrgen.propose(actions, state, eof, AcceptAction)
					continue
				}
				rule, serial := lrgen.g.matchesRHS(i.rule.LHS, i.Prefix())
				if serial < 0 {
					continue
				}
				lookaheads := lrgen.ga.Follow(rule.LHS).AppendTo(nil)
				for _, la := range lookaheads {
					term := lrgen.g.TerminalByValue(la)
					if term == nil {
						term = &Symbol{Name: "#eof", Value: EOFType}
					}
					lrgen.propose(actions, state, term, int32(serial))
				}
			}
		}
	}
	return actions
}

// propose writes an action into a table cell, unless the cell already holds
// a different action; then the competing write is rejected and recorded as
// a conflict.
func (lrgen *TableGenerator) propose(actions *Table, state *CFSMState, terminal *Symbol, action int32) {
	have := actions.Value(state.ID, terminal.TokenType())
	if have == actions.NullValue() {
		actions.add(state.ID, terminal.TokenType(), action)
		tracer().Debugf("ACTION(%d,%s) = %s", state.ID, terminal.Name, valstring(action, actions))
		return
	}
	if have == action {
		return // relax, identical proposal
	}
	lrgen.conflicts = append(lrgen.conflicts, Conflict{
		State:    state.ID,
		Terminal: terminal,
		Have:     have,
		Proposed: action,
	})
	tracer().Infof("%s: have %s, proposed %s", lrgen.conflicts[len(lrgen.conflicts)-1],
		valstring(have, actions), valstring(action, actions))
}

// === Tables =================================================================

// Table is a parser table: a sparse matrix of action resp. state entries,
// indexed by CFSM state and token value. Tables are built once by a
// TableGenerator and immutable thereafter.
type Table struct {
	matrix *sparse.IntMatrix
	mincol parsival.TokType // lowest token value => column offset
}

func (t *Table) add(i uint, tt parsival.TokType, val int32) {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.add() with index < 0: %d", j))
	}
	t.matrix.Add(int(i), int(j), val)
}

func (t *Table) set(i uint, tt parsival.TokType, val int32) {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.set() with index < 0: %d", j))
	}
	t.matrix.Set(int(i), int(j), val)
}

// NullValue returns the empty-cell marker of the table.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the entry at (state, token value), or NullValue.
func (t *Table) Value(i uint, tt parsival.TokType) int32 {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.Value() with index < 0: %d", j))
	}
	return t.matrix.Value(int(i), int(j))
}

// Values returns the pair of entries at (state, token value).
func (t *Table) Values(i uint, tt parsival.TokType) (int32, int32) {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("lr.Table.Values() with index < 0: %d", j))
	}
	return t.matrix.Values(int(i), int(j))
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == AcceptAction {
		return "<accept>"
	} else if v == ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("<reduce %d>", v)
}
