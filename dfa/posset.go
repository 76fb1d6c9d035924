package dfa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
)

// posSet is a set of leaf positions, kept as a sorted slice. Position sets
// are the currency of the syntax-tree construction (firstpos, lastpos,
// followpos) and of the subset construction, where a canonicalized set is
// the identity of a DFA state.
type posSet struct {
	items []int
}

func newPosSet(positions ...int) *posSet {
	s := &posSet{}
	for _, p := range positions {
		s.Add(p)
	}
	return s
}

// Add inserts a position, keeping the slice sorted.
func (s *posSet) Add(p int) {
	at := sort.SearchInts(s.items, p)
	if at < len(s.items) && s.items[at] == p {
		return
	}
	s.items = append(s.items, 0)
	copy(s.items[at+1:], s.items[at:])
	s.items[at] = p
}

// Union returns a new set containing the positions of s and other.
func (s *posSet) Union(other *posSet) *posSet {
	u := &posSet{items: append([]int(nil), s.items...)}
	if other != nil {
		for _, p := range other.items {
			u.Add(p)
		}
	}
	return u
}

// UnionInPlace adds all positions of other to s.
func (s *posSet) UnionInPlace(other *posSet) {
	if other == nil {
		return
	}
	for _, p := range other.items {
		s.Add(p)
	}
}

func (s *posSet) Contains(p int) bool {
	at := sort.SearchInts(s.items, p)
	return at < len(s.items) && s.items[at] == p
}

func (s *posSet) Size() int {
	return len(s.items)
}

func (s *posSet) Empty() bool {
	return len(s.items) == 0
}

// Values returns the positions in ascending order. The returned slice is
// shared with the set and must not be modified.
func (s *posSet) Values() []int {
	return s.items
}

func (s *posSet) Equals(other *posSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i, p := range s.items {
		if other.items[i] != p {
			return false
		}
	}
	return true
}

// Key returns a canonical hash key for the set. Equal sets hash to equal
// keys, which lets the subset construction index discovered states without
// comparing live object graphs.
func (s *posSet) Key() string {
	return fmt.Sprintf("%x", structhash.Md5(struct{ P []int }{s.items}, 1))
}

func (s *posSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, p := range s.items {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%d", p)
	}
	b.WriteString("}")
	return b.String()
}
