/*
Package iteratable implements an iteratable set container.

Set is a special purpose set type, suitable mainly for implementing
fixed-point algorithms around parsers: closures, goto-sets, canonical
collections. These algorithms are most naturally phrased as "iterate over
the set while adding to it", which ordinary Go maps do not support safely.
Items appended during an iteration are seen by that same iteration.

Unusually, some set operations are destructive.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 The parsival authors
*/
package iteratable

// Set is an insertion-ordered set of comparable items. The zero value is
// not usable; create sets with NewSet.
type Set struct {
	items []interface{}
	inx   int // iteration cursor, -1 if no iteration is in progress
}

// NewSet creates a new set with a capacity hint.
func NewSet(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{
		items: make([]interface{}, 0, capacity),
		inx:   -1,
	}
}

// Add inserts an item into the set. Adding an already present item is a
// no-op; item identity is Go equality.
func (s *Set) Add(item interface{}) {
	if s.Contains(item) {
		return
	}
	s.items = append(s.items, item)
}

// Contains tells whether item is present.
func (s *Set) Contains(item interface{}) bool {
	for _, x := range s.items {
		if x == item {
			return true
		}
	}
	return false
}

// Size returns the number of items.
func (s *Set) Size() int {
	return len(s.items)
}

// Empty is true for sets without items.
func (s *Set) Empty() bool {
	return len(s.items) == 0
}

// Values returns the items in insertion order. The returned slice is a copy.
func (s *Set) Values() []interface{} {
	v := make([]interface{}, len(s.items))
	copy(v, s.items)
	return v
}

// Copy returns a new set with the same items.
func (s *Set) Copy() *Set {
	c := NewSet(len(s.items))
	c.items = append(c.items, s.items...)
	return c
}

// Union adds all items of other to s (destructive on s).
func (s *Set) Union(other *Set) {
	if other == nil {
		return
	}
	for _, x := range other.items {
		s.Add(x)
	}
}

// Difference returns a new set with the items of s not present in other.
func (s *Set) Difference(other *Set) *Set {
	d := NewSet(len(s.items))
	for _, x := range s.items {
		if other == nil || !other.Contains(x) {
			d.Add(x)
		}
	}
	return d
}

// Equals compares two sets for equal content, regardless of insertion order.
func (s *Set) Equals(other *Set) bool {
	if other == nil || len(s.items) != len(other.items) {
		return false
	}
	for _, x := range s.items {
		if !other.Contains(x) {
			return false
		}
	}
	return true
}

// --- Iteration --------------------------------------------------------------

// IterateOnce starts an iteration over the set. Items added while the
// iteration is in progress are visited, too; this is the property closure
// computations rely on.
func (s *Set) IterateOnce() {
	s.inx = -1
}

// Next advances the iteration. It returns false when the set is exhausted.
func (s *Set) Next() bool {
	s.inx++
	return s.inx < len(s.items)
}

// Item returns the item at the current iteration position.
func (s *Set) Item() interface{} {
	if s.inx < 0 || s.inx >= len(s.items) {
		return nil
	}
	return s.items[s.inx]
}
