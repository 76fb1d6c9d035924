/*
Package sparse implements a simple type for sparse integer matrices, used
for parser tables (GOTO-table and ACTION-table). Every entry in the table is
either a single int32 or a pair (int32, int32); the pair form lets table
construction represent a competing entry long enough to diagnose it.

This implementation uses triplet-encoding (COO), with triplets kept sorted
by (row, column).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 The parsival authors
*/
package sparse

import "fmt"

// IntMatrix is a sparse matrix of integer values. Construct with
//
//	M := NewIntMatrix(10, 10, -1)   // last parameter is M's null-value
//
// then
//
//	M.Set(2, 3, 4711)               // set a value
//	v := M.Value(2, 3)              // returns 4711
//	M.Add(2, 3, 123)                // add a second value at the position
//	v = M.Value(10, 10)             // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value.
type IntMatrix struct {
	triplets []triplet
	rowcnt   int
	colcnt   int
	nullval  int32
}

type triplet struct {
	row, col int
	a, b     int32
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// NewIntMatrix creates a matrix of size m x n. The 3rd argument is the
// null-value indicating empty entries (use DefaultNullValue if in doubt).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value.
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.triplets)
}

// find locates the triplet for (i,j), or the insertion index for a new one.
func (m *IntMatrix) find(i, j int) (int, bool) {
	lo, hi := 0, len(m.triplets)
	for lo < hi {
		mid := (lo + hi) / 2
		t := m.triplets[mid]
		if t.row < i || (t.row == i && t.col < j) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(m.triplets) && m.triplets[lo].row == i && m.triplets[lo].col == j {
		return lo, true
	}
	return lo, false
}

// Value returns the primary value at position (i,j), or the null-value.
func (m *IntMatrix) Value(i, j int) int32 {
	if at, ok := m.find(i, j); ok {
		return m.triplets[at].a
	}
	return m.nullval
}

// Values returns the pair of values at position (i,j); unset slots carry the
// null-value.
func (m *IntMatrix) Values(i, j int) (int32, int32) {
	if at, ok := m.find(i, j); ok {
		return m.triplets[at].a, m.triplets[at].b
	}
	return m.nullval, m.nullval
}

// Set stores value at position (i,j), overwriting both slots.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	at, ok := m.find(i, j)
	if ok {
		m.triplets[at].a = value
		m.triplets[at].b = m.nullval
		return m
	}
	m.insert(at, triplet{row: i, col: j, a: value, b: m.nullval})
	return m
}

// Add stores value at position (i,j), filling the second slot if the first
// is already occupied. A full entry keeps its first slot and overwrites the
// second.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	at, ok := m.find(i, j)
	if !ok {
		m.insert(at, triplet{row: i, col: j, a: value, b: m.nullval})
		return m
	}
	if m.triplets[at].a == m.nullval {
		m.triplets[at].a = value
	} else {
		m.triplets[at].b = value
	}
	return m
}

func (m *IntMatrix) insert(at int, t triplet) {
	m.triplets = append(m.triplets, triplet{})
	copy(m.triplets[at+1:], m.triplets[at:])
	m.triplets[at] = t
}

func (t triplet) String() string {
	return fmt.Sprintf("(%d,%d)=[%d,%d]", t.row, t.col, t.a, t.b)
}
