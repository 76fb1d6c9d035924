package sparse

import "testing"

func TestMatrixSetAndValue(t *testing.T) {
	M := NewIntMatrix(10, 10, DefaultNullValue)
	M.Set(2, 3, 4711)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected 4711, got %d", v)
	}
	if v := M.Value(9, 9); v != DefaultNullValue {
		t.Errorf("expected null-value for unset position, got %d", v)
	}
	if M.ValueCount() != 1 {
		t.Errorf("expected 1 stored value, got %d", M.ValueCount())
	}
}

func TestMatrixAddPairs(t *testing.T) {
	M := NewIntMatrix(5, 5, DefaultNullValue)
	M.Add(1, 1, 7)
	if a, b := M.Values(1, 1); a != 7 || b != DefaultNullValue {
		t.Errorf("expected (7, null), got (%d, %d)", a, b)
	}
	M.Add(1, 1, 8) // second value at the same position
	if a, b := M.Values(1, 1); a != 7 || b != 8 {
		t.Errorf("expected (7, 8), got (%d, %d)", a, b)
	}
	if M.ValueCount() != 1 {
		t.Errorf("a pair occupies one position, got count %d", M.ValueCount())
	}
	M.Set(1, 1, 9) // Set overwrites both slots
	if a, b := M.Values(1, 1); a != 9 || b != DefaultNullValue {
		t.Errorf("expected (9, null), got (%d, %d)", a, b)
	}
}

func TestMatrixOrdering(t *testing.T) {
	M := NewIntMatrix(100, 100, DefaultNullValue)
	// insert in scrambled order, read back everything
	positions := [][2]int{{50, 1}, {0, 0}, {50, 0}, {3, 99}, {0, 1}}
	for k, p := range positions {
		M.Set(p[0], p[1], int32(k+1))
	}
	for k, p := range positions {
		if v := M.Value(p[0], p[1]); v != int32(k+1) {
			t.Errorf("value at (%d,%d) = %d, want %d", p[0], p[1], v, k+1)
		}
	}
	if M.ValueCount() != len(positions) {
		t.Errorf("expected %d stored values, got %d", len(positions), M.ValueCount())
	}
}

func TestMatrixDimensions(t *testing.T) {
	M := NewIntMatrix(3, 7, -1)
	if M.M() != 3 || M.N() != 7 {
		t.Errorf("dimensions = (%d,%d), want (3,7)", M.M(), M.N())
	}
	if M.NullValue() != -1 {
		t.Errorf("null-value = %d, want -1", M.NullValue())
	}
}
