package layout

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestAllocateTable verifies every tuned count returns its table entry
func TestAllocateTable(t *testing.T) {
	third := 1.0 / 3
	tests := []struct {
		n    int
		want Slot
	}{
		{1, Slot{1, 1}},
		{2, Slot{0.5, 1}},
		{3, Slot{third, 1}},
		{4, Slot{0.5, 0.5}},
		{5, Slot{third, 0.5}},
		{6, Slot{third, 0.5}},
		{7, Slot{0.25, 0.5}},
		{8, Slot{0.25, 0.5}},
		{9, Slot{third, third}},
		{10, Slot{0.25, third}},
		{11, Slot{0.25, third}},
		{12, Slot{0.25, third}},
		{13, Slot{0.25, 0.25}},
		{14, Slot{0.25, 0.25}},
		{15, Slot{0.25, 0.25}},
		{16, Slot{0.25, 0.25}},
	}

	for _, tt := range tests {
		got := Allocate(tt.n)
		if !approx(got.Width, tt.want.Width) || !approx(got.Height, tt.want.Height) {
			t.Errorf("Allocate(%d) = %+v, want %+v", tt.n, got, tt.want)
		}
	}
}

// TestAllocateDefault verifies out-of-range counts fall back to the default slot
func TestAllocateDefault(t *testing.T) {
	for _, n := range []int{-3, 0, 17, 25, 1000} {
		if got := Allocate(n); got != DefaultSlot {
			t.Errorf("Allocate(%d) = %+v, want default %+v", n, got, DefaultSlot)
		}
	}
}

// TestGridCoversCount verifies rows x columns leaves no item unplaced and cells are unique
func TestGridCoversCount(t *testing.T) {
	for n := 1; n <= MaxItems; n++ {
		slot := Allocate(n)
		if slot.Rows()*slot.Columns() < n {
			t.Errorf("n=%d: rows %d x columns %d < n", n, slot.Rows(), slot.Columns())
		}

		seen := make(map[[2]int]bool)
		for _, p := range Grid(n) {
			key := [2]int{p.Row, p.Column}
			if seen[key] {
				t.Errorf("n=%d: cell %v assigned twice", n, key)
			}
			seen[key] = true
			if p.Row >= slot.Rows() || p.Column >= slot.Columns() {
				t.Errorf("n=%d: item %d at %v outside %dx%d grid", n, p.Index, key, slot.Rows(), slot.Columns())
			}
		}
	}
}

// TestFiveItemScenario verifies the 3x2 arrangement for five items
func TestFiveItemScenario(t *testing.T) {
	slot := Allocate(5)
	if !approx(slot.Width, 1.0/3) || !approx(slot.Height, 0.5) {
		t.Fatalf("Allocate(5) = %+v", slot)
	}
	if slot.Columns() != 3 || slot.Rows() != 2 {
		t.Fatalf("grid = %dx%d, want 3 columns x 2 rows", slot.Columns(), slot.Rows())
	}

	wantCols := []int{0, 1, 2, 0, 1}
	wantRows := []int{0, 0, 0, 1, 1}
	for i := 0; i < 5; i++ {
		row, col := slot.Cell(i)
		if row != wantRows[i] || col != wantCols[i] {
			t.Errorf("Cell(%d) = (%d,%d), want (%d,%d)", i, row, col, wantRows[i], wantCols[i])
		}
	}
}

func TestPlaceFloored(t *testing.T) {
	slot := Allocate(3)
	tests := []struct {
		index int
		left  float64
	}{
		{0, 0},
		{1, 33},
		{2, 66},
	}
	for _, tt := range tests {
		p := slot.PlaceFloored(tt.index)
		if p.Left != tt.left || p.Top != 0 {
			t.Errorf("PlaceFloored(%d) = (%v,%v), want (%v,0)", tt.index, p.Left, p.Top, tt.left)
		}
	}

	// Fractional placement keeps the unrounded origin
	if p := slot.Place(2); !approx(p.Left, 200.0/3) {
		t.Errorf("Place(2).Left = %v, want %v", p.Left, 200.0/3)
	}
}

func TestSpanTiles(t *testing.T) {
	slot := Allocate(3)
	parent := 80
	next := 0
	for i := 0; i < 3; i++ {
		p := slot.Place(i)
		start, size := Span(parent, p.Left, p.Width)
		if start != next {
			t.Errorf("span %d starts at %d, want %d", i, start, next)
		}
		next = start + size
	}
	if next != parent {
		t.Errorf("spans end at %d, want %d", next, parent)
	}
}
