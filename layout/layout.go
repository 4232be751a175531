// Package layout allocates grid cells for sibling panels (factions on the
// board, robots within a faction) and fits robot images into their panels.
package layout

import "math"

// Slot is the fraction of the parent a single item occupies
type Slot struct {
	Width  float64
	Height float64
}

// DefaultSlot is used for counts outside the table
var DefaultSlot = Slot{Width: 0.2, Height: 0.2}

// areaTable maps item counts to slot fractions
// Values were tuned by eye and are not derivable from a formula
var areaTable = [...]Slot{
	1:  {1, 1},
	2:  {0.5, 1},
	3:  {1.0 / 3, 1},
	4:  {0.5, 0.5},
	5:  {1.0 / 3, 0.5},
	6:  {1.0 / 3, 0.5},
	7:  {0.25, 0.5},
	8:  {0.25, 0.5},
	9:  {1.0 / 3, 1.0 / 3},
	10: {0.25, 1.0 / 3},
	11: {0.25, 1.0 / 3},
	12: {0.25, 1.0 / 3},
	13: {0.25, 0.25},
	14: {0.25, 0.25},
	15: {0.25, 0.25},
	16: {0.25, 0.25},
}

// MaxItems is the largest count with a tuned slot
const MaxItems = len(areaTable) - 1

// Allocate returns the slot for itemCount siblings
func Allocate(itemCount int) Slot {
	if itemCount < 1 || itemCount > MaxItems {
		return DefaultSlot
	}
	return areaTable[itemCount]
}

// Columns is the number of slots per row
func (s Slot) Columns() int {
	return int(math.Round(1 / s.Width))
}

// Rows is the number of slot rows
func (s Slot) Rows() int {
	return int(math.Round(1 / s.Height))
}

// Cell maps item index to its row-major grid position
func (s Slot) Cell(index int) (row, column int) {
	columns := s.Columns()
	return index / columns, index % columns
}

// Placement is the position of one item, in percent of the parent
type Placement struct {
	Index  int
	Row    int
	Column int
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Place returns the placement of item index using fractional steps, the way factions are laid out
func (s Slot) Place(index int) Placement {
	row, column := s.Cell(index)
	return Placement{
		Index:  index,
		Row:    row,
		Column: column,
		Left:   100 * float64(column) * s.Width,
		Top:    100 * float64(row) * s.Height,
		Width:  100 * s.Width,
		Height: 100 * s.Height,
	}
}

// PlaceFloored returns the placement of item index with origins truncated to whole percents,
// the way robots are laid out inside their faction
func (s Slot) PlaceFloored(index int) Placement {
	row, column := s.Cell(index)
	return Placement{
		Index:  index,
		Row:    row,
		Column: column,
		Left:   math.Floor(float64(column) / float64(s.Columns()) * 100),
		Top:    math.Floor(float64(row) / float64(s.Rows()) * 100),
		Width:  100 * s.Width,
		Height: 100 * s.Height,
	}
}

// Grid lays out n items row-major
func Grid(n int) []Placement {
	slot := Allocate(n)
	out := make([]Placement, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, slot.Place(i))
	}
	return out
}

// Span converts a percent offset and extent of a parent length to whole cells
// Ends are rounded independently so adjacent spans tile without gaps
func Span(parent int, offsetPct, extentPct float64) (start, size int) {
	start = int(math.Round(float64(parent) * offsetPct / 100))
	end := int(math.Round(float64(parent) * (offsetPct + extentPct) / 100))
	if end < start {
		end = start
	}
	return start, end - start
}
