// Package surface is the retained presentation tree the view mutates and a
// tcell renderer that draws it and routes clicks back into it.
package surface

import (
	"slices"

	"github.com/gdamore/tcell/v2"
)

// ID identifies an element within a Tree, zero is never assigned
type ID uint64

// Kind describes how an element is drawn
type Kind uint8

const (
	KindBox     Kind = iota // Optional border, fill and text
	KindText                // Text lines only
	KindSprite              // Shaped glyph animation frame
	KindImage               // Robot picture
	KindOverlay             // Full-surface click catcher
)

// Shape is the mask a sprite frame glyph is painted through
type Shape uint8

const (
	ShapeFill Shape = iota
	ShapeEllipse
	ShapeFlame
	ShapeRing
)

// Rect is a cell rectangle relative to the parent element
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether the point lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of r and o
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether r has no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Element is one node of the presentation tree
// Callers mutate fields directly through the pointer returned by Tree.Get
type Element struct {
	id       ID
	parent   ID
	children []ID

	Kind  Kind
	Name  string
	Rect  Rect
	Layer int

	// OffsetY displaces the element and its subtree vertically without relayout
	OffsetY int

	Classes []string
	Title   string
	Text    []string
	Tooltip string

	Glyph  rune
	Shape  Shape
	Fg, Bg tcell.Color
	Border bool
	Clip   bool // Children are clipped to this element's rect

	// Opacity multiplies down the subtree; 1 is opaque, 0 is invisible
	Opacity float64
	Hidden  bool

	OnClick func()
}

// ID returns the element identifier
func (e *Element) ID() ID { return e.id }

// Parent returns the parent identifier, zero for the root
func (e *Element) Parent() ID { return e.parent }

// HasClass reports whether name is set
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.Classes, name)
}

// AddClass sets name if absent
func (e *Element) AddClass(name string) {
	if !e.HasClass(name) {
		e.Classes = append(e.Classes, name)
	}
}

// RemoveClass clears name
func (e *Element) RemoveClass(name string) {
	e.Classes = slices.DeleteFunc(e.Classes, func(c string) bool { return c == name })
}

// SetClass sets or clears name
func (e *Element) SetClass(name string, on bool) {
	if on {
		e.AddClass(name)
	} else {
		e.RemoveClass(name)
	}
}

// SetClasses replaces the class list
func (e *Element) SetClasses(names ...string) {
	e.Classes = append(e.Classes[:0], names...)
}
