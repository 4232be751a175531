package surface

import (
	"log"
	"slices"
)

// Tree is a retained element hierarchy rooted at a full-surface element
// Not safe for concurrent use; owned by the frame loop goroutine
type Tree struct {
	elements map[ID]*Element
	root     ID
	nextID   ID
	w, h     int
}

// NewTree creates a tree whose root covers a w x h surface
func NewTree(w, h int) *Tree {
	t := &Tree{elements: make(map[ID]*Element)}
	t.nextID++
	t.root = t.nextID
	t.elements[t.root] = &Element{id: t.root, Kind: KindBox, Name: "root", Opacity: 1, Rect: Rect{W: w, H: h}}
	t.w, t.h = w, h
	return t
}

// Root returns the root element identifier
func (t *Tree) Root() ID { return t.root }

// Size returns the surface dimensions
func (t *Tree) Size() (w, h int) { return t.w, t.h }

// Resize changes the surface and root dimensions
func (t *Tree) Resize(w, h int) {
	t.w, t.h = w, h
	root := t.elements[t.root]
	root.Rect = Rect{W: w, H: h}
}

// Add attaches el under parent and returns its new identifier
// Returns zero and logs if parent does not exist
func (t *Tree) Add(parent ID, el *Element) ID {
	p, ok := t.elements[parent]
	if !ok {
		log.Printf("[WARN] surface: cannot add %q, parent %d is gone", el.Name, parent)
		return 0
	}
	t.nextID++
	el.id = t.nextID
	el.parent = parent
	el.children = nil
	t.elements[el.id] = el
	p.children = append(p.children, el.id)
	return el.id
}

// Get returns the element or nil if it does not exist
func (t *Tree) Get(id ID) *Element {
	return t.elements[id]
}

// Contains reports whether id is in the tree
func (t *Tree) Contains(id ID) bool {
	_, ok := t.elements[id]
	return ok
}

// Remove detaches id and its subtree, returns false if id is absent or the root
func (t *Tree) Remove(id ID) bool {
	el, ok := t.elements[id]
	if !ok || id == t.root {
		return false
	}
	if p, ok := t.elements[el.parent]; ok {
		p.children = slices.DeleteFunc(p.children, func(c ID) bool { return c == id })
	}
	t.removeSubtree(el)
	return true
}

func (t *Tree) removeSubtree(el *Element) {
	for _, c := range el.children {
		if child, ok := t.elements[c]; ok {
			t.removeSubtree(child)
		}
	}
	delete(t.elements, el.id)
}

// Children returns the direct children of id in insertion order
func (t *Tree) Children(id ID) []ID {
	el, ok := t.elements[id]
	if !ok {
		return nil
	}
	return slices.Clone(el.children)
}

// Find returns the first descendant of id with the given name, depth first
func (t *Tree) Find(id ID, name string) *Element {
	el, ok := t.elements[id]
	if !ok {
		return nil
	}
	for _, c := range el.children {
		child := t.elements[c]
		if child.Name == name {
			return child
		}
		if found := t.Find(c, name); found != nil {
			return found
		}
	}
	return nil
}

// Bounds returns the absolute rect of id including ancestor offsets
func (t *Tree) Bounds(id ID) (Rect, bool) {
	el, ok := t.elements[id]
	if !ok {
		return Rect{}, false
	}
	r := el.Rect
	r.Y += el.OffsetY
	for p := el.parent; p != 0; {
		pe := t.elements[p]
		r.X += pe.Rect.X
		r.Y += pe.Rect.Y + pe.OffsetY
		p = pe.parent
	}
	return r, true
}

// Len returns the number of elements including the root
func (t *Tree) Len() int {
	return len(t.elements)
}

// Placed is an element resolved to absolute geometry for drawing and hit testing
type Placed struct {
	El      *Element
	Bounds  Rect
	Clip    Rect
	Opacity float64
	order   int
}

// Visible walks the tree and returns visible elements in paint order
// Hidden or fully transparent subtrees are skipped
func (t *Tree) Visible() []Placed {
	var out []Placed
	screen := Rect{W: t.w, H: t.h}
	t.collect(t.root, 0, 0, screen, 1, &out)
	slices.SortStableFunc(out, func(a, b Placed) int {
		if a.El.Layer != b.El.Layer {
			return a.El.Layer - b.El.Layer
		}
		return a.order - b.order
	})
	return out
}

func (t *Tree) collect(id ID, ox, oy int, clip Rect, opacity float64, out *[]Placed) {
	el := t.elements[id]
	if el.Hidden {
		return
	}
	opacity *= el.Opacity
	if opacity <= 0 {
		return
	}

	abs := Rect{X: ox + el.Rect.X, Y: oy + el.Rect.Y + el.OffsetY, W: el.Rect.W, H: el.Rect.H}
	*out = append(*out, Placed{El: el, Bounds: abs, Clip: clip, Opacity: opacity, order: len(*out)})

	childClip := clip
	if el.Clip {
		childClip = clip.Intersect(abs)
	}
	for _, c := range el.children {
		t.collect(c, abs.X, abs.Y, childClip, opacity, out)
	}
}

// ClickAt delivers a click to the topmost visible element under the point
// The click bubbles to the nearest ancestor with a handler
func (t *Tree) ClickAt(x, y int) bool {
	placed := t.Visible()
	for i := len(placed) - 1; i >= 0; i-- {
		p := placed[i]
		if !p.Bounds.Intersect(p.Clip).Contains(x, y) {
			continue
		}
		for el := p.El; el != nil; el = t.elements[el.parent] {
			if el.OnClick != nil {
				el.OnClick()
				return true
			}
			if el.parent == 0 {
				break
			}
		}
		return false
	}
	return false
}
