package surface

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

// TestRendererDrawsBorderTitleAndText verifies box elements render border, title and body text
func TestRendererDrawsBorderTitleAndText(t *testing.T) {
	s := newSimScreen(t, 30, 10)
	tree := NewTree(30, 10)
	tree.Add(tree.Root(), &Element{
		Kind: KindBox, Rect: Rect{X: 1, Y: 1, W: 12, H: 4}, Border: true,
		Title: "Hi", Text: []string{"body"}, Opacity: 1,
	})

	NewRenderer(s, tree, nil).Draw()

	checks := []struct {
		x, y int
		want rune
	}{
		{1, 1, '┌'}, {12, 1, '┐'}, {1, 4, '└'}, {12, 4, '┘'},
		{2, 2, 'b'}, {5, 2, 'y'},
		{1, 2, '│'},
	}
	for _, c := range checks {
		if got := runeAt(s, c.x, c.y); got != c.want {
			t.Errorf("cell (%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}

	// Title " Hi " centered in the top border
	found := false
	for x := 1; x < 13; x++ {
		if runeAt(s, x, 1) == 'H' && runeAt(s, x+1, 1) == 'i' {
			found = true
		}
	}
	if !found {
		t.Error("title not drawn in top border")
	}
}

// TestRendererLayerOrder verifies higher layers paint over lower ones
func TestRendererLayerOrder(t *testing.T) {
	s := newSimScreen(t, 10, 5)
	tree := NewTree(10, 5)
	tree.Add(tree.Root(), &Element{Kind: KindSprite, Rect: Rect{W: 4, H: 2}, Glyph: 'b', Layer: 9, Opacity: 1})
	tree.Add(tree.Root(), &Element{Kind: KindSprite, Rect: Rect{W: 4, H: 2}, Glyph: 'a', Layer: 1, Opacity: 1})

	NewRenderer(s, tree, nil).Draw()
	if got := runeAt(s, 1, 1); got != 'b' {
		t.Errorf("top cell = %q, want 'b'", got)
	}
}

// TestRendererClipsChildren verifies children of a clipping element stay within it
func TestRendererClipsChildren(t *testing.T) {
	s := newSimScreen(t, 20, 5)
	tree := NewTree(20, 5)
	parent := tree.Add(tree.Root(), &Element{Rect: Rect{W: 3, H: 3}, Clip: true, Opacity: 1})
	tree.Add(parent, &Element{Kind: KindSprite, Rect: Rect{W: 10, H: 1}, Glyph: '#', Opacity: 1})

	NewRenderer(s, tree, nil).Draw()
	if got := runeAt(s, 2, 0); got != '#' {
		t.Errorf("inside clip = %q, want '#'", got)
	}
	if got := runeAt(s, 5, 0); got == '#' {
		t.Error("child painted outside clip")
	}
}

// TestRendererClickOnPressEdge verifies one click per press regardless of motion events
func TestRendererClickOnPressEdge(t *testing.T) {
	s := newSimScreen(t, 20, 10)
	tree := NewTree(20, 10)
	clicks := 0
	tree.Add(tree.Root(), &Element{Rect: Rect{W: 10, H: 5}, Opacity: 1, OnClick: func() { clicks++ }})
	r := NewRenderer(s, tree, nil)

	r.HandleEvent(tcell.NewEventMouse(2, 2, tcell.Button1, tcell.ModNone))
	r.HandleEvent(tcell.NewEventMouse(3, 2, tcell.Button1, tcell.ModNone))
	r.HandleEvent(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))
	r.HandleEvent(tcell.NewEventMouse(3, 3, tcell.Button1, tcell.ModNone))

	if clicks != 2 {
		t.Errorf("clicks = %d, want 2", clicks)
	}
}

func TestRendererResize(t *testing.T) {
	s := newSimScreen(t, 20, 10)
	tree := NewTree(20, 10)
	r := NewRenderer(s, tree, nil)
	var gotW, gotH int
	r.OnResize = func(w, h int) { gotW, gotH = w, h }

	r.HandleEvent(tcell.NewEventResize(40, 12))

	if w, h := tree.Size(); w != 40 || h != 12 {
		t.Errorf("tree size = %dx%d, want 40x12", w, h)
	}
	if gotW != 40 || gotH != 12 {
		t.Errorf("OnResize got %dx%d", gotW, gotH)
	}
}

func TestThemeAppliesClasses(t *testing.T) {
	theme := DefaultTheme()
	el := &Element{Classes: []string{"hp-high", "targeted"}}
	fg, _, attrs := theme.Style(el).Decompose()
	if fg != tcell.ColorRed {
		t.Errorf("fg = %v, want later class colour red", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("targeted class did not set bold")
	}
}
