package surface

import (
	"github.com/gdamore/tcell/v2"
)

// Renderer draws a Tree onto a tcell screen and turns mouse presses into clicks
type Renderer struct {
	screen tcell.Screen
	tree   *Tree
	theme  Theme

	buttons      tcell.ButtonMask
	hoverX       int
	hoverY       int
	hovering     bool
	OnResize     func(w, h int)
	DrawTooltips bool
}

// NewRenderer binds a renderer to screen and tree; nil theme uses DefaultTheme
func NewRenderer(screen tcell.Screen, tree *Tree, theme Theme) *Renderer {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Renderer{screen: screen, tree: tree, theme: theme, DrawTooltips: true}
}

// Tree returns the tree being drawn
func (r *Renderer) Tree() *Tree { return r.tree }

// Draw paints all visible elements by layer then insertion order and shows the frame
func (r *Renderer) Draw() {
	r.screen.Clear()
	placed := r.tree.Visible()
	for _, p := range placed {
		r.drawElement(p)
	}
	if r.DrawTooltips && r.hovering {
		r.drawTooltip(placed)
	}
	r.screen.Show()
}

func (r *Renderer) drawElement(p Placed) {
	el := p.El
	if p.Bounds.Intersect(p.Clip).Empty() {
		return
	}
	style := fade(r.theme.Style(el), p.Opacity)
	reg := newRegion(r.screen, p.Bounds, p.Clip)

	switch el.Kind {
	case KindOverlay:
		// Click catcher only, dims nothing in a terminal
	case KindSprite:
		if el.Glyph != 0 {
			reg.shaped(el.Shape, el.Glyph, style)
		}
	case KindImage:
		glyph := el.Glyph
		if glyph == 0 {
			glyph = '▓'
		}
		reg.fill(glyph, style)
		r.drawLines(reg, el.Text, style, true)
	case KindText:
		r.drawLines(reg, el.Text, style, false)
	default:
		_, bg, _ := style.Decompose()
		if bg != tcell.ColorDefault {
			reg.fill(' ', style)
		}
		inner := reg
		if el.Border {
			reg.box(style)
			reg.title(el.Title, style)
			inner = reg.inset(1)
		} else if el.Title != "" {
			reg.text(0, 0, el.Title, style.Bold(true))
			inner = region{screen: reg.screen, X: reg.X, Y: reg.Y + 1, W: reg.W, H: max(0, reg.H-1), clip: reg.clip}
		}
		r.drawLines(inner, el.Text, style, false)
	}
}

func (r *Renderer) drawLines(reg region, lines []string, style tcell.Style, center bool) {
	for i, line := range lines {
		if center {
			reg.textCenter(i, line, style)
		} else {
			reg.text(0, i, line, style)
		}
	}
}

func (r *Renderer) drawTooltip(placed []Placed) {
	for i := len(placed) - 1; i >= 0; i-- {
		p := placed[i]
		if !p.Bounds.Intersect(p.Clip).Contains(r.hoverX, r.hoverY) {
			continue
		}
		if p.El.Tooltip == "" {
			return
		}
		w, h := r.tree.Size()
		bar := newRegion(r.screen, Rect{Y: h - 1, W: w, H: 1}, Rect{W: w, H: h})
		bar.fill(' ', tcell.StyleDefault.Reverse(true))
		bar.text(1, 0, p.El.Tooltip, tcell.StyleDefault.Reverse(true))
		return
	}
}

// HandleEvent applies a terminal event, returns true if it was consumed
// A click is delivered on the press edge of the primary button
func (r *Renderer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		r.screen.Sync()
		w, h := ev.Size()
		r.tree.Resize(w, h)
		if r.OnResize != nil {
			r.OnResize(w, h)
		}
		return true
	case *tcell.EventMouse:
		x, y := ev.Position()
		r.hoverX, r.hoverY, r.hovering = x, y, true
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && r.buttons&tcell.Button1 == 0
		r.buttons = buttons
		if pressed {
			r.tree.ClickAt(x, y)
		}
		return true
	}
	return false
}
