package surface

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// boxChars is the single-line border set: corners, horizontal, vertical
var boxChars = [6]rune{'┌', '─', '┐', '│', '└', '┘'}

const (
	boxTL = 0
	boxH  = 1
	boxTR = 2
	boxV  = 3
	boxBL = 4
	boxBR = 5
)

// region is a clipped drawing window onto a screen
// Coordinates passed to its methods are relative to X, Y
type region struct {
	screen tcell.Screen
	X, Y   int
	W, H   int
	clip   Rect
}

func newRegion(screen tcell.Screen, bounds, clip Rect) region {
	return region{screen: screen, X: bounds.X, Y: bounds.Y, W: bounds.W, H: bounds.H, clip: clip}
}

// cell sets a single cell, dropping anything outside the region or clip
func (r region) cell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	ax, ay := r.X+x, r.Y+y
	if !r.clip.Contains(ax, ay) {
		return
	}
	r.screen.SetContent(ax, ay, ch, nil, style)
}

func (r region) fill(ch rune, style tcell.Style) {
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			r.cell(x, y, ch, style)
		}
	}
}

func (r region) box(style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	r.cell(0, 0, boxChars[boxTL], style)
	r.cell(r.W-1, 0, boxChars[boxTR], style)
	r.cell(0, r.H-1, boxChars[boxBL], style)
	r.cell(r.W-1, r.H-1, boxChars[boxBR], style)
	for x := 1; x < r.W-1; x++ {
		r.cell(x, 0, boxChars[boxH], style)
		r.cell(x, r.H-1, boxChars[boxH], style)
	}
	for y := 1; y < r.H-1; y++ {
		r.cell(0, y, boxChars[boxV], style)
		r.cell(r.W-1, y, boxChars[boxV], style)
	}
}

// text renders s at position, truncating at the region edge
func (r region) text(x, y int, s string, style tcell.Style) {
	if y < 0 || y >= r.H {
		return
	}
	col := 0
	for _, ch := range s {
		if x+col >= r.W {
			break
		}
		if x+col >= 0 {
			r.cell(x+col, y, ch, style)
		}
		col++
	}
}

// textCenter renders s centered on row y
func (r region) textCenter(y int, s string, style tcell.Style) {
	r.text((r.W-runeLen(s))/2, y, s, style)
}

// title writes s into the top border, centered and padded
func (r region) title(s string, style tcell.Style) {
	if s == "" || r.W <= 4 {
		return
	}
	if runeLen(s) > r.W-4 {
		s = truncate(s, r.W-4)
	}
	r.text((r.W-runeLen(s)-2)/2, 0, " "+s+" ", style.Bold(true))
}

func (r region) inset(n int) region {
	return region{screen: r.screen, X: r.X + n, Y: r.Y + n, W: max(0, r.W-2*n), H: max(0, r.H-2*n), clip: r.clip}
}

// shaped paints ch through the mask of shape
func (r region) shaped(shape Shape, ch rune, style tcell.Style) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	cx, cy := float64(r.W)/2, float64(r.H)/2
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			// Normalized cell centre in [-1,1]
			nx := (float64(x) + 0.5 - cx) / cx
			ny := (float64(y) + 0.5 - cy) / cy
			if inShape(shape, nx, ny) {
				r.cell(x, y, ch, style)
			}
		}
	}
}

func inShape(shape Shape, nx, ny float64) bool {
	switch shape {
	case ShapeEllipse:
		return nx*nx+ny*ny <= 1
	case ShapeRing:
		d := nx*nx + ny*ny
		return d <= 1 && d >= 0.45
	case ShapeFlame:
		// Tapers toward the top row, full width at the bottom
		half := (ny + 1) / 2
		return math.Abs(nx) <= 0.25+0.75*half
	default:
		return true
	}
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]rune, 0, n)
	for _, ch := range s {
		if len(out) == n {
			break
		}
		out = append(out, ch)
	}
	if len(out) == n && runeLen(s) > n && n > 1 {
		out[n-1] = '…'
	}
	return string(out)
}
