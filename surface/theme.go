package surface

import (
	"github.com/gdamore/tcell/v2"
)

// ClassStyle is the presentation a class contributes; zero fields leave the style unchanged
type ClassStyle struct {
	Fg, Bg  tcell.Color
	Bold    bool
	Reverse bool
	Dim     bool
}

// Theme maps class names to styles, applied in the element's class order
type Theme map[string]ClassStyle

// DefaultTheme returns the class styles used by the match view
func DefaultTheme() Theme {
	return Theme{
		"active":     {Fg: tcell.ColorYellow, Bold: true},
		"targeted":   {Fg: tcell.ColorRed, Bold: true},
		"dead":       {Fg: tcell.ColorDarkGray, Dim: true},
		"hp-high":    {Fg: tcell.ColorGreen},
		"hp-medium":  {Fg: tcell.ColorYellow},
		"hp-low":     {Fg: tcell.ColorRed},
		"empty":      {Fg: tcell.ColorDarkGray, Dim: true},
		"selected":   {Reverse: true},
		"green":      {Fg: tcell.ColorGreen},
		"red":        {Fg: tcell.ColorRed},
		"success":    {Fg: tcell.ColorGreen, Bold: true},
		"title":      {Bold: true},
		"dialog":     {Fg: tcell.ColorWhite, Bg: tcell.ColorNavy},
		"endgame":    {Fg: tcell.ColorWhite, Bg: tcell.ColorMaroon},
		"turn":       {Fg: tcell.ColorWhite, Bg: tcell.ColorDarkSlateGray},
		"inactive":   {Fg: tcell.ColorSilver},
		"backdrop-1": {Bg: tcell.ColorBlack},
		"backdrop-2": {Bg: tcell.ColorMidnightBlue},
	}
}

// Style resolves an element's style from its own colours and classes
func (t Theme) Style(el *Element) tcell.Style {
	style := tcell.StyleDefault
	if el.Fg != tcell.ColorDefault {
		style = style.Foreground(el.Fg)
	}
	if el.Bg != tcell.ColorDefault {
		style = style.Background(el.Bg)
	}
	for _, c := range el.Classes {
		cs, ok := t[c]
		if !ok {
			continue
		}
		if cs.Fg != tcell.ColorDefault {
			style = style.Foreground(cs.Fg)
		}
		if cs.Bg != tcell.ColorDefault {
			style = style.Background(cs.Bg)
		}
		if cs.Bold {
			style = style.Bold(true)
		}
		if cs.Reverse {
			style = style.Reverse(true)
		}
		if cs.Dim {
			style = style.Dim(true)
		}
	}
	return style
}

// fade scales the colours of style toward black by opacity
func fade(style tcell.Style, opacity float64) tcell.Style {
	if opacity >= 1 {
		return style
	}
	fg, bg, _ := style.Decompose()
	return style.Foreground(scaleColor(fg, opacity)).Background(scaleColor(bg, opacity))
}

func scaleColor(c tcell.Color, k float64) tcell.Color {
	if c == tcell.ColorDefault {
		return c
	}
	r, g, b := c.RGB()
	if r < 0 {
		return c
	}
	return tcell.NewRGBColor(int32(float64(r)*k), int32(float64(g)*k), int32(float64(b)*k))
}
