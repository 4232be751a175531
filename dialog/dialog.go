// Package dialog keeps the stack of modal panels shown over the match view
// and arbitrates their dismissal by click, overlay click, timeout or caller.
package dialog

import (
	"time"

	"github.com/lixenwraith/botview/engine"
	"github.com/lixenwraith/botview/surface"
)

// ID identifies a dialog for the lifetime of its manager
type ID uint64

// Kind selects the dialog chrome
type Kind string

const (
	KindGeneric Kind = "generic"
	KindSmall   Kind = "small"
	KindTurn    Kind = "turn"
	KindEndgame Kind = "endgame"
)

func (k Kind) known() bool {
	switch k {
	case KindGeneric, KindSmall, KindTurn, KindEndgame:
		return true
	}
	return false
}

// State is the dialog lifecycle position
type State uint8

const (
	StateCreated State = iota
	StatePending       // On the stack and surface, not yet shown
	StateVisible
	StateDismissed
	StateDestroyed // Off the stack and surface, terminal
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePending:
		return "pending"
	case StateVisible:
		return "visible"
	case StateDismissed:
		return "dismissed"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Dismissal records what closed a dialog
type Dismissal uint8

const (
	DismissNone Dismissal = iota
	DismissClick
	DismissOverlay
	DismissTimeout
	DismissExplicit
)

func (d Dismissal) String() string {
	switch d {
	case DismissNone:
		return "none"
	case DismissClick:
		return "click"
	case DismissOverlay:
		return "overlay"
	case DismissTimeout:
		return "timeout"
	case DismissExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Placement is the dialog rectangle in percent of the surface
// A zero Height sizes the dialog to its content
type Placement struct {
	Left, Top     float64
	Width, Height float64
}

// Dialog is one modal panel; mutate its content before Show
type Dialog struct {
	mgr *Manager

	id           ID
	kind         Kind
	place        Placement
	timeout      time.Duration
	clickToClose bool
	overlayShown bool
	depth        int

	state  State
	reason Dismissal

	title string
	text  []string

	element surface.ID
	overlay surface.ID
	timer   engine.TimerID

	onClick        func()
	overlayOnClick func()
}

// ID returns the dialog identifier
func (d *Dialog) ID() ID { return d.id }

// Kind returns the resolved kind
func (d *Dialog) Kind() Kind { return d.kind }

// State returns the lifecycle state
func (d *Dialog) State() State { return d.state }

// Reason returns what dismissed the dialog, DismissNone while open
func (d *Dialog) Reason() Dismissal { return d.reason }

// Placement returns the requested rectangle
func (d *Dialog) Placement() Placement { return d.place }

// Timeout returns the auto-dismiss delay, zero for none
func (d *Dialog) Timeout() time.Duration { return d.timeout }

// Element returns the dialog body element
func (d *Dialog) Element() surface.ID { return d.element }

// Overlay returns the full-surface click catcher element
func (d *Dialog) Overlay() surface.ID { return d.overlay }

// OverlayShown reports whether the overlay catches clicks once visible
func (d *Dialog) OverlayShown() bool { return d.overlayShown }

// Open reports whether the dialog is still on the stack
func (d *Dialog) Open() bool {
	return d.state == StatePending || d.state == StateVisible
}

// Title returns the title text
func (d *Dialog) Title() string { return d.title }

// Text returns the body lines
func (d *Dialog) Text() []string { return d.text }

// SetTitle sets the title drawn in the top border
func (d *Dialog) SetTitle(title string) {
	d.title = title
	if el := d.mgr.tree.Get(d.element); el != nil {
		el.Title = title
	}
	d.mgr.layout(d)
}

// SetText replaces the body lines
func (d *Dialog) SetText(lines ...string) {
	d.text = append(d.text[:0], lines...)
	if el := d.mgr.tree.Get(d.element); el != nil {
		el.Text = d.text
	}
	d.mgr.layout(d)
}

// AddClass adds a presentation class to the body
func (d *Dialog) AddClass(class string) {
	if el := d.mgr.tree.Get(d.element); el != nil {
		el.AddClass(class)
	}
}

// SetOnClick replaces the body click handler; nil makes the body inert
func (d *Dialog) SetOnClick(fn func()) {
	d.onClick = fn
	d.mgr.bind(d)
}

// SetOverlayOnClick replaces the overlay click handler
func (d *Dialog) SetOverlayOnClick(fn func()) {
	d.overlayOnClick = fn
	d.mgr.bind(d)
}

// HasOnClick reports whether the body has a click handler
func (d *Dialog) HasOnClick() bool { return d.onClick != nil }

// HasOverlayOnClick reports whether the overlay has a click handler
func (d *Dialog) HasOverlayOnClick() bool { return d.overlayOnClick != nil }

// Show makes a pending dialog visible; no-op in any other state
func (d *Dialog) Show() {
	if d.state != StatePending {
		return
	}
	if el := d.mgr.tree.Get(d.element); el != nil {
		el.Hidden = false
	}
	if ov := d.mgr.tree.Get(d.overlay); ov != nil {
		ov.Hidden = !d.overlayShown
	}
	d.state = StateVisible
}

// Close dismisses the dialog explicitly
func (d *Dialog) Close() bool {
	return d.mgr.Close(d.id)
}
