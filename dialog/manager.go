package dialog

import (
	"log"
	"slices"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/botview/engine"
	"github.com/lixenwraith/botview/layout"
	"github.com/lixenwraith/botview/parameter"
	"github.com/lixenwraith/botview/status"
	"github.com/lixenwraith/botview/surface"
)

// Manager owns the dialog stack; the top of the stack is the most recent dialog
// Not safe for concurrent use; owned by the frame loop goroutine
type Manager struct {
	tree   *surface.Tree
	timers *engine.TimerQueue

	stack  []*Dialog
	byID   map[ID]*Dialog
	nextID ID

	// cause is the dismissal reason in effect while a handler runs
	cause Dismissal

	statOpen *atomic.Int64
}

// NewManager creates an empty dialog stack over tree
func NewManager(tree *surface.Tree, timers *engine.TimerQueue, reg *status.Registry) *Manager {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Manager{
		tree:     tree,
		timers:   timers,
		byID:     make(map[ID]*Dialog),
		statOpen: reg.Ints.Get("dialogs.open"),
	}
}

// Open pushes a new hidden dialog; call Show once its content is set
//
// With clickToClose and no timeout a full-surface overlay dismisses the dialog
// and the body ignores clicks. With clickToClose and a timeout the body
// dismisses and there is no overlay. Without clickToClose neither does.
// A positive timeout fires the body handler, else the overlay handler, else
// closes the dialog. Unknown kinds fall back to generic.
func (m *Manager) Open(kind Kind, place Placement, timeout time.Duration, clickToClose bool) *Dialog {
	if !kind.known() {
		log.Printf("[WARN] dialog: unrecognized kind %q, assuming %q", kind, KindGeneric)
		kind = KindGeneric
	}

	m.nextID++
	d := &Dialog{
		mgr:          m,
		id:           m.nextID,
		kind:         kind,
		place:        place,
		timeout:      max(0, timeout),
		clickToClose: clickToClose,
		depth:        len(m.stack),
		state:        StateCreated,
	}

	if clickToClose {
		if d.timeout > 0 {
			d.onClick = m.closer(d.id)
		} else {
			d.overlayShown = true
			d.overlayOnClick = m.closer(d.id)
		}
	}

	w, h := m.tree.Size()
	d.overlay = m.tree.Add(m.tree.Root(), &surface.Element{
		Kind:    surface.KindOverlay,
		Name:    "dialog-overlay",
		Rect:    surface.Rect{W: w, H: h},
		Layer:   parameter.LayerOverlay + d.depth*parameter.LayerDialogStep,
		Hidden:  true,
		Opacity: 1,
	})
	d.element = m.tree.Add(m.tree.Root(), &surface.Element{
		Kind:    surface.KindBox,
		Name:    "dialog",
		Border:  true,
		Clip:    true,
		Layer:   parameter.LayerDialog + d.depth*parameter.LayerDialogStep,
		Classes: []string{"dialog", string(kind)},
		Hidden:  true,
		Opacity: 1,
	})
	m.layout(d)
	m.bind(d)

	if d.timeout > 0 {
		d.timer = m.timers.After(d.timeout, func() { m.expire(d) })
	}

	m.stack = append(m.stack, d)
	m.byID[d.id] = d
	d.state = StatePending
	m.statOpen.Store(int64(len(m.stack)))
	return d
}

// Close dismisses id; an id no longer on the stack is silently ignored
// The reason is the one in effect when called from a click or timeout, explicit otherwise
func (m *Manager) Close(id ID) bool {
	d, ok := m.byID[id]
	if !ok {
		return false
	}
	reason := m.cause
	if reason == DismissNone {
		reason = DismissExplicit
	}
	m.dismiss(d, reason)
	return true
}

// CloseTop dismisses the most recent dialog, logging an error if there is none
func (m *Manager) CloseTop() bool {
	d := m.Top()
	if d == nil {
		log.Printf("[ERROR] dialog: there is no topmost dialog to remove")
		return false
	}
	return m.Close(d.id)
}

// Top returns the most recent open dialog or nil
func (m *Manager) Top() *Dialog {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Get returns an open dialog or nil
func (m *Manager) Get(id ID) *Dialog {
	return m.byID[id]
}

// Len returns the number of open dialogs
func (m *Manager) Len() int { return len(m.stack) }

// Stack returns open dialog ids, oldest first
func (m *Manager) Stack() []ID {
	ids := make([]ID, len(m.stack))
	for i, d := range m.stack {
		ids[i] = d.id
	}
	return ids
}

// Clear closes every open dialog, newest first
func (m *Manager) Clear() {
	for len(m.stack) > 0 {
		m.dismiss(m.stack[len(m.stack)-1], DismissExplicit)
	}
}

// Relayout recomputes every dialog rectangle after a surface resize
func (m *Manager) Relayout() {
	w, h := m.tree.Size()
	for _, d := range m.stack {
		if ov := m.tree.Get(d.overlay); ov != nil {
			ov.Rect = surface.Rect{W: w, H: h}
		}
		m.layout(d)
	}
}

func (m *Manager) dismiss(d *Dialog, reason Dismissal) {
	d.state = StateDismissed
	d.reason = reason
	m.timers.Cancel(d.timer)

	delete(m.byID, d.id)
	m.stack = slices.DeleteFunc(m.stack, func(o *Dialog) bool { return o == d })

	if !m.tree.Remove(d.element) {
		log.Printf("[ERROR] dialog: %d was on the stack but its element was not on the surface", d.id)
	}
	m.tree.Remove(d.overlay)
	d.state = StateDestroyed
	m.statOpen.Store(int64(len(m.stack)))
}

// expire runs the timeout policy of d
func (m *Manager) expire(d *Dialog) {
	if !d.Open() {
		return
	}
	switch {
	case d.onClick != nil:
		m.invoke(DismissTimeout, d.onClick)
	case d.overlayOnClick != nil:
		m.invoke(DismissTimeout, d.overlayOnClick)
	default:
		m.invoke(DismissTimeout, m.closer(d.id))
	}
}

// invoke runs fn with reason as the cause of any Close it performs
func (m *Manager) invoke(reason Dismissal, fn func()) {
	prev := m.cause
	m.cause = reason
	defer func() { m.cause = prev }()
	fn()
}

func (m *Manager) closer(id ID) func() {
	return func() { m.Close(id) }
}

// bind installs element click routing for the current handlers
func (m *Manager) bind(d *Dialog) {
	if el := m.tree.Get(d.element); el != nil {
		el.OnClick = nil
		if d.onClick != nil {
			el.OnClick = func() {
				if d.onClick != nil {
					m.invoke(DismissClick, d.onClick)
				}
			}
		}
	}
	if ov := m.tree.Get(d.overlay); ov != nil {
		ov.OnClick = nil
		if d.overlayOnClick != nil {
			ov.OnClick = func() {
				if d.overlayOnClick != nil {
					m.invoke(DismissOverlay, d.overlayOnClick)
				}
			}
		}
	}
}

// layout places the body from its percent rectangle; zero height fits the content
func (m *Manager) layout(d *Dialog) {
	el := m.tree.Get(d.element)
	if el == nil {
		return
	}
	w, h := m.tree.Size()
	x, width := layout.Span(w, d.place.Left, d.place.Width)
	y, height := layout.Span(h, d.place.Top, d.place.Height)
	if d.place.Height <= 0 {
		// Border rows plus body lines
		height = len(d.text) + 2
	}
	el.Rect = surface.Rect{X: x, Y: y, W: max(width, 2), H: max(height, 2)}
}
