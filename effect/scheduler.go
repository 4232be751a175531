// Package effect schedules timed glyph animations on the surface and
// composes them into explosion, fire and jump sequences.
package effect

import (
	"log"
	"maps"
	"slices"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/botview/engine"
	"github.com/lixenwraith/botview/parameter"
	"github.com/lixenwraith/botview/status"
	"github.com/lixenwraith/botview/surface"
)

// Scheduler owns the active sprite registry and advances every animated sprite once per tick
type Scheduler struct {
	tree    *surface.Tree
	timers  *engine.TimerQueue
	clock   engine.TimeProvider
	catalog *Catalog

	active  map[uint64]*Sprite
	pending map[uint64]*Sprite
	nextID  uint64

	statActive    *atomic.Int64
	statSpawned   *atomic.Int64
	statDestroyed *atomic.Int64
}

// NewScheduler creates a scheduler drawing into tree; nil catalog uses the embedded one
func NewScheduler(tree *surface.Tree, timers *engine.TimerQueue, clock engine.TimeProvider, catalog *Catalog, reg *status.Registry) *Scheduler {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Scheduler{
		tree:          tree,
		timers:        timers,
		clock:         clock,
		catalog:       catalog,
		active:        make(map[uint64]*Sprite),
		pending:       make(map[uint64]*Sprite),
		statActive:    reg.Ints.Get("effects.active"),
		statSpawned:   reg.Ints.Get("effects.spawned"),
		statDestroyed: reg.Ints.Get("effects.destroyed"),
	}
}

// Name implements engine.System
func (s *Scheduler) Name() string { return "effects" }

// Priority implements engine.System
func (s *Scheduler) Priority() int { return parameter.PriorityEffect }

// Catalog returns the current catalog
func (s *Scheduler) Catalog() *Catalog { return s.catalog }

// SetCatalog swaps the catalog; sprites already created keep their frames
func (s *Scheduler) SetCatalog(c *Catalog) {
	if c != nil {
		s.catalog = c
	}
}

// New creates an unscheduled sprite of kind
func (s *Scheduler) New(kind string) (*Sprite, error) {
	spec, err := s.catalog.Lookup(kind)
	if err != nil {
		return nil, err
	}
	s.nextID++
	return newSprite(s.nextID, spec), nil
}

// Schedule creates a sprite of kind at x, y within parent and activates it after delay
// Negative durations clamp to zero. A non-looping sprite given a positive duration
// has its frame rate rescaled so the sequence ends exactly when the duration does.
// Returns nil if kind is unknown.
func (s *Scheduler) Schedule(parent surface.ID, kind string, x, y int, duration, delay time.Duration) *Sprite {
	sp, err := s.New(kind)
	if err != nil {
		log.Printf("[WARN] effect: cannot schedule at (%d,%d): %v", x, y, err)
		return nil
	}
	sp.X, sp.Y = x, y

	duration = max(0, duration)
	sp.MaxAge = duration
	sp.Bounded = true
	if !sp.Loop && duration > 0 {
		sp.FPS = float64(sp.TotalFrames()) / duration.Seconds()
	}

	delay = max(0, delay)
	sp.Delay = delay
	sp.parent = parent
	s.pending[sp.id] = sp
	sp.timer = s.timers.After(delay, func() {
		delete(s.pending, sp.id)
		s.Add(sp, sp.parent)
	})
	return sp
}

// Add activates sp under parent immediately and returns its element
// Adding a sprite already registered returns its existing element
func (s *Scheduler) Add(sp *Sprite, parent surface.ID) surface.ID {
	if existing, ok := s.active[sp.id]; ok {
		return existing.element
	}
	if sp.state == StateDestroyed {
		return 0
	}
	if sp.id == 0 {
		s.nextID++
		sp.id = s.nextID
	}
	delete(s.pending, sp.id)

	if !s.tree.Contains(parent) {
		log.Printf("[WARN] effect: %s sprite %d has no parent element %d, dropped", sp.Kind, sp.id, parent)
		sp.state = StateDestroyed
		return 0
	}

	el := &surface.Element{
		Kind:    surface.KindSprite,
		Name:    sp.Kind,
		Rect:    surface.Rect{X: sp.X, Y: sp.Y, W: sp.W, H: sp.H},
		Layer:   sp.Layer,
		Shape:   sp.Shape,
		Opacity: 1,
	}
	if len(sp.Frames) > 0 {
		el.Glyph = sp.Frames[0].Glyph
		el.Fg = sp.Frames[0].Color
	}

	sp.parent = parent
	sp.element = s.tree.Add(parent, el)
	sp.started = s.clock.Now()
	sp.state = StateActive
	s.active[sp.id] = sp

	s.statSpawned.Add(1)
	s.statActive.Store(int64(len(s.active)))
	return sp.element
}

// Remove cancels a pending sprite or deregisters an active one
// Returns false if the sprite is unknown or already destroyed
func (s *Scheduler) Remove(id uint64) bool {
	if sp, ok := s.pending[id]; ok {
		s.timers.Cancel(sp.timer)
		delete(s.pending, id)
		sp.state = StateDestroyed
		return true
	}
	sp, ok := s.active[id]
	if !ok {
		return false
	}
	s.destroy(sp)
	return true
}

// Active reports whether id is registered
func (s *Scheduler) Active(id uint64) bool {
	_, ok := s.active[id]
	return ok
}

// Len returns the number of registered sprites
func (s *Scheduler) Len() int { return len(s.active) }

// Pending returns the number of sprites waiting for their delay
func (s *Scheduler) Pending() int { return len(s.pending) }

// Clear cancels every pending sprite and removes every active one
func (s *Scheduler) Clear() {
	for _, id := range slices.Sorted(maps.Keys(s.pending)) {
		s.Remove(id)
	}
	for _, id := range slices.Sorted(maps.Keys(s.active)) {
		s.Remove(id)
	}
}

// Update advances every animated sprite; exhausted or expired sprites are destroyed
// Sprites with no frame rate are static and stay until removed
func (s *Scheduler) Update(now time.Time) {
	if len(s.active) == 0 {
		return
	}
	for _, id := range slices.Sorted(maps.Keys(s.active)) {
		sp := s.active[id]
		if sp.FPS <= 0 {
			continue
		}

		// Parent subtree removed underneath us
		el := s.tree.Get(sp.element)
		if el == nil {
			s.destroy(sp)
			continue
		}

		age := now.Sub(sp.started)
		idx := sp.FrameIndex(age)
		if idx >= 0 {
			frame := sp.Frames[idx]
			el.Glyph = frame.Glyph
			el.Fg = frame.Color
			el.Rect.X, el.Rect.Y = sp.X, sp.Y
			el.Layer = sp.Layer
		}
		if idx < 0 || sp.Finished(age) {
			s.destroy(sp)
		}
	}
}

// destroy deregisters sp and removes its element, once
func (s *Scheduler) destroy(sp *Sprite) {
	if sp.state == StateDestroyed {
		return
	}
	delete(s.active, sp.id)
	s.tree.Remove(sp.element)
	sp.element = 0
	sp.state = StateDestroyed
	s.statDestroyed.Add(1)
	s.statActive.Store(int64(len(s.active)))
}
