package effect

import (
	"time"

	"github.com/lixenwraith/botview/engine"
	"github.com/lixenwraith/botview/surface"
)

// State is the sprite lifecycle position
type State uint8

const (
	StateScheduled State = iota // Waiting for its start delay
	StateActive                 // Registered and on the surface
	StateDestroyed              // Deregistered and removed, terminal
)

func (s State) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateActive:
		return "active"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Sprite is one timed glyph animation placed relative to a parent element
// Fields may be adjusted by the caller until the sprite activates
type Sprite struct {
	id uint64

	Kind   string
	X, Y   int
	W, H   int
	Layer  int
	Shape  surface.Shape
	Frames []Frame
	FPS    float64
	Loop   bool

	// MaxAge bounds the sprite's life when Bounded is set
	MaxAge  time.Duration
	Bounded bool
	Delay   time.Duration

	state   State
	parent  surface.ID
	element surface.ID
	started time.Time
	timer   engine.TimerID
}

func newSprite(id uint64, spec Spec) *Sprite {
	return &Sprite{
		id:     id,
		Kind:   spec.Kind,
		W:      spec.Width,
		H:      spec.Height,
		Layer:  spec.Layer,
		Shape:  spec.Shape,
		Frames: spec.Frames,
		FPS:    spec.FPS,
		Loop:   spec.Loop,
	}
}

// ID returns the registry key of the sprite
func (s *Sprite) ID() uint64 { return s.id }

// State returns the lifecycle state
func (s *Sprite) State() State { return s.state }

// Element returns the surface element while active, zero otherwise
func (s *Sprite) Element() surface.ID { return s.element }

// Started returns the activation time
func (s *Sprite) Started() time.Time { return s.started }

// TotalFrames returns the frame count
func (s *Sprite) TotalFrames() int { return len(s.Frames) }

// FrameIndex returns the frame shown at age, or -1 once a non-looping sequence is exhausted
func (s *Sprite) FrameIndex(age time.Duration) int {
	n := len(s.Frames)
	if n == 0 {
		return -1
	}
	if s.FPS <= 0 || age < 0 {
		return 0
	}
	idx := int(age.Seconds() * s.FPS)
	if s.Loop {
		return idx % n
	}
	if idx >= n {
		return -1
	}
	return idx
}

// Finished reports whether age has reached the life budget
func (s *Sprite) Finished(age time.Duration) bool {
	return s.Bounded && age >= s.MaxAge
}
