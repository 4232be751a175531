package effect

import (
	"log"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/lixenwraith/botview/engine"
	"github.com/lixenwraith/botview/parameter"
	"github.com/lixenwraith/botview/surface"
)

type jump struct {
	start  time.Time
	total  time.Duration
	height float64
}

// Motions displaces elements vertically over time, one jump per element
type Motions struct {
	tree  *surface.Tree
	clock engine.TimeProvider
	jumps map[surface.ID]*jump
}

// NewMotions creates an empty motion system
func NewMotions(tree *surface.Tree, clock engine.TimeProvider) *Motions {
	return &Motions{tree: tree, clock: clock, jumps: make(map[surface.ID]*jump)}
}

// Name implements engine.System
func (m *Motions) Name() string { return "motions" }

// Priority implements engine.System
func (m *Motions) Priority() int { return parameter.PriorityMotion }

// Jump lifts el by height cells and lands it after total; restarting an active jump replaces it
func (m *Motions) Jump(el surface.ID, total time.Duration, height float64) {
	m.jumps[el] = &jump{start: m.clock.Now(), total: total, height: height}
}

// Active reports whether el is mid-jump
func (m *Motions) Active(el surface.ID) bool {
	_, ok := m.jumps[el]
	return ok
}

// Len returns the number of elements in motion
func (m *Motions) Len() int { return len(m.jumps) }

// Clear lands every element immediately
func (m *Motions) Clear() {
	for id := range m.jumps {
		if el := m.tree.Get(id); el != nil {
			el.OffsetY = 0
		}
	}
	clear(m.jumps)
}

// Update applies the current offset of every jump; finished jumps rest at zero and are dropped
func (m *Motions) Update(now time.Time) {
	for _, id := range slices.Sorted(maps.Keys(m.jumps)) {
		j := m.jumps[id]
		el := m.tree.Get(id)
		if el == nil {
			log.Printf("[WARN] effect: jumping element %d is gone", id)
			delete(m.jumps, id)
			continue
		}
		elapsed := now.Sub(j.start)
		el.OffsetY = JumpOffset(elapsed, j.total, j.height)
		if elapsed > j.total {
			delete(m.jumps, id)
		}
	}
}

// JumpOffset is the vertical displacement at elapsed into a jump: a cubic-eased
// rise to -height at the midpoint and a mirrored fall back to zero
func JumpOffset(elapsed, total time.Duration, height float64) int {
	if total <= 0 || elapsed <= 0 || elapsed > total {
		return 0
	}
	half := total / 2
	var u float64
	if elapsed < half {
		u = float64(elapsed) / float64(half)
	} else {
		u = 1 - float64(elapsed-half)/float64(total-half)
	}
	return -int(math.Round(u * u * u * height))
}
