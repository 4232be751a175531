package effect

import (
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/botview/engine"
	"github.com/lixenwraith/botview/parameter"
	"github.com/lixenwraith/botview/surface"
)

// Cue is a sound hook raised when a burst begins
type Cue uint8

const (
	CueBlast Cue = iota
	CueBurn
	CueThruster
	CueChime // Turn announcements; raised by the view, not by explosions
)

// Explosion kinds beyond the robot classes
const (
	KindLight   = "light"
	KindMedium  = "medium"
	KindHeavy   = "heavy"
	KindAssault = "assault"
	KindJump    = "jump"
)

// Target is the robot image an explosion plays over
type Target struct {
	Area    surface.ID // Image area hosting the sprites
	Picture surface.ID // Robot picture inside Area; fades out or jumps
	Class   string
}

// geometry is the target measured in cells, relative to the image area
type geometry struct {
	areaW, areaH int
	picW, picH   int
	left         int // Left edge of a horizontally centred picture
	bottom       int // Row just below the picture
}

// Exploder composes scheduled sprites into per-class destruction sequences
type Exploder struct {
	sched   *Scheduler
	motions *Motions
	timers  *engine.TimerQueue
	tree    *surface.Tree
	rng     *rand.Rand
	cue     func(Cue)
}

// NewExploder creates an exploder; nil rng seeds from the runtime source
func NewExploder(sched *Scheduler, motions *Motions, timers *engine.TimerQueue, rng *rand.Rand) *Exploder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Exploder{sched: sched, motions: motions, timers: timers, tree: sched.tree, rng: rng}
}

// SetCue installs the sound hook
func (e *Exploder) SetCue(fn func(Cue)) {
	e.cue = fn
}

// Explode plays the sequence for kind over target and returns false if the target is gone
// Zero or negative durations fall back to the defaults. Every kind except jump ends
// with the picture faded out; jump instead lifts the picture and lands it.
func (e *Exploder) Explode(t Target, kind string, fire, expl time.Duration) bool {
	if fire <= 0 {
		fire = parameter.DefaultFireDuration
	}
	if expl <= 0 {
		expl = parameter.DefaultExplosionDuration
	}

	area := e.tree.Get(t.Area)
	pic := e.tree.Get(t.Picture)
	if area == nil || pic == nil {
		log.Printf("[WARN] effect: cannot explode %s target %d, its image is not on the surface", kind, t.Area)
		return false
	}

	g := geometry{
		areaW:  area.Rect.W,
		areaH:  area.Rect.H,
		picW:   pic.Rect.W,
		picH:   pic.Rect.H,
		left:   area.Rect.W/2 - pic.Rect.W/2,
		bottom: pic.Rect.Y + pic.Rect.H,
	}

	switch kind {
	case KindLight:
		e.light(t, g, fire, expl)
	case KindMedium:
		e.medium(t, g, fire, expl)
	case KindHeavy, KindAssault:
		e.heavy(t, g, fire, expl)
	case KindJump:
		e.jump(t, g, fire, expl)
	default:
		e.fallback(t, g, expl)
	}
	return true
}

// light: a ring of pilot-light fires and a rapid scatter of small blasts
func (e *Exploder) light(t Target, g geometry, fire, expl time.Duration) {
	e.emit(CueBlast, 0)

	fw, fh := e.size("f1")
	jitter := min(g.areaW/2, parameter.LightFireJitter)
	for range parameter.LightFireCount {
		x := g.areaW/2 - fw/2 + e.intIn(-jitter, jitter)
		y := g.bottom - fh + parameter.LightFireSink
		sp := e.sched.Schedule(t.Area, "f1", x, y, fire, e.durIn(parameter.LightFireDelayMin, parameter.LightFireDelayMax))
		if sp != nil {
			sp.FPS = float64(e.intIn(parameter.LightFireFPSMin, parameter.LightFireFPSMax))
		}
	}
	e.emit(CueBurn, parameter.LightFireDelayMin)

	kinds := [...]string{parameter.LightBlastKindMedium, parameter.LightBlastKindLarge, parameter.LightBlastKindSmall}
	limit := e.intIn(parameter.LightBlastMin, parameter.LightBlastMax)
	for i := range limit {
		kind := kinds[e.rng.IntN(len(kinds))]
		w, h := e.size(kind)
		x := g.left + e.intIn(0, g.picW) - w/2
		y := g.bottom - g.picH + e.intIn(0, g.picH) - h/2
		e.sched.Schedule(t.Area, kind, x, y, expl, time.Duration(i)*parameter.LightBlastStagger)
	}

	e.fade(t.Picture, time.Duration(limit)*parameter.LightBlastStagger-parameter.LightFadeLead, 0)
}

type burst struct {
	kind     string
	delay    time.Duration
	duration time.Duration
}

// medium: a wall of overlapping flames and a train of e4 blasts between two large bursts
func (e *Exploder) medium(t Target, g geometry, fire, expl time.Duration) {
	e.emit(CueBlast, 0)

	bursts := []burst{{kind: "e8", duration: expl / 2}}

	fw, fh := e.size("f2")
	step := max(1, fw-parameter.MediumFireOverlap)
	for x := g.left; x < g.left+g.picW-fw; x += step {
		y := g.bottom - fh + parameter.MediumFireSink + e.intIn(-parameter.MediumFireJitter, parameter.MediumFireJitter)
		sp := e.sched.Schedule(t.Area, "f2", x, y,
			fire+e.durIn(parameter.MediumFireExtraMin, parameter.MediumFireExtraMax), expl/4)
		if sp != nil {
			sp.FPS += float64(e.intIn(-parameter.MediumFireFPSJitter, parameter.MediumFireFPSJitter))
		}
	}
	e.emit(CueBurn, expl/4)

	ew, eh := e.size("e4")
	count := e.density(g, parameter.MediumBlastDensity, ew, eh)
	if count > 0 {
		increment := (expl - bursts[0].duration) / time.Duration(count)
		for i := range count {
			divisor := e.intIn(parameter.MediumBlastDivisorMin, parameter.MediumBlastDivisorMax)
			bursts = append(bursts, burst{
				kind:     "e4",
				delay:    time.Duration(i) * increment,
				duration: expl / time.Duration(divisor),
			})
		}
	}
	bursts = append(bursts, burst{kind: "e7", delay: expl, duration: expl / 2})

	for _, b := range bursts {
		w, h := e.size(b.kind)
		x := g.left + e.intIn(g.picW/4, g.picW*3/4) - w/2
		y := g.bottom - g.picH + e.intIn(g.picH/4, g.picH*3/4) - h/2
		e.sched.Schedule(t.Area, b.kind, x, y, b.duration, b.delay)
	}

	e.fade(t.Picture, expl-parameter.MediumFadeLead, 0)
}

// heavy: cascades of small then large blasts, a row of tall fires, and a spark-led finale
func (e *Exploder) heavy(t Target, g geometry, fire, expl time.Duration) {
	e.emit(CueBlast, 0)

	w, h := e.size("e1")
	for range e.density(g, parameter.HeavySmallDensity, w, h) {
		x := g.left + e.intIn(0, g.picW) - w/2
		y := g.bottom - g.picH + e.intIn(0, g.picH) - h/2
		e.sched.Schedule(t.Area, "e1", x, y, e.durIn(expl/4, expl/3), e.durIn(0, expl/3))
	}

	w, h = e.size("e7")
	for range e.density(g, parameter.HeavyLargeDensity, w, h) {
		kind := "e7"
		if e.rng.IntN(2) == 1 {
			kind = "e8"
		}
		x := g.left + e.intIn(g.picW*15/100, g.picW*85/100) - w/2
		y := g.bottom - g.picH + e.intIn(g.picH*15/100, g.picH*85/100) - h/2
		e.sched.Schedule(t.Area, kind, x, y, e.durIn(expl/3, expl/2), e.durIn(expl/3, 2*expl/3))
	}
	e.emit(CueBlast, expl/3)

	e.fade(t.Picture, expl/2, 0)

	// Fires start as the picture fades; f3 flames are narrower than their box
	w, h = e.size("f3")
	flameW := parameter.HeavyFireRealWidth
	fires := parameter.HeavyFireMinCount + int(math.Ceil(float64(g.areaW)/float64(flameW)))
	for i := 0; i <= fires; i++ {
		px := i*(g.areaW-flameW)/fires + e.intIn(-parameter.HeavyFireJitter, parameter.HeavyFireJitter)
		py := e.intIn(-parameter.HeavyFireJitter, parameter.HeavyFireJitter)
		sp := e.sched.Schedule(t.Area, "f3", px-w/2+flameW/2, g.bottom-h+py,
			fire+e.durIn(parameter.MediumFireExtraMin, parameter.MediumFireExtraMax), expl/2)
		if sp != nil {
			sp.FPS += float64(e.intIn(parameter.HeavyFireFPSMin, parameter.HeavyFireFPSMax))
		}
	}
	e.emit(CueBurn, expl/2)

	finale := 2*expl/3 + expl/2
	w, h = e.size("e9")
	e.sched.Schedule(t.Area, "e9", g.areaW/2-w/2, g.bottom-g.picH/2-h/2,
		parameter.HeavySparkDuration, finale-parameter.HeavyFinaleSparkPad)

	w, h = e.size("e6")
	for range e.intIn(parameter.HeavyFinaleMin, parameter.HeavyFinaleMax) {
		x := g.left + e.intIn(g.picW/4, g.picW*3/4) - w/2
		y := g.bottom - g.picH + e.intIn(g.picH/4, g.picH*3/4) - h/2
		e.sched.Schedule(t.Area, "e6", x, y,
			e.durIn(parameter.HeavyFinaleDurMin, parameter.HeavyFinaleDurMax),
			finale+parameter.HeavyFinaleSpacing)
	}
	e.emit(CueBlast, finale)
}

// jump: the picture rises and lands while smoke rings spread at its base
// fire is the smoke ring life, expl the medium-class flight time
func (e *Exploder) jump(t Target, g geometry, fire, expl time.Duration) {
	total := expl
	var rings int
	switch t.Class {
	case KindLight:
		rings = e.intIn(parameter.JumpLightRingsMin, parameter.JumpLightRingsMax)
		total = scale(total, parameter.JumpLightFactor)
	case KindMedium:
		rings = e.intIn(parameter.JumpMediumRingsMin, parameter.JumpMediumRingsMax)
	case KindHeavy:
		rings = e.intIn(parameter.JumpHeavyRingsMin, parameter.JumpHeavyRingsMax)
		total = scale(total, parameter.JumpHeavyFactor)
	case KindAssault:
		rings = e.intIn(parameter.JumpAssaultRingsMin, parameter.JumpAssaultRingsMax)
		total = scale(total, parameter.JumpAssaultFactor)
	}

	w, h := e.size(parameter.JumpSmokeKind)
	for range rings {
		x := e.intIn(g.left, g.left+g.picW)
		y := e.intIn(g.bottom-parameter.JumpBaseJitter, g.bottom+parameter.JumpBaseJitter)
		e.sched.Schedule(t.Area, parameter.JumpSmokeKind, x-w/2, y-h/2,
			e.durIn(fire-parameter.JumpSmokeJitter, fire+parameter.JumpSmokeJitter), 0)
	}

	e.motions.Jump(t.Picture, total, float64(g.picH)*parameter.JumpHeightFactor)
	e.emit(CueThruster, 0)
}

// fallback: four staggered large bursts centred on the base, the picture left as a ghost
func (e *Exploder) fallback(t Target, g geometry, expl time.Duration) {
	w, h := e.size("e9")
	e.sched.Schedule(t.Area, "e9", g.areaW/2-w/2, g.bottom-h/2, expl, 0)

	e.emit(CueBlast, 0)
	for _, b := range []burst{
		{kind: "e8", delay: expl},
		{kind: "e7", delay: scale(expl, 2.5)},
		{kind: "e6", delay: 5 * expl},
	} {
		w, h = e.size(b.kind)
		e.sched.Schedule(t.Area, b.kind, g.areaW/2-w/2, g.bottom-h/2, expl, b.delay)
		e.emit(CueBlast, b.delay)
	}

	e.fade(t.Picture, expl, parameter.DefaultFadeOpacity)
}

// fade sets the opacity of el after delay; negative delays fire on the next tick
func (e *Exploder) fade(el surface.ID, delay time.Duration, opacity float64) {
	e.timers.After(max(0, delay), func() {
		if target := e.tree.Get(el); target != nil {
			target.Opacity = opacity
		}
	})
}

func (e *Exploder) emit(c Cue, delay time.Duration) {
	if e.cue == nil {
		return
	}
	if delay <= 0 {
		e.cue(c)
		return
	}
	fn := e.cue
	e.timers.After(delay, func() { fn(c) })
}

// size returns the catalog size of kind, zero if unknown
func (e *Exploder) size(kind string) (w, h int) {
	spec, err := e.sched.catalog.Lookup(kind)
	if err != nil {
		return 0, 0
	}
	return spec.Width, spec.Height
}

// density is the blast count for a picture area measured in units of a w x h blast
func (e *Exploder) density(g geometry, perUnit float64, w, h int) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	return int(math.Round(perUnit * float64(g.picW*g.picH) / float64(w*h)))
}

// intIn returns a uniform integer in [lo, hi], bounds in either order
func (e *Exploder) intIn(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + e.rng.IntN(hi-lo+1)
}

// durIn returns a uniform duration in [lo, hi] at millisecond resolution
func (e *Exploder) durIn(lo, hi time.Duration) time.Duration {
	return time.Duration(e.intIn(int(lo.Milliseconds()), int(hi.Milliseconds()))) * time.Millisecond
}

func scale(d time.Duration, k float64) time.Duration {
	return time.Duration(float64(d) * k)
}
