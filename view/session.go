// Package view is the match presentation session: it owns the surface tree,
// the timer queue, sprite effects and the dialog stack for one game, and
// routes clicks on robot panels back into the game controller.
package view

import (
	"log"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lixenwraith/botview/dialog"
	"github.com/lixenwraith/botview/effect"
	"github.com/lixenwraith/botview/engine"
	"github.com/lixenwraith/botview/game"
	"github.com/lixenwraith/botview/parameter"
	"github.com/lixenwraith/botview/status"
	"github.com/lixenwraith/botview/surface"
)

// Session is one match view
// Not safe for concurrent use; every method runs on the frame loop goroutine
type Session struct {
	ctrl   game.Controller
	clock  engine.TimeProvider
	timers *engine.TimerQueue
	tree   *surface.Tree
	rng    *rand.Rand

	sched    *effect.Scheduler
	motions  *effect.Motions
	exploder *effect.Exploder
	dialogs  *dialog.Manager
	printer  *message.Printer

	content  surface.ID
	factions map[string]*factionPanel
	robots   map[string]*robotPanel
	winner   string
	backdrop int
	hideTmr  engine.TimerID

	// keepDefeated holds defeated factions on the board while their robots explode
	keepDefeated bool

	ai   func(s *Session, faction string)
	cue  func(effect.Cue)
	exit func()

	statRobots   *atomic.Int64
	statFactions *atomic.Int64
}

type config struct {
	width, height int
	rng           *rand.Rand
	catalog       *effect.Catalog
	reg           *status.Registry
	ai            func(s *Session, faction string)
	cue           func(effect.Cue)
	exit          func()
}

// Option configures a Session
type Option func(*config)

// WithSize sets the initial surface size in cells
func WithSize(w, h int) Option {
	return func(c *config) { c.width, c.height = w, h }
}

// WithRand injects the random source used for explosions and backdrops
func WithRand(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

// WithCatalog replaces the embedded effect catalog
func WithCatalog(cat *effect.Catalog) Option {
	return func(c *config) { c.catalog = cat }
}

// WithStatus shares a metrics registry
func WithStatus(reg *status.Registry) Option {
	return func(c *config) { c.reg = reg }
}

// WithAI installs the hook that plays turns of non-human factions
func WithAI(fn func(s *Session, faction string)) Option {
	return func(c *config) { c.ai = fn }
}

// WithCue installs the sound hook for explosions and turn announcements
func WithCue(fn func(effect.Cue)) Option {
	return func(c *config) { c.cue = fn }
}

// WithExit installs what runs after the endgame dialog is dismissed
func WithExit(fn func()) Option {
	return func(c *config) { c.exit = fn }
}

// NewSession builds an empty board for ctrl on its own surface tree
func NewSession(ctrl game.Controller, clock engine.TimeProvider, opts ...Option) *Session {
	cfg := config{width: 80, height: 24}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.reg == nil {
		cfg.reg = status.NewRegistry()
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	tree := surface.NewTree(cfg.width, cfg.height)
	timers := engine.NewTimerQueue(clock)
	sched := effect.NewScheduler(tree, timers, clock, cfg.catalog, cfg.reg)
	motions := effect.NewMotions(tree, clock)

	s := &Session{
		ctrl:         ctrl,
		clock:        clock,
		timers:       timers,
		tree:         tree,
		rng:          cfg.rng,
		sched:        sched,
		motions:      motions,
		exploder:     effect.NewExploder(sched, motions, timers, cfg.rng),
		dialogs:      dialog.NewManager(tree, timers, cfg.reg),
		printer:      message.NewPrinter(language.English),
		factions:     make(map[string]*factionPanel),
		robots:       make(map[string]*robotPanel),
		ai:           cfg.ai,
		cue:          cfg.cue,
		exit:         cfg.exit,
		statRobots:   cfg.reg.Ints.Get("view.robots"),
		statFactions: cfg.reg.Ints.Get("view.factions"),
	}
	s.exploder.SetCue(s.emit)

	s.content = tree.Add(tree.Root(), &surface.Element{
		Kind:    surface.KindBox,
		Name:    "content",
		Rect:    surface.Rect{W: cfg.width, H: cfg.height},
		Layer:   parameter.LayerBackdrop,
		Classes: []string{"content"},
		Opacity: 1,
	})
	return s
}

// Controller returns the game being shown
func (s *Session) Controller() game.Controller { return s.ctrl }

// Tree returns the surface tree to render
func (s *Session) Tree() *surface.Tree { return s.tree }

// Timers returns the queue drained once per frame
func (s *Session) Timers() *engine.TimerQueue { return s.timers }

// Scheduler returns the sprite scheduler
func (s *Session) Scheduler() *effect.Scheduler { return s.sched }

// Motions returns the jump animator
func (s *Session) Motions() *effect.Motions { return s.motions }

// Dialogs returns the dialog stack
func (s *Session) Dialogs() *dialog.Manager { return s.dialogs }

// Clock returns the view clock
func (s *Session) Clock() engine.TimeProvider { return s.clock }

// Systems returns the per-frame systems for registration with a frame loop
func (s *Session) Systems() []engine.System {
	return []engine.System{s.motions, s.sched}
}

// Tick advances the view by one frame at now: timers first, then motions, then sprites
func (s *Session) Tick(now time.Time) {
	s.timers.Run(now)
	s.motions.Update(now)
	s.sched.Update(now)
}

// Resize lays the board out again for a new surface size
func (s *Session) Resize(w, h int) {
	s.tree.Resize(w, h)
	if el := s.tree.Get(s.content); el != nil {
		el.Rect = surface.Rect{W: w, H: h}
	}
	s.UpdateRobots()
	s.dialogs.Relayout()
}

// Hide fades the board out and hides it once the fade completes
func (s *Session) Hide() {
	el := s.tree.Get(s.content)
	if el == nil {
		return
	}
	el.Opacity = 0
	s.timers.Cancel(s.hideTmr)
	s.hideTmr = s.timers.After(parameter.FadeDuration, func() {
		if el := s.tree.Get(s.content); el != nil {
			el.Hidden = true
		}
	})
}

// Show brings the board back
func (s *Session) Show() {
	s.timers.Cancel(s.hideTmr)
	if el := s.tree.Get(s.content); el != nil {
		el.Hidden = false
		el.Opacity = 1
	}
}

// Visible reports whether the board is shown and not fading out
func (s *Session) Visible() bool {
	el := s.tree.Get(s.content)
	return el != nil && !el.Hidden && el.Opacity > 0
}

// SetBackdrop selects backdrop n; zero picks one at random and unknown numbers use the last
func (s *Session) SetBackdrop(n int) int {
	if n == 0 {
		n = parameter.BackdropMin + s.rng.IntN(parameter.BackdropMax-parameter.BackdropMin+1)
	}
	if n < parameter.BackdropMin || n > parameter.BackdropMax {
		n = parameter.BackdropMax
	}
	s.backdrop = n
	if el := s.tree.Get(s.content); el != nil {
		el.SetClasses("content", backdropClass(n))
	}
	return n
}

// Backdrop returns the current backdrop number, zero if none was set
func (s *Session) Backdrop() int { return s.backdrop }

// ResetGame removes every faction and robot panel; refused while a game is running
func (s *Session) ResetGame() bool {
	if s.ctrl.InProgress() {
		log.Printf("[WARN] view: cannot reset the view while a game is in progress")
		return false
	}
	s.sched.Clear()
	s.motions.Clear()
	s.dialogs.Clear()
	for name, fp := range s.factions {
		s.tree.Remove(fp.el)
		delete(s.factions, name)
	}
	clear(s.robots)
	s.winner = ""
	s.statRobots.Store(0)
	s.statFactions.Store(0)
	return true
}

func (s *Session) emit(c effect.Cue) {
	if s.cue != nil {
		s.cue(c)
	}
}

// add attaches a fully opaque element
func (s *Session) add(parent surface.ID, el *surface.Element) surface.ID {
	el.Opacity = 1
	return s.tree.Add(parent, el)
}
