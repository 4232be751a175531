// Command botview plays a robot skirmish on the terminal: the board, explosions,
// dialogs and sound cues of the match view, driven by an in-memory match.
package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/botview/audio"
	"github.com/lixenwraith/botview/config"
	"github.com/lixenwraith/botview/core"
	"github.com/lixenwraith/botview/effect"
	"github.com/lixenwraith/botview/engine"
	"github.com/lixenwraith/botview/game"
	"github.com/lixenwraith/botview/parameter"
	"github.com/lixenwraith/botview/status"
	"github.com/lixenwraith/botview/surface"
	"github.com/lixenwraith/botview/view"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the view crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "botview: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if logFile := setupLogging(cfg.LogDir, cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("seed %d", seed)

	roster, err := game.LoadRoster(cfg.Roster)
	if err != nil {
		return err
	}
	match, err := roster.Build(rand.New(rand.NewPCG(seed, seed>>1)))
	if err != nil {
		return err
	}
	catalog, err := effect.LoadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	core.SetCrashScreen(screen)
	defer func() {
		core.SetCrashScreen(nil)
		screen.Fini()
	}()

	audioCfg := audio.DefaultAudioConfig().WithVolume(cfg.Volume)
	audioCfg.Enabled = cfg.Audio
	sounds := audio.NewSoundManager(audioCfg)
	if err := sounds.Initialize(); err != nil {
		log.Printf("[WARN] continuing without sound: %v", err)
	}
	defer sounds.Cleanup()

	var (
		quit     = make(chan struct{})
		quitOnce sync.Once
	)
	stop := func() { quitOnce.Do(func() { close(quit) }) }

	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	reg := status.NewRegistry()
	rosterSource := cfg.Roster
	if rosterSource == "" {
		rosterSource = "embedded"
	}
	reg.Strings.Get("match.roster").Store(rosterSource)
	paused := reg.Bools.Get("clock.paused")
	rng := rand.New(rand.NewPCG(seed^0x5bd1e995, seed))
	ai := newComputer(cfg.AIDelay, rng)

	w, h := screen.Size()
	var session *view.Session
	session = view.NewSession(match, clock,
		view.WithSize(w, h),
		view.WithRand(rng),
		view.WithCatalog(catalog),
		view.WithStatus(reg),
		view.WithAI(ai.Play),
		view.WithCue(sounds.PlayCue),
		// Leave once the board has faded out
		view.WithExit(func() { session.Timers().After(parameter.FadeDuration, stop) }),
	)

	loop := engine.NewFrameLoop(clock, session.Timers(), reg, cfg.TickInterval)
	for _, sys := range session.Systems() {
		loop.Register(sys)
	}
	renderer := surface.NewRenderer(screen, session.Tree(), surface.DefaultTheme())
	renderer.OnResize = session.Resize
	loop.SetRenderer(func(time.Time) { renderer.Draw() })

	loop.Post(func() { startMatch(session, ai, cfg.Backdrop) })

	if cfg.WatchCatalog {
		watcher, err := effect.NewWatcher(cfg.Catalog)
		if err != nil {
			return fmt.Errorf("watch catalog: %w", err)
		}
		defer watcher.Close()
		core.Go(func() { forwardCatalogs(watcher, loop, session) })
	}

	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if key, ok := ev.(*tcell.EventKey); ok {
				switch {
				case key.Key() == tcell.KeyEscape, key.Key() == tcell.KeyCtrlC, key.Rune() == 'q':
					stop()
					continue
				case key.Rune() == 'p':
					paused.Store(clock.Toggle())
					log.Printf("paused: %v", paused.Load())
					continue
				}
			}
			loop.Post(func() { renderer.HandleEvent(ev) })
		}
	})

	loop.Start()
	<-quit
	loop.Stop()

	for _, line := range reg.Snapshot() {
		log.Print(line)
	}
	return nil
}

// startMatch puts every robot on the board and hands out the first turn
func startMatch(s *view.Session, ai *computer, backdrop int) {
	s.SetBackdrop(backdrop)
	ctrl := s.Controller()
	for _, r := range ctrl.Robots() {
		s.AddRobot(r)
	}
	match, ok := ctrl.(*game.Match)
	if !ok {
		return
	}
	first := match.Start()
	s.UpdateRobots()
	if first == nil {
		s.CheckForEndgame()
		return
	}
	if ctrl.FactionType(first.Faction) == game.FactionHuman {
		s.ShowNextDialogOrAdvanceTurn()
		return
	}
	ai.Play(s, first.Faction)
}

// forwardCatalogs hands reloaded catalogs to the loop
func forwardCatalogs(w *effect.Watcher, loop *engine.FrameLoop, s *view.Session) {
	for {
		select {
		case c, ok := <-w.Catalogs:
			if !ok {
				return
			}
			loop.Post(func() { s.Scheduler().SetCatalog(c) })
			log.Printf("effect catalog reloaded")
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("[WARN] effect catalog reload failed: %v", err)
		}
	}
}
