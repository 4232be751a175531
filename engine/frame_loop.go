package engine

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/botview/core"
	"github.com/lixenwraith/botview/parameter"
	"github.com/lixenwraith/botview/status"
)

// System is advanced once per frame by the loop
type System interface {
	Name() string
	Priority() int
	Update(now time.Time)
}

// FrameLoop drives timers, systems and rendering on a fixed tick
// All view state is mutated from the loop goroutine; other goroutines hand work in through Post
type FrameLoop struct {
	clock  TimeProvider
	timers *TimerQueue

	systems []System
	render  func(now time.Time)

	tickInterval     time.Duration
	nextTickDeadline time.Time

	posts chan func()

	tickCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Cached metric pointers
	statTicks    *atomic.Int64
	statTickTime *status.AtomicFloat
	statTickPeak *status.AtomicFloat
}

// NewFrameLoop creates a loop over the given clock and timer queue
func NewFrameLoop(clock TimeProvider, timers *TimerQueue, reg *status.Registry, tickInterval time.Duration) *FrameLoop {
	if tickInterval <= 0 {
		tickInterval = parameter.TickInterval
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &FrameLoop{
		clock:        clock,
		timers:       timers,
		tickInterval: tickInterval,
		posts:        make(chan func(), parameter.PostQueueSize),
		stopChan:     make(chan struct{}),
		statTicks:    reg.Ints.Get("loop.ticks"),
		statTickTime: reg.Floats.Get("loop.tick_ms"),
		statTickPeak: reg.Floats.Get("loop.tick_peak_ms"),
	}
}

// Register adds a system, must be called before Start()
func (l *FrameLoop) Register(s System) {
	l.systems = append(l.systems, s)
	sort.SliceStable(l.systems, func(i, j int) bool {
		return l.systems[i].Priority() < l.systems[j].Priority()
	})
}

// Systems returns registered systems in execution order
func (l *FrameLoop) Systems() []System {
	return l.systems
}

// SetRenderer installs the per-frame draw callback, must be called before Start()
func (l *FrameLoop) SetRenderer(fn func(now time.Time)) {
	l.render = fn
}

// Post queues fn to run on the loop goroutine before the next tick
// Returns false if the queue is full
func (l *FrameLoop) Post(fn func()) bool {
	select {
	case l.posts <- fn:
		return true
	default:
		return false
	}
}

// Step runs one frame synchronously: posted work, due timers, systems, render
func (l *FrameLoop) Step() {
	started := time.Now()

	l.drainPosts()

	now := l.clock.Now()
	l.timers.Run(now)
	for _, s := range l.systems {
		s.Update(now)
	}
	if l.render != nil {
		l.render(now)
	}

	ticks := l.tickCount.Add(1)
	l.statTicks.Store(int64(ticks))
	elapsed := float64(time.Since(started).Microseconds()) / 1000
	l.statTickTime.Set(elapsed)
	l.statTickPeak.SetMax(elapsed)
}

// Ticks returns the number of completed frames
func (l *FrameLoop) Ticks() uint64 {
	return l.tickCount.Load()
}

// Start begins the loop
func (l *FrameLoop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		core.Go(l.run)
	}
}

// Stop halts the loop and waits for the current frame to finish
func (l *FrameLoop) Stop() {
	l.stopOnce.Do(func() {
		if l.running.CompareAndSwap(true, false) {
			close(l.stopChan)
			l.wg.Wait()
		}
	})
}

// Done is closed once Stop has been requested
func (l *FrameLoop) Done() <-chan struct{} {
	return l.stopChan
}

func (l *FrameLoop) drainPosts() {
	for {
		select {
		case fn := <-l.posts:
			fn()
		default:
			return
		}
	}
}

// run paces frames on wall time with drift correction
// Wall time is used for pacing so a paused view clock keeps rendering
func (l *FrameLoop) run() {
	defer l.wg.Done()

	l.nextTickDeadline = time.Now().Add(l.tickInterval)

	timer := time.NewTimer(l.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-timer.C:
		}

		l.Step()

		now := time.Now()
		l.nextTickDeadline = l.nextTickDeadline.Add(l.tickInterval)
		if now.Sub(l.nextTickDeadline) > parameter.MaxTickLag {
			l.nextTickDeadline = now.Add(l.tickInterval)
		}

		sleep := l.nextTickDeadline.Sub(now)
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}
