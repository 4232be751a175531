package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/botview/status"
)

type recordingSystem struct {
	name     string
	priority int
	log      *[]string
	last     time.Time
}

func (s *recordingSystem) Name() string  { return s.name }
func (s *recordingSystem) Priority() int { return s.priority }
func (s *recordingSystem) Update(now time.Time) {
	*s.log = append(*s.log, s.name)
	s.last = now
}

// TestFrameLoopStepOrder verifies posts, timers, systems by priority, then render
func TestFrameLoopStepOrder(t *testing.T) {
	clock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	timers := NewTimerQueue(clock)
	reg := status.NewRegistry()
	loop := NewFrameLoop(clock, timers, reg, 0)

	var log []string
	loop.Register(&recordingSystem{name: "late", priority: 20, log: &log})
	early := &recordingSystem{name: "early", priority: 10, log: &log}
	loop.Register(early)
	loop.SetRenderer(func(time.Time) { log = append(log, "render") })

	loop.Post(func() {
		log = append(log, "post")
		timers.After(0, func() { log = append(log, "timer") })
	})

	loop.Step()

	want := []string{"post", "timer", "early", "late", "render"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %s, want %s", i, log[i], want[i])
		}
	}
	if !early.last.Equal(clock.Now()) {
		t.Errorf("system saw %v, want %v", early.last, clock.Now())
	}
	if loop.Ticks() != 1 || reg.Ints.Get("loop.ticks").Load() != 1 {
		t.Errorf("ticks = %d/%d, want 1", loop.Ticks(), reg.Ints.Get("loop.ticks").Load())
	}
}

// TestFrameLoopStartStop verifies the paced loop runs frames and stops cleanly
func TestFrameLoopStartStop(t *testing.T) {
	clock := NewMonotonicTimeProvider()
	loop := NewFrameLoop(clock, NewTimerQueue(clock), nil, 2*time.Millisecond)

	var frames atomic.Int32
	loop.SetRenderer(func(time.Time) { frames.Add(1) })

	loop.Start()
	loop.Start() // no-op

	deadline := time.Now().Add(2 * time.Second)
	for frames.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	loop.Stop()
	loop.Stop() // no-op

	if frames.Load() < 3 {
		t.Fatalf("only %d frames ran", frames.Load())
	}

	after := frames.Load()
	time.Sleep(10 * time.Millisecond)
	if frames.Load() != after {
		t.Error("frames ran after Stop")
	}

	select {
	case <-loop.Done():
	default:
		t.Error("Done not closed after Stop")
	}
}

func TestFrameLoopPostFull(t *testing.T) {
	clock := NewMonotonicTimeProvider()
	loop := NewFrameLoop(clock, NewTimerQueue(clock), nil, 0)

	accepted := 0
	for i := 0; i < cap(loop.posts)+5; i++ {
		if loop.Post(func() {}) {
			accepted++
		}
	}
	if accepted != cap(loop.posts) {
		t.Errorf("accepted %d posts, want %d", accepted, cap(loop.posts))
	}
}
