package engine

import (
	"testing"
	"time"
)

func newTestQueue() (*TimerQueue, *MockTimeProvider) {
	clock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewTimerQueue(clock), clock
}

// TestTimerQueueOrder verifies timers fire in due order, ties in scheduling order
func TestTimerQueueOrder(t *testing.T) {
	q, clock := newTestQueue()

	var fired []string
	q.After(30*time.Millisecond, func() { fired = append(fired, "c") })
	q.After(10*time.Millisecond, func() { fired = append(fired, "a") })
	q.After(10*time.Millisecond, func() { fired = append(fired, "b") })

	if n := q.Run(clock.Advance(5 * time.Millisecond)); n != 0 {
		t.Fatalf("fired %d timers before any were due", n)
	}
	if n := q.Run(clock.Advance(5 * time.Millisecond)); n != 2 {
		t.Fatalf("fired %d timers at 10ms, want 2", n)
	}
	q.Run(clock.Advance(time.Second))

	want := []string{"a", "b", "c"}
	if len(fired) != len(want) {
		t.Fatalf("fired %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fired[%d] = %s, want %s", i, fired[i], want[i])
		}
	}
}

func TestTimerQueueCancel(t *testing.T) {
	q, clock := newTestQueue()

	called := false
	id := q.After(10*time.Millisecond, func() { called = true })
	if !q.Pending(id) {
		t.Fatal("timer not pending after After")
	}
	if !q.Cancel(id) {
		t.Fatal("Cancel returned false for pending timer")
	}
	if q.Cancel(id) {
		t.Error("second Cancel returned true")
	}

	q.Run(clock.Advance(time.Second))
	if called {
		t.Error("cancelled timer fired")
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d, want 0", q.Len())
	}
}

// TestTimerQueueNegativeDelay verifies negative delays fire on the next run
func TestTimerQueueNegativeDelay(t *testing.T) {
	q, clock := newTestQueue()

	called := false
	q.After(-time.Second, func() { called = true })
	due, ok := q.NextDue()
	if !ok || !due.Equal(clock.Now()) {
		t.Errorf("NextDue = %v,%v, want %v", due, ok, clock.Now())
	}
	q.Run(clock.Now())
	if !called {
		t.Error("timer with negative delay did not fire")
	}
}

// TestTimerQueueChained verifies timers scheduled from callbacks fire in the same run when due
func TestTimerQueueChained(t *testing.T) {
	q, clock := newTestQueue()

	var order []int
	q.After(0, func() {
		order = append(order, 1)
		q.After(0, func() { order = append(order, 2) })
		q.After(time.Second, func() { order = append(order, 3) })
	})

	q.Run(clock.Now())
	if len(order) != 2 {
		t.Fatalf("order = %v, want [1 2]", order)
	}
	q.Run(clock.Advance(time.Second))
	if len(order) != 3 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestTimerQueueClear(t *testing.T) {
	q, clock := newTestQueue()
	id := q.After(time.Millisecond, func() { t.Error("cleared timer fired") })
	q.Clear()
	if q.Pending(id) || q.Len() != 0 {
		t.Error("Clear left timers pending")
	}
	q.Run(clock.Advance(time.Second))
}
