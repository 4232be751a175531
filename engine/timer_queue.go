package engine

import (
	"container/heap"
	"time"
)

// TimerID identifies a pending timer
type TimerID uint64

type timer struct {
	id    TimerID
	due   time.Time
	seq   uint64
	fn    func()
	index int
}

// timerHeap orders timers by due time, then by scheduling order
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// TimerQueue holds fixed-delay callbacks fired from the frame loop
// Not safe for concurrent use; owned by the loop goroutine
type TimerQueue struct {
	clock  TimeProvider
	timers timerHeap
	byID   map[TimerID]*timer
	nextID TimerID
	seq    uint64
}

// NewTimerQueue creates an empty queue reading time from clock
func NewTimerQueue(clock TimeProvider) *TimerQueue {
	return &TimerQueue{
		clock: clock,
		byID:  make(map[TimerID]*timer),
	}
}

// After schedules fn to run once delay has elapsed; negative delays count as zero
func (q *TimerQueue) After(delay time.Duration, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	q.nextID++
	q.seq++
	t := &timer{
		id:  q.nextID,
		due: q.clock.Now().Add(delay),
		seq: q.seq,
		fn:  fn,
	}
	heap.Push(&q.timers, t)
	q.byID[t.id] = t
	return t.id
}

// Cancel removes a pending timer, returns false if it already fired or was cancelled
func (q *TimerQueue) Cancel(id TimerID) bool {
	t, ok := q.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&q.timers, t.index)
	delete(q.byID, id)
	return true
}

// Pending reports whether id is still scheduled
func (q *TimerQueue) Pending(id TimerID) bool {
	_, ok := q.byID[id]
	return ok
}

// Run fires every timer due at or before now, in due order
// Timers scheduled by callbacks fire in the same run if already due
func (q *TimerQueue) Run(now time.Time) int {
	fired := 0
	for len(q.timers) > 0 {
		next := q.timers[0]
		if next.due.After(now) {
			break
		}
		heap.Pop(&q.timers)
		delete(q.byID, next.id)
		next.fn()
		fired++
	}
	return fired
}

// Len returns the number of pending timers
func (q *TimerQueue) Len() int {
	return len(q.timers)
}

// NextDue returns the earliest pending deadline
func (q *TimerQueue) NextDue() (time.Time, bool) {
	if len(q.timers) == 0 {
		return time.Time{}, false
	}
	return q.timers[0].due, true
}

// Clear drops every pending timer
func (q *TimerQueue) Clear() {
	q.timers = nil
	clear(q.byID)
}
