package engine

import (
	"sync/atomic"
	"time"
)

// MockTimeProvider is a hand-driven clock for tests
// Time is kept as an offset from the start instant so Advance is lock-free
type MockTimeProvider struct {
	origin time.Time
	offset atomic.Int64
}

// NewMockTimeProvider starts the clock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{origin: start}
}

func (m *MockTimeProvider) Now() time.Time {
	return m.origin.Add(time.Duration(m.offset.Load()))
}

// SetTime jumps the clock to t, which may lie before the start instant
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.offset.Store(int64(t.Sub(m.origin)))
}

// Advance moves the clock forward by d and returns the new time
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	return m.origin.Add(time.Duration(m.offset.Add(int64(d))))
}
