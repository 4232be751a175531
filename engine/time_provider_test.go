package engine

import (
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestMockTimeProvider(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(startTime)

	if now := mock.Now(); !now.Equal(startTime) {
		t.Errorf("Expected initial time to be %v, got %v", startTime, now)
	}

	newTime := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.SetTime(newTime)
	if now := mock.Now(); !now.Equal(newTime) {
		t.Errorf("Expected time to be %v after SetTime, got %v", newTime, now)
	}

	got := mock.Advance(90 * time.Minute)
	expected := newTime.Add(90 * time.Minute)
	if !got.Equal(expected) || !mock.Now().Equal(expected) {
		t.Errorf("Expected time to be %v after Advance, got %v", expected, got)
	}
}

func TestMockTimeProviderConcurrency(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(startTime)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_ = mock.Now()
			}
			done <- true
		}()
	}
	for i := 0; i < 5; i++ {
		go func() {
			for j := 0; j < 50; j++ {
				mock.Advance(1 * time.Millisecond)
			}
			done <- true
		}()
	}
	for i := 0; i < 15; i++ {
		<-done
	}

	expected := startTime.Add(250 * time.Millisecond)
	if now := mock.Now(); !now.Equal(expected) {
		t.Errorf("Expected time to be %v after concurrent operations, got %v", expected, now)
	}
}

func TestTimeProviderInterface(t *testing.T) {
	var _ TimeProvider = &MonotonicTimeProvider{}
	var _ TimeProvider = &MockTimeProvider{}
	var _ TimeProvider = &PausableClock{}
}

// TestPausableClockFreezes verifies view time stops during pause and resumes without a jump
func TestPausableClockFreezes(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	source := NewMockTimeProvider(start)
	clock := NewPausableClock(source)

	source.Advance(time.Second)
	if got := clock.Now(); !got.Equal(start.Add(time.Second)) {
		t.Fatalf("running clock = %v, want %v", got, start.Add(time.Second))
	}

	if !clock.Toggle() {
		t.Fatal("Toggle should report paused")
	}
	source.Advance(5 * time.Second)
	if got := clock.Now(); !got.Equal(start.Add(time.Second)) {
		t.Errorf("paused clock moved to %v", got)
	}
	if d := clock.TotalPauseDuration(); d != 5*time.Second {
		t.Errorf("TotalPauseDuration = %v, want 5s", d)
	}

	clock.Resume()
	source.Advance(2 * time.Second)
	if got := clock.Now(); !got.Equal(start.Add(3 * time.Second)) {
		t.Errorf("resumed clock = %v, want %v", got, start.Add(3*time.Second))
	}
	if clock.IsPaused() {
		t.Error("clock still paused after Resume")
	}
}
