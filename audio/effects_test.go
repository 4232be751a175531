package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/botview/parameter"
)

// drain streams s to exhaustion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer, limit int) (count int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for count <= limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		count += n
		if !ok {
			return count, peak
		}
	}
	t.Fatalf("stream did not end within %d samples", limit)
	return count, peak
}

// TestOscillatorWaves verifies every wave stays within [-1, 1] and ends at its duration
func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 50 * time.Millisecond
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(220, d, wave, rate)
		count, peak := drain(t, osc, rate.N(time.Second))
		if count != rate.N(d) {
			t.Errorf("wave %d: %d samples, want %d", wave, count, rate.N(d))
		}
		if peak > 1.0 {
			t.Errorf("wave %d: peak %f out of range", wave, peak)
		}
		if osc.Err() != nil {
			t.Errorf("wave %d: unexpected error %v", wave, osc.Err())
		}
	}
}

// TestOscillatorDrained verifies a finished oscillator reports no samples
func TestOscillatorDrained(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(100, 10*time.Millisecond, WaveSine, rate)
	buf := make([][2]float64, 20)
	if n, ok := osc.Stream(buf); n != 10 || !ok {
		t.Fatalf("first stream = %d, %v; want 10, true", n, ok)
	}
	if n, ok := osc.Stream(buf); n != 0 || ok {
		t.Errorf("drained stream = %d, %v; want 0, false", n, ok)
	}
}

func TestSweepLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	d := 100 * time.Millisecond
	count, peak := drain(t, NewSweep(110, 55, d, rate), rate.N(time.Second))
	if count != rate.N(d) {
		t.Errorf("sweep: %d samples, want %d", count, rate.N(d))
	}
	if peak == 0 || peak > 1 {
		t.Errorf("sweep peak %f", peak)
	}
}

// TestEnvelopeShape verifies silence at the start, full level in sustain and fade in release
func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	// Square wave at 1.0 for the first half cycle of a very low frequency
	osc := NewOscillator(1, d, WaveSquare, rate)
	env := NewEnvelope(osc, d, 10*time.Millisecond, 20*time.Millisecond, rate)

	buf := make([][2]float64, 100)
	n, _ := env.Stream(buf)
	if n != 100 {
		t.Fatalf("streamed %d, want 100", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want 0", buf[0][0])
	}
	if buf[50][0] != 1 {
		t.Errorf("sustain sample = %f, want 1", buf[50][0])
	}
	if buf[95][0] >= 0.5 || buf[95][0] <= 0 {
		t.Errorf("release sample = %f, want fading", buf[95][0])
	}
}

func TestChimeLength(t *testing.T) {
	cfg := DefaultAudioConfig()
	rate := beep.SampleRate(cfg.SampleRate)
	want := rate.N(parameter.ChimeNote1Duration) + rate.N(parameter.ChimeNote2Duration)
	count, peak := drain(t, CreateChimeSound(cfg), rate.N(time.Second))
	if count != want {
		t.Errorf("chime: %d samples, want %d", count, want)
	}
	if peak == 0 {
		t.Error("chime is silent")
	}
}

// TestSoundEffects verifies every sound type produces audio with the default mix
func TestSoundEffects(t *testing.T) {
	cfg := DefaultAudioConfig()
	for st := SoundType(0); st < soundTypeCount; st++ {
		s := GetSoundEffect(st, cfg)
		if s == nil {
			t.Errorf("%s: no streamer", st)
			continue
		}
		buf := make([][2]float64, 4096)
		n, ok := s.Stream(buf)
		if n == 0 || !ok {
			t.Errorf("%s: no samples", st)
		}
		nonZero := false
		for i := 0; i < n; i++ {
			if buf[i][0] != 0 {
				nonZero = true
				break
			}
		}
		if !nonZero {
			t.Errorf("%s: silent", st)
		}
	}
	if GetSoundEffect(soundTypeCount, cfg) != nil {
		t.Error("unknown sound type produced a streamer")
	}
}

// TestMutedVolume verifies a zero master volume produces silence
func TestMutedVolume(t *testing.T) {
	cfg := DefaultAudioConfig().WithVolume(0)
	buf := make([][2]float64, 1024)
	n, _ := CreateBurnSound(cfg).Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 {
			t.Fatalf("sample %d = %f, want silence", i, buf[i][0])
		}
	}
}

func TestWithVolumeClamps(t *testing.T) {
	base := DefaultAudioConfig()
	tests := []struct {
		percent int
		want    float64
	}{
		{-5, 0},
		{0, 0},
		{50, 0.5},
		{100, 1},
		{250, 1},
	}
	for _, tt := range tests {
		if got := base.WithVolume(tt.percent).MasterVolume; got != tt.want {
			t.Errorf("WithVolume(%d) = %f, want %f", tt.percent, got, tt.want)
		}
	}
	if base.MasterVolume != 0.5 {
		t.Error("WithVolume modified the receiver")
	}
}
