package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/botview/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sweep is a sine whose frequency glides linearly from one pitch to another
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewSweep creates a gliding sine oscillator
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, duration: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		u := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*u
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(0, total-att-rel)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(0, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; zero or less is silent
// math.Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateBlastSound generates a noise crack over a low rumble
func CreateBlastSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.BlastSoundDuration

	crack := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d,
		parameter.BlastSoundAttack, parameter.BlastSoundRelease, rate)
	rumble := NewEnvelope(NewSweep(parameter.BlastRumbleFreq*2, parameter.BlastRumbleFreq, d, rate), d,
		parameter.BlastSoundAttack, parameter.BlastSoundRelease, rate)

	mixed := beep.Mix(
		newVolume(crack, 0.5),
		newVolume(rumble, 0.5),
	)
	return newVolume(mixed, cfg.EffectVolumes[SoundBlast]*cfg.MasterVolume)
}

// CreateBurnSound generates a soft swelling crackle
func CreateBurnSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.BurnSoundDuration

	noise := NewOscillator(0, d, WaveNoise, rate)
	shaped := NewEnvelope(noise, d, parameter.BurnSoundAttack, parameter.BurnSoundRelease, rate)

	return newVolume(shaped, cfg.EffectVolumes[SoundBurn]*cfg.MasterVolume)
}

// CreateThrusterSound generates a rising saw roar with hiss
func CreateThrusterSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.ThrusterSoundDuration

	roar := NewEnvelope(NewOscillator(parameter.ThrusterBaseFreq, d, WaveSaw, rate), d,
		parameter.ThrusterSoundAttack, parameter.ThrusterSoundRelease, rate)
	hiss := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d,
		parameter.ThrusterSoundAttack, parameter.ThrusterSoundRelease, rate)

	mixed := beep.Mix(
		newVolume(roar, 0.6),
		newVolume(hiss, 0.3),
	)
	return newVolume(mixed, cfg.EffectVolumes[SoundThruster]*cfg.MasterVolume)
}

// CreateChimeSound generates a two-note rising chime
func CreateChimeSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// E5 then A5
	n1 := NewOscillator(659.25, parameter.ChimeNote1Duration, WaveSine, rate)
	n1Shaped := NewEnvelope(n1, parameter.ChimeNote1Duration, parameter.ChimeAttack, parameter.ChimeNote1Release, rate)

	n2 := NewOscillator(880.0, parameter.ChimeNote2Duration, WaveSine, rate)
	n2Shaped := NewEnvelope(n2, parameter.ChimeNote2Duration, parameter.ChimeAttack, parameter.ChimeNote2Release, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), cfg.EffectVolumes[SoundChime]*cfg.MasterVolume)
}

// GetSoundEffect returns a fresh streamer for soundType, nil if unknown
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundBlast:
		return CreateBlastSound(cfg)
	case SoundBurn:
		return CreateBurnSound(cfg)
	case SoundThruster:
		return CreateThrusterSound(cfg)
	case SoundChime:
		return CreateChimeSound(cfg)
	default:
		return nil
	}
}
