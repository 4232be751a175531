// Package audio synthesises the sound cues of explosions, fires, jumps and
// turn announcements with beep and plays them through a shared mixer.
package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/botview/effect"
	"github.com/lixenwraith/botview/parameter"
)

// SoundManager manages all match audio
// Safe for concurrent use; Play is called from the frame loop, Cleanup from shutdown
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool

	lastPlayed [soundTypeCount]time.Time
	now        func() time.Time
}

// NewSoundManager creates a sound manager; nil uses the default mix
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize sets up the speaker; a disabled config returns ErrDisabled
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrDisabled
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds; the speaker itself stays open
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// Play mixes in a fresh copy of soundType
// Repeats of one type closer than the minimum gap are dropped
func (sm *SoundManager) Play(soundType SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}
	if soundType < 0 || soundType >= soundTypeCount {
		log.Printf("[WARN] audio: %v %d", ErrUnknownSound, soundType)
		return false
	}

	now := sm.now()
	if last := sm.lastPlayed[soundType]; !last.IsZero() && now.Sub(last) < parameter.MinSoundGap {
		return false
	}
	sm.lastPlayed[soundType] = now

	streamer := GetSoundEffect(soundType, sm.cfg)
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	return true
}

// PlayCue plays the sound mapped to an effect cue
func (sm *SoundManager) PlayCue(c effect.Cue) {
	if st, ok := ForCue(c); ok {
		sm.Play(st)
	}
}

// Active returns the number of sounds still in the mixer
func (sm *SoundManager) Active() int {
	speaker.Lock()
	defer speaker.Unlock()
	return sm.mixer.Len()
}
