package audio

import (
	"errors"

	"github.com/lixenwraith/botview/effect"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundBlast    SoundType = iota // Explosion burst
	SoundBurn                      // Wreckage catching fire
	SoundThruster                  // Jump jets
	SoundChime                     // Turn announcement
	soundTypeCount
)

func (st SoundType) String() string {
	switch st {
	case SoundBlast:
		return "blast"
	case SoundBurn:
		return "burn"
	case SoundThruster:
		return "thruster"
	case SoundChime:
		return "chime"
	default:
		return "unknown"
	}
}

// ForCue maps an effect cue to its sound
func ForCue(c effect.Cue) (SoundType, bool) {
	switch c {
	case effect.CueBlast:
		return SoundBlast, true
	case effect.CueBurn:
		return SoundBurn, true
	case effect.CueThruster:
		return SoundThruster, true
	case effect.CueChime:
		return SoundChime, true
	default:
		return 0, false
	}
}

// Sentinel errors
var (
	ErrDisabled     = errors.New("audio disabled")
	ErrUnknownSound = errors.New("unknown sound type")
)
