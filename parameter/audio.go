package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap between consecutive cues of the same type
	// Explosion bursts trigger many blasts within milliseconds
	MinSoundGap = 80 * time.Millisecond
)

// Blast Sound
const (
	BlastSoundDuration = 600 * time.Millisecond
	BlastSoundAttack   = 5 * time.Millisecond
	BlastSoundRelease  = 450 * time.Millisecond
	BlastRumbleFreq    = 55.0
)

// Burn Sound
const (
	BurnSoundDuration = 900 * time.Millisecond
	BurnSoundAttack   = 200 * time.Millisecond
	BurnSoundRelease  = 500 * time.Millisecond
)

// Thruster Sound
const (
	ThrusterSoundDuration = 700 * time.Millisecond
	ThrusterSoundAttack   = 100 * time.Millisecond
	ThrusterSoundRelease  = 300 * time.Millisecond
	ThrusterBaseFreq      = 90.0
)

// Chime Sound
const (
	ChimeNote1Duration = 90 * time.Millisecond
	ChimeNote2Duration = 250 * time.Millisecond
	ChimeAttack        = 5 * time.Millisecond
	ChimeNote1Release  = 40 * time.Millisecond
	ChimeNote2Release  = 200 * time.Millisecond
)
