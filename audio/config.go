package audio

import "github.com/lixenwraith/botview/parameter"

// AudioConfig controls synthesis and mixing
type AudioConfig struct {
	Enabled       bool
	SampleRate    int
	MasterVolume  float64 // 0.0 to 1.0
	EffectVolumes [soundTypeCount]float64
}

// DefaultAudioConfig returns the mix used when nothing is configured
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		SampleRate:   parameter.AudioSampleRate,
		MasterVolume: 0.5,
		EffectVolumes: [soundTypeCount]float64{
			SoundBlast:    0.8,
			SoundBurn:     0.3,
			SoundThruster: 0.5,
			SoundChime:    0.4,
		},
	}
}

// WithVolume returns a copy with master volume set from a 0-100 percentage
func (c *AudioConfig) WithVolume(percent int) *AudioConfig {
	out := *c
	out.MasterVolume = min(max(float64(percent)/100, 0), 1)
	return &out
}
