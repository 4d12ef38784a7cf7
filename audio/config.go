package audio

import "github.com/lixenwraith/cursorfx/constants"

// Config holds audio output settings
type Config struct {
	Enabled      bool
	MasterVolume float64
	BurstVolume  float64
	SampleRate   int
}

// DefaultConfig returns audio enabled at a moderate level
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		BurstVolume:  0.6,
		SampleRate:   constants.AudioSampleRate,
	}
}
