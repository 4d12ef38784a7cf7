package constants

import "time"

// Audio Engine
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap is the minimum gap between consecutive burst chimes
	MinSoundGap = 50 * time.Millisecond
)

// Burst Chime Timing
const (
	BurstChimeDuration = 140 * time.Millisecond
	BurstChimeAttack   = 4 * time.Millisecond
	BurstChimeRelease  = 120 * time.Millisecond

	// BurstChimeOvertoneRelease is shorter so the octave fades first
	BurstChimeOvertoneRelease = 60 * time.Millisecond
)

// Burst Chime Pitch
const (
	// BurstChimeRootHz is C5; the trail hue picks a degree of the pentatonic scale above it
	BurstChimeRootHz = 523.25
)

// BurstChimeScale holds pentatonic semitone offsets from the root, one per 72° of hue
var BurstChimeScale = [5]int{0, 2, 4, 7, 9}
