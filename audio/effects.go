package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/cursorfx/constants"
)

// envelope applies linear attack and release to a stream of fixed length
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s to duration with the given attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; zero or negative gain is silent
// math.Log2(0) is -Inf so silence goes through the Silent flag
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ChimeFrequency maps a hue in degrees onto the pentatonic scale above the root
func ChimeFrequency(hue float64) float64 {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	degree := int(hue / 72)
	if degree >= len(constants.BurstChimeScale) {
		degree = len(constants.BurstChimeScale) - 1
	}
	semis := constants.BurstChimeScale[degree]
	return constants.BurstChimeRootHz * math.Pow(2, float64(semis)/12)
}

// CreateBurstSound builds a short two-partial chime pitched by the burst hue
func CreateBurstSound(cfg *Config, hue float64) (beep.Streamer, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	freq := ChimeFrequency(hue)

	fund, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	over, err := generators.SineTone(rate, freq*2)
	if err != nil {
		return nil, err
	}

	fundShaped := NewEnvelope(fund, constants.BurstChimeDuration,
		constants.BurstChimeAttack, constants.BurstChimeRelease, rate)
	overShaped := NewEnvelope(over, constants.BurstChimeDuration,
		constants.BurstChimeAttack, constants.BurstChimeOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, cfg.BurstVolume*cfg.MasterVolume), nil
}
