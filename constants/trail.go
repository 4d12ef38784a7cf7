package constants

import "time"

// Cursor Trail
const (
	// TrailDotCount is the number of chained dots
	TrailDotCount = 25

	// TrailBaseSize is the head dot diameter; each later dot shrinks by TrailSizeStep down to TrailMinSize
	TrailBaseSize = 16.0
	TrailSizeStep = 0.6
	TrailMinSize  = 4.0

	// TrailHeadSpeed is the easing fraction of dot 0; later dots lose TrailSpeedStep each
	TrailHeadSpeed = 0.15
	TrailSpeedStep = 0.004

	// TrailBaseOpacity fades by TrailOpacityStep per dot down to TrailMinOpacity
	TrailBaseOpacity = 0.9
	TrailOpacityStep = 0.03
	TrailMinOpacity  = 0.1

	// TrailHistorySize is the sliding window of pointer samples used for velocity
	TrailHistorySize = 3

	// TrailVelocityScale converts px/ms into the velocity estimate
	TrailVelocityScale = 10.0

	// TrailVelocityDecay is applied every frame
	TrailVelocityDecay = 0.95

	// TrailVelocityNormalizer maps velocity to factor via min(v/5, 1)
	TrailVelocityNormalizer = 5.0

	// Render modulation: opacity*(0.3+0.7vf), size*(0.8+0.4vf), glow 20+15vf
	TrailOpacityFloor = 0.3
	TrailOpacityGain  = 0.7
	TrailSizeFloor    = 0.8
	TrailSizeGain     = 0.4
	TrailGlowBase     = 20.0
	TrailGlowGain     = 15.0

	// Dot color hsl(hue, 85%, 65%)
	TrailSaturation = 0.85
	TrailLightness  = 0.65
)

// Click Burst
const (
	BurstCount       = 8
	BurstMinDistance = 50.0
	BurstDistRange   = 30.0
	BurstSize        = 6.0
	BurstLifetime    = 800 * time.Millisecond

	// Burst color hsl(hue, 80%, 60%)
	BurstSaturation = 0.80
	BurstLightness  = 0.60
)

// Movement Controller
const (
	// IdleTimeout is the pointer inactivity before synthetic circular motion takes over
	IdleTimeout = 3000 * time.Millisecond

	// CircleAngleStep is the angle advanced per frame in radians
	CircleAngleStep = 0.02

	// CircleRadiusRatio is the orbit radius as a fraction of the smaller viewport dimension
	CircleRadiusRatio = 0.2
)
