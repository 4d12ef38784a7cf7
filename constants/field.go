package constants

// Particle Field
const (
	// ParticleAreaPerParticle is the canvas area (px²) per generated particle
	ParticleAreaPerParticle = 9000.0

	// ParticleMinSize and ParticleSizeRange give radii in [1.5, 3.5)
	ParticleMinSize   = 1.5
	ParticleSizeRange = 2.0

	// ParticleMaxDrift bounds each velocity axis to [-0.2, 0.2) px/frame
	ParticleMaxDrift = 0.2

	// ParticleSaturation, ParticleLightness, ParticleAlpha define hsla(h, 70%, 75%, 0.8)
	ParticleSaturation = 0.70
	ParticleLightness  = 0.75
	ParticleAlpha      = 0.8

	// PointerRadius is the interaction radius around the pointer
	PointerRadius = 150.0

	// PushStrength scales the one-shot repulsion displacement
	PushStrength = 2.5

	// LinkDivisor sets the link threshold to (w/7)*(h/7) squared pixels
	LinkDivisor = 7.0

	// LinkFadeDistanceSq is the squared distance at which link opacity reaches zero
	LinkFadeDistanceSq = 20000.0

	// LinkOpacityScale halves link opacity before stroking
	LinkOpacityScale = 0.5
)

// Link stroke color rgb(200, 220, 255)
const (
	LinkColorR = 200
	LinkColorG = 220
	LinkColorB = 255
)
