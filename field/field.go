package field

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/cursorfx/constants"
	"github.com/lixenwraith/cursorfx/engine"
	"github.com/lixenwraith/cursorfx/render"
)

// Config holds the tunable field parameters
type Config struct {
	AreaPerParticle    float64
	PointerRadius      float64
	PushStrength       float64
	LinkDivisor        float64
	LinkFadeDistanceSq float64
	LinkOpacityScale   float64
	LinkColor          render.RGB
	// ClampLinkAlpha clamps link opacity to [0,1] in the field instead of leaving it to the canvas
	ClampLinkAlpha bool
}

// DefaultConfig returns the stock field parameters
func DefaultConfig() Config {
	return Config{
		AreaPerParticle:    constants.ParticleAreaPerParticle,
		PointerRadius:      constants.PointerRadius,
		PushStrength:       constants.PushStrength,
		LinkDivisor:        constants.LinkDivisor,
		LinkFadeDistanceSq: constants.LinkFadeDistanceSq,
		LinkOpacityScale:   constants.LinkOpacityScale,
		LinkColor:          render.RGB{R: constants.LinkColorR, G: constants.LinkColorG, B: constants.LinkColorB},
	}
}

// Field is the drifting particle background bound to one canvas
// A Field without a canvas is inert: every operation is a no-op
type Field struct {
	canvas render.Canvas
	cfg    Config
	rng    *rand.Rand

	particles []Particle
	pointer   Pointer
	width     float64
	height    float64

	sched   *engine.Scheduler
	frameID engine.FrameID
	running bool

	links int
}

// New creates a field sized to the canvas and populates it
// rng may be nil, in which case a randomly seeded source is used
func New(canvas render.Canvas, cfg Config, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Field{
		canvas:  canvas,
		cfg:     cfg,
		rng:     rng,
		pointer: Pointer{Radius: cfg.PointerRadius},
	}
	if canvas != nil {
		f.Regenerate()
	}
	return f
}

// Inert reports whether the field has no canvas to draw on
func (f *Field) Inert() bool {
	return f.canvas == nil
}

// Regenerate discards all particles and creates floor(area/AreaPerParticle) new ones
// sized to the canvas' current dimensions
func (f *Field) Regenerate() {
	if f.canvas == nil {
		return
	}
	f.width, f.height = f.canvas.Size()
	f.particles = f.particles[:0]

	if f.cfg.AreaPerParticle <= 0 || f.width <= 0 || f.height <= 0 {
		return
	}
	count := int(math.Floor(f.width * f.height / f.cfg.AreaPerParticle))
	if cap(f.particles) < count {
		f.particles = make([]Particle, 0, count)
	}
	for i := 0; i < count; i++ {
		f.particles = append(f.particles, f.spawn())
	}
}

// spawn creates one particle at least 2*size away from every edge
func (f *Field) spawn() Particle {
	size := f.rng.Float64()*constants.ParticleSizeRange + constants.ParticleMinSize
	return Particle{
		X:          f.spawnCoord(f.width, size),
		Y:          f.spawnCoord(f.height, size),
		DirectionX: f.rng.Float64()*2*constants.ParticleMaxDrift - constants.ParticleMaxDrift,
		DirectionY: f.rng.Float64()*2*constants.ParticleMaxDrift - constants.ParticleMaxDrift,
		Size:       size,
		Color: render.HSLA(f.rng.Float64()*360,
			constants.ParticleSaturation, constants.ParticleLightness, constants.ParticleAlpha),
	}
}

// spawnCoord picks a coordinate in [2*size, dim-2*size), collapsing to the
// center when the canvas is too small to honor the margin
func (f *Field) spawnCoord(dim, size float64) float64 {
	lo := 2 * size
	span := dim - 4*size
	if span <= 0 {
		return dim / 2
	}
	return lo + f.rng.Float64()*span
}

// SetConfig replaces the parameters and regenerates the particles
func (f *Field) SetConfig(cfg Config) {
	f.cfg = cfg
	f.pointer.Radius = cfg.PointerRadius
	f.Regenerate()
}

// SetPointer records the pointer position in canvas pixels
func (f *Field) SetPointer(x, y float64) {
	if f.canvas == nil {
		return
	}
	f.pointer.X = x
	f.pointer.Y = y
	f.pointer.Present = true
}

// ClearPointer forgets the pointer; no repulsion happens until the next SetPointer
func (f *Field) ClearPointer() {
	f.pointer.Present = false
}

// Pointer returns the current pointer state
func (f *Field) Pointer() Pointer {
	return f.pointer
}

// Particles returns the live particle slice; callers must not retain it across Regenerate
func (f *Field) Particles() []Particle {
	return f.particles
}

// Len returns the particle count
func (f *Field) Len() int {
	return len(f.particles)
}

// Links returns the number of links stroked by the last Step
func (f *Field) Links() int {
	return f.links
}

// Bounds returns the dimensions particles bounce within
func (f *Field) Bounds() (width, height float64) {
	return f.width, f.height
}

// Step advances the simulation by one frame and redraws the canvas
func (f *Field) Step() {
	if f.canvas == nil {
		return
	}
	f.canvas.Clear()

	for i := range f.particles {
		p := &f.particles[i]
		p.bounce(f.width, f.height)
		p.repel(f.pointer, f.cfg.PushStrength)
		p.advance()
		f.canvas.FillCircle(p.X, p.Y, p.Size, p.Color)
	}

	f.connect()
}

// connect strokes a line between every unordered pair closer than the link threshold
func (f *Field) connect() {
	f.links = 0
	if f.cfg.LinkDivisor <= 0 || f.cfg.LinkFadeDistanceSq <= 0 {
		return
	}
	threshold := (f.width / f.cfg.LinkDivisor) * (f.height / f.cfg.LinkDivisor)

	for a := range f.particles {
		pa := &f.particles[a]
		for b := a + 1; b < len(f.particles); b++ {
			pb := &f.particles[b]
			dx := pa.X - pb.X
			dy := pa.Y - pb.Y
			d2 := dx*dx + dy*dy
			if d2 >= threshold {
				continue
			}
			alpha := f.LinkAlpha(d2)
			f.canvas.StrokeLine(pa.X, pa.Y, pb.X, pb.Y, render.RGBA{RGB: f.cfg.LinkColor, A: alpha})
			f.links++
		}
	}
}

// LinkAlpha returns the stroke opacity for a pair at squared distance d2
// Negative beyond the fade distance unless ClampLinkAlpha is set
func (f *Field) LinkAlpha(d2 float64) float64 {
	alpha := (1 - d2/f.cfg.LinkFadeDistanceSq) * f.cfg.LinkOpacityScale
	if f.cfg.ClampLinkAlpha {
		alpha = math.Max(0, math.Min(1, alpha))
	}
	return alpha
}

// Start begins the frame chain on sched; calling Start on a running field is a no-op
func (f *Field) Start(sched *engine.Scheduler) {
	if f.canvas == nil || f.running {
		return
	}
	f.sched = sched
	f.running = true
	f.frameID = sched.RequestFrame(f.frame)
}

// Stop cancels the frame chain
func (f *Field) Stop() {
	if !f.running {
		return
	}
	f.sched.CancelFrame(f.frameID)
	f.frameID = 0
	f.running = false
}

// Running reports whether the frame chain is active
func (f *Field) Running() bool {
	return f.running
}

func (f *Field) frame(time.Time) {
	if !f.running {
		return
	}
	f.Step()
	f.frameID = f.sched.RequestFrame(f.frame)
}
