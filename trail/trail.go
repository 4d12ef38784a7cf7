package trail

import (
	"math"
	"time"

	"github.com/lixenwraith/cursorfx/constants"
	"github.com/lixenwraith/cursorfx/engine"
	"github.com/lixenwraith/cursorfx/render"
	"github.com/lixenwraith/cursorfx/vmath"
)

// Dot is one element of the chain; Size is a diameter in pixels
type Dot struct {
	X, Y    float64
	Size    float64
	Speed   float64
	Opacity float64
}

// Config holds the chain geometry and velocity response
type Config struct {
	DotCount    int
	BaseSize    float64
	SizeStep    float64
	MinSize     float64
	HeadSpeed   float64
	SpeedStep   float64
	BaseOpacity float64
	OpacityStep float64
	MinOpacity  float64
	HistorySize int
}

// DefaultConfig returns the stock 25-dot trail
func DefaultConfig() Config {
	return Config{
		DotCount:    constants.TrailDotCount,
		BaseSize:    constants.TrailBaseSize,
		SizeStep:    constants.TrailSizeStep,
		MinSize:     constants.TrailMinSize,
		HeadSpeed:   constants.TrailHeadSpeed,
		SpeedStep:   constants.TrailSpeedStep,
		BaseOpacity: constants.TrailBaseOpacity,
		OpacityStep: constants.TrailOpacityStep,
		MinOpacity:  constants.TrailMinOpacity,
		HistorySize: constants.TrailHistorySize,
	}
}

// Trail is a chain of dots chasing a target with first-order lag
// Dot 0 eases toward the target, dot i toward dot i-1
type Trail struct {
	canvas render.Canvas
	clock  engine.TimeProvider

	dots     []Dot
	target   vmath.Vec2
	history  *History
	velocity float64
	hue      float64

	sched   *engine.Scheduler
	frameID engine.FrameID
	running bool
}

// New creates a trail with every dot resting on start
// canvas may be nil, in which case the trail simulates without drawing
func New(canvas render.Canvas, cfg Config, start vmath.Vec2, clock engine.TimeProvider) *Trail {
	if clock == nil {
		clock = engine.NewMonotonicTimeProvider()
	}
	t := &Trail{
		canvas:  canvas,
		clock:   clock,
		target:  start,
		history: NewHistory(cfg.HistorySize),
		dots:    make([]Dot, 0, max(cfg.DotCount, 0)),
	}
	for i := 0; i < cfg.DotCount; i++ {
		fi := float64(i)
		t.dots = append(t.dots, Dot{
			X:       start.X,
			Y:       start.Y,
			Size:    math.Max(cfg.BaseSize-fi*cfg.SizeStep, cfg.MinSize),
			Speed:   cfg.HeadSpeed - fi*cfg.SpeedStep,
			Opacity: math.Max(cfg.BaseOpacity-fi*cfg.OpacityStep, cfg.MinOpacity),
		})
	}
	return t
}

// UpdateTarget records a new target and refreshes the velocity estimate
// Non-finite coordinates are ignored
func (t *Trail) UpdateTarget(x, y float64) {
	p := vmath.V2(x, y)
	if !p.IsFinite() {
		return
	}
	t.target = p
	t.history.Push(Sample{Pos: p, At: t.clock.Now()})
	if t.history.Len() >= 2 {
		t.velocity = t.history.Velocity(constants.TrailVelocityScale)
	}
}

// Target returns the point dot 0 is chasing
func (t *Trail) Target() vmath.Vec2 {
	return t.target
}

// Velocity returns the current decayed velocity estimate
func (t *Trail) Velocity() float64 {
	return t.velocity
}

// VelocityFactor maps velocity into [0,1]
func (t *Trail) VelocityFactor() float64 {
	return math.Min(t.velocity/constants.TrailVelocityNormalizer, 1)
}

// Hue returns the color wheel position in degrees [0,360)
func (t *Trail) Hue() float64 {
	return t.hue
}

// Color returns the current dot color
func (t *Trail) Color() render.RGB {
	return render.HSL(t.hue, constants.TrailSaturation, constants.TrailLightness)
}

// Dots returns the chain, head first
func (t *Trail) Dots() []Dot {
	return t.dots
}

// Step advances hue and chain by one frame, draws, then decays velocity
func (t *Trail) Step() {
	t.hue = math.Mod(t.hue+1, 360)
	vf := t.VelocityFactor()

	for i := range t.dots {
		d := &t.dots[i]
		goal := t.target
		if i > 0 {
			goal = vmath.V2(t.dots[i-1].X, t.dots[i-1].Y)
		}
		d.X += (goal.X - d.X) * d.Speed
		d.Y += (goal.Y - d.Y) * d.Speed
	}

	t.draw(vf)
	t.velocity *= constants.TrailVelocityDecay
}

// draw renders tail first so the head stays on top; the head also gets a glow halo
func (t *Trail) draw(vf float64) {
	if t.canvas == nil {
		return
	}
	t.canvas.Clear()
	color := t.Color()
	opacityGain := constants.TrailOpacityFloor + vf*constants.TrailOpacityGain
	sizeGain := constants.TrailSizeFloor + vf*constants.TrailSizeGain

	for i := len(t.dots) - 1; i >= 0; i-- {
		d := t.dots[i]
		alpha := d.Opacity * opacityGain
		radius := d.Size * sizeGain / 2
		if i == 0 {
			glow := constants.TrailGlowBase + vf*constants.TrailGlowGain
			t.canvas.FillCircle(d.X, d.Y, radius+glow/2, render.RGBA{RGB: color, A: alpha * 0.25})
		}
		t.canvas.FillCircle(d.X, d.Y, radius, render.RGBA{RGB: color, A: alpha})
	}
}

// Clear erases the dots from the canvas without touching the simulation
func (t *Trail) Clear() {
	if t.canvas != nil {
		t.canvas.Clear()
	}
}

// AddClickBurst spawns a burst at (x, y) in the trail's current hue
func (t *Trail) AddClickBurst(x, y float64, set *BurstSet) {
	if set == nil {
		return
	}
	set.Spawn(x, y, t.hue)
}

// Start runs one step immediately, then keeps stepping once per frame
// Calling Start on a running trail is a no-op
func (t *Trail) Start(sched *engine.Scheduler) {
	if t.running {
		return
	}
	t.sched = sched
	t.running = true
	t.Step()
	t.frameID = sched.RequestFrame(t.frame)
}

// Stop cancels the frame chain; the dots stay where they are
func (t *Trail) Stop() {
	if !t.running {
		return
	}
	t.sched.CancelFrame(t.frameID)
	t.frameID = 0
	t.running = false
}

// Running reports whether the frame chain is active
func (t *Trail) Running() bool {
	return t.running
}

func (t *Trail) frame(time.Time) {
	if !t.running {
		return
	}
	t.Step()
	t.frameID = t.sched.RequestFrame(t.frame)
}
