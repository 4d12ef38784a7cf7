package trail

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/cursorfx/constants"
	"github.com/lixenwraith/cursorfx/engine"
	"github.com/lixenwraith/cursorfx/render"
	"github.com/lixenwraith/cursorfx/vmath"
)

// Burst is one short-lived click particle travelling from Origin to Origin+Offset
type Burst struct {
	Origin vmath.Vec2
	Offset vmath.Vec2
	Color  render.RGB
	Size   float64

	born   time.Time
	expiry *engine.Deadline
}

// Position returns where the particle is drawn at progress t in [0,1]
func (b *Burst) Position(t float64) vmath.Vec2 {
	return b.Origin.Add(b.Offset.Scale(vmath.EaseOutCubic(t)))
}

// BurstSet owns every live click particle and the frame chain that animates them
// Each particle is removed by its own one-shot deadline
type BurstSet struct {
	canvas   render.Canvas
	sched    *engine.Scheduler
	rng      *rand.Rand
	lifetime time.Duration

	bursts  []*Burst
	frameID engine.FrameID
	running bool

	// OnSpawn is called once per Spawn with the click position
	OnSpawn func(x, y float64)
}

// NewBurstSet creates an empty set drawing on canvas
func NewBurstSet(canvas render.Canvas, sched *engine.Scheduler, rng *rand.Rand) *BurstSet {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &BurstSet{
		canvas:   canvas,
		sched:    sched,
		rng:      rng,
		lifetime: constants.BurstLifetime,
	}
}

// Spawn creates BurstCount particles evenly spaced around (x, y)
func (s *BurstSet) Spawn(x, y, hue float64) {
	origin := vmath.V2(x, y)
	if !origin.IsFinite() {
		return
	}
	color := render.HSL(hue, constants.BurstSaturation, constants.BurstLightness)
	now := s.sched.Now()

	for i := 0; i < constants.BurstCount; i++ {
		angle := float64(i) / constants.BurstCount * 2 * math.Pi
		dist := constants.BurstMinDistance + s.rng.Float64()*constants.BurstDistRange
		b := &Burst{
			Origin: origin,
			Offset: vmath.V2(math.Cos(angle)*dist, math.Sin(angle)*dist),
			Color:  color,
			Size:   constants.BurstSize,
			born:   now,
		}
		b.expiry = s.sched.AfterFunc(s.lifetime, func(time.Time) { s.remove(b) })
		s.bursts = append(s.bursts, b)
	}

	if s.OnSpawn != nil {
		s.OnSpawn(x, y)
	}
	if !s.running {
		s.running = true
		s.frameID = s.sched.RequestFrame(s.frame)
	}
}

func (s *BurstSet) remove(b *Burst) {
	for i, live := range s.bursts {
		if live == b {
			s.bursts = append(s.bursts[:i], s.bursts[i+1:]...)
			return
		}
	}
}

// Len returns the number of live particles
func (s *BurstSet) Len() int {
	return len(s.bursts)
}

// Bursts returns the live particles, oldest first
func (s *BurstSet) Bursts() []*Burst {
	return s.bursts
}

// Running reports whether the animation chain is active
func (s *BurstSet) Running() bool {
	return s.running
}

// Step redraws every live particle at its eased position, fading out over its lifetime
func (s *BurstSet) Step(now time.Time) {
	if s.canvas == nil {
		return
	}
	s.canvas.Clear()
	for _, b := range s.bursts {
		t := vmath.Clamp01(float64(now.Sub(b.born)) / float64(s.lifetime))
		p := b.Position(t)
		s.canvas.FillCircle(p.X, p.Y, b.Size/2, render.RGBA{RGB: b.Color, A: 1 - t})
	}
}

// frame keeps animating until the last particle expires, then clears once and parks
func (s *BurstSet) frame(now time.Time) {
	s.Step(now)
	if len(s.bursts) == 0 {
		s.running = false
		s.frameID = 0
		return
	}
	s.frameID = s.sched.RequestFrame(s.frame)
}

// Clear removes every particle, releases their deadlines and stops the chain
func (s *BurstSet) Clear() {
	for _, b := range s.bursts {
		b.expiry.Release()
	}
	s.bursts = s.bursts[:0]
	if s.running {
		s.sched.CancelFrame(s.frameID)
		s.running = false
		s.frameID = 0
	}
	if s.canvas != nil {
		s.canvas.Clear()
	}
}
