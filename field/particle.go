package field

import (
	"math"

	"github.com/lixenwraith/cursorfx/render"
)

// Particle is a freely drifting disc in canvas pixel space
// Direction is the constant per-frame displacement, flipped on wall contact
type Particle struct {
	X, Y       float64
	DirectionX float64
	DirectionY float64
	Size       float64
	Color      render.RGBA
}

// Pointer is the last known pointer position; Present is false after the pointer leaves
type Pointer struct {
	X, Y    float64
	Radius  float64
	Present bool
}

// bounce reflects velocity on each axis whose position lies outside [0, dim]
// Position is left alone: the next advance carries the particle back inside
func (p *Particle) bounce(width, height float64) {
	if p.X > width || p.X < 0 {
		p.DirectionX = -p.DirectionX
	}
	if p.Y > height || p.Y < 0 {
		p.DirectionY = -p.DirectionY
	}
}

// repel pushes the particle directly away from the pointer when inside its reach
// Returns the displacement magnitude, zero at or beyond radius+size
func (p *Particle) repel(ptr Pointer, strength float64) float64 {
	if !ptr.Present {
		return 0
	}
	dx := ptr.X - p.X
	dy := ptr.Y - p.Y
	dist := math.Hypot(dx, dy)
	reach := ptr.Radius + p.Size
	if reach <= 0 || dist >= reach || dist == 0 {
		return 0
	}

	force := (reach - dist) / reach
	p.X -= dx / dist * force * strength
	p.Y -= dy / dist * force * strength
	return force * strength
}

func (p *Particle) advance() {
	p.X += p.DirectionX
	p.Y += p.DirectionY
}
