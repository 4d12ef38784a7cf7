package vmath

import "math"

// Vec2 is a float64 2D vector in canvas pixel space
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2        { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2        { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2   { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64     { return v.X*o.X + v.Y*o.Y }
func (v Vec2) MagSq() float64         { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Mag() float64           { return math.Hypot(v.X, v.Y) }
func (v Vec2) DistSq(o Vec2) float64  { return v.Sub(o).MagSq() }
func (v Vec2) Dist(o Vec2) float64    { return math.Hypot(v.X-o.X, v.Y-o.Y) }
func (v Vec2) IsFinite() bool         { return IsFinite(v.X) && IsFinite(v.Y) }

// Lerp interpolates linearly, t=0 returns v, t=1 returns o
func (v Vec2) Lerp(o Vec2, t float64) Vec2 { return v.Add(o.Sub(v).Scale(t)) }

// Normalize returns the unit vector, or zero for a zero-length input
func (v Vec2) Normalize() Vec2 {
	mag := v.Mag()
	if mag < 1e-9 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// Ease moves v the given fraction of the remaining distance toward target
// First-order low-pass: repeated application converges geometrically
func (v Vec2) Ease(target Vec2, fraction float64) Vec2 {
	return Vec2{
		X: v.X + (target.X-v.X)*fraction,
		Y: v.Y + (target.Y-v.Y)*fraction,
	}
}

// OnCircle returns the point at angle (radians) on the circle around center
func OnCircle(center Vec2, radius, angle float64) Vec2 {
	return Vec2{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

// IsFinite reports whether f is neither NaN nor ±Inf
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Clamp01 clamps f into [0, 1]
func Clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// EaseOutCubic maps linear progress t in [0,1] to a decelerating curve
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	inv := 1 - t
	return 1 - inv*inv*inv
}
