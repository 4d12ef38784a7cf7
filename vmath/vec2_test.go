package vmath

import (
	"math"
	"testing"
)

func TestNormalizeZero(t *testing.T) {
	n := Vec2{}.Normalize()
	if n != (Vec2{}) {
		t.Errorf("Normalize(zero) = %+v, want zero", n)
	}
	if !n.IsFinite() {
		t.Error("Normalize(zero) produced non-finite components")
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	cases := []Vec2{{3, 4}, {-1, 0}, {0.001, -0.002}, {1e6, 1e6}}
	for _, v := range cases {
		if got := v.Normalize().Mag(); math.Abs(got-1) > 1e-9 {
			t.Errorf("|Normalize(%+v)| = %v, want 1", v, got)
		}
	}
}

func TestEaseConverges(t *testing.T) {
	p := V2(0, 0)
	target := V2(100, -50)
	for i := 0; i < 500; i++ {
		p = p.Ease(target, 0.15)
	}
	if p.Dist(target) > 1e-9 {
		t.Errorf("Ease did not converge: %+v", p)
	}
}

func TestEaseFraction(t *testing.T) {
	p := V2(10, 10).Ease(V2(20, 30), 0.5)
	if p != V2(15, 20) {
		t.Errorf("Ease half = %+v, want {15 20}", p)
	}
}

func TestOnCircle(t *testing.T) {
	c := V2(400, 300)
	for _, a := range []float64{0, 0.5, math.Pi, 7.3} {
		p := OnCircle(c, 120, a)
		if d := p.Dist(c); math.Abs(d-120) > 1e-9 {
			t.Errorf("angle %v: distance %v, want 120", a, d)
		}
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		in   float64
		want bool
	}{
		{0, true},
		{-3.5, true},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, tt := range tests {
		if got := IsFinite(tt.in); got != tt.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEaseOutCubicBounds(t *testing.T) {
	if EaseOutCubic(0) != 0 || EaseOutCubic(1) != 1 {
		t.Error("EaseOutCubic endpoints wrong")
	}
	if EaseOutCubic(-1) != 0 || EaseOutCubic(2) != 1 {
		t.Error("EaseOutCubic did not clamp input")
	}
	if EaseOutCubic(0.5) <= 0.5 {
		t.Error("EaseOutCubic should lead linear progress at midpoint")
	}
}
