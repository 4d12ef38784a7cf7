package trail

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lixenwraith/cursorfx/engine"
	"github.com/lixenwraith/cursorfx/render"
	"github.com/lixenwraith/cursorfx/vmath"
)

func newTestTrail(canvas render.Canvas) (*Trail, *engine.MockTimeProvider) {
	clock := engine.NewMockTimeProvider(epoch)
	return New(canvas, DefaultConfig(), vmath.V2(400, 300), clock), clock
}

func TestDotGeometry(t *testing.T) {
	tr, _ := newTestTrail(nil)
	dots := tr.Dots()
	if len(dots) != 25 {
		t.Fatalf("len(dots) = %d, want 25", len(dots))
	}

	approx := cmpopts.EquateApprox(0, 1e-9)
	want := []Dot{
		{X: 400, Y: 300, Size: 16, Speed: 0.15, Opacity: 0.9},
		{X: 400, Y: 300, Size: 15.4, Speed: 0.146, Opacity: 0.87},
	}
	if diff := cmp.Diff(want, dots[:2], approx); diff != "" {
		t.Errorf("head dots mismatch (-want +got):\n%s", diff)
	}

	last := dots[24]
	// 16-14.4 = 1.6 floors to 4; 0.9-0.72 = 0.18 stays above 0.1
	if diff := cmp.Diff(Dot{X: 400, Y: 300, Size: 4, Speed: 0.054, Opacity: 0.18}, last, approx); diff != "" {
		t.Errorf("tail dot mismatch (-want +got):\n%s", diff)
	}

	for i := 1; i < len(dots); i++ {
		if dots[i].Speed >= dots[i-1].Speed || dots[i].Opacity > dots[i-1].Opacity {
			t.Errorf("dot %d does not decrease from dot %d", i, i-1)
		}
	}
}

func TestUpdateTargetVelocity(t *testing.T) {
	tr, clock := newTestTrail(nil)

	tr.UpdateTarget(0, 0)
	if tr.Velocity() != 0 {
		t.Errorf("velocity after one sample = %v, want 0", tr.Velocity())
	}

	clock.Advance(10 * time.Millisecond)
	tr.UpdateTarget(30, 40)
	if tr.Velocity() != 50 {
		t.Errorf("velocity = %v, want 50", tr.Velocity())
	}

	// Same timestamp collapses the estimate instead of dividing by zero
	tr2, _ := newTestTrail(nil)
	tr2.UpdateTarget(0, 0)
	tr2.UpdateTarget(100, 0)
	if tr2.Velocity() != 0 {
		t.Errorf("zero-elapsed velocity = %v, want 0", tr2.Velocity())
	}
}

func TestUpdateTargetIgnoresNonFinite(t *testing.T) {
	tr, _ := newTestTrail(nil)
	tr.UpdateTarget(math.NaN(), 5)
	tr.UpdateTarget(5, math.Inf(-1))
	if tr.Target() != vmath.V2(400, 300) {
		t.Errorf("Target = %v, want unchanged", tr.Target())
	}
}

func TestVelocityDecaysAndFactorSaturates(t *testing.T) {
	tr, clock := newTestTrail(nil)
	tr.UpdateTarget(0, 0)
	clock.Advance(10 * time.Millisecond)
	tr.UpdateTarget(30, 40)

	if tr.VelocityFactor() != 1 {
		t.Errorf("VelocityFactor = %v, want 1", tr.VelocityFactor())
	}
	tr.Step()
	if math.Abs(tr.Velocity()-47.5) > 1e-9 {
		t.Errorf("velocity after one step = %v, want 47.5", tr.Velocity())
	}
	for i := 0; i < 200; i++ {
		tr.Step()
	}
	if tr.VelocityFactor() >= 0.01 {
		t.Errorf("velocity factor did not decay: %v", tr.VelocityFactor())
	}
}

func TestChainConvergesToTarget(t *testing.T) {
	tr, _ := newTestTrail(nil)
	tr.UpdateTarget(700, 100)

	for i := 0; i < 2000; i++ {
		tr.Step()
	}
	for i, d := range tr.Dots() {
		if math.Hypot(d.X-700, d.Y-100) > 0.01 {
			t.Errorf("dot %d at (%v,%v), not converged", i, d.X, d.Y)
		}
	}
}

func TestChainHeadMovesBySpeed(t *testing.T) {
	tr, _ := newTestTrail(nil)
	tr.UpdateTarget(500, 300)
	tr.Step()

	dots := tr.Dots()
	if math.Abs(dots[0].X-415) > 1e-9 {
		t.Errorf("head X = %v, want 415", dots[0].X)
	}
	// dot 1 chases the already-moved head within the same frame
	if math.Abs(dots[1].X-(400+15*0.146)) > 1e-9 {
		t.Errorf("dot 1 X = %v, want %v", dots[1].X, 400+15*0.146)
	}
}

func TestHueWraps(t *testing.T) {
	tr, _ := newTestTrail(nil)
	for i := 0; i < 359; i++ {
		tr.Step()
	}
	if tr.Hue() != 359 {
		t.Fatalf("Hue = %v, want 359", tr.Hue())
	}
	tr.Step()
	if tr.Hue() != 0 {
		t.Errorf("Hue = %v, want wrap to 0", tr.Hue())
	}
}

func TestTrailDrawsHeadGlow(t *testing.T) {
	layer := render.NewLayer("cursor", 100, 40, 8, 16)
	tr, _ := newTestTrail(layer)
	tr.Step()

	center, _ := layer.Cell(50, 18)
	if center.Rune == 0 {
		t.Error("head dot not drawn at target cell")
	}
	if layer.Occupied() < 2 {
		t.Errorf("expected glow to cover neighbours, occupied=%d", layer.Occupied())
	}

	tr.Clear()
	if layer.Occupied() != 0 {
		t.Error("Clear left dots on the layer")
	}
}

func TestStartRunsImmediatelyThenPerFrame(t *testing.T) {
	tr, clock := newTestTrail(nil)
	sched := engine.NewScheduler(clock)

	tr.Start(sched)
	if tr.Hue() != 1 {
		t.Errorf("Hue after Start = %v, want first step to run synchronously", tr.Hue())
	}
	tr.Start(sched)
	if sched.PendingFrames() != 1 {
		t.Fatalf("PendingFrames = %d, want 1", sched.PendingFrames())
	}

	sched.Tick()
	sched.Tick()
	if tr.Hue() != 3 {
		t.Errorf("Hue = %v, want 3", tr.Hue())
	}

	tr.Stop()
	tr.Stop()
	sched.Tick()
	if tr.Hue() != 3 || sched.PendingFrames() != 0 || tr.Running() {
		t.Errorf("trail still running after Stop: hue=%v pending=%d", tr.Hue(), sched.PendingFrames())
	}
}

func TestAddClickBurstUsesTrailHue(t *testing.T) {
	tr, clock := newTestTrail(nil)
	sched := engine.NewScheduler(clock)
	set := NewBurstSet(nil, sched, rand.New(rand.NewPCG(3, 4)))

	for i := 0; i < 120; i++ {
		tr.Step()
	}
	tr.AddClickBurst(100, 100, set)
	if set.Len() != 8 {
		t.Fatalf("Len = %d, want 8", set.Len())
	}
	want := render.HSL(120, 0.80, 0.60)
	for i, b := range set.Bursts() {
		if b.Color != want {
			t.Errorf("burst %d color %v, want %v", i, b.Color, want)
		}
	}

	tr.AddClickBurst(0, 0, nil)
}
