package movement

import (
	"math"
	"time"

	"github.com/lixenwraith/cursorfx/constants"
	"github.com/lixenwraith/cursorfx/engine"
	"github.com/lixenwraith/cursorfx/render"
	"github.com/lixenwraith/cursorfx/trail"
	"github.com/lixenwraith/cursorfx/vmath"
)

// State is the target source currently feeding the trail
type State int

const (
	TrackingPointer State = iota
	SyntheticCircular
)

func (s State) String() string {
	switch s {
	case TrackingPointer:
		return "tracking"
	case SyntheticCircular:
		return "circular"
	default:
		return "unknown"
	}
}

// Config holds the idle and orbit parameters
type Config struct {
	IdleTimeout       time.Duration
	CircleAngleStep   float64
	CircleRadiusRatio float64
	Trail             trail.Config
}

// DefaultConfig returns the stock controller parameters
func DefaultConfig() Config {
	return Config{
		IdleTimeout:       constants.IdleTimeout,
		CircleAngleStep:   constants.CircleAngleStep,
		CircleRadiusRatio: constants.CircleRadiusRatio,
		Trail:             trail.DefaultConfig(),
	}
}

// Controller feeds a Trail from live pointer input, switching to a synthetic
// orbit around the viewport center after the pointer idles or leaves
// A stopped controller is not restartable; build a new one instead
type Controller struct {
	cfg       Config
	sched     *engine.Scheduler
	container render.Canvas
	trail     *trail.Trail

	idle     *engine.Deadline
	circleID engine.FrameID
	circular bool
	angle    float64

	started bool
	stopped bool

	// OnStateChange is called after every transition between states
	OnStateChange func(State)
}

// New builds a controller whose trail draws into container, resting at the container center
func New(container render.Canvas, sched *engine.Scheduler, cfg Config) *Controller {
	c := &Controller{
		cfg:       cfg,
		sched:     sched,
		container: container,
	}
	c.trail = trail.New(container, cfg.Trail, c.center(), sched)
	return c
}

// center returns the viewport center, read fresh on each use
func (c *Controller) center() vmath.Vec2 {
	if c.container == nil {
		return vmath.Vec2{}
	}
	w, h := c.container.Size()
	return vmath.V2(w/2, h/2)
}

func (c *Controller) radius() float64 {
	if c.container == nil {
		return 0
	}
	w, h := c.container.Size()
	return c.cfg.CircleRadiusRatio * math.Min(w, h)
}

// Start enters Tracking-Pointer, arms the idle deadline and starts the trail
func (c *Controller) Start() {
	if c.started || c.stopped {
		return
	}
	c.started = true
	c.idle = c.sched.NewDeadline(func(time.Time) { c.startCircular() })
	c.idle.Reset(c.cfg.IdleTimeout)
	c.trail.Start(c.sched)
}

// Stop disarms everything, stops the trail and clears the container
func (c *Controller) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	if c.idle != nil {
		c.idle.Release()
	}
	c.stopCircular()
	c.trail.Stop()
	c.trail.Clear()
}

// HandlePointerMove feeds the trail and restarts the idle countdown
func (c *Controller) HandlePointerMove(x, y float64) {
	if !c.live() {
		return
	}
	c.trail.UpdateTarget(x, y)
	c.stopCircular()
	c.idle.Reset(c.cfg.IdleTimeout)
}

// HandlePointerLeave switches to the synthetic orbit immediately
func (c *Controller) HandlePointerLeave() {
	if !c.live() {
		return
	}
	c.startCircular()
}

// HandlePointerEnter returns to pointer tracking and restarts the idle countdown
func (c *Controller) HandlePointerEnter() {
	if !c.live() {
		return
	}
	c.stopCircular()
	c.idle.Reset(c.cfg.IdleTimeout)
}

// AddClickBurst spawns a burst in the trail's current hue
func (c *Controller) AddClickBurst(x, y float64, set *trail.BurstSet) {
	if !c.live() {
		return
	}
	c.trail.AddClickBurst(x, y, set)
}

// State returns the current target source
func (c *Controller) State() State {
	if c.circular {
		return SyntheticCircular
	}
	return TrackingPointer
}

// Active reports whether the controller was started and not yet stopped
func (c *Controller) Active() bool {
	return c.live()
}

// Trail exposes the owned trail
func (c *Controller) Trail() *trail.Trail {
	return c.trail
}

// IdleDeadline returns the due time of the idle countdown, zero when disarmed
func (c *Controller) IdleDeadline() time.Time {
	if c.idle == nil {
		return time.Time{}
	}
	return c.idle.When()
}

// Angle returns the orbit angle accumulator in radians
func (c *Controller) Angle() float64 {
	return c.angle
}

func (c *Controller) live() bool {
	return c.started && !c.stopped
}

// startCircular takes over the target; the first step runs synchronously
func (c *Controller) startCircular() {
	if c.circular || !c.live() {
		return
	}
	c.circular = true
	c.idle.Stop()
	c.notify()
	c.circleStep(c.sched.Now())
}

func (c *Controller) stopCircular() {
	if !c.circular {
		return
	}
	c.sched.CancelFrame(c.circleID)
	c.circleID = 0
	c.circular = false
	c.notify()
}

func (c *Controller) circleStep(time.Time) {
	if !c.circular {
		return
	}
	c.angle += c.cfg.CircleAngleStep
	// Center and radius are read per step so the orbit follows resizes
	p := vmath.OnCircle(c.center(), c.radius(), c.angle)
	c.trail.UpdateTarget(p.X, p.Y)
	c.circleID = c.sched.RequestFrame(c.circleStep)
}

func (c *Controller) notify() {
	if c.OnStateChange != nil {
		c.OnStateChange(c.State())
	}
}
