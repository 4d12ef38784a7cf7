package app

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/cursorfx/config"
	"github.com/lixenwraith/cursorfx/engine"
	"github.com/lixenwraith/cursorfx/field"
	"github.com/lixenwraith/cursorfx/movement"
	"github.com/lixenwraith/cursorfx/render"
	"github.com/lixenwraith/cursorfx/trail"
	"github.com/lixenwraith/cursorfx/vmath"
)

// BurstPlayer sounds a click burst; *audio.SoundManager satisfies it
type BurstPlayer interface {
	PlayBurst(hue float64)
}

// Options carries optional collaborators for a Page
type Options struct {
	Sound  BurstPlayer
	Logger *zap.Logger
	Rand   *rand.Rand
	// Clock drives the scheduler Run creates, monotonic when nil
	Clock engine.TimeProvider
}

// Page is the composition root: it owns the scheduler, the particle field, the
// optional cursor controller and the click bursts, and routes input to them
type Page struct {
	cfg    *config.Config
	screen tcell.Screen
	sched  *engine.Scheduler
	logger *zap.Logger
	sound  BurstPlayer

	compositor  *render.Compositor
	fieldLayer  *render.Layer
	cursorLayer *render.Layer
	burstLayer  *render.Layer
	hudLayer    *render.Layer

	field      *field.Field
	bursts     *trail.BurstSet
	controller *movement.Controller

	hudVisible bool
	pointer    vmath.Vec2
	hasPointer bool
	button1    bool

	lastFrame time.Time
	fps       float64
}

// NewPage builds every layer on screen and starts the field; the cursor effect
// and HUD follow cfg.UI
func NewPage(screen tcell.Screen, sched *engine.Scheduler, cfg *config.Config, opts Options) *Page {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	p := &Page{
		cfg:    cfg,
		screen: screen,
		sched:  sched,
		logger: logger.Named("page"),
		sound:  opts.Sound,
	}

	p.compositor = render.NewCompositor(screen, cfg.BackgroundColor(), cfg.Render.CellWidthPx, cfg.Render.CellHeightPx)
	p.fieldLayer = p.compositor.NewLayer("field", render.PriorityField)
	p.cursorLayer = p.compositor.NewLayer("cursor", render.PriorityTrail)
	p.burstLayer = p.compositor.NewLayer("bursts", render.PriorityBurst)
	p.hudLayer = p.compositor.NewLayer("hud", render.PriorityUI)

	var canvas render.Canvas
	if cfg.Field.Enabled {
		canvas = p.fieldLayer
	}
	p.field = field.New(canvas, cfg.FieldParams(), rng)
	p.field.Start(sched)

	p.bursts = trail.NewBurstSet(p.burstLayer, sched, rng)
	p.bursts.OnSpawn = p.onBurst

	p.SetCursorEnabled(cfg.UI.CursorEnabled)
	p.hudVisible = cfg.UI.ShowHUD

	p.logger.Info("page ready",
		zap.Int("particles", p.field.Len()),
		zap.Bool("cursor", p.CursorEnabled()))
	return p
}

// toPixels maps a cell to the virtual pixel at its center
func (p *Page) toPixels(col, row int) (float64, float64) {
	cw, ch := p.compositor.CellSize()
	return (float64(col) + 0.5) * cw, (float64(row) + 0.5) * ch
}

// HandlePointerMove forwards a pointer position in pixels to the field and controller
func (p *Page) HandlePointerMove(x, y float64) {
	p.pointer = vmath.V2(x, y)
	p.hasPointer = true
	p.field.SetPointer(x, y)
	if p.controller != nil {
		p.controller.HandlePointerMove(x, y)
	}
}

// HandlePointerLeave forgets the pointer and lets the cursor orbit
func (p *Page) HandlePointerLeave() {
	p.field.ClearPointer()
	if p.controller != nil {
		p.controller.HandlePointerLeave()
	}
}

// HandlePointerEnter resumes pointer tracking
func (p *Page) HandlePointerEnter() {
	if p.controller != nil {
		p.controller.HandlePointerEnter()
	}
}

// HandleClick spawns a burst at (x, y) unless the cursor effect is off or the click hit the HUD
func (p *Page) HandleClick(x, y float64) {
	if p.controller == nil {
		return
	}
	if p.hudVisible {
		_, ch := p.compositor.CellSize()
		if y < ch {
			return
		}
	}
	p.controller.AddClickBurst(x, y, p.bursts)
}

func (p *Page) onBurst(x, y float64) {
	p.logger.Debug("click burst", zap.Float64("x", x), zap.Float64("y", y))
	if p.sound != nil && p.controller != nil {
		p.sound.PlayBurst(p.controller.Trail().Hue())
	}
}

// HandleResize resizes every layer and regenerates the field
func (p *Page) HandleResize(cols, rows int) {
	p.compositor.Resize(cols, rows)
	p.field.Regenerate()
	p.logger.Debug("resized",
		zap.Int("cols", cols), zap.Int("rows", rows),
		zap.Int("particles", p.field.Len()))
}

// SetCursorEnabled builds and starts a fresh controller, or stops and drops the current one
// While disabled the terminal cursor is shown at the last pointer cell
func (p *Page) SetCursorEnabled(enabled bool) {
	if enabled == (p.controller != nil) {
		return
	}
	if !enabled {
		p.controller.Stop()
		p.controller = nil
		p.cursorLayer.SetVisible(false)
		p.showTerminalCursor()
		p.logger.Info("cursor effect disabled")
		return
	}

	p.controller = movement.New(p.cursorLayer, p.sched, p.cfg.MovementParams())
	p.controller.OnStateChange = func(s movement.State) {
		p.logger.Debug("movement state", zap.Stringer("state", s))
	}
	p.controller.Start()
	p.cursorLayer.SetVisible(true)
	p.screen.HideCursor()
	p.logger.Info("cursor effect enabled")
}

func (p *Page) showTerminalCursor() {
	if !p.hasPointer {
		p.screen.HideCursor()
		return
	}
	cw, ch := p.compositor.CellSize()
	p.screen.ShowCursor(int(p.pointer.X/cw), int(p.pointer.Y/ch))
}

// ToggleCursor flips the cursor effect
func (p *Page) ToggleCursor() {
	p.SetCursorEnabled(p.controller == nil)
}

// CursorEnabled reports whether a controller is running
func (p *Page) CursorEnabled() bool {
	return p.controller != nil
}

// ToggleHUD shows or hides the status line
func (p *Page) ToggleHUD() {
	p.hudVisible = !p.hudVisible
}

// HUDVisible reports whether the status line is drawn
func (p *Page) HUDVisible() bool {
	return p.hudVisible
}

// ApplyConfig swaps in a reloaded configuration
// The field regenerates now; trail and movement settings apply to the next controller
func (p *Page) ApplyConfig(cfg *config.Config) {
	p.cfg = cfg
	p.compositor.SetBackground(cfg.BackgroundColor())
	if cfg.Field.Enabled == p.field.Inert() {
		p.rebuildField(cfg)
	} else {
		p.field.SetConfig(cfg.FieldParams())
	}
	p.logger.Info("configuration applied", zap.Int("particles", p.field.Len()))
}

func (p *Page) rebuildField(cfg *config.Config) {
	p.field.Stop()
	p.fieldLayer.Clear()
	var canvas render.Canvas
	if cfg.Field.Enabled {
		canvas = p.fieldLayer
	}
	p.field = field.New(canvas, cfg.FieldParams(), nil)
	p.field.Start(p.sched)
}

// Frame runs one scheduler tick, draws the HUD and flushes to the screen
func (p *Page) Frame() {
	p.sched.Tick()
	p.measure(p.sched.Now())
	p.drawHUD()
	p.compositor.Flush()
}

// measure keeps an exponential moving average of the frame rate
func (p *Page) measure(now time.Time) {
	if !p.lastFrame.IsZero() {
		if dt := now.Sub(p.lastFrame).Seconds(); dt > 0 {
			inst := 1 / dt
			if p.fps == 0 {
				p.fps = inst
			} else {
				p.fps += (inst - p.fps) * 0.1
			}
		}
	}
	p.lastFrame = now
}

// HUDText returns the status line content
func (p *Page) HUDText() string {
	state := "off"
	if p.controller != nil {
		state = p.controller.State().String()
	}
	return fmt.Sprintf(" cursorfx | fps %3.0f | particles %d | links %d | bursts %d | cursor %s | [c] cursor [?] hud [q] quit ",
		p.fps, p.field.Len(), p.field.Links(), p.bursts.Len(), state)
}

func (p *Page) drawHUD() {
	p.hudLayer.Clear()
	if !p.hudVisible {
		return
	}
	cols, _ := p.hudLayer.Grid()
	bg := render.RGBA{RGB: render.RGBBlack, A: 0.7}
	fg := render.Opaque(render.RGB{R: 200, G: 220, B: 255})
	text := p.HUDText()
	if n := utf8.RuneCountInString(text); n < cols {
		text += strings.Repeat(" ", cols-n)
	}
	p.hudLayer.DrawText(0, 0, text, fg, bg)
}

// Field returns the particle field
func (p *Page) Field() *field.Field {
	return p.field
}

// Controller returns the running controller, nil while the cursor effect is off
func (p *Page) Controller() *movement.Controller {
	return p.controller
}

// Bursts returns the live click bursts
func (p *Page) Bursts() *trail.BurstSet {
	return p.bursts
}

// Compositor returns the layer stack
func (p *Page) Compositor() *render.Compositor {
	return p.compositor
}

// Close stops every animation chain
func (p *Page) Close() {
	p.SetCursorEnabled(false)
	p.field.Stop()
	p.bursts.Clear()
}
