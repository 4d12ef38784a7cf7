package app

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cursorfx/config"
	"github.com/lixenwraith/cursorfx/engine"
	"github.com/lixenwraith/cursorfx/movement"
)

type recordingSound struct {
	hues []float64
}

func (r *recordingSound) PlayBurst(hue float64) {
	r.hues = append(r.hues, hue)
}

type pageHarness struct {
	screen tcell.SimulationScreen
	clock  *engine.MockTimeProvider
	sched  *engine.Scheduler
	sound  *recordingSound
	page   *Page
}

// newPageHarness builds a page on a 100x40 simulation screen: 800x640 px
func newPageHarness(t *testing.T, mutate func(*config.Config)) *pageHarness {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 40)
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}

	clock := engine.NewMockTimeProvider(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	h := &pageHarness{
		screen: screen,
		clock:  clock,
		sched:  engine.NewScheduler(clock),
		sound:  &recordingSound{},
	}
	h.page = NewPage(screen, h.sched, cfg, Options{
		Sound: h.sound,
		Rand:  rand.New(rand.NewPCG(1, 2)),
	})
	return h
}

func (h *pageHarness) frame(d time.Duration) {
	h.clock.Advance(d)
	h.page.Frame()
}

func TestNewPageStartsEverything(t *testing.T) {
	h := newPageHarness(t, nil)

	assert.Equal(t, 56, h.page.Field().Len(), "floor(800*640/9000)")
	assert.True(t, h.page.Field().Running())
	require.NotNil(t, h.page.Controller())
	assert.True(t, h.page.Controller().Active())
	assert.True(t, h.page.CursorEnabled())
	assert.False(t, h.page.HUDVisible())

	_, _, visible := h.screen.GetCursor()
	assert.False(t, visible, "terminal cursor hidden while the effect runs")
}

func TestNewPageFieldDisabled(t *testing.T) {
	h := newPageHarness(t, func(c *config.Config) { c.Field.Enabled = false })

	assert.True(t, h.page.Field().Inert())
	assert.Zero(t, h.page.Field().Len())
	h.page.HandlePointerMove(100, 100)
	assert.False(t, h.page.Field().Pointer().Present)
}

func TestPointerEventsReachFieldAndTrail(t *testing.T) {
	h := newPageHarness(t, nil)

	h.page.HandleEvent(tcell.NewEventMouse(12, 3, tcell.ButtonNone, tcell.ModNone))

	ptr := h.page.Field().Pointer()
	assert.True(t, ptr.Present)
	assert.Equal(t, 100.0, ptr.X)
	assert.Equal(t, 56.0, ptr.Y)
	target := h.page.Controller().Trail().Target()
	assert.Equal(t, 100.0, target.X)
	assert.Equal(t, 56.0, target.Y)
}

func TestFocusLossStartsOrbit(t *testing.T) {
	h := newPageHarness(t, nil)
	h.page.HandleEvent(tcell.NewEventMouse(12, 3, tcell.ButtonNone, tcell.ModNone))

	h.page.HandleEvent(tcell.NewEventFocus(false))
	assert.Equal(t, movement.SyntheticCircular, h.page.Controller().State())
	assert.False(t, h.page.Field().Pointer().Present)

	h.page.HandleEvent(tcell.NewEventFocus(true))
	assert.Equal(t, movement.TrackingPointer, h.page.Controller().State())
}

func TestIdlePageOrbits(t *testing.T) {
	h := newPageHarness(t, nil)

	h.frame(2999 * time.Millisecond)
	assert.Equal(t, movement.TrackingPointer, h.page.Controller().State())
	h.frame(time.Millisecond)
	assert.Equal(t, movement.SyntheticCircular, h.page.Controller().State())
}

func TestClickSpawnsBurstWithSound(t *testing.T) {
	h := newPageHarness(t, nil)

	h.page.HandleEvent(tcell.NewEventMouse(20, 10, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 8, h.page.Bursts().Len())
	require.Len(t, h.sound.hues, 1)
	assert.Equal(t, h.page.Controller().Trail().Hue(), h.sound.hues[0])

	// Held button while dragging is not a second click
	h.page.HandleEvent(tcell.NewEventMouse(21, 10, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 8, h.page.Bursts().Len())

	h.page.HandleEvent(tcell.NewEventMouse(21, 10, tcell.ButtonNone, tcell.ModNone))
	h.page.HandleEvent(tcell.NewEventMouse(21, 10, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 16, h.page.Bursts().Len())
	assert.Len(t, h.sound.hues, 2)
}

func TestBurstsExpire(t *testing.T) {
	h := newPageHarness(t, nil)
	h.page.HandleClick(200, 200)
	require.Equal(t, 8, h.page.Bursts().Len())

	for i := 0; i < 60; i++ {
		h.frame(16 * time.Millisecond)
	}
	assert.Zero(t, h.page.Bursts().Len())
	assert.False(t, h.page.Bursts().Running())
}

func TestClickOnHUDIgnored(t *testing.T) {
	h := newPageHarness(t, func(c *config.Config) { c.UI.ShowHUD = true })

	h.page.HandleEvent(tcell.NewEventMouse(20, 0, tcell.Button1, tcell.ModNone))
	assert.Zero(t, h.page.Bursts().Len())
	assert.Empty(t, h.sound.hues)

	h.page.HandleEvent(tcell.NewEventMouse(20, 1, tcell.ButtonNone, tcell.ModNone))
	h.page.HandleEvent(tcell.NewEventMouse(20, 1, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 8, h.page.Bursts().Len())
}

func TestCursorToggle(t *testing.T) {
	h := newPageHarness(t, nil)
	h.page.HandleEvent(tcell.NewEventMouse(12, 3, tcell.ButtonNone, tcell.ModNone))

	h.page.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	assert.False(t, h.page.CursorEnabled())
	assert.Nil(t, h.page.Controller())
	assert.Zero(t, h.sched.Deadlines(), "stopped controller releases its idle deadline")

	x, y, visible := h.screen.GetCursor()
	assert.True(t, visible, "default cursor shown while the effect is off")
	assert.Equal(t, 12, x)
	assert.Equal(t, 3, y)

	// Clicks do nothing while the effect is off
	h.page.HandleEvent(tcell.NewEventMouse(12, 3, tcell.Button1, tcell.ModNone))
	assert.Zero(t, h.page.Bursts().Len())

	h.page.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	require.NotNil(t, h.page.Controller())
	assert.True(t, h.page.Controller().Active())
	_, _, visible = h.screen.GetCursor()
	assert.False(t, visible)
}

func TestResizeRegeneratesField(t *testing.T) {
	h := newPageHarness(t, nil)

	h.screen.SetSize(50, 20)
	h.page.HandleEvent(tcell.NewEventResize(50, 20))

	assert.Equal(t, 14, h.page.Field().Len(), "floor(400*320/9000)")
	w, hgt := h.page.Field().Bounds()
	assert.Equal(t, 400.0, w)
	assert.Equal(t, 320.0, hgt)
	cols, rows := h.page.Compositor().Grid()
	assert.Equal(t, 50, cols)
	assert.Equal(t, 20, rows)
}

func TestApplyConfig(t *testing.T) {
	h := newPageHarness(t, nil)

	next := config.Default()
	next.Field.AreaPerParticle = 20000
	h.page.ApplyConfig(next)
	assert.Equal(t, 25, h.page.Field().Len())
	assert.True(t, h.page.Field().Running())

	off := config.Default()
	off.Field.Enabled = false
	h.page.ApplyConfig(off)
	assert.True(t, h.page.Field().Inert())
	assert.False(t, h.page.Field().Running())

	h.page.ApplyConfig(config.Default())
	assert.False(t, h.page.Field().Inert())
	assert.Equal(t, 56, h.page.Field().Len())
	assert.True(t, h.page.Field().Running())
}

func TestHUDDrawn(t *testing.T) {
	h := newPageHarness(t, nil)

	h.page.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone))
	require.True(t, h.page.HUDVisible())
	h.frame(16 * time.Millisecond)

	assert.Contains(t, h.page.HUDText(), "particles 56")
	assert.Contains(t, h.page.HUDText(), "cursor tracking")
	r, _, _, _ := h.screen.GetContent(1, 0)
	assert.Equal(t, 'c', r)
}

func TestQuitKeys(t *testing.T) {
	h := newPageHarness(t, nil)

	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)},
		{"Q", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ActionQuit, h.page.HandleEvent(tt.ev))
		})
	}
	assert.Equal(t, ActionNone, h.page.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

func TestCloseStopsChains(t *testing.T) {
	h := newPageHarness(t, nil)
	h.page.HandleClick(200, 200)

	h.page.Close()
	assert.False(t, h.page.Field().Running())
	assert.Nil(t, h.page.Controller())
	assert.Zero(t, h.page.Bursts().Len())
	assert.Zero(t, h.sched.Deadlines())

	h.frame(16 * time.Millisecond)
	assert.Zero(t, h.sched.PendingFrames())
}
