package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/cursorfx/config"
	"github.com/lixenwraith/cursorfx/constants"
	"github.com/lixenwraith/cursorfx/engine"
	"github.com/lixenwraith/cursorfx/observability"
)

// overrunInterval bounds how often a slow frame is reported
const overrunInterval = 5 * time.Second

// Run drives a page on an initialized screen until the user quits or ctx ends
// Run owns the screen from here on and finalizes it before returning. Reloaded
// configurations arriving on reload are applied between frames; reload may be nil
func Run(ctx context.Context, screen tcell.Screen, cfg *config.Config, opts Options, reload <-chan *config.Config) error {
	logger := opts.Logger
	if logger == nil {
		logger = observability.GetLogger()
	}
	opts.Logger = logger

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	screen.Clear()

	sched := engine.NewScheduler(opts.Clock)
	page := NewPage(screen, sched, cfg, opts)
	overrun := observability.NewThrottled(logger.Named("loop"), overrunInterval, 1)

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, cancel := context.WithCancel(gctx)
	events := make(chan tcell.Event, constants.EventQueueSize)

	// PollEvent returns nil once the screen is finalized
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("event poller panic", zap.Any("panic", r), zap.Stack("stack"))
				err = fmt.Errorf("event poller panic: %v", r)
			}
		}()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-loopCtx.Done():
				return nil
			}
		}
	})

	g.Go(func() (err error) {
		defer screen.Fini()
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("frame loop panic", zap.Any("panic", r), zap.Stack("stack"))
				err = fmt.Errorf("frame loop panic: %v", r)
			}
		}()

		interval := cfg.FPSInterval()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		cols, rows := screen.Size()
		logger.Info("frame loop started",
			zap.Int("fps", cfg.Render.FPS),
			zap.Int("cols", cols), zap.Int("rows", rows))
		page.Frame()

		for {
			select {
			case <-loopCtx.Done():
				page.Close()
				logger.Info("frame loop stopped", zap.Uint64("frames", sched.FrameNumber()))
				return nil

			case ev := <-events:
				if page.HandleEvent(ev) == ActionQuit {
					page.Close()
					logger.Info("quit requested", zap.Uint64("frames", sched.FrameNumber()))
					return nil
				}

			case next, ok := <-reload:
				if !ok {
					reload = nil
					continue
				}
				page.ApplyConfig(next)
				if d := next.FPSInterval(); d != interval {
					interval = d
					ticker.Reset(d)
				}

			case <-ticker.C:
				start := time.Now()
				page.Frame()
				if elapsed := time.Since(start); elapsed > interval {
					overrun.Warn("frame overrun",
						zap.Duration("elapsed", elapsed),
						zap.Duration("budget", interval))
				}
			}
		}
	})

	return g.Wait()
}
