package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/lixenwraith/cursorfx/app"
	"github.com/lixenwraith/cursorfx/audio"
	"github.com/lixenwraith/cursorfx/config"
	"github.com/lixenwraith/cursorfx/observability"
)

// Version is set at build time:
// go build -ldflags "-X main.Version=1.2.0" ./cmd/cursorfx
var Version = "0.1.0"

// cli holds what the root command resolved before running
type cli struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
}

// newRootCmd builds an isolated command tree; the returned cli exposes the loaded config
func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           "cursorfx",
		Short:         "Interactive particle field and cursor trail for the terminal",
		Long:          "cursorfx draws a drifting particle field that shies away from the mouse, with a\ncolor-cycling trail that follows the pointer and orbits the screen when idle.\nClick to spawn bursts. Keys: c toggles the cursor effect, ? the status line, q quits.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context())
		},
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default is ./cursorfx.toml)")

	flags := root.Flags()
	flags.Int("fps", 60, "frame rate")
	flags.String("color", "auto", "color mode: auto, truecolor, 256")
	flags.Bool("no-audio", false, "disable click chimes")
	flags.Bool("no-cursor", false, "start with the cursor effect off")
	flags.Bool("no-field", false, "disable the particle field")
	flags.Bool("hud", false, "show the status line")
	flags.Bool("debug", false, "log at debug level")

	root.AddCommand(newInitConfigCmd(), newVersionCmd())
	return root, c
}

// flagKeys maps flags that carry a config value straight through
var flagKeys = map[string]string{
	"fps":   "render.fps",
	"color": "render.color_mode",
}

// switchKeys maps boolean flags to the config value they force when given
var switchKeys = map[string]struct {
	key   string
	value any
}{
	"no-audio":  {"audio.enabled", false},
	"no-cursor": {"ui.cursor_enabled", false},
	"no-field":  {"field.enabled", false},
	"hud":       {"ui.show_hud", true},
	"debug":     {"logger.level", "debug"},
}

func (c *cli) load(cmd *cobra.Command) error {
	config.Prepare(c.v, c.configPath)

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := c.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	for name, sw := range switchKeys {
		if cmd.Flags().Changed(name) {
			if on, _ := cmd.Flags().GetBool(name); on {
				c.v.Set(sw.key, sw.value)
			}
		}
	}

	cfg, err := config.Load(c.v)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *cli) run(ctx context.Context) error {
	cfg := c.cfg

	// The screen belongs to the UI: log to the rotating file only
	observability.Initialize(cfg.Logger, nil)
	logger := observability.GetLogger()
	logger.Info("starting cursorfx",
		zap.String("version", Version),
		zap.String("config", c.v.ConfigFileUsed()))

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("cursorfx needs an interactive terminal")
	}

	mode := applyColorMode(cfg.Render.ColorMode)
	logger.Debug("color mode", zap.String("requested", cfg.Render.ColorMode), zap.String("resolved", mode))

	sound := audio.NewSoundManager(cfg.AudioParams())
	if err := sound.Initialize(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
	}
	defer sound.Cleanup()

	reload := make(chan *config.Config, 1)
	watching := config.Watch(c.v, func(next *config.Config, err error) {
		if err != nil {
			logger.Warn("config reload rejected", zap.Error(err))
			return
		}
		select {
		case reload <- next:
		default:
			logger.Warn("config reload dropped, previous reload still pending")
		}
	})
	if watching {
		logger.Info("watching config file", zap.String("path", c.v.ConfigFileUsed()))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = app.Run(ctx, screen, cfg, app.Options{Sound: sound, Logger: logger}, reload)
	if err != nil {
		logger.Error("cursorfx stopped with error", zap.Error(err))
		return err
	}
	logger.Info("cursorfx stopped")
	return nil
}

func newInitConfigCmd() *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the default configuration as TOML",
		Args:  cobra.NoArgs,
		// No config loading: a broken file can still be replaced
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote default configuration to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", config.DefaultFileName+".toml", "destination file")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print the version",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cursorfx %s\n", Version)
		},
	}
}
