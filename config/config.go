package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/cursorfx/audio"
	"github.com/lixenwraith/cursorfx/field"
	"github.com/lixenwraith/cursorfx/movement"
	"github.com/lixenwraith/cursorfx/render"
	"github.com/lixenwraith/cursorfx/trail"
)

// Config is the complete application configuration
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" toml:"logger"`
	Render   RenderConfig   `mapstructure:"render" toml:"render"`
	Field    FieldConfig    `mapstructure:"field" toml:"field"`
	Trail    TrailConfig    `mapstructure:"trail" toml:"trail"`
	Movement MovementConfig `mapstructure:"movement" toml:"movement"`
	Audio    AudioConfig    `mapstructure:"audio" toml:"audio"`
	UI       UIConfig       `mapstructure:"ui" toml:"ui"`
}

// LoggerConfig holds the zap and lumberjack settings
type LoggerConfig struct {
	Level       string `mapstructure:"level" toml:"level"`
	Format      string `mapstructure:"format" toml:"format"`
	AddSource   bool   `mapstructure:"add_source" toml:"add_source"`
	ServiceName string `mapstructure:"service_name" toml:"service_name"`
	LogFile     string `mapstructure:"log_file" toml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" toml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" toml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" toml:"max_age"`
	Compress    bool   `mapstructure:"compress" toml:"compress"`
}

// RenderConfig holds frame rate and pixel geometry
type RenderConfig struct {
	FPS          int     `mapstructure:"fps" toml:"fps"`
	CellWidthPx  float64 `mapstructure:"cell_width_px" toml:"cell_width_px"`
	CellHeightPx float64 `mapstructure:"cell_height_px" toml:"cell_height_px"`
	ColorMode    string  `mapstructure:"color_mode" toml:"color_mode"`
	Background   string  `mapstructure:"background" toml:"background"`
}

// FieldConfig holds the particle field parameters
type FieldConfig struct {
	Enabled            bool    `mapstructure:"enabled" toml:"enabled"`
	AreaPerParticle    float64 `mapstructure:"area_per_particle" toml:"area_per_particle"`
	PointerRadius      float64 `mapstructure:"pointer_radius" toml:"pointer_radius"`
	PushStrength       float64 `mapstructure:"push_strength" toml:"push_strength"`
	LinkDivisor        float64 `mapstructure:"link_divisor" toml:"link_divisor"`
	LinkFadeDistanceSq float64 `mapstructure:"link_fade_distance_sq" toml:"link_fade_distance_sq"`
	LinkOpacityScale   float64 `mapstructure:"link_opacity_scale" toml:"link_opacity_scale"`
	LinkColor          string  `mapstructure:"link_color" toml:"link_color"`
	ClampLinkAlpha     bool    `mapstructure:"clamp_link_alpha" toml:"clamp_link_alpha"`
}

// TrailConfig holds the cursor trail geometry
type TrailConfig struct {
	DotCount    int     `mapstructure:"dot_count" toml:"dot_count"`
	BaseSize    float64 `mapstructure:"base_size" toml:"base_size"`
	SizeStep    float64 `mapstructure:"size_step" toml:"size_step"`
	MinSize     float64 `mapstructure:"min_size" toml:"min_size"`
	HeadSpeed   float64 `mapstructure:"head_speed" toml:"head_speed"`
	SpeedStep   float64 `mapstructure:"speed_step" toml:"speed_step"`
	BaseOpacity float64 `mapstructure:"base_opacity" toml:"base_opacity"`
	OpacityStep float64 `mapstructure:"opacity_step" toml:"opacity_step"`
	MinOpacity  float64 `mapstructure:"min_opacity" toml:"min_opacity"`
	HistorySize int     `mapstructure:"history_size" toml:"history_size"`
}

// MovementConfig holds idle detection and orbit parameters
type MovementConfig struct {
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" toml:"idle_timeout"`
	CircleAngleStep   float64       `mapstructure:"circle_angle_step" toml:"circle_angle_step"`
	CircleRadiusRatio float64       `mapstructure:"circle_radius_ratio" toml:"circle_radius_ratio"`
}

// AudioConfig holds click chime settings
type AudioConfig struct {
	Enabled      bool    `mapstructure:"enabled" toml:"enabled"`
	MasterVolume float64 `mapstructure:"master_volume" toml:"master_volume"`
	BurstVolume  float64 `mapstructure:"burst_volume" toml:"burst_volume"`
}

// UIConfig holds startup toggles
type UIConfig struct {
	CursorEnabled bool `mapstructure:"cursor_enabled" toml:"cursor_enabled"`
	ShowHUD       bool `mapstructure:"show_hud" toml:"show_hud"`
}

// Default returns the configuration produced by SetDefaults alone
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := NewConfigFromViper(v)
	if err != nil {
		// Defaults are static; failing here is a programming error
		panic(fmt.Sprintf("default configuration invalid: %v", err))
	}
	return cfg
}

// NewConfigFromViper decodes and validates the settings held by v
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks ranges that would otherwise break the simulation
func (c *Config) Validate() error {
	var errs []error

	if c.Render.FPS <= 0 || c.Render.FPS > 240 {
		errs = append(errs, fmt.Errorf("render.fps must be in 1..240, got %d", c.Render.FPS))
	}
	if c.Render.CellWidthPx <= 0 || c.Render.CellHeightPx <= 0 {
		errs = append(errs, errors.New("render.cell_width_px and render.cell_height_px must be positive"))
	}
	switch c.Render.ColorMode {
	case "auto", "truecolor", "256":
	default:
		errs = append(errs, fmt.Errorf("render.color_mode must be auto, truecolor or 256, got %q", c.Render.ColorMode))
	}
	if _, err := render.ParseHex(c.Render.Background); err != nil {
		errs = append(errs, fmt.Errorf("render.background: %w", err))
	}

	if c.Field.AreaPerParticle <= 0 {
		errs = append(errs, errors.New("field.area_per_particle must be positive"))
	}
	if c.Field.PointerRadius <= 0 {
		errs = append(errs, errors.New("field.pointer_radius must be positive"))
	}
	if c.Field.LinkDivisor <= 0 || c.Field.LinkFadeDistanceSq <= 0 {
		errs = append(errs, errors.New("field.link_divisor and field.link_fade_distance_sq must be positive"))
	}
	if _, err := render.ParseHex(c.Field.LinkColor); err != nil {
		errs = append(errs, fmt.Errorf("field.link_color: %w", err))
	}

	if c.Trail.DotCount <= 0 {
		errs = append(errs, errors.New("trail.dot_count must be a positive integer"))
	}
	if c.Trail.HistorySize < 2 {
		errs = append(errs, errors.New("trail.history_size must be at least 2"))
	}
	if c.Trail.BaseSize <= 0 || c.Trail.MinSize <= 0 {
		errs = append(errs, errors.New("trail.base_size and trail.min_size must be positive"))
	}
	// Every dot must keep a speed in (0,1] or the chain diverges or freezes
	if last := c.Trail.HeadSpeed - float64(c.Trail.DotCount-1)*c.Trail.SpeedStep; c.Trail.HeadSpeed <= 0 || c.Trail.HeadSpeed > 1 || last <= 0 || last > 1 {
		errs = append(errs, errors.New("trail speeds must stay within (0,1] for every dot"))
	}

	if c.Movement.IdleTimeout <= 0 {
		errs = append(errs, errors.New("movement.idle_timeout must be positive"))
	}
	if c.Movement.CircleRadiusRatio <= 0 || c.Movement.CircleRadiusRatio > 0.5 {
		errs = append(errs, errors.New("movement.circle_radius_ratio must be in (0,0.5]"))
	}

	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 || c.Audio.BurstVolume < 0 || c.Audio.BurstVolume > 1 {
		errs = append(errs, errors.New("audio volumes must be in [0,1]"))
	}

	return errors.Join(errs...)
}

// FPSInterval returns the frame period for the configured rate
func (c *Config) FPSInterval() time.Duration {
	return time.Second / time.Duration(c.Render.FPS)
}

// BackgroundColor returns the parsed background color
func (c *Config) BackgroundColor() render.RGB {
	bg, _ := render.ParseHex(c.Render.Background)
	return bg
}

// FieldParams converts the field section for the field package
func (c *Config) FieldParams() field.Config {
	link, _ := render.ParseHex(c.Field.LinkColor)
	return field.Config{
		AreaPerParticle:    c.Field.AreaPerParticle,
		PointerRadius:      c.Field.PointerRadius,
		PushStrength:       c.Field.PushStrength,
		LinkDivisor:        c.Field.LinkDivisor,
		LinkFadeDistanceSq: c.Field.LinkFadeDistanceSq,
		LinkOpacityScale:   c.Field.LinkOpacityScale,
		LinkColor:          link,
		ClampLinkAlpha:     c.Field.ClampLinkAlpha,
	}
}

// TrailParams converts the trail section for the trail package
func (c *Config) TrailParams() trail.Config {
	return trail.Config{
		DotCount:    c.Trail.DotCount,
		BaseSize:    c.Trail.BaseSize,
		SizeStep:    c.Trail.SizeStep,
		MinSize:     c.Trail.MinSize,
		HeadSpeed:   c.Trail.HeadSpeed,
		SpeedStep:   c.Trail.SpeedStep,
		BaseOpacity: c.Trail.BaseOpacity,
		OpacityStep: c.Trail.OpacityStep,
		MinOpacity:  c.Trail.MinOpacity,
		HistorySize: c.Trail.HistorySize,
	}
}

// MovementParams converts the movement and trail sections for the movement package
func (c *Config) MovementParams() movement.Config {
	return movement.Config{
		IdleTimeout:       c.Movement.IdleTimeout,
		CircleAngleStep:   c.Movement.CircleAngleStep,
		CircleRadiusRatio: c.Movement.CircleRadiusRatio,
		Trail:             c.TrailParams(),
	}
}

// AudioParams converts the audio section for the audio package
func (c *Config) AudioParams() *audio.Config {
	a := audio.DefaultConfig()
	a.Enabled = c.Audio.Enabled
	a.MasterVolume = c.Audio.MasterVolume
	a.BurstVolume = c.Audio.BurstVolume
	return a
}
