package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CURSORFX_RENDER_FPS
const EnvPrefix = "CURSORFX"

// DefaultFileName is searched for in the working directory when no path is given
const DefaultFileName = "cursorfx"

// Prepare configures v for defaults, environment overrides and the config file location
// An empty path searches ./cursorfx.toml
func Prepare(v *viper.Viper, path string) {
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultFileName)
		v.SetConfigType("toml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the config file prepared on v, tolerating its absence, and decodes the result
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return NewConfigFromViper(v)
}

// Watch re-reads the config file on every write and hands the result to onChange
// Invalid edits reach onChange as an error so the caller can keep its current settings
// Returns false when no config file is in use
func Watch(v *viper.Viper, onChange func(*Config, error)) bool {
	if v.ConfigFileUsed() == "" {
		return false
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(NewConfigFromViper(v))
	})
	v.WatchConfig()
	return true
}

// WriteDefault serializes the default configuration as TOML to path
// An existing file is left untouched unless overwrite is set
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, Default()); err != nil {
		return err
	}
	return f.Close()
}

// Encode writes cfg as TOML with durations in their string form
func Encode(w io.Writer, cfg *Config) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(fileView(cfg)); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// fileView replaces durations with strings so the written file stays human-editable
func fileView(c *Config) any {
	type movementFile struct {
		IdleTimeout       string  `toml:"idle_timeout"`
		CircleAngleStep   float64 `toml:"circle_angle_step"`
		CircleRadiusRatio float64 `toml:"circle_radius_ratio"`
	}
	return struct {
		Logger   LoggerConfig `toml:"logger"`
		Render   RenderConfig `toml:"render"`
		Field    FieldConfig  `toml:"field"`
		Trail    TrailConfig  `toml:"trail"`
		Movement movementFile `toml:"movement"`
		Audio    AudioConfig  `toml:"audio"`
		UI       UIConfig     `toml:"ui"`
	}{
		Logger: c.Logger,
		Render: c.Render,
		Field:  c.Field,
		Trail:  c.Trail,
		Movement: movementFile{
			IdleTimeout:       c.Movement.IdleTimeout.String(),
			CircleAngleStep:   c.Movement.CircleAngleStep,
			CircleRadiusRatio: c.Movement.CircleRadiusRatio,
		},
		Audio: c.Audio,
		UI:    c.UI,
	}
}
