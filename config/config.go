// Package config holds the startup configuration of the switcher. It is read
// once at attach time from a TOML or YAML file; there is no live binding.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	ColorModeFixed    = "fixed"
	ColorModePriority = "priority"

	// MaxRefreshInterval bounds the report refresh interval, in seconds
	MaxRefreshInterval = 2.0
	// MaxThickness bounds the visualization line thickness
	MaxThickness = 8.0
)

// Config is the startup configuration
type Config struct {
	// EnableAtStart is the override enabled state at attach time
	EnableAtStart bool `toml:"enable_at_start" yaml:"enable_at_start"`
	// RefreshInterval is the report interval in seconds, zero reports every tick
	RefreshInterval float64 `toml:"refresh_interval" yaml:"refresh_interval"`
	// HardwareRayTracing is the renderer default for hardware ray tracing
	HardwareRayTracing bool `toml:"hardware_ray_tracing" yaml:"hardware_ray_tracing"`
	// Workers splits containment tests, values below 1 mean 1
	Workers  int    `toml:"workers" yaml:"workers"`
	LogLevel string `toml:"log_level" yaml:"log_level"`

	Visualization Visualization `toml:"visualization" yaml:"visualization"`
}

// Visualization configures the debug drawing of volume boundaries
type Visualization struct {
	Enabled   bool    `toml:"enabled" yaml:"enabled"`
	Thickness float64 `toml:"thickness" yaml:"thickness"`
	// ColorMode is either "fixed" or "priority"
	ColorMode string `toml:"color_mode" yaml:"color_mode"`
	// Color is the fixed color as hex
	Color string `toml:"color" yaml:"color"`
	// Ramp lists the hex color stops used to color by relative priority
	Ramp []string `toml:"ramp" yaml:"ramp"`
	// Lifetime of the drawn lines in seconds; negative lines are persistent
	// and drawn once at attach, otherwise they are redrawn every tick
	Lifetime          float64 `toml:"lifetime" yaml:"lifetime"`
	SegmentsPerCorner int     `toml:"segments_per_corner" yaml:"segments_per_corner"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		EnableAtStart:   true,
		RefreshInterval: 0.3,
		Workers:         1,
		LogLevel:        "info",
		Visualization: Visualization{
			Enabled:           false,
			Thickness:         1,
			ColorMode:         ColorModeFixed,
			Color:             "#00ff00",
			Ramp:              []string{"#0000ff", "#00ff00", "#ff0000"},
			Lifetime:          -1,
			SegmentsPerCorner: 4,
		},
	}
}

// Load reads the configuration file at path on top of the defaults. The format
// is chosen by extension: .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the given format on top of the defaults and validates
// the result
func Parse(data []byte, format string) (Config, error) {
	cfg := Default()

	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	case "yaml", "yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate clamps numeric ranges and checks enumerations and colors
func (c *Config) Validate() error {
	c.RefreshInterval = clamp(c.RefreshInterval, 0, MaxRefreshInterval)
	c.Visualization.Thickness = clamp(c.Visualization.Thickness, 0, MaxThickness)
	c.Workers = max(1, c.Workers)
	if c.Visualization.SegmentsPerCorner <= 0 {
		c.Visualization.SegmentsPerCorner = 4
	}

	switch c.Visualization.ColorMode {
	case "":
		c.Visualization.ColorMode = ColorModeFixed
	case ColorModeFixed, ColorModePriority:
	default:
		return fmt.Errorf("invalid color mode %q", c.Visualization.ColorMode)
	}

	if _, err := colorful.Hex(c.Visualization.Color); err != nil {
		return fmt.Errorf("invalid visualization color %q: %w", c.Visualization.Color, err)
	}
	for _, stop := range c.Visualization.Ramp {
		if _, err := colorful.Hex(stop); err != nil {
			return fmt.Errorf("invalid ramp color %q: %w", stop, err)
		}
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level, info when empty
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
