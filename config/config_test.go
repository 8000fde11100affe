package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.EnableAtStart)
	assert.Equal(t, 0.3, cfg.RefreshInterval)
	assert.False(t, cfg.Visualization.Enabled)
	assert.Equal(t, ColorModeFixed, cfg.Visualization.ColorMode)
	assert.Equal(t, "#00ff00", cfg.Visualization.Color)
	require.NoError(t, cfg.Validate())
}

func TestParse_TOML(t *testing.T) {
	data := []byte(`
enable_at_start = false
refresh_interval = 0.5
hardware_ray_tracing = true

[visualization]
enabled = true
color_mode = "priority"
thickness = 2.5
`)
	cfg, err := Parse(data, ".toml")
	require.NoError(t, err)

	assert.False(t, cfg.EnableAtStart)
	assert.Equal(t, 0.5, cfg.RefreshInterval)
	assert.True(t, cfg.HardwareRayTracing)
	assert.True(t, cfg.Visualization.Enabled)
	assert.Equal(t, ColorModePriority, cfg.Visualization.ColorMode)
	assert.Equal(t, 2.5, cfg.Visualization.Thickness)
	// untouched fields keep their defaults
	assert.Equal(t, "#00ff00", cfg.Visualization.Color)
	assert.Equal(t, -1.0, cfg.Visualization.Lifetime)
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
enable_at_start: false
log_level: debug
visualization:
  enabled: true
  color: "#ff8800"
  ramp: ["#000000", "#ffffff"]
`)
	cfg, err := Parse(data, "yaml")
	require.NoError(t, err)

	assert.False(t, cfg.EnableAtStart)
	assert.Equal(t, "#ff8800", cfg.Visualization.Color)
	assert.Equal(t, []string{"#000000", "#ffffff"}, cfg.Visualization.Ramp)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParse_EmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil, "yml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Clamps(t *testing.T) {
	cfg, err := Parse([]byte("refresh_interval = 5.0\nworkers = -3\n[visualization]\nthickness = 20.0\n"), "toml")
	require.NoError(t, err)

	assert.Equal(t, MaxRefreshInterval, cfg.RefreshInterval)
	assert.Equal(t, MaxThickness, cfg.Visualization.Thickness)
	assert.Equal(t, 1, cfg.Workers)

	cfg, err = Parse([]byte("refresh_interval: -1\n"), "yaml")
	require.NoError(t, err)
	assert.Zero(t, cfg.RefreshInterval)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{name: "unknown format", data: "", format: ".json"},
		{name: "bad color mode", data: "[visualization]\ncolor_mode = \"rainbow\"\n", format: "toml"},
		{name: "bad color", data: "visualization:\n  color: notacolor\n", format: "yaml"},
		{name: "bad ramp stop", data: "visualization:\n  ramp: [\"#00ff00\", \"blue\"]\n", format: "yaml"},
		{name: "bad log level", data: "log_level = \"chatty\"\n", format: "toml"},
		{name: "unknown toml field", data: "colour = 1\n", format: "toml"},
		{name: "unknown yaml field", data: "colour: 1\n", format: "yaml"},
		{name: "malformed toml", data: "enable_at_start = \n", format: "toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "switcher.toml")
	require.NoError(t, os.WriteFile(path, []byte("enable_at_start = false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.EnableAtStart)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
