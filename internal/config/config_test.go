package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "")
	t.Setenv("SYMMETRY_ENGINE", "")

	cfg, err := LoadConfiguration("")
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Canvas.Width)
	assert.Equal(t, 600, cfg.Canvas.Height)
	assert.Equal(t, float32(2), cfg.Line.Width)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, cfg.LineColor())
	assert.Equal(t, EngineImaging, cfg.Engine)
	assert.Equal(t, ".png", cfg.Save.DefaultExtension)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "")
	t.Setenv("SYMMETRY_ENGINE", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `canvas:
  width: 640
  height: 480
line:
  color: "#00ff00"
engine: opencv
logging:
  level: debug
  json: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfiguration(path)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Canvas.Width)
	assert.Equal(t, 480, cfg.Canvas.Height)
	assert.Equal(t, float32(2), cfg.Line.Width, "unset values keep defaults")
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, cfg.LineColor())
	assert.Equal(t, EngineOpenCV, cfg.Engine)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
}

func TestLoadConfiguration_EnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "1")
	t.Setenv("SYMMETRY_ENGINE", EngineOpenCV)

	cfg, err := LoadConfiguration("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, EngineOpenCV, cfg.Engine)

	t.Setenv("LOG_LEVEL", "error")
	cfg, err = LoadConfiguration("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadConfiguration_Errors(t *testing.T) {
	t.Setenv("SYMMETRY_ENGINE", "")

	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("canvas:\n  width: -1\n"), 0o644))
	_, err = LoadConfiguration(path)
	assert.ErrorContains(t, err, "canvas size")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Engine = "gpu"
	cfg.Save.DefaultExtension = "png"
	cfg.Line.Color = "orange"
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown engine")
	assert.ErrorContains(t, err, "default extension")
	assert.ErrorContains(t, err, "invalid color")
}

func TestParseColor(t *testing.T) {
	col, err := ParseColor("#1a2B3c")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 255}, col)

	col, err = ParseColor("Red")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, col)

	_, err = ParseColor("#12345")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}

func TestDumpRoundTrip(t *testing.T) {
	data, err := Dump(Default())
	require.NoError(t, err)
	assert.Contains(t, string(data), "engine: imaging")
	assert.Contains(t, string(data), "default_extension: .png")
}
