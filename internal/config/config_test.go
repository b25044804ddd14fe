package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":4000", cfg.Listen)
	assert.Equal(t, 160, cfg.Display.Width)
	assert.Equal(t, 128, cfg.Display.Height)
	assert.Equal(t, 4, cfg.Window.Scale)
	assert.False(t, cfg.Headless.Enabled)
	assert.Equal(t, 60, cfg.Headless.Hz)
	assert.NoError(t, Validate(cfg))
}

func TestLoadNoFile(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkscope.yaml")
	content := `
listen: 127.0.0.1:4100
display:
  width: 320
headless:
  enabled: true
  ticks: 600
  press_every: 3s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4100", cfg.Listen)
	assert.Equal(t, 320, cfg.Display.Width)
	assert.Equal(t, 128, cfg.Display.Height)
	assert.True(t, cfg.Headless.Enabled)
	assert.Equal(t, uint64(600), cfg.Headless.Ticks)
	assert.Equal(t, 3*time.Second, cfg.Headless.PressEvery)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("LINKSCOPE_DISPLAY_HEIGHT", "80")
	t.Setenv("LINKSCOPE_LISTEN", ":5000")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Display.Height)
	assert.Equal(t, ":5000", cfg.Listen)
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("listen", ":4000", "")
	fs.Int("scale", 4, "")
	fs.Bool("headless", false, "")
	fs.Int("hz", 60, "")
	fs.Duration("press-every", 0, "")
	return fs
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  scale: 2\nheadless:\n  hz: 30\n"), 0o644))

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--scale=6", "--headless", "--press-every=500ms"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Window.Scale)
	assert.True(t, cfg.Headless.Enabled)
	assert.Equal(t, 30, cfg.Headless.Hz) // unchanged flag does not mask the file
	assert.Equal(t, 500*time.Millisecond, cfg.Headless.PressEvery)
	assert.Equal(t, ":4000", cfg.Listen)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"zero width", func(c *Config) { c.Display.Width = 0 }},
		{"huge height", func(c *Config) { c.Display.Height = 4096 }},
		{"scale", func(c *Config) { c.Window.Scale = 0 }},
		{"hz", func(c *Config) { c.Headless.Hz = 0 }},
		{"press", func(c *Config) { c.Headless.PressEvery = -time.Second }},
		{"listen", func(c *Config) { c.Listen = "4000" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(cfg)
			assert.ErrorIs(t, Validate(cfg), ErrInvalid)
		})
	}

	cfg := Default()
	cfg.Listen = ""
	assert.NoError(t, Validate(cfg))
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("LINKSCOPE_WINDOW_SCALE", "99")
	_, err := Load("", nil)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestYAML(t *testing.T) {
	cfg := Default()
	cfg.Headless.PressEvery = 2 * time.Second
	b, err := YAML(cfg)
	require.NoError(t, err)

	out := string(b)
	assert.Contains(t, out, "width: 160")
	assert.Contains(t, out, "press_every: 2s")

	path := filepath.Join(t.TempDir(), "roundtrip.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
