// Package config holds the host simulator settings.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. LINKSCOPE_DISPLAY_WIDTH.
const EnvPrefix = "LINKSCOPE"

// Config is the host runner configuration.
type Config struct {
	Listen   string         `mapstructure:"listen" yaml:"listen"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
	Window   WindowConfig   `mapstructure:"window" yaml:"window"`
	Headless HeadlessConfig `mapstructure:"headless" yaml:"headless"`
}

// DisplayConfig is the simulated panel size in pixels.
type DisplayConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

type WindowConfig struct {
	Scale int `mapstructure:"scale" yaml:"scale"`
}

// HeadlessConfig drives the runner without a window.
type HeadlessConfig struct {
	Enabled    bool          `mapstructure:"enabled" yaml:"enabled"`
	Hz         int           `mapstructure:"hz" yaml:"hz"`
	Ticks      uint64        `mapstructure:"ticks" yaml:"ticks"`
	PressEvery time.Duration `mapstructure:"press_every" yaml:"press_every"`
}

// Default returns the built-in configuration: the ST7735 geometry and the
// telemetry port the broadcaster sends to.
func Default() *Config {
	return &Config{
		Listen:  ":4000",
		Display: DisplayConfig{Width: 160, Height: 128},
		Window:  WindowConfig{Scale: 4},
		Headless: HeadlessConfig{
			Hz: 60,
		},
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"listen":      "listen",
	"width":       "display.width",
	"height":      "display.height",
	"scale":       "window.scale",
	"headless":    "headless.enabled",
	"hz":          "headless.hz",
	"ticks":       "headless.ticks",
	"press-every": "headless.press_every",
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("listen", d.Listen)
	v.SetDefault("display.width", d.Display.Width)
	v.SetDefault("display.height", d.Display.Height)
	v.SetDefault("window.scale", d.Window.Scale)
	v.SetDefault("headless.enabled", d.Headless.Enabled)
	v.SetDefault("headless.hz", d.Headless.Hz)
	v.SetDefault("headless.ticks", d.Headless.Ticks)
	v.SetDefault("headless.press_every", d.Headless.PressEvery)
}

// Load merges, lowest priority first: defaults, the YAML file at path (if
// path is not empty), LINKSCOPE_* environment variables, and flags that were
// set explicitly.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config: bind --%s: %w", name, err)
			}
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

func Validate(cfg *Config) error {
	if cfg.Display.Width <= 0 || cfg.Display.Width > 1024 ||
		cfg.Display.Height <= 0 || cfg.Display.Height > 1024 {
		return fmt.Errorf("%w: display %dx%d", ErrInvalid, cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Window.Scale < 1 || cfg.Window.Scale > 16 {
		return fmt.Errorf("%w: window scale %d (want 1..16)", ErrInvalid, cfg.Window.Scale)
	}
	if cfg.Headless.Hz < 1 || cfg.Headless.Hz > 1000 {
		return fmt.Errorf("%w: headless hz %d (want 1..1000)", ErrInvalid, cfg.Headless.Hz)
	}
	if cfg.Headless.PressEvery < 0 {
		return fmt.Errorf("%w: negative press interval %s", ErrInvalid, cfg.Headless.PressEvery)
	}
	if cfg.Listen != "" {
		if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
			return fmt.Errorf("%w: listen %q: %v", ErrInvalid, cfg.Listen, err)
		}
	}
	return nil
}

// YAML renders cfg in the file format Load accepts.
func YAML(cfg *Config) ([]byte, error) {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return b, nil
}
