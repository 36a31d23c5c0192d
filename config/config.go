// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads the YAML configuration shared by the bootsplash
// commands.
//
// The file is located by the --config flag or, when the flag is empty, by
// the BOOTSPLASH_CONFIG environment variable. Without either, the defaults
// are used. Values in the file override the defaults field by field;
// command-line flags override the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/bootsplash"
	"github.com/gogpu/bootsplash/control"
	"github.com/gogpu/bootsplash/framebuffer"
	"github.com/gogpu/bootsplash/raster"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "BOOTSPLASH_CONFIG"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete bootsplash configuration.
type Config struct {
	// Image is the splash image path.
	Image string `yaml:"image"`

	// Placement is the oversized image policy: "center" or "fit".
	Placement string `yaml:"placement"`

	// LogLevel is one of debug, info, warn, error or off.
	LogLevel string `yaml:"log_level"`

	// Framebuffer configures the pre-compositor preview.
	Framebuffer FramebufferConfig `yaml:"framebuffer"`

	// Control configures the control socket.
	Control ControlConfig `yaml:"control"`

	// Preview configures the splash-preview window.
	Preview PreviewConfig `yaml:"preview"`
}

// FramebufferConfig configures the raw framebuffer preview.
type FramebufferConfig struct {
	// Enabled turns the preview on.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Device is the framebuffer device.
	// Default: /dev/fb0
	Device string `yaml:"device"`

	// SizeFile holds the resolution as "W,H".
	// Default: /sys/class/graphics/fb0/virtual_size
	SizeFile string `yaml:"size_file"`

	// FallbackWidth and FallbackHeight are used when the size is unknown.
	// Default: 1280x800
	FallbackWidth  int `yaml:"fallback_width"`
	FallbackHeight int `yaml:"fallback_height"`
}

// ControlConfig configures the control socket.
type ControlConfig struct {
	// Socket is the Unix socket path. Empty disables the control channel.
	// Default: /tmp/strux-cage-control.sock
	Socket string `yaml:"socket"`

	// ReadTimeout bounds how long a client may stay silent. Zero disables
	// the timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// PreviewConfig configures the desktop preview window.
type PreviewConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Placement: raster.PlaceCenter.String(),
		LogLevel:  "info",
		Framebuffer: FramebufferConfig{
			Enabled:        true,
			Device:         framebuffer.DefaultDevicePath,
			SizeFile:       framebuffer.DefaultSizePath,
			FallbackWidth:  framebuffer.DefaultWidth,
			FallbackHeight: framebuffer.DefaultHeight,
		},
		Control: ControlConfig{
			Socket:      control.DefaultSocketPath,
			ReadTimeout: control.DefaultReadTimeout,
		},
		Preview: PreviewConfig{
			Title:  "bootsplash preview",
			Width:  framebuffer.DefaultWidth,
			Height: framebuffer.DefaultHeight,
		},
	}
}

// Load loads the file at path, or the file named by BOOTSPLASH_CONFIG when
// path is empty. With neither, it returns the validated defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file, on top of the
// defaults, and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if _, err := raster.ParsePlacement(c.Placement); err != nil {
		errs = append(errs, fmt.Errorf("%w: placement: %w", ErrInvalid, err))
	}
	if _, _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: log_level: %w", ErrInvalid, err))
	}
	if c.Framebuffer.Enabled && c.Framebuffer.Device == "" {
		errs = append(errs, fmt.Errorf("%w: framebuffer.device is required when enabled", ErrInvalid))
	}
	if c.Framebuffer.FallbackWidth <= 0 || c.Framebuffer.FallbackHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: framebuffer fallback size must be positive, got %dx%d",
			ErrInvalid, c.Framebuffer.FallbackWidth, c.Framebuffer.FallbackHeight))
	}
	if c.Control.ReadTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: control.read_timeout must not be negative", ErrInvalid))
	}
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: preview size must be positive, got %dx%d",
			ErrInvalid, c.Preview.Width, c.Preview.Height))
	}

	return errors.Join(errs...)
}

// ParseLevel parses a log level name. The second result is false for "off".
func ParseLevel(name string) (slog.Level, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "off", "none":
		return 0, false, nil
	case "":
		return slog.LevelInfo, true, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, false, err
	}
	return level, true, nil
}

// Logger returns a text logger writing to stderr at the configured level,
// or nil when logging is off.
func (c *Config) Logger() *slog.Logger {
	level, on, err := ParseLevel(c.LogLevel)
	if err != nil || !on {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Renderer returns the framebuffer renderer, or nil when disabled.
func (c *Config) Renderer() *framebuffer.Renderer {
	if !c.Framebuffer.Enabled {
		return nil
	}
	return &framebuffer.Renderer{
		DevicePath:     c.Framebuffer.Device,
		SizePath:       c.Framebuffer.SizeFile,
		FallbackWidth:  c.Framebuffer.FallbackWidth,
		FallbackHeight: c.Framebuffer.FallbackHeight,
	}
}

// Options converts the configuration into session options.
func (c *Config) Options() []bootsplash.Option {
	placement, err := raster.ParsePlacement(c.Placement)
	if err != nil {
		placement = raster.PlaceCenter
	}
	return []bootsplash.Option{
		bootsplash.WithControlSocket(c.Control.Socket),
		bootsplash.WithFramebuffer(c.Renderer()),
		bootsplash.WithPlacement(placement),
		bootsplash.WithFallbackSize(c.Framebuffer.FallbackWidth, c.Framebuffer.FallbackHeight),
		bootsplash.WithReadTimeout(c.Control.ReadTimeout),
	}
}
