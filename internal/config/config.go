// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for gemchat.
//
// Configuration file location:
//   - ~/.gemchat/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultModel is the model used until the user picks another one.
	DefaultModel = "gemini-flash-lite-latest"

	// DefaultTemperature is the sampling temperature sent with every message.
	// It is fixed and has no config key.
	DefaultTemperature = 1.0

	// DefaultRefreshPerSecond caps live panel redraws.
	DefaultRefreshPerSecond = 12

	// DefaultIdleTimeoutSecs aborts a stream that stops producing chunks.
	DefaultIdleTimeoutSecs = 60

	// RenderModeLive redraws a titled markdown panel while the response streams.
	RenderModeLive = "live"

	// RenderModeRaw prints raw tokens, then re-renders the full response as markdown.
	RenderModeRaw = "raw"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete gemchat configuration.
type Config struct {
	// Model is the model identifier the first chat session is bound to
	Model string `toml:"model"`

	// Render configures how streamed responses are displayed
	Render RenderConfig `toml:"render"`

	// Stream configures stream hardening
	Stream StreamConfig `toml:"stream"`

	// Log configures the debug log
	Log LogConfig `toml:"log"`
}

// RenderConfig contains streaming renderer settings.
type RenderConfig struct {
	// Mode is "live" (refreshing panel) or "raw" (raw text, then formatted)
	Mode string `toml:"mode"`
	// RefreshPerSecond is the maximum live panel redraw rate (1-60)
	RefreshPerSecond int `toml:"refresh_per_second"`
	// Theme is the glamour style: "auto", "dark", "light" or "notty"
	Theme string `toml:"theme"`
	// Width caps markdown word wrap; 0 uses the terminal width
	Width int `toml:"width"`
}

// StreamConfig contains stream settings.
type StreamConfig struct {
	// IdleTimeoutSecs aborts a stream when no chunk arrives for this long (0 = disabled)
	IdleTimeoutSecs int `toml:"idle_timeout_secs"`
}

// LogConfig contains debug log settings.
type LogConfig struct {
	// Path of the debug log file; empty disables logging
	Path string `toml:"path"`
	// Level is one of debug, info, warn, error
	Level string `toml:"level"`
}

// IdleTimeout returns the stream idle timeout as a duration.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Stream.IdleTimeoutSecs) * time.Second
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Model: DefaultModel,
		Render: RenderConfig{
			Mode:             RenderModeLive,
			RefreshPerSecond: DefaultRefreshPerSecond,
			Theme:            "auto",
		},
		Stream: StreamConfig{
			IdleTimeoutSecs: DefaultIdleTimeoutSecs,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the gemchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".gemchat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only).
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.gemchat/config.toml.
// A missing file is not an error; defaults are used instead.
// Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		// No home directory: defaults plus environment only.
		return finalize(Default())
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from the given TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, statErr := os.Stat(path); statErr == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config: %w", err)
		}
	}

	return finalize(cfg)
}

// finalize applies environment overrides and defaults, then validates.
func finalize(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file on top of cfg.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		fmt.Fprintf(os.Stderr, "Warning: unknown config keys in %s: %s\n", path, strings.Join(keys, ", "))
	}
	return nil
}

// SetDefaults fills zero values that have a non-zero default.
func (c *Config) SetDefaults() {
	if strings.TrimSpace(c.Model) == "" {
		c.Model = DefaultModel
	}
	if c.Render.Mode == "" {
		c.Render.Mode = RenderModeLive
	}
	c.Render.Mode = strings.ToLower(c.Render.Mode)
	if c.Render.RefreshPerSecond == 0 {
		c.Render.RefreshPerSecond = DefaultRefreshPerSecond
	}
	if c.Render.Theme == "" {
		c.Render.Theme = "auto"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//   - GEMCHAT_MODEL: overrides model
//   - GEMCHAT_RENDER_MODE: overrides render.mode
//   - GEMCHAT_REFRESH_RATE: overrides render.refresh_per_second
//   - GEMCHAT_LOG: overrides log.path
func (c *Config) ApplyEnvOverrides() {
	if model := os.Getenv("GEMCHAT_MODEL"); model != "" {
		c.Model = model
	}

	if mode := os.Getenv("GEMCHAT_RENDER_MODE"); mode != "" {
		c.Render.Mode = mode
	}

	if rate := os.Getenv("GEMCHAT_REFRESH_RATE"); rate != "" {
		if n, err := strconv.Atoi(rate); err == nil {
			c.Render.RefreshPerSecond = n
		}
	}

	if path := os.Getenv("GEMCHAT_LOG"); path != "" {
		c.Log.Path = path
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	switch strings.ToLower(c.Render.Mode) {
	case RenderModeLive, RenderModeRaw:
	default:
		errs = append(errs, ValidationError{
			Field:   "render.mode",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: live, raw", c.Render.Mode),
		})
	}

	if c.Render.RefreshPerSecond < 1 || c.Render.RefreshPerSecond > 60 {
		errs = append(errs, ValidationError{
			Field:   "render.refresh_per_second",
			Message: fmt.Sprintf("must be between 1 and 60, got %d", c.Render.RefreshPerSecond),
		})
	}

	switch c.Render.Theme {
	case "auto", "dark", "light", "notty":
	default:
		errs = append(errs, ValidationError{
			Field:   "render.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light, notty", c.Render.Theme),
		})
	}

	if c.Render.Width < 0 {
		errs = append(errs, ValidationError{Field: "render.width", Message: "must not be negative"})
	}

	if c.Stream.IdleTimeoutSecs < 0 {
		errs = append(errs, ValidationError{Field: "stream.idle_timeout_secs", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
