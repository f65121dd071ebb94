package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// fileConfig is the on-disk JSON shape at ~/.config/canvas-tasks/config.json.
// Field names are kept compatible with earlier versions of the tool.
type fileConfig struct {
	CanvasBaseURL string `json:"canvas_base_url"`
	CanvasToken   string `json:"canvas_token"`
	ReferenceZone string `json:"reference_zone,omitempty"`
}

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader using the default config
// file location.
func NewLoader() *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: DefaultConfigPath(),
	}
}

// NewLoaderWithPath creates a new configuration loader reading the config
// file from the given path.
func NewLoaderWithPath(path string) *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: path,
	}
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "canvas-tasks", "config.json")
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the JSON config file, if present
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	// Step 1: Start with defaults (already done in NewConfig)

	// Step 2: Load from the config file; a missing file is not an error,
	// the credentials may arrive via environment or flags.
	if err := l.loadFromFile(); err != nil {
		return nil, err
	}

	// Step 3: Load from environment variables
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// Step 4: Validate the configuration
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadFromFile merges the JSON config file into the configuration.
func (l *Loader) loadFromFile() error {
	if l.filePath == "" {
		return nil
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.CanvasBaseURL != "" {
		l.config.Canvas.BaseURL = fc.CanvasBaseURL
	}
	if fc.CanvasToken != "" {
		l.config.Canvas.Token = fc.CanvasToken
	}
	if fc.ReferenceZone != "" {
		l.config.Time.ReferenceZone = fc.ReferenceZone
	}

	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Canvas overrides
	BaseURL        *string
	Token          *string
	RequestTimeout *time.Duration

	// Window overrides
	PastDays   *int
	FutureDays *int

	// Time overrides
	ReferenceZone *string
	DisplayFormat *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Canvas overrides
	if overrides.BaseURL != nil {
		config.Canvas.BaseURL = *overrides.BaseURL
	}
	if overrides.Token != nil {
		config.Canvas.Token = *overrides.Token
	}
	if overrides.RequestTimeout != nil {
		config.Canvas.RequestTimeout = *overrides.RequestTimeout
	}

	// Window overrides
	if overrides.PastDays != nil {
		config.Window.PastDays = *overrides.PastDays
	}
	if overrides.FutureDays != nil {
		config.Window.FutureDays = *overrides.FutureDays
	}

	// Time overrides
	if overrides.ReferenceZone != nil {
		config.Time.ReferenceZone = *overrides.ReferenceZone
	}
	if overrides.DisplayFormat != nil {
		config.Time.DisplayFormat = *overrides.DisplayFormat
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
