package config

import (
	"os"
	"strconv"
	"time"

	"canvas-tasks/internal/errors"
)

// Config holds all configuration options for the canvas-tasks application
type Config struct {
	Canvas      CanvasConfig
	Window      WindowConfig
	Time        TimeConfig
	Application ApplicationConfig
}

// CanvasConfig holds credentials and transport settings for the Canvas API
type CanvasConfig struct {
	BaseURL        string        `env:"CVT_CANVAS_BASE_URL"`
	Token          string        `env:"CVT_CANVAS_TOKEN"`
	RequestTimeout time.Duration `env:"CVT_CANVAS_REQUEST_TIMEOUT"`
}

// WindowConfig holds the fetch/display window around "now"
type WindowConfig struct {
	PastDays   int `env:"CVT_WINDOW_PAST_DAYS"`
	FutureDays int `env:"CVT_WINDOW_FUTURE_DAYS"`
}

// TimeConfig holds the reference timezone and display formatting
type TimeConfig struct {
	// ReferenceZone is the IANA zone all due dates are normalized into
	// before comparison or display.
	ReferenceZone string `env:"CVT_REFERENCE_ZONE"`
	DisplayFormat string `env:"CVT_TIME_DISPLAY_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"CVT_APP_TIMEOUT"`
	Verbose bool          `env:"CVT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			RequestTimeout: 10 * time.Second,
		},
		Window: WindowConfig{
			PastDays:   30,
			FutureDays: 30,
		},
		Time: TimeConfig{
			ReferenceZone: "Asia/Manila",
			DisplayFormat: "01/02 15:04",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// IsConfigured reports whether Canvas credentials are present. The rest of
// the application trusts these values without re-validating their format.
func (c *Config) IsConfigured() bool {
	return c.Canvas.BaseURL != "" && c.Canvas.Token != ""
}

// ReferenceLocation resolves the configured reference timezone.
func (c *Config) ReferenceLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Time.ReferenceZone)
	if err != nil {
		return nil, errors.NewConfigError("time.reference_zone", err.Error())
	}
	return loc, nil
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Canvas configuration
	if baseURL := os.Getenv("CVT_CANVAS_BASE_URL"); baseURL != "" {
		c.Canvas.BaseURL = baseURL
	}
	if token := os.Getenv("CVT_CANVAS_TOKEN"); token != "" {
		c.Canvas.Token = token
	}
	if timeout := os.Getenv("CVT_CANVAS_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Canvas.RequestTimeout = d
		}
	}

	// Window configuration
	if days := os.Getenv("CVT_WINDOW_PAST_DAYS"); days != "" {
		if n, err := strconv.Atoi(days); err == nil {
			c.Window.PastDays = n
		}
	}
	if days := os.Getenv("CVT_WINDOW_FUTURE_DAYS"); days != "" {
		if n, err := strconv.Atoi(days); err == nil {
			c.Window.FutureDays = n
		}
	}

	// Time configuration
	if zone := os.Getenv("CVT_REFERENCE_ZONE"); zone != "" {
		c.Time.ReferenceZone = zone
	}
	if format := os.Getenv("CVT_TIME_DISPLAY_FORMAT"); format != "" {
		c.Time.DisplayFormat = format
	}

	// Application configuration
	if timeout := os.Getenv("CVT_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("CVT_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Canvas configuration
	if c.Canvas.RequestTimeout <= 0 {
		return errors.NewConfigError("canvas.request_timeout", "request timeout must be positive")
	}

	// Window configuration
	if c.Window.PastDays < 0 {
		return errors.NewConfigError("window.past_days", "past days cannot be negative")
	}
	if c.Window.FutureDays <= 0 {
		return errors.NewConfigError("window.future_days", "future days must be positive")
	}

	// Time configuration
	if c.Time.ReferenceZone == "" {
		return errors.NewConfigError("time.reference_zone", "reference timezone cannot be empty")
	}
	if _, err := time.LoadLocation(c.Time.ReferenceZone); err != nil {
		return errors.NewConfigError("time.reference_zone", "unknown timezone: "+c.Time.ReferenceZone)
	}
	if c.Time.DisplayFormat == "" {
		return errors.NewConfigError("time.display_format", "display format cannot be empty")
	}

	// Application configuration
	if c.Application.Timeout <= 0 {
		return errors.NewConfigError("application.timeout", "application timeout must be positive")
	}

	return nil
}
