package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"cornerpeek/internal/peek"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

const fileName = "config.json"

// Config holds all application settings.
// Methods are safe for concurrent use. Direct field access is for code
// that owns the value, such as a fresh Clone; use Clone to read a shared
// config from another goroutine.
type Config struct {
	WidgetSize        int     `json:"widget_size"`
	HideOffset        int     `json:"hide_offset"`
	CornerZone        int     `json:"corner_zone"`
	PollIntervalMs    int     `json:"poll_interval_ms"`
	OverlayOpacity    float64 `json:"overlay_opacity"`
	AlwaysOnTop       bool    `json:"always_on_top"`
	StartLocked       bool    `json:"start_locked"`
	JournalEnabled    bool    `json:"journal_enabled"`
	LockHotkeyEnabled bool    `json:"lock_hotkey_enabled"`

	mu   sync.RWMutex
	path string
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		WidgetSize:        peek.DefaultWidgetSize,
		HideOffset:        peek.DefaultHideOffset,
		CornerZone:        peek.DefaultCornerZone,
		PollIntervalMs:    int(peek.DefaultPollInterval / time.Millisecond),
		OverlayOpacity:    0.9,
		AlwaysOnTop:       true,
		StartLocked:       false,
		JournalEnabled:    true,
		LockHotkeyEnabled: true,
	}
}

// Dir returns the platform-appropriate config directory:
//   - Windows: %APPDATA%\CornerPeek
//   - macOS:   ~/Library/Application Support/CornerPeek
//   - Linux:   ~/.config/cornerpeek (XDG_CONFIG_HOME)
func Dir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "CornerPeek"), nil

	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "CornerPeek"), nil

	default: // linux and others
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configHome = filepath.Join(home, ".config")
		}
		return filepath.Join(configHome, "cornerpeek"), nil
	}
}

// DefaultPath returns the path of the config file inside Dir
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// DataPath returns a file path next to the config file, creating the directory
func DataPath(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Load reads the config at path, or the default path when empty.
// A missing file yields the defaults bound to that path.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	c := Default()
	c.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil // Use defaults
		}
		return nil, err
	}

	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Clone returns a copy bound to the same path
func (c *Config) Clone() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := &Config{path: c.path}
	n.copyFields(c)
	return n
}

// Apply copies the settings of other into c, keeping c's path
func (c *Config) Apply(other *Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.copyFields(other)
}

func (c *Config) copyFields(o *Config) {
	c.WidgetSize = o.WidgetSize
	c.HideOffset = o.HideOffset
	c.CornerZone = o.CornerZone
	c.PollIntervalMs = o.PollIntervalMs
	c.OverlayOpacity = o.OverlayOpacity
	c.AlwaysOnTop = o.AlwaysOnTop
	c.StartLocked = o.StartLocked
	c.JournalEnabled = o.JournalEnabled
	c.LockHotkeyEnabled = o.LockHotkeyEnabled
}

// Path returns the file the config is bound to
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.validate(); err != nil {
		return err
	}

	if c.path == "" {
		path, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = path
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0600)
}

// Validate checks the tunables for values the geometry cannot use
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.validate()
}

func (c *Config) validate() error {
	switch {
	case c.WidgetSize <= 0:
		return fmt.Errorf("%w: widget_size must be positive, got %d", ErrInvalidConfig, c.WidgetSize)
	case c.HideOffset < 0 || c.HideOffset >= c.WidgetSize:
		return fmt.Errorf("%w: hide_offset must be in [0, widget_size), got %d", ErrInvalidConfig, c.HideOffset)
	case c.CornerZone <= 0:
		return fmt.Errorf("%w: corner_zone must be positive, got %d", ErrInvalidConfig, c.CornerZone)
	case c.PollIntervalMs < 10 || c.PollIntervalMs > 1000:
		return fmt.Errorf("%w: poll_interval_ms must be in [10, 1000], got %d", ErrInvalidConfig, c.PollIntervalMs)
	case c.OverlayOpacity < 0.1 || c.OverlayOpacity > 1:
		return fmt.Errorf("%w: overlay_opacity must be in [0.1, 1], got %.2f", ErrInvalidConfig, c.OverlayOpacity)
	}
	return nil
}

// Params returns the geometry tunables
func (c *Config) Params() peek.Params {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.params()
}

func (c *Config) params() peek.Params {
	return peek.Params{
		WidgetSize: c.WidgetSize,
		HideOffset: c.HideOffset,
		CornerZone: c.CornerZone,
	}
}

// PollInterval returns the monitor cadence
func (c *Config) PollInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pollInterval()
}

func (c *Config) pollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// MonitorOptions returns the options a peek monitor session runs with
func (c *Config) MonitorOptions() peek.Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return peek.Options{
		Params:       c.params(),
		PollInterval: c.pollInterval(),
	}
}
