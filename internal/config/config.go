// Package config provides configuration management for tkm.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"tkm/internal/gesture"
)

// AppName names the per-user config directory
const AppName = "tkm"

// Config represents the application configuration
type Config struct {
	// Trackpad holds the gesture thresholds
	Trackpad TrackpadConfig `json:"trackpad"`

	// Posture tunes display arrangement detection
	Posture PostureConfig `json:"posture"`

	// Touch selects the multitouch input device
	Touch TouchConfig `json:"touch"`

	// General contains general application settings
	General GeneralConfig `json:"general"`
}

// TrackpadConfig mirrors gesture.Config in a file friendly form
type TrackpadConfig struct {
	// Sensitivity scales one-finger cursor motion
	Sensitivity float64 `json:"sensitivity"`

	// ScrollSensitivity scales two-finger motion before thresholding
	ScrollSensitivity float64 `json:"scroll_sensitivity"`

	// ScrollMultiplier converts scaled scroll motion to wheel units
	ScrollMultiplier float64 `json:"scroll_multiplier"`

	// TapThresholdMs is the longest contact still counted as a tap
	TapThresholdMs int `json:"tap_threshold_ms"`

	// DoubleTapThresholdMs is the longest gap between taps of a double tap
	DoubleTapThresholdMs int `json:"double_tap_threshold_ms"`

	// TapMoveThreshold is the farthest a tap may drift, in pixels
	TapMoveThreshold float64 `json:"tap_move_threshold"`

	// MoveEmitThreshold is the smallest scaled delta sent as a cursor move
	MoveEmitThreshold float64 `json:"move_emit_threshold"`

	// ScrollEmitThreshold is the smallest scaled delta sent as a scroll
	ScrollEmitThreshold float64 `json:"scroll_emit_threshold"`
}

// PostureConfig tunes the posture classifier and monitor
type PostureConfig struct {
	// Tolerance is the pixel slack when comparing screen edges
	Tolerance int `json:"tolerance"`

	// PollIntervalMs is the period of the fallback detection timer
	PollIntervalMs int `json:"poll_interval_ms"`

	// UseNotifier enables OS display change notifications
	UseNotifier bool `json:"use_notifier"`
}

// TouchConfig selects the touch device
type TouchConfig struct {
	// Enabled reads touches from an evdev device (Linux only)
	Enabled bool `json:"enabled"`

	// Device is the event node, empty to auto-detect
	Device string `json:"device,omitempty"`

	// Grab takes exclusive access to the device
	Grab bool `json:"grab"`

	// Scale overrides the device unit to pixel factor; 0 derives it
	Scale float64 `json:"scale,omitempty"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	// StartOnBoot determines if app starts on system login
	StartOnBoot bool `json:"start_on_boot"`

	// StartMinimized starts the app hidden in the tray
	StartMinimized bool `json:"start_minimized"`

	// ShowTray shows the system tray icon
	ShowTray bool `json:"show_tray"`

	// Fullscreen covers the whole keyboard screen in book mode
	Fullscreen bool `json:"fullscreen"`

	// ShowHotkey is the global hotkey that brings the keyboard back (e.g. "Ctrl+Alt+K")
	ShowHotkey string `json:"show_hotkey,omitempty"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	g := gesture.DefaultConfig()
	return &Config{
		Trackpad: TrackpadConfig{
			Sensitivity:          g.Sensitivity,
			ScrollSensitivity:    g.ScrollSensitivity,
			ScrollMultiplier:     g.ScrollMultiplier,
			TapThresholdMs:       int(g.TapThreshold / time.Millisecond),
			DoubleTapThresholdMs: int(g.DoubleTapThreshold / time.Millisecond),
			TapMoveThreshold:     g.TapMoveThreshold,
			MoveEmitThreshold:    g.MoveEmitThreshold,
			ScrollEmitThreshold:  g.ScrollEmitThreshold,
		},
		Posture: PostureConfig{
			Tolerance:      50,
			PollIntervalMs: 500,
			UseNotifier:    true,
		},
		Touch: TouchConfig{
			Enabled: runtime.GOOS == "linux",
			Grab:    true,
		},
		General: GeneralConfig{
			StartOnBoot:    false,
			StartMinimized: true,
			ShowTray:       true,
			Fullscreen:     true,
			ShowHotkey:     "Ctrl+Alt+K",
		},
	}
}

// Gesture converts the trackpad section to engine thresholds
func (t TrackpadConfig) Gesture() gesture.Config {
	return gesture.Config{
		Sensitivity:         t.Sensitivity,
		ScrollSensitivity:   t.ScrollSensitivity,
		ScrollMultiplier:    t.ScrollMultiplier,
		TapThreshold:        time.Duration(t.TapThresholdMs) * time.Millisecond,
		DoubleTapThreshold:  time.Duration(t.DoubleTapThresholdMs) * time.Millisecond,
		TapMoveThreshold:    t.TapMoveThreshold,
		MoveEmitThreshold:   t.MoveEmitThreshold,
		ScrollEmitThreshold: t.ScrollEmitThreshold,
	}
}

// PollInterval returns the detection timer period
func (p PostureConfig) PollInterval() time.Duration {
	return time.Duration(p.PollIntervalMs) * time.Millisecond
}

// Validate checks every section
func (c *Config) Validate() error {
	if err := c.Trackpad.Gesture().Validate(); err != nil {
		return fmt.Errorf("%w: trackpad: %v", ErrInvalid, err)
	}
	if c.Posture.Tolerance <= 0 {
		return fmt.Errorf("%w: posture tolerance must be positive", ErrInvalid)
	}
	if c.Posture.PollIntervalMs < 50 {
		return fmt.Errorf("%w: posture poll interval must be at least 50ms", ErrInvalid)
	}
	if c.Touch.Scale < 0 {
		return fmt.Errorf("%w: touch scale must not be negative", ErrInvalid)
	}
	return nil
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  func()
}

// NewManager creates a configuration manager for the per-user config file
func NewManager() (*Manager, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(filepath.Join(dir, "config.json")), nil
}

// NewManagerAt creates a configuration manager for an explicit file
func NewManagerAt(path string) *Manager {
	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}
}

// Dir returns the per-user config directory, creating it if needed
func Dir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", AppName)
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, AppName)
	default:
		base := os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(base, AppName)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}

// Path returns the config file location
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk. A missing file keeps the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()

	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		m.mu.Unlock()
		return nil
	}
	if err != nil {
		m.mu.Unlock()
		return err
	}

	loaded := DefaultConfig()
	if err := json.Unmarshal(data, loaded); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s: %v", ErrInvalid, m.configPath, err)
	}
	if err := loaded.Validate(); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("%s: %w", m.configPath, err)
	}
	m.config = loaded
	onChanged := m.onChanged
	m.mu.Unlock()

	if onChanged != nil {
		onChanged()
	}
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}

	log.Infof("Config: Saving configuration to %s (%d bytes)", m.configPath, len(data))
	return os.WriteFile(m.configPath, data, 0644)
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.config
}

// Set validates and replaces the configuration
func (m *Manager) Set(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.config = &config
	onChanged := m.onChanged
	m.mu.Unlock()

	if onChanged != nil {
		onChanged()
	}
	return nil
}

// RegisterChangeCallback registers a function to be called when config changes
func (m *Manager) RegisterChangeCallback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}
