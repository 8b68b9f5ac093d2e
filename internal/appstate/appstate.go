// Package appstate persists window geometry and layout between runs in a
// small INI file next to the config.
package appstate

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// FileName is the state file inside the config directory
const FileName = "appstate.ini"

// Window is the last window geometry
type Window struct {
	Left       float64 `ini:"left"`
	Top        float64 `ini:"top"`
	Width      float64 `ini:"width"`
	Height     float64 `ini:"height"`
	Fullscreen bool    `ini:"fullscreen"`
}

// HasGeometry reports whether a usable size was saved
func (w Window) HasGeometry() bool {
	return w.Width > 0 && w.Height > 0
}

// Layout is the keyboard and trackpad arrangement
type Layout struct {
	TrackpadWidth float64 `ini:"trackpad_width"`
	NumpadVisible bool    `ini:"numpad_visible"`
}

// State is everything persisted
type State struct {
	Window Window `ini:"window"`
	Layout Layout `ini:"layout"`
}

// Store reads and writes the state file
type Store struct {
	path string
}

// NewStore creates a store backed by path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// DefaultPath places the state file in dir
func DefaultPath(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load returns the saved state. A missing file yields the zero State; an
// unreadable one yields the zero State and an error.
func (s *Store) Load() (State, error) {
	var st State
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return st, nil
	}

	f, err := ini.Load(s.path)
	if err != nil {
		return State{}, fmt.Errorf("load app state: %w", err)
	}
	if err := f.MapTo(&st); err != nil {
		return State{}, fmt.Errorf("parse app state: %w", err)
	}
	return st, nil
}

// Save writes st, creating the directory if needed
func (s *Store) Save(st State) error {
	f := ini.Empty()
	if err := f.ReflectFrom(&st); err != nil {
		return fmt.Errorf("encode app state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	if err := f.SaveTo(s.path); err != nil {
		return fmt.Errorf("save app state: %w", err)
	}

	log.Debugf("AppState: saved to %s", s.path)
	return nil
}
