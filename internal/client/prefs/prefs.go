// Package prefs persists lightweight UI preferences: the design version
// rollout toggle and the theme mode. Both survive restarts; invalid
// persisted values fall back to fixed defaults instead of failing.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/cliniclink/cliniclink/internal/client/tokenstore"
	"github.com/cliniclink/cliniclink/internal/common"
)

// DesignVersion selects between the legacy and the redesigned UI.
type DesignVersion string

const (
	DesignV1 DesignVersion = "v1"
	DesignV2 DesignVersion = "v2"
)

// ThemeMode selects the color scheme.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// Defaults applied when nothing (or garbage) is persisted.
const (
	DefaultDesign = DesignV1
	DefaultTheme  = ThemeSystem
)

type persisted struct {
	DesignVersion string `json:"design_version"`
	Theme         string `json:"theme"`
}

// Store holds the preferences in memory and mirrors every change to disk.
// Invariant: after any state-changing operation returns, the persisted
// value equals the in-memory value (modulo swallowed storage failures,
// which only cost persistence, never consistency of the running process).
type Store struct {
	mu     sync.Mutex
	path   string
	design DesignVersion
	theme  ThemeMode
}

// NewStore loads preferences from the state directory, applying defaults
// for anything missing or invalid.
func NewStore(dir string) *Store {
	s := &Store{
		path:   filepath.Join(dir, tokenstore.KeyPrefs),
		design: DefaultDesign,
		theme:  DefaultTheme,
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return s
	}
	if v, ok := parseDesign(p.DesignVersion); ok {
		s.design = v
	}
	if m, ok := parseTheme(p.Theme); ok {
		s.theme = m
	}
	return s
}

func parseDesign(s string) (DesignVersion, bool) {
	switch DesignVersion(s) {
	case DesignV1, DesignV2:
		return DesignVersion(s), true
	}
	return "", false
}

func parseTheme(s string) (ThemeMode, bool) {
	switch ThemeMode(s) {
	case ThemeLight, ThemeDark, ThemeSystem:
		return ThemeMode(s), true
	}
	return "", false
}

// Design returns the active design version.
func (s *Store) Design() DesignVersion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.design
}

// Theme returns the active theme mode.
func (s *Store) Theme() ThemeMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ToggleDesign flips between v1 and v2 and returns the new value.
func (s *Store) ToggleDesign() DesignVersion {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.design == DesignV1 {
		s.design = DesignV2
	} else {
		s.design = DesignV1
	}
	s.persistLocked()
	return s.design
}

// SetDesign sets the design version explicitly. Setting the current value
// again is a no-op; an unknown value is rejected.
func (s *Store) SetDesign(v DesignVersion) error {
	if _, ok := parseDesign(string(v)); !ok {
		return common.ErrorValidation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.design = v
	s.persistLocked()
	return nil
}

// SetTheme sets the theme mode. An unknown value is rejected.
func (s *Store) SetTheme(m ThemeMode) error {
	if _, ok := parseTheme(string(m)); !ok {
		return common.ErrorValidation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = m
	s.persistLocked()
	return nil
}

// persistLocked mirrors the in-memory values to disk. Storage failures are
// swallowed: preferences are a convenience, not state worth failing over.
func (s *Store) persistLocked() {
	data, err := json.Marshal(persisted{
		DesignVersion: string(s.design),
		Theme:         string(s.theme),
	})
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0o600)
}
