// Package prefs persists small user-scoped flags between runs, such as
// whether the disclaimer was accepted. Stored as JSON under the user
// config directory.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	appDir    = "arena-terminal"
	prefsFile = "prefs.json"
)

type data struct {
	DisclaimerAccepted  bool `json:"disclaimerAccepted"`
	OnboardingCompleted bool `json:"onboardingCompleted"`
}

// Store reads and writes user preferences. Safe for concurrent use.
type Store struct {
	path string

	mu sync.Mutex
	d  data
}

// Open loads the preference file, creating the directory on first use.
// A missing file yields all-false defaults.
func Open() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("prefs: resolve config dir: %w", err)
	}
	return OpenAt(filepath.Join(base, appDir, prefsFile))
}

// OpenAt loads preferences from an explicit path.
func OpenAt(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("prefs: read %s: %w", path, err)
	}

	// A corrupt file falls back to defaults rather than blocking startup.
	if err := json.Unmarshal(raw, &s.d); err != nil {
		s.d = data{}
	}
	return s, nil
}

// DisclaimerAccepted reports whether the risk disclaimer was accepted.
func (s *Store) DisclaimerAccepted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.DisclaimerAccepted
}

// SetDisclaimerAccepted records disclaimer acceptance and persists it.
func (s *Store) SetDisclaimerAccepted(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.DisclaimerAccepted = v
	return s.flushLocked()
}

// OnboardingCompleted reports whether the intro walkthrough was finished.
func (s *Store) OnboardingCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.OnboardingCompleted
}

// SetOnboardingCompleted records walkthrough completion and persists it.
func (s *Store) SetOnboardingCompleted(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.OnboardingCompleted = v
	return s.flushLocked()
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prefs: create dir: %w", err)
	}
	raw, err := json.MarshalIndent(s.d, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("prefs: write %s: %w", s.path, err)
	}
	return nil
}
