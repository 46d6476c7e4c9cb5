package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// MaxSuggestionsLimit bounds the configurable number of folder suggestions.
const MaxSuggestionsLimit = 20

// Settings are the options a user can change while the service runs.
type Settings struct {
	PersistAnalysisCache bool     `yaml:"persist_analysis_cache" json:"persist_analysis_cache"`
	SuggestionPrecache   bool     `yaml:"suggestion_precache" json:"suggestion_precache"`
	TargetFolders        []string `yaml:"target_folders,omitempty" json:"target_folders"`
	MaxSuggestions       int      `yaml:"max_suggestions" json:"max_suggestions"`
}

// Validate checks the settings for values the service cannot use.
func (s Settings) Validate() error {
	if s.MaxSuggestions < 1 || s.MaxSuggestions > MaxSuggestionsLimit {
		return fmt.Errorf("max_suggestions must be between 1 and %d", MaxSuggestionsLimit)
	}
	for _, f := range s.TargetFolders {
		if !filepath.IsAbs(f) {
			return fmt.Errorf("target folder %q must be an absolute path", f)
		}
	}
	return nil
}

func (s Settings) clone() Settings {
	s.TargetFolders = slices.Clone(s.TargetFolders)
	return s
}

// SettingsStore keeps Settings in memory and mirrors every change to a
// YAML file.
type SettingsStore struct {
	path string

	mu      sync.RWMutex
	current Settings
}

// LoadSettings reads settings from path, starting from defaults for any
// field the file leaves out. A missing file yields the defaults.
func LoadSettings(path string, defaults Settings) (*SettingsStore, error) {
	s := &SettingsStore{path: path, current: defaults.clone()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s.current); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if err := s.current.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// Get returns a copy of the current settings.
func (s *SettingsStore) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Update applies fn to a copy of the settings, validates the result and
// saves it. The stored settings are unchanged when an error is returned.
func (s *SettingsStore) Update(fn func(*Settings)) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.clone()
	fn(&next)
	for i, f := range next.TargetFolders {
		next.TargetFolders[i] = filepath.Clean(f)
	}
	if err := next.Validate(); err != nil {
		return s.current.clone(), err
	}
	if err := s.save(next); err != nil {
		return s.current.clone(), err
	}
	s.current = next
	return next.clone(), nil
}

// save writes settings to a temporary file and renames it into place.
func (s *SettingsStore) save(settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}
