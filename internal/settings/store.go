package settings

import (
	"encoding/json"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
)

const (
	appDir       = "microalgae-counter"
	settingsFile = "config.json"

	// LegacyPath is the record older releases kept in the working directory.
	LegacyPath = settingsFile
)

// Store reads and writes DetectionParams as a flat JSON record.
type Store struct {
	mu       sync.Mutex
	path     string
	fallback string
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewDefaultStore returns a Store at DefaultPath that reads LegacyPath
// until the first Save.
func NewDefaultStore() *Store {
	s := NewStore(DefaultPath())
	s.SetFallback(LegacyPath)
	return s
}

// SetFallback sets a file Load reads when the primary record does not exist.
// Save always writes the primary path.
func (s *Store) SetFallback(path string) {
	s.mu.Lock()
	s.fallback = path
	s.mu.Unlock()
}

// DefaultPath returns ~/.config/microalgae-counter/config.json (or the platform equivalent).
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, settingsFile)
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings record. A missing or malformed file yields DefaultParams;
// Load never fails. Keys that are present and numeric override the defaults one by one,
// unknown keys are ignored, and every value is clamped to the slider range.
func (s *Store) Load() DetectionParams {
	s.mu.Lock()
	defer s.mu.Unlock()

	params := DefaultParams()

	path := s.path
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && s.fallback != "" && s.fallback != s.path {
		path = s.fallback
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("settings: cannot read %s, using defaults: %v", path, err)
		}
		return params
	}

	var values map[string]interface{}
	if err := json.Unmarshal(data, &values); err != nil {
		log.Printf("settings: malformed %s, using defaults: %v", path, err)
		return params
	}

	fields := map[string]*int{
		"min_dist":      &params.MinDist,
		"sensibilidade": &params.Sensitivity,
		"acuracia":      &params.Accuracy,
		"min_radius":    &params.MinRadius,
		"max_radius":    &params.MaxRadius,
	}
	for key, dst := range fields {
		if v, ok := values[key]; ok {
			if n, ok := toInt(v); ok {
				*dst = n
			}
		}
	}
	return params.Clamp()
}

// Save overwrites the settings record with params.
func (s *Store) Save(params DetectionParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// toInt coerces a decoded JSON value to int. Numbers are rounded; numeric strings are not accepted.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(math.Round(n)), true
	case int:
		return n, true
	}
	return 0, false
}
