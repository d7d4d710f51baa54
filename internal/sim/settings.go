package sim

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Default tunables
const (
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
	DefaultCapacity    = 4
	DefaultPopulation  = 1000
	DefaultQueryRadius = 80.0
	DefaultTheme       = "#00ff41"
)

// ErrInvalidSetting is wrapped by every rejected configuration value.
var ErrInvalidSetting = errors.New("invalid setting")

// SpawnMode selects how a fresh population picks its velocities.
type SpawnMode string

const (
	SpawnUniform SpawnMode = "uniform" // Independent random velocity per axis
	SpawnFlow    SpawnMode = "flow"    // Heading follows a Perlin field over the spawn position
)

// Settings are the tunables a host feeds the simulation. They can be saved and
// loaded; particle state never is.
type Settings struct {
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Capacity    int       `json:"capacity"`
	Population  int       `json:"population"`
	QueryRadius float64   `json:"query_radius"`
	Theme       string    `json:"theme"`
	Spawn       SpawnMode `json:"spawn"`
	Seed        int64     `json:"seed"` // 0 seeds from the clock
	Running     bool      `json:"running"`
}

// DefaultSettings returns the settings used when nothing else is given.
func DefaultSettings() Settings {
	return Settings{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Capacity:    DefaultCapacity,
		Population:  DefaultPopulation,
		QueryRadius: DefaultQueryRadius,
		Theme:       DefaultTheme,
		Spawn:       SpawnUniform,
		Running:     true,
	}
}

// Validate checks every field and reports the first bad one.
func (s Settings) Validate() error {
	if err := checkBounds(s.Width, s.Height); err != nil {
		return err
	}
	if err := checkCapacity(s.Capacity); err != nil {
		return err
	}
	if err := checkPopulation(s.Population); err != nil {
		return err
	}
	if err := checkRadius(s.QueryRadius); err != nil {
		return err
	}
	if err := checkTheme(s.Theme); err != nil {
		return err
	}
	return checkSpawn(s.Spawn)
}

// LoadSettings reads settings from a JSON file. Fields missing from the file
// keep their defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return DefaultSettings(), fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes the settings to path as indented JSON.
func (s Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplySettings adopts every tunable in cfg except the world size, which
// belongs to the host surface, and the seed. The population is regenerated.
// Nothing changes if cfg is invalid.
func (s *Simulation) ApplySettings(cfg Settings) error {
	w, h := s.bounds.Size()
	cfg.Width, cfg.Height = w, h
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.capacity = cfg.Capacity
	s.queryRadius = cfg.QueryRadius
	s.theme = cfg.Theme
	s.spawnMode = cfg.Spawn
	s.running = cfg.Running
	s.respawn(cfg.Population)
	return nil
}

func checkBounds(w, h float64) error {
	if !(w > 0) || !(h > 0) {
		return fmt.Errorf("bounds %vx%v must be positive: %w", w, h, ErrInvalidSetting)
	}
	return nil
}

func checkCapacity(n int) error {
	if n < 1 {
		return fmt.Errorf("capacity %d must be at least 1: %w", n, ErrInvalidSetting)
	}
	return nil
}

func checkPopulation(n int) error {
	if n < 0 {
		return fmt.Errorf("population %d must not be negative: %w", n, ErrInvalidSetting)
	}
	return nil
}

func checkRadius(r float64) error {
	if !(r >= 0) {
		return fmt.Errorf("query radius %v must not be negative: %w", r, ErrInvalidSetting)
	}
	return nil
}

func checkTheme(tag string) error {
	if _, err := ParseHexColor(tag); err != nil {
		return fmt.Errorf("theme %q: %v: %w", tag, err, ErrInvalidSetting)
	}
	return nil
}

func checkSpawn(m SpawnMode) error {
	switch m {
	case SpawnUniform, SpawnFlow:
		return nil
	}
	return fmt.Errorf("spawn mode %q: %w", m, ErrInvalidSetting)
}
