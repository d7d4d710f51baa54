// Package control maps renderer key presses onto simulation setters, clamped
// to the ranges of the on-screen sliders.
package control

import (
	"fmt"

	"github.com/olivierh59500/quadtree-intercept/internal/sim"
)

// Slider limits
const (
	MinCapacity    = 1
	MaxCapacity    = 20
	MinRadius      = 10.0
	MaxRadius      = 300.0
	RadiusStep     = 10.0
	MaxPopulation  = 5000
	PopulationStep = 100
)

// Action is one user command.
type Action int

const (
	TogglePause Action = iota
	CapacityUp
	CapacityDown
	RadiusUp
	RadiusDown
	PopulationUp
	PopulationDown
	Purge
	CycleTheme
	CycleSpawn
)

var names = [...]string{
	TogglePause:    "pause",
	CapacityUp:     "capacity+",
	CapacityDown:   "capacity-",
	RadiusUp:       "radius+",
	RadiusDown:     "radius-",
	PopulationUp:   "population+",
	PopulationDown: "population-",
	Purge:          "purge",
	CycleTheme:     "theme",
	CycleSpawn:     "spawn",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(names) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return names[a]
}

// Apply performs a on s and returns a short status line for the HUD.
// Values are clamped to the slider limits before they reach the setters.
func Apply(s *sim.Simulation, a Action) (string, error) {
	switch a {
	case TogglePause:
		if s.TogglePause() {
			return "running", nil
		}
		return "suspended", nil

	case CapacityUp, CapacityDown:
		n := s.Capacity() + 1
		if a == CapacityDown {
			n = s.Capacity() - 1
		}
		n = min(max(n, MinCapacity), MaxCapacity)
		if err := s.SetCapacity(n); err != nil {
			return "", err
		}
		return fmt.Sprintf("capacity %d", n), nil

	case RadiusUp, RadiusDown:
		r := s.QueryRadius() + RadiusStep
		if a == RadiusDown {
			r = s.QueryRadius() - RadiusStep
		}
		r = min(max(r, MinRadius), MaxRadius)
		if err := s.SetQueryRadius(r); err != nil {
			return "", err
		}
		return fmt.Sprintf("radius %.0f", r), nil

	case PopulationUp, PopulationDown:
		n := len(s.Particles()) + PopulationStep
		if a == PopulationDown {
			n = len(s.Particles()) - PopulationStep
		}
		n = min(max(n, 0), MaxPopulation)
		if err := s.SetPopulation(n); err != nil {
			return "", err
		}
		return fmt.Sprintf("population %d", n), nil

	case Purge:
		s.Purge()
		return "purged", nil

	case CycleTheme:
		tag := sim.NextTheme(s.Theme())
		if err := s.SetTheme(tag); err != nil {
			return "", err
		}
		return "theme " + tag, nil

	case CycleSpawn:
		mode := sim.SpawnFlow
		if s.SpawnMode() == sim.SpawnFlow {
			mode = sim.SpawnUniform
		}
		if err := s.SetSpawnMode(mode); err != nil {
			return "", err
		}
		// Takes effect on the regenerated population
		if err := s.SetPopulation(len(s.Particles())); err != nil {
			return "", err
		}
		return "spawn " + string(mode), nil
	}
	return "", fmt.Errorf("unknown action %v", a)
}
