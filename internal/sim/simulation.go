// Package sim drives a bouncing particle field and marks the particles near a
// focus point, using a quadtree rebuilt from scratch every tick.
package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/olivierh59500/quadtree-intercept/internal/quadtree"
)

// Focus is the center of the per-tick range query, usually the pointer.
type Focus struct {
	X, Y float64
}

// Simulation holds the particle field and its tunables. It is not safe for
// concurrent use; see Run for handing snapshots to another goroutine.
type Simulation struct {
	particles   []*Particle
	bounds      quadtree.Rectangle
	capacity    int
	queryRadius float64
	focus       Focus
	hasFocus    bool
	theme       string
	spawnMode   SpawnMode
	running     bool

	tree  *quadtree.Node[*Particle]
	found []quadtree.Point[*Particle]
	stats Stats
	tick  int
	rng   *rand.Rand
}

// New creates a simulation from validated settings and spawns its population.
func New(cfg Settings) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Simulation{
		bounds:      quadtree.RectFromSize(cfg.Width, cfg.Height),
		capacity:    cfg.Capacity,
		queryRadius: cfg.QueryRadius,
		theme:       cfg.Theme,
		spawnMode:   cfg.Spawn,
		running:     cfg.Running,
		rng:         rand.New(rand.NewSource(seed)),
	}
	s.respawn(cfg.Population)
	return s, nil
}

// Step advances the simulation by one tick. dt is in frames: Step(1) moves
// every particle by exactly its velocity.
func (s *Simulation) Step(dt float64) {
	w, h := s.bounds.Size()
	for _, p := range s.particles {
		p.reflect(dt, w, h)
	}
	s.tick++
	s.rebuild()
}

// Advance steps only while the simulation is running.
func (s *Simulation) Advance(dt float64) bool {
	if !s.running {
		return false
	}
	s.Step(dt)
	return true
}

// rebuild clears highlights, indexes every particle and runs the focus query.
func (s *Simulation) rebuild() {
	for _, p := range s.particles {
		p.Highlighted = false
	}

	tree := quadtree.New[*Particle](s.bounds, s.capacity, s.theme)
	indexed := 0
	for _, p := range s.particles {
		if tree.Insert(quadtree.Point[*Particle]{X: p.X, Y: p.Y, Data: p}) {
			indexed++
		}
	}
	s.tree = tree

	highlighted := 0
	if s.hasFocus {
		s.found = tree.Query(quadtree.NewCircle(s.focus.X, s.focus.Y, s.queryRadius), s.found[:0])
		for _, pt := range s.found {
			pt.Data.Highlighted = true
		}
		highlighted = len(s.found)
	}

	s.stats = Stats{
		Tick:        s.tick,
		Population:  len(s.particles),
		Highlighted: highlighted,
		Indexed:     indexed,
		Dropped:     len(s.particles) - indexed,
		Nodes:       tree.Nodes(),
		Height:      tree.Height(),
		Efficiency:  efficiency(s.capacity, len(s.particles)),
	}
}

// efficiency is the HUD estimate of how much work the index saves, floored
// at zero for populations smaller than one node.
func efficiency(capacity, population int) int {
	if population < 1 {
		population = 1
	}
	return int(math.Max(0, math.Round((1-float64(capacity)/float64(population))*100)))
}

// respawn throws the old population away and creates n new particles.
func (s *Simulation) respawn(n int) {
	w, h := s.bounds.Size()
	s.particles = spawn(s.rng, s.spawnMode, n, w, h)
	s.rebuild()
}

// SetCapacity changes the node capacity used from the next tick on.
func (s *Simulation) SetCapacity(n int) error {
	if err := checkCapacity(n); err != nil {
		return err
	}
	s.capacity = n
	return nil
}

// SetPopulation regenerates the particle set with n fresh particles. Prior
// positions and velocities are discarded; this is a reset, not a resize.
func (s *Simulation) SetPopulation(n int) error {
	if err := checkPopulation(n); err != nil {
		return err
	}
	s.respawn(n)
	return nil
}

// Purge removes every particle.
func (s *Simulation) Purge() {
	s.respawn(0)
}

// SetQueryRadius sets the focus query radius.
func (s *Simulation) SetQueryRadius(r float64) error {
	if err := checkRadius(r); err != nil {
		return err
	}
	s.queryRadius = r
	return nil
}

// SetBounds resizes the world. Particles left outside are pulled back in by
// the next Step.
func (s *Simulation) SetBounds(w, h float64) error {
	if err := checkBounds(w, h); err != nil {
		return err
	}
	s.bounds = quadtree.RectFromSize(w, h)
	return nil
}

// SetTheme sets the colour tag carried by every index node.
func (s *Simulation) SetTheme(tag string) error {
	if err := checkTheme(tag); err != nil {
		return err
	}
	s.theme = tag
	return nil
}

// SetSpawnMode picks the velocity model for the next respawn.
func (s *Simulation) SetSpawnMode(m SpawnMode) error {
	if err := checkSpawn(m); err != nil {
		return err
	}
	s.spawnMode = m
	return nil
}

func (s *Simulation) SetFocus(x, y float64) {
	s.focus = Focus{X: x, Y: y}
	s.hasFocus = true
}

func (s *Simulation) ClearFocus() {
	s.hasFocus = false
}

func (s *Simulation) SetRunning(running bool) {
	s.running = running
}

// TogglePause flips the running flag and returns the new value.
func (s *Simulation) TogglePause() bool {
	s.running = !s.running
	return s.running
}

func (s *Simulation) Running() bool { return s.running }

func (s *Simulation) Capacity() int { return s.capacity }

func (s *Simulation) QueryRadius() float64 { return s.queryRadius }

func (s *Simulation) Theme() string { return s.theme }

func (s *Simulation) SpawnMode() SpawnMode { return s.spawnMode }

func (s *Simulation) Bounds() quadtree.Rectangle { return s.bounds }

func (s *Simulation) Focus() (Focus, bool) { return s.focus, s.hasFocus }

// Particles returns the live particle set. Callers must not modify it.
func (s *Simulation) Particles() []*Particle { return s.particles }

// Tree returns the index built by the last tick.
func (s *Simulation) Tree() *quadtree.Node[*Particle] { return s.tree }

// Stats returns the counters gathered by the last tick.
func (s *Simulation) Stats() Stats { return s.stats }

// Settings reports the current tunables in their saveable form. The seed is
// not tracked after construction and is left at 0.
func (s *Simulation) Settings() Settings {
	w, h := s.bounds.Size()
	return Settings{
		Width:       w,
		Height:      h,
		Capacity:    s.capacity,
		Population:  len(s.particles),
		QueryRadius: s.queryRadius,
		Theme:       s.theme,
		Spawn:       s.spawnMode,
		Running:     s.running,
	}
}
