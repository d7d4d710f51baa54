package sim

import (
	"fmt"
	"strings"

	"github.com/olivierh59500/quadtree-intercept/internal/quadtree"
)

// Stats are the per-tick counters shown by the HUD and the headless report.
type Stats struct {
	Tick        int
	Population  int
	Highlighted int
	Indexed     int
	Dropped     int // Particles the index rejected, e.g. clamped onto the max edge
	Nodes       int
	Height      int
	Efficiency  int // Percent, 100 * (1 - capacity/population)
}

// String formats the counters as a single log line.
//
//	[T=000042] pop=1000 hit=17 idx=1000 drop=0 nodes=341 height=7 eff=100%
func (st Stats) String() string {
	return fmt.Sprintf("[T=%06d] pop=%d hit=%d idx=%d drop=%d nodes=%d height=%d eff=%d%%",
		st.Tick, st.Population, st.Highlighted, st.Indexed, st.Dropped, st.Nodes, st.Height, st.Efficiency)
}

// ParticleView is the read-only part of a particle a renderer needs.
type ParticleView struct {
	X, Y        float64
	Highlighted bool
}

// Snapshot is a deep copy of one tick's output. It shares nothing with the
// simulation and can be handed to another goroutine.
type Snapshot struct {
	Tick          int
	Width, Height float64
	Particles     []ParticleView
	Nodes         []quadtree.Rectangle
	Focus         Focus
	HasFocus      bool
	QueryRadius   float64
	Capacity      int
	Theme         string
	Running       bool
	Stats         Stats
}

// Snapshot copies the current tick's output.
func (s *Simulation) Snapshot() Snapshot {
	w, h := s.bounds.Size()
	snap := Snapshot{
		Tick:        s.tick,
		Width:       w,
		Height:      h,
		Particles:   make([]ParticleView, len(s.particles)),
		Focus:       s.focus,
		HasFocus:    s.hasFocus,
		QueryRadius: s.queryRadius,
		Capacity:    s.capacity,
		Theme:       s.theme,
		Running:     s.running,
		Stats:       s.stats,
	}
	for i, p := range s.particles {
		snap.Particles[i] = ParticleView{X: p.X, Y: p.Y, Highlighted: p.Highlighted}
	}
	if s.tree != nil {
		snap.Nodes = s.tree.Boundaries(make([]quadtree.Rectangle, 0, s.stats.Nodes))
	}
	return snap
}

// Report renders a multi-line summary of the snapshot for clipboard export.
func (snap Snapshot) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Quadtree Intercept ===\n")
	fmt.Fprintf(&b, "world=%.0fx%.0f capacity=%d radius=%.0f theme=%s running=%t\n",
		snap.Width, snap.Height, snap.Capacity, snap.QueryRadius, snap.Theme, snap.Running)
	if snap.HasFocus {
		fmt.Fprintf(&b, "focus=(%.0f,%.0f)\n", snap.Focus.X, snap.Focus.Y)
	} else {
		fmt.Fprintf(&b, "focus=idle\n")
	}
	fmt.Fprintf(&b, "%s\n", snap.Stats)
	return b.String()
}
