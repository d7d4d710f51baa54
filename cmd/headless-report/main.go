package main

import (
	"flag"
	"fmt"
	"math"

	"github.com/olivierh59500/quadtree-intercept/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	totalHits   int
	maxHits     int
	firstHit    int
	hitTicks    int
	dropped     int
	maxNodes    int
	maxHeight   int
	minIndexed  int
	finalEffPct int
}

func (rs runStats) meanHits() float64 {
	if rs.ticks == 0 {
		return 0
	}
	return float64(rs.totalHits) / float64(rs.ticks)
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var population int
	var capacity int
	var radius float64
	var width float64
	var height float64
	var spawn string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&population, "population", sim.DefaultPopulation, "particles per run")
	flag.IntVar(&capacity, "capacity", sim.DefaultCapacity, "points per quadtree node before it subdivides")
	flag.Float64Var(&radius, "radius", sim.DefaultQueryRadius, "focus query radius")
	flag.Float64Var(&width, "width", sim.DefaultWidth, "world width")
	flag.Float64Var(&height, "height", sim.DefaultHeight, "world height")
	flag.StringVar(&spawn, "spawn", string(sim.SpawnUniform), "spawn mode: uniform or flow")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if seedBase == 0 {
		fmt.Println("error: -seed-base must be non-zero (0 seeds from the clock)")
		return
	}

	cfg := sim.DefaultSettings()
	cfg.Width = width
	cfg.Height = height
	cfg.Population = population
	cfg.Capacity = capacity
	cfg.QueryRadius = radius
	cfg.Spawn = sim.SpawnMode(spawn)
	if err := cfg.Validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Headless Intercept Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d population=%d capacity=%d radius=%.0f world=%.0fx%.0f spawn=%s\n\n",
		runs, ticks, seedBase, seedStep, population, capacity, radius, width, height, spawn)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		cfg.Seed = seedBase + int64(i)*seedStep
		if cfg.Seed == 0 {
			// 0 would mean a clock seed and an unrepeatable run
			cfg.Seed = seedBase
		}
		rs, err := runSweep(i+1, cfg, ticks)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

// runSweep runs one seeded simulation while the focus traces a Lissajous
// figure across the world.
func runSweep(runIndex int, cfg sim.Settings, ticks int) (runStats, error) {
	s, err := sim.New(cfg)
	if err != nil {
		return runStats{}, err
	}

	rs := runStats{
		runIndex:   runIndex,
		seed:       cfg.Seed,
		ticks:      ticks,
		firstHit:   -1,
		minIndexed: -1,
	}
	for t := 0; t < ticks; t++ {
		x, y := lissajous(t, ticks, cfg.Width, cfg.Height)
		s.SetFocus(x, y)
		s.Step(1)
		rs.record(t, s.Stats())
	}
	rs.finalEffPct = s.Stats().Efficiency
	return rs, nil
}

func (rs *runStats) record(tick int, st sim.Stats) {
	rs.totalHits += st.Highlighted
	rs.maxHits = max(rs.maxHits, st.Highlighted)
	if st.Highlighted > 0 {
		rs.hitTicks++
		if rs.firstHit < 0 {
			rs.firstHit = tick
		}
	}
	rs.dropped += st.Dropped
	rs.maxNodes = max(rs.maxNodes, st.Nodes)
	rs.maxHeight = max(rs.maxHeight, st.Height)
	if rs.minIndexed < 0 || st.Indexed < rs.minIndexed {
		rs.minIndexed = st.Indexed
	}
}

// lissajous returns the focus position for tick t of a run lasting ticks.
// The path is a 3:2 figure inset by a tenth of the world on each side.
func lissajous(t, ticks int, w, h float64) (float64, float64) {
	phase := 2 * math.Pi * float64(t) / float64(max(ticks, 1))
	x := w/2 + 0.4*w*math.Sin(3*phase+math.Pi/2)
	y := h/2 + 0.4*h*math.Sin(2*phase)
	return x, y
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("hits: mean=%.2f max=%d first_tick=%d ticks_with_hits=%d/%d\n",
		rs.meanHits(), rs.maxHits, rs.firstHit, rs.hitTicks, rs.ticks)
	fmt.Printf("index: max_nodes=%d max_height=%d min_indexed=%d dropped=%d efficiency=~%d%%\n\n",
		rs.maxNodes, rs.maxHeight, rs.minIndexed, rs.dropped, rs.finalEffPct)
}

func printAggregate(all []runStats) {
	if len(all) == 0 {
		return
	}
	var meanSum float64
	maxHits, maxNodes, maxHeight, dropped := 0, 0, 0, 0
	for _, rs := range all {
		meanSum += rs.meanHits()
		maxHits = max(maxHits, rs.maxHits)
		maxNodes = max(maxNodes, rs.maxNodes)
		maxHeight = max(maxHeight, rs.maxHeight)
		dropped += rs.dropped
	}
	fmt.Printf("=== Aggregate (%d runs) ===\n", len(all))
	fmt.Printf("mean_hits_per_tick=%.2f max_hits=%d max_nodes=%d max_height=%d total_dropped=%d\n",
		meanSum/float64(len(all)), maxHits, maxNodes, maxHeight, dropped)
}
