package main

import (
	"testing"

	"github.com/olivierh59500/quadtree-intercept/internal/sim"
)

func TestLissajous_StaysInsideWorld(t *testing.T) {
	const w, h = 800.0, 600.0
	for tick := 0; tick < 1000; tick++ {
		x, y := lissajous(tick, 1000, w, h)
		if x < 0.1*w-1e-9 || x > 0.9*w+1e-9 || y < 0.1*h-1e-9 || y > 0.9*h+1e-9 {
			t.Fatalf("tick %d: focus (%v,%v) outside the inset world", tick, x, y)
		}
	}
}

func TestLissajous_ClosedPath(t *testing.T) {
	x0, y0 := lissajous(0, 360, 800, 600)
	x1, y1 := lissajous(360, 360, 800, 600)
	if diff := x0 - x1 + y0 - y1; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("path does not close: start (%v,%v) end (%v,%v)", x0, y0, x1, y1)
	}
}

func TestRecord_TracksFirstHitAndExtremes(t *testing.T) {
	rs := runStats{firstHit: -1, minIndexed: -1}
	rs.record(0, sim.Stats{Highlighted: 0, Indexed: 10, Nodes: 1, Height: 0})
	rs.record(1, sim.Stats{Highlighted: 3, Indexed: 9, Dropped: 1, Nodes: 5, Height: 1})
	rs.record(2, sim.Stats{Highlighted: 1, Indexed: 10, Nodes: 9, Height: 2})
	rs.ticks = 3

	if rs.firstHit != 1 {
		t.Fatalf("expected first hit at tick 1, got %d", rs.firstHit)
	}
	if rs.hitTicks != 2 || rs.maxHits != 3 || rs.totalHits != 4 {
		t.Fatalf("unexpected hit counters: %+v", rs)
	}
	if rs.maxNodes != 9 || rs.maxHeight != 2 || rs.minIndexed != 9 || rs.dropped != 1 {
		t.Fatalf("unexpected index counters: %+v", rs)
	}
	if got := rs.meanHits(); got < 1.33 || got > 1.34 {
		t.Fatalf("expected mean hits ~1.33, got %v", got)
	}
}

func TestRunSweep_Deterministic(t *testing.T) {
	cfg := sim.DefaultSettings()
	cfg.Population = 300
	cfg.Seed = 7

	a, err := runSweep(1, cfg, 120)
	if err != nil {
		t.Fatalf("runSweep: %v", err)
	}
	b, err := runSweep(1, cfg, 120)
	if err != nil {
		t.Fatalf("runSweep: %v", err)
	}
	if a != b {
		t.Fatalf("same seed produced different runs:\n%+v\n%+v", a, b)
	}
	if a.maxHits == 0 {
		t.Fatal("expected the sweeping focus to hit something")
	}
	if a.maxNodes < 1 || a.minIndexed > cfg.Population {
		t.Fatalf("implausible index counters: %+v", a)
	}
}

func TestRunSweep_RejectsInvalidSettings(t *testing.T) {
	cfg := sim.DefaultSettings()
	cfg.Capacity = 0
	if _, err := runSweep(1, cfg, 10); err == nil {
		t.Fatal("expected an error for capacity 0")
	}
}
