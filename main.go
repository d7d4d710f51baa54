package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/quadtree-intercept/internal/sim"
)

func main() {
	configPath := flag.String("config", "config.json", "settings file (loaded at start if present, S/L keys save/load)")
	population := flag.Int("population", sim.DefaultPopulation, "number of particles")
	capacity := flag.Int("capacity", sim.DefaultCapacity, "points per quadtree node before it subdivides")
	radius := flag.Float64("radius", sim.DefaultQueryRadius, "focus query radius")
	width := flag.Int("width", int(sim.DefaultWidth), "window width")
	height := flag.Int("height", int(sim.DefaultHeight), "window height")
	seed := flag.Int64("seed", 0, "RNG seed (0 seeds from the clock)")
	spawn := flag.String("spawn", string(sim.SpawnUniform), "spawn mode: uniform or flow")
	flag.Parse()

	// Start from the saved settings, then let explicit flags win
	cfg, err := sim.LoadSettings(*configPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring %s: %v", *configPath, err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "population":
			cfg.Population = *population
		case "capacity":
			cfg.Capacity = *capacity
		case "radius":
			cfg.QueryRadius = *radius
		case "width":
			cfg.Width = float64(*width)
		case "height":
			cfg.Height = float64(*height)
		case "seed":
			cfg.Seed = *seed
		case "spawn":
			cfg.Spawn = sim.SpawnMode(*spawn)
		}
	})

	s, err := sim.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Set up Ebitengine game
	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowTitle("Quadtree Intercept")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(NewGame(s, *configPath)); err != nil {
		log.Fatal(err)
	}
}
