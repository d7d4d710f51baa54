package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/olivierh59500/quadtree-intercept/internal/control"
	"github.com/olivierh59500/quadtree-intercept/internal/sim"
)

// World units covered by one terminal cell. Cells are about twice as tall
// as they are wide.
const (
	cellW = 8.0
	cellH = 16.0

	frameMs    = 16
	sampleRate = beep.SampleRate(44100)
	pingHz     = 880
)

type viewer struct {
	screen   tcell.Screen
	controls chan<- sim.Control
	cols     int
	rows     int
	showGrid bool
	audio    bool
	lastHits int
	status   string
	last     sim.Snapshot
}

func main() {
	population := flag.Int("population", 600, "number of particles")
	capacity := flag.Int("capacity", sim.DefaultCapacity, "points per quadtree node before it subdivides")
	radius := flag.Float64("radius", sim.DefaultQueryRadius, "focus query radius in world units")
	seed := flag.Int64("seed", 0, "RNG seed (0 seeds from the clock)")
	mute := flag.Bool("mute", false, "disable the intercept ping")
	logPath := flag.String("log", "", "append log output to this file (discarded otherwise)")
	flag.Parse()

	// The terminal belongs to the viewer, so logs go elsewhere
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	defer screen.Fini()

	cols, rows := screen.Size()
	cfg := sim.DefaultSettings()
	cfg.Width, cfg.Height = worldSize(cols, rows)
	cfg.Population = *population
	cfg.Capacity = *capacity
	cfg.QueryRadius = *radius
	cfg.Seed = *seed
	s, err := sim.New(cfg)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	controls := make(chan sim.Control, 16)
	snapshots := make(chan sim.Snapshot, 1)
	go sim.Run(ctx, s, frameMs*time.Millisecond, controls, snapshots)

	v := &viewer{
		screen:   screen,
		controls: controls,
		cols:     cols,
		rows:     rows,
		showGrid: true,
	}
	if !*mute {
		if err := v.initAudio(); err != nil {
			// Non-fatal, the viewer runs without sound
			v.status = "audio off: " + err.Error()
		} else {
			defer speaker.Close()
		}
	}
	v.run(ctx, snapshots)
}

// worldSize maps the terminal, minus the status row, to world units.
func worldSize(cols, rows int) (float64, float64) {
	return float64(max(cols, 1)) * cellW, float64(max(rows-1, 1)) * cellH
}

func (v *viewer) initAudio() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	v.audio = true
	return nil
}

func (v *viewer) ping() {
	if !v.audio {
		return
	}
	sine, err := generators.SineTone(sampleRate, pingHz)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(40*time.Millisecond), sine))
}

func (v *viewer) run(ctx context.Context, snapshots <-chan sim.Snapshot) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !v.handleEvent(ev) {
				return
			}
		case snap := <-snapshots:
			if v.lastHits == 0 && snap.Stats.Highlighted > 0 {
				v.ping()
			}
			v.lastHits = snap.Stats.Highlighted
			v.draw(snap)
		}
	}
}

func (v *viewer) send(c sim.Control) {
	select {
	case v.controls <- c:
	default:
		v.status = "busy, input dropped"
	}
}

// act forwards a command to the simulation goroutine.
func (v *viewer) act(a control.Action) {
	v.send(func(s *sim.Simulation) {
		if _, err := control.Apply(s, a); err != nil {
			log.Printf("%v ignored: %v", a, err)
		}
	})
}

var runeActions = map[rune]control.Action{
	' ': control.TogglePause,
	'+': control.PopulationUp,
	'=': control.PopulationUp,
	'-': control.PopulationDown,
	'p': control.Purge,
	't': control.CycleTheme,
	'f': control.CycleSpawn,
}

var keyActions = map[tcell.Key]control.Action{
	tcell.KeyUp:    control.CapacityUp,
	tcell.KeyDown:  control.CapacityDown,
	tcell.KeyRight: control.RadiusUp,
	tcell.KeyLeft:  control.RadiusDown,
}

func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'g':
				v.showGrid = !v.showGrid
				v.draw(v.last)
				return true
			}
			if a, ok := runeActions[ev.Rune()]; ok {
				v.act(a)
			}
			return true
		}
		if a, ok := keyActions[ev.Key()]; ok {
			v.act(a)
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		if y >= v.rows-1 {
			v.send(func(s *sim.Simulation) { s.ClearFocus() })
			break
		}
		fx, fy := (float64(x)+0.5)*cellW, (float64(y)+0.5)*cellH
		v.send(func(s *sim.Simulation) { s.SetFocus(fx, fy) })

	case *tcell.EventResize:
		v.cols, v.rows = v.screen.Size()
		w, h := worldSize(v.cols, v.rows)
		v.send(func(s *sim.Simulation) {
			if err := s.SetBounds(w, h); err != nil {
				log.Printf("resize ignored: %v", err)
			}
		})
		v.screen.Sync()
	}
	return true
}

func (v *viewer) draw(snap sim.Snapshot) {
	v.last = snap
	v.screen.Clear()

	theme, err := sim.ParseHexColor(snap.Theme)
	if err != nil {
		theme.G = 0xff
	}
	accent := tcell.NewRGBColor(int32(theme.R), int32(theme.G), int32(theme.B))
	dim := tcell.NewRGBColor(int32(theme.R)/4, int32(theme.G)/4, int32(theme.B)/4)
	gridStyle := tcell.StyleDefault.Foreground(dim)

	if v.showGrid {
		for _, n := range snap.Nodes {
			x0, y0 := n.Min()
			w, h := n.Size()
			cx0, cy0 := int(x0/cellW), int(y0/cellH)
			cx1, cy1 := int((x0+w)/cellW), int((y0+h)/cellH)
			for x := cx0; x < cx1; x++ {
				v.screen.SetContent(x, cy0, '─', nil, gridStyle)
			}
			for y := cy0; y < cy1; y++ {
				v.screen.SetContent(cx0, y, '│', nil, gridStyle)
			}
		}
	}

	plain := tcell.StyleDefault.Foreground(accent)
	lit := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	for _, p := range snap.Particles {
		x, y := int(p.X/cellW), int(p.Y/cellH)
		if p.Highlighted {
			v.screen.SetContent(x, y, '●', nil, lit)
		} else {
			v.screen.SetContent(x, y, '·', nil, plain)
		}
	}

	if snap.HasFocus {
		v.screen.SetContent(int(snap.Focus.X/cellW), int(snap.Focus.Y/cellH), '+', nil, plain.Reverse(true))
	}

	mode := "RUN"
	if !snap.Running {
		mode = "PAUSED"
	}
	line := fmt.Sprintf(" %s cap=%d r=%.0f %s | %s", mode, snap.Capacity, snap.QueryRadius, snap.Stats, v.status)
	for i, r := range []rune(line) {
		if i >= v.cols {
			break
		}
		v.screen.SetContent(i, v.rows-1, r, nil, plain.Reverse(true))
	}

	v.screen.Show()
}
