package main

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/olivierh59500/quadtree-intercept/internal/control"
	"github.com/olivierh59500/quadtree-intercept/internal/quadtree"
	"github.com/olivierh59500/quadtree-intercept/internal/sim"
)

// Render constants
const (
	ParticleSize    = 1.5
	HighlightSize   = 3.0
	ScanlineSpacing = 4
	CrosshairSize   = 10.0
	StatusTicks     = 120 // How long a status message stays on the HUD
)

var (
	background = color.RGBA{5, 10, 5, 255}
	scanline   = color.NRGBA{255, 255, 255, 8}
	hudFace    = text.NewGoXFace(basicfont.Face7x13)
)

// bindings maps keys to simulation commands.
var bindings = map[ebiten.Key]control.Action{
	ebiten.KeySpace:          control.TogglePause,
	ebiten.KeyUp:             control.CapacityUp,
	ebiten.KeyDown:           control.CapacityDown,
	ebiten.KeyRight:          control.RadiusUp,
	ebiten.KeyLeft:           control.RadiusDown,
	ebiten.KeyEqual:          control.PopulationUp,
	ebiten.KeyNumpadAdd:      control.PopulationUp,
	ebiten.KeyMinus:          control.PopulationDown,
	ebiten.KeyNumpadSubtract: control.PopulationDown,
	ebiten.KeyP:              control.Purge,
	ebiten.KeyT:              control.CycleTheme,
	ebiten.KeyF:              control.CycleSpawn,
}

// Game adapts a Simulation to Ebitengine. It feeds the simulation its inputs
// and draws whatever the last tick produced.
type Game struct {
	sim        *sim.Simulation
	configPath string
	ShowGrid   bool
	ShowPoints bool

	status      string
	statusTicks int
	width       int
	height      int
}

// NewGame wraps s. Settings are saved to and loaded from configPath.
func NewGame(s *sim.Simulation, configPath string) *Game {
	w, h := s.Bounds().Size()
	return &Game{
		sim:        s,
		configPath: configPath,
		ShowGrid:   true,
		ShowPoints: true,
		width:      int(w),
		height:     int(h),
	}
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	g.handleInput()
	g.sim.Advance(1)
	if g.statusTicks > 0 {
		g.statusTicks--
	}
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.drawScanlines(screen)

	theme, err := sim.ParseHexColor(g.sim.Theme())
	if err != nil {
		theme = color.RGBA{0, 255, 65, 255}
	}

	if g.ShowGrid {
		g.drawGrid(screen, theme)
	}
	if g.ShowPoints {
		g.drawParticles(screen, theme)
	}
	if focus, ok := g.sim.Focus(); ok {
		g.drawFocus(screen, focus, theme)
	}
	g.drawHUD(screen, theme)
}

// Layout follows the window size so the world always matches the surface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		if err := g.sim.SetBounds(float64(outsideWidth), float64(outsideHeight)); err != nil {
			log.Printf("resize ignored: %v", err)
			return g.width, g.height
		}
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

// handleInput processes keyboard and mouse input
func (g *Game) handleInput() {
	for key, action := range bindings {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		msg, err := control.Apply(g.sim, action)
		if err != nil {
			log.Printf("%v ignored: %v", action, err)
			continue
		}
		g.setStatus(msg)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.ShowGrid = !g.ShowGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.ShowPoints = !g.ShowPoints
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.loadSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}

	// The pointer is the focus while it is over the surface
	mx, my := ebiten.CursorPosition()
	if ebiten.IsFocused() && image.Pt(mx, my).In(image.Rect(0, 0, g.width, g.height)) {
		g.sim.SetFocus(float64(mx), float64(my))
	} else {
		g.sim.ClearFocus()
	}
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTicks = StatusTicks
}

// saveSettings writes the current tunables to the config file
func (g *Game) saveSettings() {
	if err := g.sim.Settings().Save(g.configPath); err != nil {
		log.Printf("save settings: %v", err)
		return
	}
	g.setStatus("saved " + g.configPath)
}

// loadSettings applies tunables from the config file. The world keeps the
// window's size; everything else is taken from the file.
func (g *Game) loadSettings() {
	cfg, err := sim.LoadSettings(g.configPath)
	if err != nil {
		log.Printf("load settings: %v", err)
		return
	}
	if err := g.sim.ApplySettings(cfg); err != nil {
		log.Printf("load settings: %v", err)
		return
	}
	g.setStatus("loaded " + g.configPath)
}

// copyReport puts a text summary of the current tick on the clipboard
func (g *Game) copyReport() {
	if err := clipboard.WriteAll(g.sim.Snapshot().Report()); err != nil {
		log.Printf("clipboard: %v", err)
		return
	}
	g.setStatus("report copied")
}

func (g *Game) drawScanlines(screen *ebiten.Image) {
	for y := 0; y < g.height; y += ScanlineSpacing {
		vector.StrokeLine(screen, 0, float32(y), float32(g.width), float32(y), 1, scanline, false)
	}
}

// drawGrid outlines every node of the last index
func (g *Game) drawGrid(screen *ebiten.Image, theme color.RGBA) {
	tree := g.sim.Tree()
	if tree == nil {
		return
	}
	col := color.NRGBA{theme.R, theme.G, theme.B, 51}
	tree.Walk(func(n *quadtree.Node[*sim.Particle]) bool {
		x, y := n.Boundary.Min()
		w, h := n.Boundary.Size()
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, col, false)
		return true
	})
}

func (g *Game) drawParticles(screen *ebiten.Image, theme color.RGBA) {
	dim := color.NRGBA{theme.R, theme.G, theme.B, 128}
	for _, p := range g.sim.Particles() {
		if p.Highlighted {
			vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), HighlightSize, color.White, true)
			continue
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), ParticleSize, dim, true)
	}
}

// drawFocus draws the query circle and a crosshair on the pointer
func (g *Game) drawFocus(screen *ebiten.Image, f sim.Focus, theme color.RGBA) {
	x, y := float32(f.X), float32(f.Y)
	vector.StrokeCircle(screen, x, y, float32(g.sim.QueryRadius()), 2, theme, true)
	vector.StrokeLine(screen, x-CrosshairSize, y, x+CrosshairSize, y, 2, theme, true)
	vector.StrokeLine(screen, x, y-CrosshairSize, x, y+CrosshairSize, 2, theme, true)
}

func (g *Game) drawHUD(screen *ebiten.Image, theme color.RGBA) {
	st := g.sim.Stats()
	mode := "RUNNING"
	if !g.sim.Running() {
		mode = "SUSPENDED"
	}
	query := "IDLE"
	if f, ok := g.sim.Focus(); ok {
		query = fmt.Sprintf("LOCKED_ON_COORD %.0f,%.0f", f.X, f.Y)
	}
	lines := []string{
		fmt.Sprintf("MODE %s  QUERY %s", mode, query),
		fmt.Sprintf("CAPACITY %d  RADIUS %.0f  SPAWN %s", g.sim.Capacity(), g.sim.QueryRadius(), g.sim.SpawnMode()),
		fmt.Sprintf("ENTITIES %d  HITS %d  NODES %d  DEPTH %d  EFFICIENCY ~%d%%",
			st.Population, st.Highlighted, st.Nodes, st.Height, st.Efficiency),
		fmt.Sprintf("TPS %.0f", ebiten.ActualTPS()),
	}
	if g.statusTicks > 0 {
		lines = append(lines, "> "+g.status)
	}
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(12, 12+float64(i)*16)
		op.ColorScale.ScaleWithColor(theme)
		text.Draw(screen, line, hudFace, op)
	}
}
