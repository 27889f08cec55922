// Package viz is the desktop front end: an ebiten window that renders grid
// and engine snapshots and maps keystrokes onto controller calls. It holds
// no search logic of its own; everything it shows comes out of snapshot
// queries.
package viz

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/gravitas-015/hexpath/internal/config"
	"github.com/gravitas-015/hexpath/pkg/maze"
	"github.com/gravitas-015/hexpath/pkg/search"
)

const helpLine = "SPACE run/pause | N step | ENTER solve | 1 A* | 2 bidirectional | R new maze"

// App implements ebiten.Game around one StepController.
//
// Keyboard controls:
//
//	SPACE  toggle continuous stepping
//	N      advance one expansion
//	ENTER  solve instantly
//	1 / 2  reset with the unidirectional / bidirectional engine
//	R      regenerate the maze (unseeded) and reset
type App struct {
	cfg      *config.Config
	ctrl     *search.Controller
	renderer *Renderer
}

// NewApp generates the initial maze and wires up a controller.
func NewApp(cfg *config.Config) (*App, error) {
	g, err := maze.Generate(mazeConfig(cfg, cfg.Maze.Seed))
	if err != nil {
		if !errors.Is(err, maze.ErrGenerationFailed) {
			return nil, err
		}
		log.Printf("Maze generation fell back to a sparser grid: %v", err)
	}
	return &App{
		cfg:      cfg,
		ctrl:     search.NewController(g, search.Unidirectional),
		renderer: NewRenderer(cfg.Visualizer.HexSize, cfg.Visualizer.WindowWidth, cfg.Visualizer.WindowHeight),
	}, nil
}

func mazeConfig(cfg *config.Config, seed int64) maze.Config {
	return maze.Config{
		Radius:     cfg.Grid.Radius,
		Density:    cfg.Maze.Density,
		Seed:       seed,
		MaxRetries: cfg.Maze.MaxRetries,
		BatchSize:  cfg.Maze.BatchSize,
	}
}

// Update handles input and, while running, steps the engine at the
// configured per-frame rate. The engine itself never blocks or sleeps; the
// frame loop is what sets the animation cadence.
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if a.ctrl.Running() {
			a.ctrl.Pause()
		} else {
			a.ctrl.Run()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.ctrl.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.ctrl.Solve()
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		a.ctrl.Reset(search.Unidirectional)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		a.ctrl.Reset(search.Bidirectional)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.regenerate()
	}

	if a.ctrl.Running() {
		for i := 0; i < a.cfg.Visualizer.StepsPerTick; i++ {
			if s := a.ctrl.Step(); s.Terminal() {
				break
			}
		}
	}
	return nil
}

// regenerate swaps in a fresh unseeded maze, keeping the current variant.
func (a *App) regenerate() {
	g, err := maze.Generate(mazeConfig(a.cfg, 0))
	if g == nil {
		log.Printf("Maze regeneration failed: %v", err)
		return
	}
	if err != nil {
		log.Printf("Maze regeneration fell back to a sparser grid: %v", err)
	}
	a.ctrl.SetGrid(g)
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(BackgroundColor)
	snap := a.ctrl.Snapshot()
	a.renderer.Draw(screen, a.ctrl.Grid(), snap)

	status := fmt.Sprintf("%s | %s | explored %d", a.ctrl.Variant(), snap.State, snap.NodesExplored)
	if snap.State == search.PathFound {
		status += fmt.Sprintf(" | path %d", len(snap.Path)-1)
	}
	face := basicfont.Face7x13
	text.Draw(screen, helpLine, face, 10, 20, OpenColor)
	text.Draw(screen, status, face, 10, 40, FrontierColor)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Visualizer.WindowWidth, a.cfg.Visualizer.WindowHeight
}
