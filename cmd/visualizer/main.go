package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gravitas-015/hexpath/internal/config"
	"github.com/gravitas-015/hexpath/internal/viz"
)

func main() {
	cfg := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		cfg = loaded
		log.Printf("Configuration loaded from %s", path)
	}

	app, err := viz.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to create visualizer: %v", err)
	}

	ebiten.SetWindowSize(cfg.Visualizer.WindowWidth, cfg.Visualizer.WindowHeight)
	ebiten.SetWindowTitle("Hexagonal A* Pathfinding Visualizer")
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
