package main

import (
	"flag"
	"log"

	"gridcaster/internal/config"
	"gridcaster/internal/game"
	"gridcaster/internal/scene"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "configuration file")
	levelPath := flag.String("level", "", "level file (defaults to level.file from the config)")
	flag.Parse()

	// Load configuration
	cfg := config.MustLoadConfig(*configPath)

	sc, err := scene.Open(cfg, *levelPath)
	if err != nil {
		log.Fatal(err)
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := game.NewGame(cfg, sc)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
