// Command termcast renders a level in a terminal with half-block cells,
// two frame pixels per character.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"gridcaster/internal/config"
	"gridcaster/internal/scene"
)

func main() {
	configPath := flag.String("config", "config.yaml", "configuration file")
	levelPath := flag.String("level", "", "level file (defaults to level.file from the config)")
	logPath := flag.String("log", "", "write log output to this file")
	flag.Parse()

	// The screen owns the terminal, so log lines go to a file or nowhere.
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg := config.MustLoadConfig(*configPath)
	sc, err := scene.Open(cfg, *levelPath)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	term, err := NewTerminal(screen, cfg, sc)
	if err != nil {
		log.Fatal(err)
	}
	if *logPath == "" {
		log.SetOutput(io.Discard)
	}
	defer term.Close()
	term.Run()
}
