//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"sandfall/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := app.LoadSim(cfg)
	if err != nil {
		log.Fatalf("sandfall: %v", err)
	}
	if cfg.DumpConfig {
		if err := app.DumpConfig(os.Stdout, sim); err != nil {
			log.Fatalf("sandfall: %v", err)
		}
		return
	}

	watcher, err := app.WatchTuning(cfg)
	if err != nil {
		log.Fatalf("sandfall: watch %s: %v", cfg.ConfigPath, err)
	}
	if watcher != nil {
		defer watcher.Close()
	}

	game := app.New(sim, cfg, watcher)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("sandfall: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
