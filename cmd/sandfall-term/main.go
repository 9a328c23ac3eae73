package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/app"
	"sandfall/internal/term"
)

// shutdownSignals end the session cleanly, restoring the terminal.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if cfg.ConfigPath == "" {
		// Two terminal columns per cell: keep the default world on an 80x25 screen.
		if cfg.Width == 0 {
			cfg.Width = 38
		}
		if cfg.Height == 0 {
			cfg.Height = 22
		}
	}

	sim, err := app.LoadSim(cfg)
	if err != nil {
		log.Fatalf("sandfall-term: %v", err)
	}
	if cfg.DumpConfig {
		if err := app.DumpConfig(os.Stdout, sim); err != nil {
			log.Fatalf("sandfall-term: %v", err)
		}
		return
	}

	watcher, err := app.WatchTuning(cfg)
	if err != nil {
		log.Fatalf("sandfall-term: watch %s: %v", cfg.ConfigPath, err)
	}
	if watcher != nil {
		defer watcher.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("sandfall-term: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("sandfall-term: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	err = term.Run(ctx, screen, sim, term.Options{TPS: cfg.TPS, Tuning: watcher})
	stop()
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		log.Fatalf("sandfall-term: %v", err)
	}
}
