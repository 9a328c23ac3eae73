package app

import (
	"fmt"
	"io"
	"log"
	"maps"
	"slices"
	"strings"

	"sandfall/internal/core"
	"sandfall/internal/sims/sandfall"
	"sandfall/internal/tuning"
)

type paramsApplier interface {
	ApplyParams(p sandfall.Params) error
}

// LoadSim builds the simulation named by cfg. A tuning file, when given, is
// read first and the command-line flags override it.
func LoadSim(cfg *Config) (core.Sim, error) {
	if cfg.ConfigPath == "" {
		factory, ok := core.Lookup(cfg.Sim)
		if !ok {
			names := slices.Sorted(maps.Keys(core.Sims()))
			return nil, fmt.Errorf("unknown sim %q (have %s)", cfg.Sim, strings.Join(names, ", "))
		}
		return factory(cfg.Options()), nil
	}
	if cfg.Sim != "sandfall" {
		return nil, fmt.Errorf("sim %q does not read tuning files", cfg.Sim)
	}
	world, err := sandfall.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.TPS > 0 {
		world.TPS = cfg.TPS
	}
	if cfg.Seed != 0 {
		world.Seed = cfg.Seed
	}
	if cfg.Width > 0 {
		world.Width = cfg.Width
	}
	if cfg.Height > 0 {
		world.Height = cfg.Height
	}
	if err := world.Validate(); err != nil {
		return nil, err
	}
	return sandfall.NewWithConfig(world), nil
}

// DumpConfig writes the sim's effective configuration as YAML.
func DumpConfig(w io.Writer, sim core.Sim) error {
	world, ok := sim.(interface{ Config() sandfall.Config })
	if !ok {
		return fmt.Errorf("sim %q has no tuning file format", sim.Name())
	}
	raw, err := world.Config().YAML()
	if err != nil {
		return err
	}
	_, err = w.Write(raw)
	return err
}

// WatchTuning starts a watcher on the tuning file when cfg asks for one.
func WatchTuning(cfg *Config) (*tuning.Watcher, error) {
	if !cfg.Watch || cfg.ConfigPath == "" {
		return nil, nil
	}
	return tuning.Watch(cfg.ConfigPath)
}

// ApplyTuning swaps freshly loaded parameters into a running sim. Grid size,
// seed and tick rate only change on restart.
func ApplyTuning(sim core.Sim, cfg sandfall.Config) error {
	applier, ok := sim.(paramsApplier)
	if !ok {
		return fmt.Errorf("sim %q does not accept tuning", sim.Name())
	}
	return applier.ApplyParams(cfg.Params)
}

// PollTuning applies any pending reload without blocking and logs the
// outcome. It returns false once the watcher has been closed.
func PollTuning(sim core.Sim, w *tuning.Watcher) bool {
	msg, open := CheckTuning(sim, w)
	if msg != "" {
		log.Print(msg)
	}
	return open
}

// CheckTuning is PollTuning for front-ends that own the terminal: the outcome
// is returned as a one-line report, empty when nothing was pending.
func CheckTuning(sim core.Sim, w *tuning.Watcher) (string, bool) {
	if w == nil {
		return "", false
	}
	select {
	case cfg, ok := <-w.Updates():
		if !ok {
			return "", false
		}
		if err := ApplyTuning(sim, cfg); err != nil {
			return fmt.Sprintf("tuning: %v", err), true
		}
		return fmt.Sprintf("tuning: reloaded %s", w.Path()), true
	case err, ok := <-w.Errors():
		if !ok {
			return "", false
		}
		return fmt.Sprintf("tuning: %v", err), true
	default:
	}
	return "", true
}
