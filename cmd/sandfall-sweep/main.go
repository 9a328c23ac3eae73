package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"sandfall/internal/sims/sandfall"
)

func main() {
	seeds := flag.Int("seeds", 8, "sessions per parameter set")
	steps := flag.Int("steps", 7200, "tick limit per session")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("w", 80, "grid width")
	height := flag.Int("h", 60, "grid height")
	configPath := flag.String("config", "", "YAML tuning file used as the base config")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	base := sandfall.DefaultConfig()
	if *configPath != "" {
		loaded, err := sandfall.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("sandfall-sweep: %v", err)
		}
		base = loaded
	}
	base.Width = *width
	base.Height = *height
	base = base.WithOverrides(overrides.Map())
	if err := base.Validate(); err != nil {
		log.Fatalf("sandfall-sweep: %v", err)
	}

	sets := hazardGrid(
		[]float64{0.3, 0.5, 0.7, 0.9},
		[]int{240, 420, 600, 900},
	)

	fmt.Printf("Sweeping %d hazard settings (%d seeds, %d workers, %d steps)\n", len(sets), *seeds, *workers, *steps)
	start := time.Now()
	results := sweep(base, sets, *seeds, *steps, *workers)

	fmt.Printf("\nResults by mean survival (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	tps := float64(base.TPS)
	for i, res := range results {
		fmt.Printf("%2d) mean=%.1fs max=%.1fs deaths=%d/%d glass=%d displaced=%d %s\n",
			i+1, res.mean/tps, float64(res.max)/tps, res.deaths, *seeds, res.glass, res.displaced, res.params)
	}
}

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Map splits the entries at the first '='. Entries without one are skipped.
func (l kvList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}
