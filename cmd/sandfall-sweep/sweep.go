package main

import (
	"fmt"
	"sort"
	"sync"

	"sandfall/internal/sims/sandfall"
)

type hazardSet struct {
	chance   float64
	interval int
}

func (h hazardSet) String() string {
	return fmt.Sprintf("chance=%.2f interval=%d", h.chance, h.interval)
}

type sweepResult struct {
	params    hazardSet
	mean      float64
	max       int
	deaths    int
	glass     int
	displaced int
}

// hazardGrid crosses every chance with every interval.
func hazardGrid(chances []float64, intervals []int) []hazardSet {
	sets := make([]hazardSet, 0, len(chances)*len(intervals))
	for _, c := range chances {
		for _, i := range intervals {
			sets = append(sets, hazardSet{chance: c, interval: i})
		}
	}
	return sets
}

// runSession plays one autopiloted session and returns the final world.
func runSession(cfg sandfall.Config, steps int) *sandfall.World {
	world := sandfall.NewWithConfig(cfg)
	for i := 0; i < steps && !world.Over(); i++ {
		world.Apply(sandfall.Autopilot(world))
		world.Step()
	}
	return world
}

// runScenario plays seeds sessions with one hazard setting.
func runScenario(base sandfall.Config, params hazardSet, seeds, steps int) sweepResult {
	res := sweepResult{params: params}
	total := 0
	for s := 0; s < seeds; s++ {
		cfg := base
		cfg.Seed = base.Seed + int64(s)
		cfg.Params.HazardChance = params.chance
		cfg.Params.HazardInterval = params.interval
		world := runSession(cfg, steps)

		ticks := world.SurvivalTicks()
		total += ticks
		if ticks > res.max {
			res.max = ticks
		}
		if world.Over() {
			res.deaths++
		}
		st := world.Stats()
		res.glass += st.Vitrified
		res.displaced += st.SandDisplaced
	}
	if seeds > 0 {
		res.mean = float64(total) / float64(seeds)
	}
	return res
}

// sweep fans the hazard grid out over workers goroutines and returns the
// results sorted by mean survival, longest first.
func sweep(base sandfall.Config, sets []hazardSet, seeds, steps, workers int) []sweepResult {
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan hazardSet)
	results := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, seeds, steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	all := make([]sweepResult, 0, len(sets))
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].mean != all[j].mean {
			return all[i].mean > all[j].mean
		}
		if all[i].params.interval != all[j].params.interval {
			return all[i].params.interval > all[j].params.interval
		}
		return all[i].params.chance < all[j].params.chance
	})
	return all
}
