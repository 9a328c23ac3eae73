package ui

import (
	"math"

	"sandfall/internal/core"
)

type runEnder interface {
	Over() bool
}

type stormClock interface {
	StormProgress() float64
}

// runOver reports whether the sim has ended its run.
func runOver(sim core.Sim) bool {
	ender, ok := sim.(runEnder)
	return ok && ender.Over()
}

// stormBarWidth converts the hazard timer progress into a bar width in
// pixels. Disabled timers draw nothing.
func stormBarWidth(sim core.Sim, width int) int {
	clock, ok := sim.(stormClock)
	if !ok || width <= 0 {
		return 0
	}
	progress := clock.StormProgress()
	if progress <= 0 {
		return 0
	}
	if progress > 1 {
		progress = 1
	}
	return int(math.Round(progress * float64(width)))
}

// bannerLines returns the text shown over the frozen world after a death.
func bannerLines(sim core.Sim) []string {
	lines := []string{"GAME OVER"}
	provider, ok := sim.(core.StatusProvider)
	if !ok {
		return append(lines, "R to restart")
	}
	for _, s := range provider.Status() {
		switch s.Label {
		case "Time":
			lines = append(lines, "Survived "+s.Value)
		case "State":
			lines = append(lines, s.Value)
		}
	}
	return lines
}
