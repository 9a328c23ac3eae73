package sandfall

import "sandfall/internal/core"

// autopilotReach is how many rows above the actor the autopilot watches.
const autopilotReach = 3

// Autopilot chooses an input for a scripted player: jump when lava is within
// three rows above the actor, otherwise drift away from the nearest lava
// column. It is used by batch runs to score hazard settings.
func Autopilot(w *World) core.Action {
	if w.Over() {
		return core.ActionNone
	}
	g := w.grid
	ax, ay := w.ActorCell()

	nearest := -1
	best := g.Width() + 1
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.At(x, y) != Lava {
				continue
			}
			if y < ay && ay-y <= autopilotReach && abs(x-ax) <= 1 {
				return core.ActionJump
			}
			if d := abs(x - ax); d < best {
				best = d
				nearest = x
			}
		}
	}
	switch {
	case nearest < 0:
		return core.ActionNone
	case nearest < ax:
		return core.ActionMoveRight
	case nearest > ax:
		return core.ActionMoveLeft
	case ax < g.Width()/2:
		return core.ActionMoveRight
	default:
		return core.ActionMoveLeft
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
