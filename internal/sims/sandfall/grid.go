package sandfall

import (
	"fmt"

	"sandfall/internal/core"
)

// DiagonalPolicy selects which diagonal a blocked mobile cell tries first.
type DiagonalPolicy uint8

const (
	DiagonalLeftFirst DiagonalPolicy = iota
	DiagonalRightFirst
	// DiagonalRandom flips a coin per cell per tick.
	DiagonalRandom
)

func (p DiagonalPolicy) String() string {
	switch p {
	case DiagonalRightFirst:
		return "right"
	case DiagonalRandom:
		return "random"
	default:
		return "left"
	}
}

// ParseDiagonalPolicy accepts "left", "right" or "random".
func ParseDiagonalPolicy(s string) (DiagonalPolicy, error) {
	switch s {
	case "left", "":
		return DiagonalLeftFirst, nil
	case "right":
		return DiagonalRightFirst, nil
	case "random":
		return DiagonalRandom, nil
	}
	return DiagonalLeftFirst, fmt.Errorf("sandfall: unknown diagonal policy %q", s)
}

// StepStats summarises what a single Step did to the grid.
type StepStats struct {
	Moved     int // units relocated by one cell
	Vitrified int // sand cells turned to glass by nearby lava
	Quenched  int // lava units spent converting the sand beneath them
}

var neighborhood = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Grid is the world grid: a fixed W×H field of materials advanced one tick at
// a time. Step reads only from the current buffer and writes only to the
// next one, so a unit can never move twice in the same tick.
type Grid struct {
	cur *core.Grid[Material]
	nxt *core.Grid[Material]
	// quench marks sand cells already spent by a lava unit this step.
	quench []bool

	policy DiagonalPolicy
	rng    *core.RNG
}

// NewGrid allocates an empty grid. rng is only consulted for
// DiagonalRandom and may be nil otherwise.
func NewGrid(w, h int, policy DiagonalPolicy, rng *core.RNG) *Grid {
	if rng == nil {
		rng = core.NewRNG(0)
	}
	return &Grid{
		cur:    core.NewGrid[Material](w, h),
		nxt:    core.NewGrid[Material](w, h),
		quench: make([]bool, w*h),
		policy: policy,
		rng:    rng,
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.cur.W }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.cur.H }

// Policy returns the diagonal tie-break policy.
func (g *Grid) Policy() DiagonalPolicy { return g.policy }

// SetPolicy changes the diagonal tie-break policy for subsequent steps.
func (g *Grid) SetPolicy(p DiagonalPolicy) { g.policy = p }

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool { return g.cur.InBounds(x, y) }

// At returns the material at column x, row y.
func (g *Grid) At(x, y int) Material { return g.cur.At(x, y) }

// Set stores m at column x, row y.
func (g *Grid) Set(x, y int, m Material) {
	if !m.Valid() {
		panic(fmt.Sprintf("sandfall: invalid material %d at (%d,%d)", uint8(m), x, y))
	}
	g.cur.Set(x, y, m)
}

// Clear empties every cell.
func (g *Grid) Clear() { g.cur.Fill(Empty) }

// Cells exposes the current buffer in row-major order. Callers must not
// modify it.
func (g *Grid) Cells() []Material { return g.cur.Cells() }

// Snapshot returns a copy of the current buffer.
func (g *Grid) Snapshot() []Material {
	return append([]Material(nil), g.cur.Cells()...)
}

// Count returns the number of cells holding m.
func (g *Grid) Count(m Material) int {
	n := 0
	for _, c := range g.cur.Cells() {
		if c == m {
			n++
		}
	}
	return n
}

// NeighborIs reports whether any of the eight cells around (x, y) holds m.
func (g *Grid) NeighborIs(x, y int, m Material) bool {
	for _, d := range neighborhood {
		nx, ny := x+d[0], y+d[1]
		if g.cur.InBounds(nx, ny) && g.cur.At(nx, ny) == m {
			return true
		}
	}
	return false
}

// Step advances sand and lava by one tick.
//
// Lava first vitrifies every sand cell in its 8-neighbourhood. Then mobile
// cells are visited bottom row to top, left to right: each falls straight
// down into an empty cell, or, for lava resting on sand, is spent turning that
// sand to glass, or else tries the two lower diagonals in policy order under
// the same rules. Targets must be empty in the current buffer and unclaimed in
// the next one. A sand cell absorbs at most one lava unit per step.
func (g *Grid) Step() StepStats {
	var stats StepStats
	src, dst := g.cur, g.nxt
	dst.CopyFrom(src)
	s, d := src.Cells(), dst.Cells()
	w, h := src.W, src.H
	clear(g.quench)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if s[y*w+x] != Lava {
				continue
			}
			for _, n := range neighborhood {
				nx, ny := x+n[0], y+n[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				j := ny*w + nx
				if d[j] != s[j] {
					continue
				}
				if next, ok := heated(s[j]); ok {
					d[j] = next
					stats.Vitrified++
				}
			}
		}
	}

	for y := h - 2; y >= 0; y-- {
		for x := 0; x < w; x++ {
			i := y*w + x
			m := s[i]
			if !m.Mobile() || d[i] != m {
				continue
			}
			below := i + w
			if g.settle(s, d, i, below, m, &stats) {
				continue
			}
			for _, dx := range g.diagonals() {
				nx := x + dx
				if nx < 0 || nx >= w {
					continue
				}
				if g.settle(s, d, i, below+dx, m, &stats) {
					break
				}
			}
		}
	}

	g.cur, g.nxt = dst, src
	return stats
}

func (g *Grid) diagonals() [2]int {
	switch g.policy {
	case DiagonalRightFirst:
		return [2]int{1, -1}
	case DiagonalRandom:
		if g.rng.Bool() {
			return [2]int{1, -1}
		}
	}
	return [2]int{-1, 1}
}

// settle tries to move the unit m at index i into index j. It reports whether
// the unit's motion for this tick was used up.
func (g *Grid) settle(s, d []Material, i, j int, m Material, stats *StepStats) bool {
	switch {
	case s[j] == Empty && d[j] == Empty:
		d[j] = m
		d[i] = Empty
		stats.Moved++
		return true
	case m == Lava && s[j] == Sand && !g.quench[j] && (d[j] == Sand || d[j] == Glass):
		g.quench[j] = true
		d[j] = Glass
		d[i] = Empty
		stats.Quenched++
		return true
	}
	return false
}
