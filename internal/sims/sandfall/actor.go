package sandfall

import "math"

// Player is the actor's kinematic state. Columns are whole cells; the row is
// continuous and rounded to the nearest cell for collision.
type Player struct {
	X  int
	Y  float64
	VY float64

	OnGround bool
	// Coyote counts the ticks after leaving the ground during which a jump
	// is still honored.
	Coyote int

	JumpQueued bool
	// Move is the queued horizontal step: -1, 0 or +1.
	Move int
}

// Row returns the cell row the actor occupies.
func (a Player) Row() int { return int(math.Round(a.Y)) }

// State is the session's terminal flag.
type State uint8

const (
	Running State = iota
	Dead
)

func (s State) String() string {
	if s == Dead {
		return "dead"
	}
	return "running"
}

// DeathCause records which rule ended the run.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	// CauseLava means the actor moved into a lava cell.
	CauseLava
	// CauseHeat means lava occupied one of the actor's eight neighbours.
	CauseHeat
	// CauseFell means the actor reached the bottom row of a bottomless world.
	CauseFell
)

func (c DeathCause) String() string {
	switch c {
	case CauseLava:
		return "lava"
	case CauseHeat:
		return "heat"
	case CauseFell:
		return "fell"
	default:
		return "none"
	}
}

// integrateActor resolves one tick of player motion against the grid the
// automaton just produced and applies the lava and floor death rules.
// scorched reports whether lava touched the actor once hazards were injected.
func (w *World) integrateActor(scorched bool) {
	g := w.grid
	if g == nil {
		panic("sandfall: actor integrated before the grid exists")
	}
	a := &w.actor
	p := w.cfg.Params

	row := a.Row()
	if g.At(a.X, row) == Actor {
		g.Set(a.X, row, Empty)
	}

	if a.Move != 0 {
		nx := a.X + a.Move
		if g.InBounds(nx, row) && g.At(nx, row) == Empty {
			a.X = nx
		}
		a.Move = 0
	}

	grounded := w.groundedAt(a.X, row)
	if grounded {
		a.Coyote = p.CoyoteTicks
	}
	jumped := false
	if a.JumpQueued {
		if grounded || a.Coyote > 0 {
			a.VY = -p.JumpSpeed
			a.Coyote = 0
			jumped = true
		}
		a.JumpQueued = false
	}
	if !grounded && !jumped && a.Coyote > 0 {
		a.Coyote--
	}

	if grounded && !jumped {
		a.VY = 0
		a.Y = float64(row)
	} else {
		if !jumped {
			a.VY += p.Gravity
		}
		if a.VY > p.MaxFallSpeed {
			a.VY = p.MaxFallSpeed
		}
		w.moveVertical(row)
	}

	row = a.Row()
	a.OnGround = w.groundedAt(a.X, row)
	if a.OnGround && a.VY > 0 {
		a.VY = 0
		a.Y = float64(row)
	}

	switch {
	case w.state == Dead:
	case scorched || g.NeighborIs(a.X, row, Lava):
		w.die(CauseHeat)
	case !p.FloorIsSolid && row == g.Height()-1:
		w.die(CauseFell)
	}

	if g.At(a.X, row) == Empty {
		g.Set(a.X, row, Actor)
	}
}

// moveVertical walks the actor one row at a time from row towards its
// candidate row. Sand on the way is pushed out, glass stops the motion and
// lava is entered and kills.
func (w *World) moveVertical(row int) {
	g := w.grid
	a := &w.actor

	target := a.Y + a.VY
	if target < 0 {
		target = 0
		if a.VY < 0 {
			a.VY = 0
		}
	}
	if bottom := float64(g.Height() - 1); target > bottom {
		target = bottom
	}
	to := int(math.Round(target))
	dir := 1
	if to < row {
		dir = -1
	}

	for cur := row; cur != to; {
		next := cur + dir
		switch g.At(a.X, next) {
		case Empty:
		case Sand:
			g.Set(a.X, next, Empty)
			w.stats.SandDisplaced++
		case Lava:
			a.Y = float64(next)
			w.die(CauseLava)
			return
		default:
			a.VY = 0
			a.Y = float64(cur)
			return
		}
		cur = next
	}
	a.Y = target
}

// groundedAt reports whether an actor at (x, row) stands on something: a
// solid cell directly below, or the floor when the floor is solid.
func (w *World) groundedAt(x, row int) bool {
	if row >= w.grid.Height()-1 {
		return w.cfg.Params.FloorIsSolid
	}
	return w.grid.At(x, row+1).Solid()
}
