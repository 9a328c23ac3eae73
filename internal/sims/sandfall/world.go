package sandfall

import (
	"fmt"
	"time"

	"sandfall/internal/core"
)

// Stats accumulates what happened during the current session.
type Stats struct {
	LavaSpawned   int
	Vitrified     int
	Quenched      int
	SandCleared   int
	SandDisplaced int
}

// World is the simulation controller. It owns the grid, the actor and the
// hazard timers and advances them together one tick at a time. It is not
// safe for concurrent use: front-ends read it only between calls to Step.
type World struct {
	cfg Config

	grid  *Grid
	actor Player

	state    State
	cause    DeathCause
	survived int

	hazard     core.Countdown
	compaction core.Countdown

	resetQueued bool
	seed        int64
	stats       Stats

	display []uint8
	rng     *core.RNG
}

// New returns a world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from the provided options and
// reset with the config seed. It panics if the config does not validate.
func NewWithConfig(cfg Config) *World {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	rng := core.NewRNG(cfg.Seed)
	w := &World{
		cfg:     cfg,
		grid:    NewGrid(cfg.Width, cfg.Height, cfg.Params.Diagonal, rng),
		display: make([]uint8, cfg.Width*cfg.Height),
		rng:     rng,
	}
	w.Reset(0)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sandfall" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Cells exposes the display buffer: one Material value per cell.
func (w *World) Cells() []uint8 { return w.display }

// Grid exposes the world grid for read access.
func (w *World) Grid() *Grid { return w.grid }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Seed returns the seed of the current session.
func (w *World) Seed() int64 { return w.seed }

// State reports whether the run is still going.
func (w *World) State() State { return w.state }

// Cause reports why the run ended, or CauseNone while running.
func (w *World) Cause() DeathCause { return w.cause }

// Actor returns a copy of the actor's state.
func (w *World) Actor() Player { return w.actor }

// ActorCell returns the column and row the actor occupies.
func (w *World) ActorCell() (x, y int) { return w.actor.X, w.actor.Row() }

// SurvivalTicks returns the number of ticks survived in this session.
func (w *World) SurvivalTicks() int { return w.survived }

// SurvivalTime converts SurvivalTicks to wall time at the configured rate.
func (w *World) SurvivalTime() time.Duration {
	return time.Duration(w.survived) * time.Second / time.Duration(w.cfg.TPS)
}

// HazardIn returns the ticks until the next lava front, or -1 when hazards
// are disabled.
func (w *World) HazardIn() int {
	if !w.hazard.Enabled() {
		return -1
	}
	return w.hazard.Remaining()
}

// StormProgress returns how far the hazard timer has run towards the next
// lava front, in [0,1), or -1 when hazards are disabled.
func (w *World) StormProgress() float64 {
	if !w.hazard.Enabled() {
		return -1
	}
	return float64(w.hazard.Elapsed()) / float64(w.hazard.Interval())
}

// Over reports whether the run has ended and the world waits for a reset.
func (w *World) Over() bool { return w.state == Dead }

// Stats returns the session counters.
func (w *World) Stats() Stats { return w.stats }

// Apply queues a player input for the next tick. Movement and jumps are
// ignored once the actor is dead; a reset is only accepted while dead.
func (w *World) Apply(a core.Action) {
	if w.state == Dead {
		if a == core.ActionReset {
			w.resetQueued = true
		}
		return
	}
	switch a {
	case core.ActionMoveLeft:
		w.actor.Move = -1
	case core.ActionMoveRight:
		w.actor.Move = 1
	case core.ActionJump:
		w.actor.JumpQueued = true
	}
}

// Reset rebuilds the world: random sand layer, glass ledges, actor at the
// spawn point, timers reloaded. A zero seed selects the config seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.seed = effective
	w.rng.Seed(effective)

	p := w.cfg.Params
	w.grid.SetPolicy(p.Diagonal)
	w.grid.Clear()
	w.state = Running
	w.cause = CauseNone
	w.survived = 0
	w.resetQueued = false
	w.stats = Stats{}
	w.hazard = core.NewCountdown(p.HazardInterval)
	w.compaction = core.NewCountdown(p.CompactionInterval)

	w.sprinkleSand()
	w.placePlatforms()
	w.clearColumn(w.cfg.Width/2, w.sandTop())
	w.placeActor(w.cfg.Width/2, p.SpawnRow)
	w.rebuildDisplay()
}

// Step runs one tick: hazard timers, grid transport, actor physics and the
// terminal check. A dead world only reacts to a queued reset.
func (w *World) Step() {
	if w.state == Dead {
		if w.resetQueued {
			w.Reset(w.rng.Int64())
		}
		return
	}
	w.survived++

	w.maybeSpawnLava()
	w.maybeClearSand()

	x, y := w.ActorCell()
	scorched := w.grid.NeighborIs(x, y, Lava)

	st := w.grid.Step()
	w.stats.Vitrified += st.Vitrified
	w.stats.Quenched += st.Quenched

	w.integrateActor(scorched)
	w.rebuildDisplay()
}

// ApplyParams swaps in new tunables. Timers keep their elapsed ticks;
// terrain settings take effect on the next reset.
func (w *World) ApplyParams(p Params) error {
	cfg := w.cfg
	cfg.Params = p
	if err := cfg.Validate(); err != nil {
		return err
	}
	w.cfg = cfg
	w.hazard.SetInterval(p.HazardInterval)
	w.compaction.SetInterval(p.CompactionInterval)
	w.grid.SetPolicy(p.Diagonal)
	return nil
}

// Status reports HUD lines for front-ends.
func (w *World) Status() []core.StatusLine {
	state := w.state.String()
	if w.state == Dead {
		state = fmt.Sprintf("dead (%s), R to restart", w.cause)
	}
	storm := "off"
	if n := w.HazardIn(); n >= 0 {
		storm = fmt.Sprintf("%.1fs", float64(n)/float64(w.cfg.TPS))
	}
	return []core.StatusLine{
		{Label: "Time", Value: fmt.Sprintf("%.1fs", w.SurvivalTime().Seconds())},
		{Label: "State", Value: state},
		{Label: "Storm", Value: storm},
		{Label: "Glass", Value: fmt.Sprintf("%d", w.stats.Vitrified)},
		{Label: "Seed", Value: fmt.Sprintf("%d", w.seed)},
	}
}

// maybeSpawnLava drops a ragged lava front along the top row whenever the
// hazard timer fires. Only empty cells are filled.
func (w *World) maybeSpawnLava() {
	if !w.hazard.Tick() {
		return
	}
	chance := w.cfg.Params.HazardChance
	for x := 0; x < w.grid.Width(); x++ {
		if !w.rng.Chance(chance) {
			continue
		}
		if w.grid.At(x, 0) != Empty {
			continue
		}
		w.grid.Set(x, 0, Lava)
		w.stats.LavaSpawned++
	}
}

// maybeClearSand erodes every loose sand cell when the compaction timer
// fires. Glass, lava and the actor stay.
func (w *World) maybeClearSand() {
	if !w.compaction.Tick() {
		return
	}
	cells := w.grid.cur.Cells()
	for i, m := range cells {
		if m == Sand {
			cells[i] = Empty
			w.stats.SandCleared++
		}
	}
}

func (w *World) die(cause DeathCause) {
	if w.state == Dead {
		return
	}
	w.state = Dead
	w.cause = cause
}

// sandTop is the first row of the initial sand layer. It always lies below
// the spawn row.
func (w *World) sandTop() int {
	p := w.cfg.Params
	top := w.grid.Height() - p.SandLayerRows
	if top <= p.SpawnRow {
		top = p.SpawnRow + 1
	}
	return top
}

func (w *World) sprinkleSand() {
	p := w.cfg.Params
	h := w.grid.Height()
	for y := w.sandTop(); y < h; y++ {
		for x := 0; x < w.grid.Width(); x++ {
			if w.rng.Chance(p.SandFillChance) {
				w.grid.Set(x, y, Sand)
			}
		}
	}
}

func (w *World) placePlatforms() {
	p := w.cfg.Params
	width := w.grid.Width()
	lo := p.SpawnRow + 3
	hi := w.grid.Height() - p.SandLayerRows - 2
	if hi < lo || p.PlatformMaxLen <= 0 {
		return
	}
	for i := 0; i < p.PlatformCount; i++ {
		length := p.PlatformMinLen + w.rng.IntN(p.PlatformMaxLen-p.PlatformMinLen+1)
		if length > width {
			length = width
		}
		if length <= 0 {
			continue
		}
		y := lo + w.rng.IntN(hi-lo+1)
		x0 := w.rng.IntN(width - length + 1)
		for x := x0; x < x0+length; x++ {
			w.grid.Set(x, y, Glass)
		}
	}
}

// clearColumn empties column x from the top row down to, but excluding, row
// end, so the actor never spawns under a ledge.
func (w *World) clearColumn(x, end int) {
	for y := 0; y < end && y < w.grid.Height(); y++ {
		w.grid.Set(x, y, Empty)
	}
}

// placeActor puts the actor at rest on (x, y) and clears its neighbourhood.
func (w *World) placeActor(x, y int) {
	if ox, oy := w.ActorCell(); w.grid.InBounds(ox, oy) && w.grid.At(ox, oy) == Actor {
		w.grid.Set(ox, oy, Empty)
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if w.grid.InBounds(x+dx, y+dy) {
				w.grid.Set(x+dx, y+dy, Empty)
			}
		}
	}
	w.actor = Player{X: x, Y: float64(y)}
	w.grid.Set(x, y, Actor)
}

func (w *World) rebuildDisplay() {
	for i, m := range w.grid.Cells() {
		w.display[i] = uint8(m)
	}
}

func init() {
	core.Register("sandfall", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
