package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a cellular automaton must implement.
// Cells returns a read-only display buffer that stays valid until the next
// call to Step or Reset.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Action is a discrete player input delivered between ticks.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionMoveLeft:
		return "left"
	case ActionMoveRight:
		return "right"
	case ActionJump:
		return "jump"
	case ActionReset:
		return "reset"
	default:
		return "none"
	}
}

// Controllable is implemented by sims that accept player input. Actions are
// queued and consumed by the next Step.
type Controllable interface {
	Apply(a Action)
}

// StatusLine is a labelled value shown by front-ends next to the grid.
type StatusLine struct {
	Label string
	Value string
}

// StatusProvider exposes per-tick status text such as survival time.
type StatusProvider interface {
	Status() []StatusLine
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	f, ok := sims[name]
	return f, ok
}
