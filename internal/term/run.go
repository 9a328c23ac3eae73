package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/app"
	"sandfall/internal/core"
	"sandfall/internal/render"
	"sandfall/internal/tuning"
)

// DefaultFrame is the redraw period, about 60 frames per second.
const DefaultFrame = 16 * time.Millisecond

const deadDim = 0.5

// noticeFrames is how many redraws a tuning report replaces the help row.
const noticeFrames = 180

const helpText = "arrows/wasd move+jump  r restart  p pause  n step  q quit"

// Options tune the terminal loop.
type Options struct {
	TPS    int
	Frame  time.Duration
	Tuning *tuning.Watcher
}

// Runner drives one simulation on one screen. It is used from a single
// goroutine; Run feeds it events and ticks.
type Runner struct {
	screen  tcell.Screen
	sim     core.Sim
	palette render.Palette
	clock   *core.FixedStep
	tuning  *tuning.Watcher

	paused   bool
	tickOnce bool

	notice     string
	noticeLeft int
}

// NewRunner prepares a runner. The screen must already be initialised.
func NewRunner(screen tcell.Screen, sim core.Sim, opts Options) *Runner {
	return &Runner{
		screen:  screen,
		sim:     sim,
		palette: render.PaletteFor(sim),
		clock:   core.NewFixedStep(opts.TPS),
		tuning:  opts.Tuning,
	}
}

// Run redraws and advances the simulation until the player quits or ctx is
// cancelled. Quitting returns nil.
func Run(ctx context.Context, screen tcell.Screen, sim core.Sim, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frame := opts.Frame
	if frame <= 0 {
		frame = DefaultFrame
	}
	r := NewRunner(screen, sim, opts)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	r.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !r.Handle(ev) {
				return nil
			}
		case <-ticker.C:
			r.Advance()
			r.Draw()
		}
	}
}

// Handle applies one terminal event and reports whether the loop should
// keep running.
func (r *Runner) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action, cmd := MapKey(ev)
		switch cmd {
		case CommandQuit:
			return false
		case CommandPause:
			r.paused = !r.paused
		case CommandStep:
			r.tickOnce = true
		}
		if action == core.ActionNone {
			return true
		}
		if ctl, ok := r.sim.(core.Controllable); ok {
			ctl.Apply(action)
		} else if action == core.ActionReset {
			r.sim.Reset(0)
		}
	case *tcell.EventResize:
		r.screen.Sync()
	}
	return true
}

// Paused reports whether automatic stepping is suspended.
func (r *Runner) Paused() bool { return r.paused }

// Advance runs the ticks owed since the last call.
func (r *Runner) Advance() {
	if r.tuning != nil {
		msg, open := app.CheckTuning(r.sim, r.tuning)
		if msg != "" {
			r.notice, r.noticeLeft = msg, noticeFrames
		}
		if !open {
			r.tuning = nil
		}
	}
	if r.paused {
		r.clock.Discard()
		if r.tickOnce {
			r.sim.Step()
			r.tickOnce = false
		}
		return
	}
	for r.clock.ShouldStep() {
		r.sim.Step()
	}
	r.tickOnce = false
}

// Notice returns the tuning report currently shown, if any.
func (r *Runner) Notice() string {
	if r.noticeLeft <= 0 {
		return ""
	}
	return r.notice
}

// Draw paints the storm bar, the world and the status rows.
func (r *Runner) Draw() {
	r.screen.Clear()
	size := r.sim.Size()
	width := size.W * cellWidth

	dim := 1.0
	if over, ok := r.sim.(interface{ Over() bool }); ok && over.Over() {
		dim = deadDim
	}

	barStyle := tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	drawText(r.screen, 0, 0, width, stormBar(r.sim, width), barStyle)
	drawWorld(r.screen, r.sim.Cells(), size, r.palette, dim, 0, 1)

	status := statusText(r.sim)
	if r.paused {
		status = "PAUSED  " + status
	}
	drawText(r.screen, 0, size.H+1, width, status, tcell.StyleDefault.Bold(true))
	if notice := r.Notice(); notice != "" {
		drawText(r.screen, 0, size.H+2, width, notice, tcell.StyleDefault.Foreground(tcell.ColorYellow))
		r.noticeLeft--
	} else {
		drawText(r.screen, 0, size.H+2, width, helpText, tcell.StyleDefault.Dim(true))
	}
	r.screen.Show()
}
