//go:build ebiten

package app

import (
	"sandfall/internal/core"
	"sandfall/internal/render"
	"sandfall/internal/tuning"
	"sandfall/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// deadDim darkens the frozen world after a death.
const deadDim = 0.55

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	palette render.Palette
	hud     *ui.HUD
	overlay *ui.Overlay
	tuning  *tuning.Watcher

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation. watcher may be nil.
func New(sim core.Sim, cfg *Config, watcher *tuning.Watcher) *Game {
	size := sim.Size()
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		palette:  render.PaletteFor(sim),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		overlay:  ui.NewOverlay(sim, scale),
		tuning:   watcher,
		scale:    scale,
		hudWidth: cfg.HUDWidth,
		seed:     cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}

	if g.tuning != nil && !PollTuning(g.sim, g.tuning) {
		g.tuning = nil
	}

	g.handlePlayer()
	g.overlay.Update()
	g.hud.Update(g.worldWidth())

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handlePlayer() {
	ctl, ok := g.sim.(core.Controllable)
	if !ok {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.Reset(g.seed)
		}
		return
	}
	left := max(inpututil.KeyPressDuration(ebiten.KeyArrowLeft), inpututil.KeyPressDuration(ebiten.KeyA))
	right := max(inpututil.KeyPressDuration(ebiten.KeyArrowRight), inpututil.KeyPressDuration(ebiten.KeyD))
	switch {
	case left > 0 && (right == 0 || left < right):
		if repeatFires(left) {
			ctl.Apply(core.ActionMoveLeft)
			g.overlay.HideHelp()
		}
	case right > 0:
		if repeatFires(right) {
			ctl.Apply(core.ActionMoveRight)
			g.overlay.HideHelp()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		ctl.Apply(core.ActionJump)
		g.overlay.HideHelp()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		ctl.Apply(core.ActionReset)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	dim := 1.0
	if over, ok := g.sim.(interface{ Over() bool }); ok && over.Over() {
		dim = deadDim
	}
	g.painter.Blit(screen, g.sim.Cells(), g.palette, dim, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.worldWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return g.worldWidth() + g.hudWidth, s.H * g.scale
}

func (g *Game) worldWidth() int { return g.sim.Size().W * g.scale }
