//go:build ebiten

package ui

import (
	"image/color"

	"sandfall/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the storm countdown bar and the game over banner on top of
// the world.
type Overlay struct {
	sim      core.Sim
	scale    int
	showHelp bool

	pixel *ebiten.Image
}

var helpLines = []string{
	"left/right or A/D  move",
	"space/W/up         jump",
	"R                  restart after death",
	"P pause  N step  Q quit",
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, showHelp: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the key help with H.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHelp = !o.showHelp
	}
}

// HideHelp dismisses the key help.
func (o *Overlay) HideHelp() { o.showHelp = false }

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	width := size.W * scale
	height := size.H * scale
	if width <= 0 || height <= 0 {
		return
	}

	if bar := stormBarWidth(o.sim, width); bar > 0 {
		o.fillRect(screen, 0, 0, float64(bar), float64(scale), color.RGBA{R: 255, G: 120, B: 40, A: 200})
	}

	face := basicfont.Face7x13
	if o.showHelp && !runOver(o.sim) {
		y := 2*scale + 14
		for _, line := range helpLines {
			text.Draw(screen, line, face, 8, y, color.RGBA{R: 210, G: 210, B: 220, A: 220})
			y += 14
		}
	}

	if !runOver(o.sim) {
		return
	}
	o.fillRect(screen, 0, 0, float64(width), float64(height), color.RGBA{A: 110})
	lines := bannerLines(o.sim)
	y := height/2 - len(lines)*16/2
	for i, line := range lines {
		col := color.RGBA{R: 230, G: 230, B: 240, A: 255}
		if i == 0 {
			col = color.RGBA{R: 255, G: 110, B: 60, A: 255}
		}
		w := text.BoundString(face, line).Dx()
		text.Draw(screen, line, face, (width-w)/2, y, col)
		y += 16
	}
}

func (o *Overlay) fillRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if o.pixel == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
