//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"sandfall/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the status and parameter panel to the right of the world.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int

	title    string
	status   []string
	controls []controlState
	rects    []buttonRects

	panelOffsetX int
	pixel        *ebiten.Image
}

type buttonRects struct {
	top   int
	minus image.Rectangle
	plus  image.Rectangle
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: buildTitle(sim)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.controls = newControlStates(sim)
	h.layoutControls()
	return h
}

// Update refreshes the cached status and parameters and handles clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.status = statusLines(h.sim)
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		snapshot := provider.Parameters()
		for i := range h.controls {
			h.controls[i].refresh(snapshot)
		}
	}
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the world view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawStatus()
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	pt := image.Pt(mx-h.panelOffsetX, my)
	for i := range h.controls {
		switch {
		case pt.In(h.rects[i].minus):
			h.controls[i].adjust(h.sim, -1)
			return
		case pt.In(h.rects[i].plus):
			h.controls[i].adjust(h.sim, 1)
			return
		}
	}
}

func (h *HUD) drawStatus() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for _, line := range h.status {
		y += statusSpacing
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 235, G: 200, B: 150, A: 255})
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, h.controlsTop()+labelBaseline, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		rects := h.rects[i]
		labelY := rects.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})

		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		valueWidth := text.BoundString(face, state.value).Dx()
		text.Draw(h.panel, state.value, face, rects.minus.Min.X-buttonGap-valueWidth, labelY, valueColor)

		if state.control.Type == core.ParamTypeBool {
			h.drawButton(rects.plus, "~", state.hasValue)
			continue
		}
		_, minusOK := h.preview(state, -1)
		_, plusOK := h.preview(state, 1)
		h.drawButton(rects.minus, "-", state.hasValue && minusOK)
		h.drawButton(rects.plus, "+", state.hasValue && plusOK)
	}
}

// preview reports whether a step in direction would change the value.
func (h *HUD) preview(state *controlState, direction int) (float64, bool) {
	switch state.control.Type {
	case core.ParamTypeInt:
		v, ok := nextInt(state.control, state.intValue, direction)
		return float64(v), ok
	case core.ParamTypeFloat:
		return nextFloat(state.control, state.floatValue, direction)
	}
	return 0, false
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

// controlsTop leaves room for the title and one line per status entry. The
// status list is sized from the sim once so buttons never move.
func (h *HUD) controlsTop() int {
	return panelPadding + headerBaseline + statusSpacing*(len(statusLines(h.sim))+1)
}

func (h *HUD) layoutControls() {
	h.rects = make([]buttonRects, len(h.controls))
	if h.width <= 0 {
		return
	}
	top0 := h.controlsTop()
	for i := range h.controls {
		top := top0 + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		if h.controls[i].control.Type == core.ParamTypeBool {
			minus = image.Rect(plus.Min.X, buttonY, plus.Min.X, buttonY+buttonSize)
		}
		h.rects[i] = buttonRects{top: top, minus: minus, plus: plus}
	}
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	statusSpacing  = 16
)
