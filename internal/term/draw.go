package term

import (
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/core"
	"sandfall/internal/render"
	"sandfall/internal/sims/sandfall"
)

// cellWidth is the number of terminal columns per grid cell; terminal cells
// are roughly twice as tall as they are wide.
const cellWidth = 2

// cellSetter is the part of tcell.Screen the renderer writes through.
type cellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var glyphs = map[sandfall.Material]rune{
	sandfall.Empty: ' ',
	sandfall.Sand:  '░',
	sandfall.Lava:  '~',
	sandfall.Glass: '▒',
	sandfall.Actor: '@',
}

// glyph returns the rune drawn for a display value.
func glyph(v uint8) rune {
	if r, ok := glyphs[sandfall.Material(v)]; ok {
		return r
	}
	return '?'
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func dimmed(c color.RGBA, dim float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * dim),
		G: uint8(float64(c.G) * dim),
		B: uint8(float64(c.B) * dim),
		A: c.A,
	}
}

// styleFor colours a cell: the palette colour as background, and a
// contrasting foreground for the glyph.
func styleFor(v uint8, palette render.Palette, dim float64) tcell.Style {
	bg := dimmed(palette.Color(v), dim)
	fg := dimmed(palette.Color(uint8(sandfall.Empty)), dim)
	if sandfall.Material(v) == sandfall.Empty {
		fg = bg
	}
	return tcell.StyleDefault.Background(tcellColor(bg)).Foreground(tcellColor(fg))
}

// drawWorld paints the grid with its top-left corner at (ox, oy).
func drawWorld(dst cellSetter, cells []uint8, size core.Size, palette render.Palette, dim float64, ox, oy int) {
	if len(cells) != size.W*size.H {
		return
	}
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			v := cells[y*size.W+x]
			style := styleFor(v, palette, dim)
			r := glyph(v)
			for dx := 0; dx < cellWidth; dx++ {
				dst.SetContent(ox+x*cellWidth+dx, oy+y, r, nil, style)
			}
		}
	}
}

// drawText writes s starting at (x, y), clipped to width columns.
func drawText(dst cellSetter, x, y, width int, s string, style tcell.Style) {
	col := 0
	for _, r := range s {
		if col >= width {
			return
		}
		dst.SetContent(x+col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		dst.SetContent(x+col, y, ' ', nil, style)
	}
}

// statusText joins the sim's status lines into a single row.
func statusText(sim core.Sim) string {
	provider, ok := sim.(core.StatusProvider)
	if !ok {
		return sim.Name()
	}
	parts := make([]string, 0, 4)
	for _, s := range provider.Status() {
		parts = append(parts, s.Label+" "+s.Value)
	}
	return strings.Join(parts, "  ")
}

// stormBar renders the hazard countdown as a row of block characters.
func stormBar(sim core.Sim, width int) string {
	clock, ok := sim.(interface{ StormProgress() float64 })
	if !ok || width <= 0 {
		return ""
	}
	p := clock.StormProgress()
	if p <= 0 {
		return ""
	}
	n := int(p * float64(width))
	if n > width {
		n = width
	}
	return strings.Repeat("▀", n)
}
