package render

import (
	"image/color"

	"sandfall/internal/core"
)

// Palette maps display cell values to colours. Values past the last entry
// reuse the last colour.
type Palette []color.RGBA

type paletteProvider interface {
	Palette() []color.RGBA
}

var fallbackPalette = Palette{
	{R: 0, G: 0, B: 0, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}

// PaletteFor returns the sim's own palette, or black and white when it has
// none.
func PaletteFor(sim core.Sim) Palette {
	if provider, ok := sim.(paletteProvider); ok {
		if p := provider.Palette(); len(p) > 0 {
			return Palette(p)
		}
	}
	return fallbackPalette
}

// Color returns the colour for a display value.
func (p Palette) Color(v uint8) color.RGBA {
	if len(p) == 0 {
		return color.RGBA{}
	}
	idx := int(v)
	if idx >= len(p) {
		idx = len(p) - 1
	}
	return p[idx]
}

// Fill converts cell values into RGBA pixels in buf. dim scales the colour
// channels and is clamped to [0,1]; alpha is left untouched. An empty palette
// clears the buffer to transparent black.
func (p Palette) Fill(buf []byte, cells []uint8, dim float64) {
	if len(buf) < 4*len(cells) {
		panic("render: pixel buffer shorter than cell data")
	}
	if dim < 0 {
		dim = 0
	}
	if dim > 1 {
		dim = 1
	}
	for i, c := range cells {
		base := i * 4
		col := p.Color(c)
		buf[base+0] = scaleChannel(col.R, dim)
		buf[base+1] = scaleChannel(col.G, dim)
		buf[base+2] = scaleChannel(col.B, dim)
		buf[base+3] = col.A
	}
}

func scaleChannel(v uint8, factor float64) uint8 {
	if factor == 1 {
		return v
	}
	return uint8(float64(v)*factor + 0.5)
}
