package sandfall

import "image/color"

var sandfallPalette = buildPalette()

// Palette exposes the colors used to render each material, indexed by the
// values in Cells.
func (w *World) Palette() []color.RGBA {
	return sandfallPalette
}

func buildPalette() []color.RGBA {
	palette := make([]color.RGBA, materialCount)
	for m := Material(0); m < materialCount; m++ {
		palette[m] = materialColor(m)
	}
	return palette
}

func materialColor(m Material) color.RGBA {
	switch m {
	case Sand:
		return color.RGBA{R: 214, G: 180, B: 120, A: 255}
	case Lava:
		return color.RGBA{R: 255, G: 90, B: 30, A: 255}
	case Glass:
		return color.RGBA{R: 150, G: 210, B: 225, A: 255}
	case Actor:
		return color.RGBA{R: 240, G: 240, B: 250, A: 255}
	default:
		return color.RGBA{R: 18, G: 16, B: 22, A: 255}
	}
}
