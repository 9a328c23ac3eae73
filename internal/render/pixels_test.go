package render

import (
	"image/color"
	"slices"
	"testing"

	"sandfall/internal/core"
	"sandfall/internal/sims/sandfall"
)

func TestPaletteFill(t *testing.T) {
	p := Palette{
		{R: 10, G: 20, B: 30, A: 255},
		{R: 200, G: 100, B: 50, A: 128},
	}
	buf := make([]byte, 12)
	p.Fill(buf, []uint8{0, 1, 7}, 1)

	want := []byte{10, 20, 30, 255, 200, 100, 50, 128, 200, 100, 50, 128}
	if !slices.Equal(buf, want) {
		t.Fatalf("pixels = %v, want %v", buf, want)
	}
}

func TestPaletteFillDimmed(t *testing.T) {
	p := Palette{{R: 200, G: 100, B: 50, A: 255}}
	buf := make([]byte, 4)
	p.Fill(buf, []uint8{0}, 0.5)
	if want := []byte{100, 50, 25, 255}; !slices.Equal(buf, want) {
		t.Fatalf("dimmed pixels = %v, want %v", buf, want)
	}
}

func TestEmptyPaletteClears(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	Palette(nil).Fill(buf, []uint8{3}, 1)
	if !slices.Equal(buf, []byte{0, 0, 0, 0}) {
		t.Fatalf("buffer not cleared: %v", buf)
	}
}

func TestFillPanicsOnShortBuffer(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Palette{{}}.Fill(make([]byte, 3), []uint8{0}, 1)
}

type plainSim struct{}

func (plainSim) Name() string    { return "plain" }
func (plainSim) Size() core.Size { return core.Size{W: 1, H: 1} }
func (plainSim) Reset(int64)     {}
func (plainSim) Step()           {}
func (plainSim) Cells() []uint8  { return []uint8{0} }

func TestPaletteFor(t *testing.T) {
	world := sandfall.New(8, 8)
	p := PaletteFor(world)
	if len(p) != len(world.Palette()) {
		t.Fatalf("palette has %d entries", len(p))
	}
	if p.Color(uint8(sandfall.Lava)) != world.Palette()[sandfall.Lava] {
		t.Fatal("lava colour mismatch")
	}

	fallback := PaletteFor(plainSim{})
	if fallback.Color(1) != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("fallback on colour = %v", fallback.Color(1))
	}
}
