package core

import (
	"slices"
	"testing"
)

type cell uint8

func TestGridSetAtRowMajor(t *testing.T) {
	g := NewGrid[cell](4, 3)
	g.Set(3, 2, 7)
	g.Set(0, 1, 2)

	if got := g.At(3, 2); got != 7 {
		t.Fatalf("At(3,2) = %d, want 7", got)
	}
	if got := g.Cells()[g.W*2+3]; got != 7 {
		t.Fatalf("backing slice not row-major, got %d", got)
	}
	if got := g.Index(0, 1); got != 4 {
		t.Fatalf("Index(0,1) = %d, want 4", got)
	}
}

func TestGridClampsDimensions(t *testing.T) {
	g := NewGrid[cell](0, -3)
	if g.W != 1 || g.H != 1 || len(g.Cells()) != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d (%d cells)", g.W, g.H, len(g.Cells()))
	}
}

func TestGridOutOfBoundsPanics(t *testing.T) {
	g := NewGrid[cell](3, 3)
	coords := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}}
	for _, c := range coords {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for (%d,%d)", c[0], c[1])
				}
			}()
			g.At(c[0], c[1])
		}()
	}
	if g.InBounds(3, 0) || !g.InBounds(2, 2) {
		t.Fatal("InBounds disagrees with grid dimensions")
	}
}

func TestGridCopyFromAndFill(t *testing.T) {
	src := NewGrid[cell](2, 2)
	src.Fill(3)
	dst := NewGrid[cell](2, 2)
	dst.CopyFrom(src)
	if !slices.Equal(src.Cells(), dst.Cells()) {
		t.Fatalf("CopyFrom mismatch: %v vs %v", src.Cells(), dst.Cells())
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic copying mismatched grids")
		}
	}()
	NewGrid[cell](3, 2).CopyFrom(src)
}
