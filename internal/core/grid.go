package core

import "fmt"

// Grid stores a bounded 2D grid of byte-sized cell values in row-major order.
// Row 0 is the top of the grid. Coordinates outside [0,W)x[0,H) are
// programmer errors and panic.
type Grid[T ~uint8] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T ~uint8](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice.
func (g *Grid[T]) Cells() []T { return g.data }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("core: cell (%d,%d) outside %dx%d grid", x, y, g.W, g.H))
	}
	return y*g.W + x
}

// At returns the value stored at (x, y).
func (g *Grid[T]) At(x, y int) T { return g.data[g.Index(x, y)] }

// Set stores v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) { g.data[g.Index(x, y)] = v }

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// CopyFrom overwrites g with the contents of src. Both grids must share
// dimensions.
func (g *Grid[T]) CopyFrom(src *Grid[T]) {
	if src.W != g.W || src.H != g.H {
		panic(fmt.Sprintf("core: copy %dx%d grid into %dx%d grid", src.W, src.H, g.W, g.H))
	}
	copy(g.data, src.data)
}
