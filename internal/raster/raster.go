// Package raster provides a thin 2D array abstraction over flat row-major
// buffers, per the design note that hot inner loops should use explicit
// index math rather than whole-array expressions. No pack example carries a
// general ndarray type, so this is a from-scratch minimal abstraction
// (see DESIGN.md).
package raster

// Grid32 is a row-major H×W float32 raster.
type Grid32 struct {
	W, H int
	Data []float32
}

// NewGrid32 allocates a zeroed W×H grid.
func NewGrid32(w, h int) *Grid32 {
	return &Grid32{W: w, H: h, Data: make([]float32, w*h)}
}

// At returns the value at (x, y).
func (g *Grid32) At(x, y int) float32 { return g.Data[y*g.W+x] }

// Set stores a value at (x, y).
func (g *Grid32) Set(x, y int, v float32) { g.Data[y*g.W+x] = v }

// Index converts (x, y) to a flat row-major index.
func (g *Grid32) Index(x, y int) int { return y*g.W + x }

// XY converts a flat row-major index back to (x, y).
func (g *Grid32) XY(idx int) (x, y int) { return idx % g.W, idx / g.W }

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid32) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Clone returns a deep copy.
func (g *Grid32) Clone() *Grid32 {
	out := NewGrid32(g.W, g.H)
	copy(out.Data, g.Data)
	return out
}

// Fill sets every cell to v.
func (g *Grid32) Fill(v float32) {
	for i := range g.Data {
		g.Data[i] = v
	}
}

// Apply maps f over every cell in place.
func (g *Grid32) Apply(f func(v float32) float32) {
	for i, v := range g.Data {
		g.Data[i] = f(v)
	}
}

// Clamp clips every cell to [lo, hi] in place.
func (g *Grid32) Clamp(lo, hi float32) {
	g.Apply(func(v float32) float32 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	})
}

// GridI32 is a row-major H×W int32 raster.
type GridI32 struct {
	W, H int
	Data []int32
}

// NewGridI32 allocates a grid filled with fill.
func NewGridI32(w, h int, fill int32) *GridI32 {
	g := &GridI32{W: w, H: h, Data: make([]int32, w*h)}
	if fill != 0 {
		for i := range g.Data {
			g.Data[i] = fill
		}
	}
	return g
}

func (g *GridI32) At(x, y int) int32     { return g.Data[y*g.W+x] }
func (g *GridI32) Set(x, y int, v int32) { g.Data[y*g.W+x] = v }
func (g *GridI32) Index(x, y int) int    { return y*g.W + x }

// GridI8 is a row-major H×W int8 raster (used for flow_dir and boundary_type).
type GridI8 struct {
	W, H int
	Data []int8
}

// NewGridI8 allocates a grid filled with fill.
func NewGridI8(w, h int, fill int8) *GridI8 {
	g := &GridI8{W: w, H: h, Data: make([]int8, w*h)}
	if fill != 0 {
		for i := range g.Data {
			g.Data[i] = fill
		}
	}
	return g
}

func (g *GridI8) At(x, y int) int8     { return g.Data[y*g.W+x] }
func (g *GridI8) Set(x, y int, v int8) { g.Data[y*g.W+x] = v }

// GridBool is a row-major H×W boolean raster.
type GridBool struct {
	W, H int
	Data []bool
}

// NewGridBool allocates a zeroed (all-false) grid.
func NewGridBool(w, h int) *GridBool {
	return &GridBool{W: w, H: h, Data: make([]bool, w*h)}
}

func (g *GridBool) At(x, y int) bool     { return g.Data[y*g.W+x] }
func (g *GridBool) Set(x, y int, v bool) { g.Data[y*g.W+x] = v }

// CountTrue returns the number of true cells.
func (g *GridBool) CountTrue() int {
	n := 0
	for _, v := range g.Data {
		if v {
			n++
		}
	}
	return n
}
