package raster

// D8 is the canonical 8-neighbor direction order, each entry {dy, dx}. Its
// index ordering is part of the external contract: flow_dir and
// boundary-classification priority both encode these indices directly, so
// this slice must never be reordered.
var D8 = [8][2]int{
	{-1, 0}, {1, 0}, {0, 1}, {0, -1},
	{-1, 1}, {-1, -1}, {1, 1}, {1, -1},
}

// D8Dest returns the destination cell reached from (x, y) by direction
// index dir, and whether that destination lies in bounds.
func D8Dest(w, h, x, y, dir int) (nx, ny int, ok bool) {
	off := D8[dir]
	nx, ny = x+off[1], y+off[0]
	if nx < 0 || nx >= w || ny < 0 || ny >= h {
		return 0, 0, false
	}
	return nx, ny, true
}
