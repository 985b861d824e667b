package raster

import (
	"testing"

	"pgregory.net/rapid"
)

// D8Dest must always land adjacent to (x,y) by exactly the offset named in
// D8, and must report out-of-bounds rather than wrapping or clamping, for
// any grid size and origin.
func TestD8DestProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(1, 64).Draw(rt, "w")
		h := rapid.IntRange(1, 64).Draw(rt, "h")
		x := rapid.IntRange(0, w-1).Draw(rt, "x")
		y := rapid.IntRange(0, h-1).Draw(rt, "y")
		dir := rapid.IntRange(0, 7).Draw(rt, "dir")

		nx, ny, ok := D8Dest(w, h, x, y, dir)
		off := D8[dir]
		wantX, wantY := x+off[1], y+off[0]

		if !ok {
			if wantX >= 0 && wantX < w && wantY >= 0 && wantY < h {
				rt.Fatalf("D8Dest reported out-of-bounds for in-bounds target (%d,%d) in %dx%d grid", wantX, wantY, w, h)
			}
			return
		}
		if nx != wantX || ny != wantY {
			rt.Fatalf("D8Dest(%d,%d,dir=%d) = (%d,%d), want (%d,%d)", x, y, dir, nx, ny, wantX, wantY)
		}
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			rt.Fatalf("D8Dest returned out-of-bounds cell (%d,%d) for %dx%d grid", nx, ny, w, h)
		}
	})
}
