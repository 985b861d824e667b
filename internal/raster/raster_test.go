package raster

import "testing"

func TestGrid32IndexRoundTrip(t *testing.T) {
	g := NewGrid32(7, 5)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			idx := g.Index(x, y)
			gotX, gotY := g.XY(idx)
			if gotX != x || gotY != y {
				t.Fatalf("XY(Index(%d,%d)) = (%d,%d)", x, y, gotX, gotY)
			}
		}
	}
}

func TestGrid32ClampClips(t *testing.T) {
	g := NewGrid32(3, 1)
	g.Data = []float32{-5, 0.5, 5}
	g.Clamp(0, 1)
	want := []float32{0, 0.5, 1}
	for i, v := range want {
		if g.Data[i] != v {
			t.Fatalf("Clamp()[%d] = %v, want %v", i, g.Data[i], v)
		}
	}
}

func TestD8DestOutOfBounds(t *testing.T) {
	if _, _, ok := D8Dest(4, 4, 0, 0, 0); ok {
		t.Fatalf("expected out-of-bounds for direction {-1,0} at origin")
	}
	nx, ny, ok := D8Dest(4, 4, 1, 1, 0)
	if !ok || nx != 1 || ny != 0 {
		t.Fatalf("D8Dest(1,1,dir=0) = (%d,%d,%v), want (1,0,true)", nx, ny, ok)
	}
}

func TestConnectedComponentsSeparatesIslands(t *testing.T) {
	mask := NewGridBool(5, 1)
	mask.Data = []bool{true, true, false, true, true}
	labels, sizes := ConnectedComponents(mask)
	if len(sizes) != 2 {
		t.Fatalf("got %d components, want 2", len(sizes))
	}
	if labels.At(0, 0) != labels.At(1, 0) {
		t.Fatalf("cells 0 and 1 should share a label")
	}
	if labels.At(0, 0) == labels.At(3, 0) {
		t.Fatalf("cells 0 and 3 should not share a label")
	}
	if sizes[0] != 2 || sizes[1] != 2 {
		t.Fatalf("component sizes = %v, want [2 2]", sizes)
	}
}

func TestDistanceTransformZeroAtTrueCells(t *testing.T) {
	mask := NewGridBool(4, 4)
	mask.Set(0, 0, true)
	d := DistanceTransform(mask)
	if d.At(0, 0) != 0 {
		t.Fatalf("distance at seed cell = %v, want 0", d.At(0, 0))
	}
	if d.At(3, 3) <= d.At(1, 0) {
		t.Fatalf("distance should grow with Euclidean separation from the seed: got far=%v near=%v", d.At(3, 3), d.At(1, 0))
	}
}

func TestBoxBlurPreservesConstantField(t *testing.T) {
	g := NewGrid32(8, 8)
	g.Fill(3)
	blurred := BoxBlur(g, 2, 1)
	for i, v := range blurred.Data {
		if v < 2.999 || v > 3.001 {
			t.Fatalf("blurred[%d] = %v, want ~3 on a constant field", i, v)
		}
	}
}

func TestPercentileMonotonic(t *testing.T) {
	values := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	p10 := Percentile(values, 10)
	p90 := Percentile(values, 90)
	if p10 >= p90 {
		t.Fatalf("Percentile(10)=%v should be < Percentile(90)=%v", p10, p90)
	}
}
