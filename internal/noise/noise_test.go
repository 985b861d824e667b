package noise

import (
	"testing"

	"github.com/dantero/continent-gen/internal/rng"
)

func TestValueNoise2DDeterministic(t *testing.T) {
	a := ValueNoise2D(16, 16, 4, 4, rng.NewPCG64(1, 1))
	b := ValueNoise2D(16, 16, 4, 4, rng.NewPCG64(1, 1))
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatalf("ValueNoise2D not deterministic at %d: %v vs %v", i, a.Data[i], b.Data[i])
		}
	}
}

func TestValueNoise2DDiffersWithSeed(t *testing.T) {
	a := ValueNoise2D(16, 16, 4, 4, rng.NewPCG64(1, 1))
	b := ValueNoise2D(16, 16, 4, 4, rng.NewPCG64(2, 1))
	same := true
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("ValueNoise2D produced identical fields for different seeds")
	}
}

func TestFBmBounded(t *testing.T) {
	field := FBm(32, 32, 4, 5, rng.NewPCG64(7, 1))
	for i, v := range field.Data {
		if v < -2 || v > 2 {
			t.Fatalf("FBm()[%d] = %v, outside expected fBm range", i, v)
		}
	}
}

func TestBilinearSampleMatchesLatticeCorners(t *testing.T) {
	field := ValueNoise2D(8, 8, 2, 2, rng.NewPCG64(3, 1))
	// The last row/column are intentionally excluded: BilinearSample clamps
	// its input to [0, W-1.001] x [0, H-1.001], so exact corner values there
	// are not reproduced bit-for-bit.
	for y := 0; y < field.H-1; y++ {
		for x := 0; x < field.W-1; x++ {
			got := BilinearSample(field, float32(x), float32(y))
			want := field.At(x, y)
			diff := got - want
			if diff < -1e-4 || diff > 1e-4 {
				t.Fatalf("BilinearSample(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}
