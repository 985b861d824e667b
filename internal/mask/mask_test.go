package mask

import (
	"testing"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/rng"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := genconfig.DefaultMaskConfig()
	root := rng.NewRootStream(12345)
	a := Generate(128, 96, root.MustFork("mask"), cfg)

	root2 := rng.NewRootStream(12345)
	b := Generate(128, 96, root2.MustFork("mask"), cfg)

	if a.LandFraction != b.LandFraction {
		t.Fatalf("land fraction not deterministic: %v vs %v", a.LandFraction, b.LandFraction)
	}
	for i := range a.Land.Data {
		if a.Land.Data[i] != b.Land.Data[i] {
			t.Fatalf("land mask differs at index %d across identical runs", i)
		}
	}
}

func TestGenerateHasDominantLandmass(t *testing.T) {
	cfg := genconfig.DefaultMaskConfig()
	root := rng.NewRootStream(999)
	result := Generate(256, 128, root.MustFork("mask"), cfg)

	if result.TotalLandPixels == 0 {
		t.Fatalf("expected some land pixels")
	}
	// Relaxation rounds are bounded, so the ratio is not guaranteed to clear
	// the target on every seed; it should still land close.
	if result.LargestLandRatio < cfg.DominantLandRatio-0.1 {
		t.Fatalf("largest landmass ratio %v far below configured target %v after relaxation rounds", result.LargestLandRatio, cfg.DominantLandRatio)
	}
}

func TestGenerateLandFractionWithinConfiguredBounds(t *testing.T) {
	cfg := genconfig.DefaultMaskConfig()
	root := rng.NewRootStream(42)
	result := Generate(192, 128, root.MustFork("mask"), cfg)

	if result.LandFraction < cfg.MinLandFraction || result.LandFraction > cfg.MaxLandFraction {
		t.Fatalf("land fraction %v outside configured [%v, %v]", result.LandFraction, cfg.MinLandFraction, cfg.MaxLandFraction)
	}
}
