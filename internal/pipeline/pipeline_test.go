package pipeline

import (
	"testing"

	"github.com/dantero/continent-gen/internal/genconfig"
)

// smallConfig scales the default config's heaviest constants down so
// Generate finishes quickly on the tiny grids used in these tests.
func smallConfig(width, height int, seed string) genconfig.Config {
	cfg := genconfig.Default(width, height, 1000, seed)
	cfg.Hydrology.DropletCount = 500
	cfg.Hydrology.DropletSteps = 100
	cfg.Hydrology.MaxBasinPixels = 200
	cfg.Hydrology.MaxLinkLengthPx = 40
	return cfg
}

func TestGenerateEndToEndSmallGrid(t *testing.T) {
	cfg := smallConfig(96, 64, "QuietHarbor")
	result, err := Generate("QuietHarbor", 96, 64, 1000, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Seed.Canonical != "quietharbor" {
		t.Fatalf("canonical seed = %q, want %q", result.Seed.Canonical, "quietharbor")
	}
	if result.Mask.TotalLandPixels == 0 {
		t.Fatalf("expected nonzero land pixels")
	}
	if result.Height.Height.W != 96 || result.Height.Height.H != 64 {
		t.Fatalf("height grid dims = %dx%d, want 96x64", result.Height.Height.W, result.Height.Height.H)
	}
}

func TestGenerateDeterministicAcrossRuns(t *testing.T) {
	cfg := smallConfig(64, 48, "MistyForge")
	a, err := Generate("MistyForge", 64, 48, 1000, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate("MistyForge", 64, 48, 1000, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := range a.Geomorph.Height.Data {
		if a.Geomorph.Height.Data[i] != b.Geomorph.Height.Data[i] {
			t.Fatalf("final height not deterministic at %d: %v vs %v", i, a.Geomorph.Height.Data[i], b.Geomorph.Height.Data[i])
		}
	}
}

func TestGenerateRejectsNonPositiveDimensions(t *testing.T) {
	cfg := smallConfig(0, 0, "MistyForge")
	_, err := Generate("MistyForge", 0, 64, 1000, cfg)
	if err == nil {
		t.Fatalf("expected error for zero width")
	}
	if _, ok := err.(*UserError); !ok {
		t.Fatalf("expected *UserError, got %T", err)
	}
}

func TestGenerateRejectsInvalidSeed(t *testing.T) {
	cfg := smallConfig(64, 64, "")
	_, err := Generate("not a valid seed!!", 64, 64, 1000, cfg)
	if err == nil {
		t.Fatalf("expected error for invalid seed text")
	}
	if _, ok := err.(*UserError); !ok {
		t.Fatalf("expected *UserError, got %T", err)
	}
}
