package tectonics

import (
	"testing"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/raster"
	"github.com/dantero/continent-gen/internal/rng"
)

func halfLandMask(w, h int) *raster.GridBool {
	land := raster.NewGridBool(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			land.Set(x, y, x < w/2)
		}
	}
	return land
}

func TestGeneratePlateCountWithinConfiguredRange(t *testing.T) {
	cfg := genconfig.DefaultTectonicsConfig()
	land := halfLandMask(64, 48)
	root := rng.NewRootStream(11)
	result := Generate(64, 48, land, root.MustFork("tectonics"), cfg)

	if result.PlateCount < cfg.MinPlateCount || result.PlateCount > cfg.MaxPlateCount {
		t.Fatalf("plate count %d outside configured [%d, %d]", result.PlateCount, cfg.MinPlateCount, cfg.MaxPlateCount)
	}
	if len(result.PlateSites) != result.PlateCount {
		t.Fatalf("len(PlateSites) = %d, want %d", len(result.PlateSites), result.PlateCount)
	}
}

func TestGenerateEveryCellAssignedToAPlate(t *testing.T) {
	cfg := genconfig.DefaultTectonicsConfig()
	land := halfLandMask(48, 32)
	root := rng.NewRootStream(22)
	result := Generate(48, 32, land, root.MustFork("tectonics"), cfg)

	for i, id := range result.PlateIDs.Data {
		if id < 0 || int(id) >= result.PlateCount {
			t.Fatalf("cell %d has out-of-range plate id %d (plate count %d)", i, id, result.PlateCount)
		}
	}
}

func TestGenerateBoundaryTypeOnlyOnBoundaryCells(t *testing.T) {
	cfg := genconfig.DefaultTectonicsConfig()
	land := halfLandMask(48, 32)
	root := rng.NewRootStream(33)
	result := Generate(48, 32, land, root.MustFork("tectonics"), cfg)

	for i, isBoundary := range result.BoundaryMask.Data {
		bt := result.BoundaryType.Data[i]
		if !isBoundary && bt != BoundaryNone {
			t.Fatalf("cell %d is not a boundary but has boundary type %d", i, bt)
		}
		if isBoundary && bt == BoundaryNone {
			t.Fatalf("cell %d is a boundary but has BoundaryNone type", i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := genconfig.DefaultTectonicsConfig()
	land := halfLandMask(48, 32)

	root1 := rng.NewRootStream(555)
	a := Generate(48, 32, land, root1.MustFork("tectonics"), cfg)
	root2 := rng.NewRootStream(555)
	b := Generate(48, 32, land, root2.MustFork("tectonics"), cfg)

	if a.PlateCount != b.PlateCount {
		t.Fatalf("plate count not deterministic: %d vs %d", a.PlateCount, b.PlateCount)
	}
	for i := range a.PlateIDs.Data {
		if a.PlateIDs.Data[i] != b.PlateIDs.Data[i] {
			t.Fatalf("plate id not deterministic at %d: %d vs %d", i, a.PlateIDs.Data[i], b.PlateIDs.Data[i])
		}
	}
}
