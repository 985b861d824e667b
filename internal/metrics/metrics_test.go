package metrics

import (
	"testing"

	"github.com/dantero/continent-gen/internal/geomorph"
	"github.com/dantero/continent-gen/internal/hydrology"
	"github.com/dantero/continent-gen/internal/mask"
	"github.com/dantero/continent-gen/internal/raster"
	"github.com/dantero/continent-gen/internal/tectonics"
)

// fixture builds a small fully-land 4x4 grid with a single basin and a
// short river so Assemble exercises every non-lake metric branch.
func fixture() (mask.Result, tectonics.Result, hydrology.Result, geomorph.Result, *raster.GridBool) {
	w, h := 4, 4
	land := raster.NewGridBool(w, h)
	for i := range land.Data {
		land.Data[i] = true
	}

	height := raster.NewGrid32(w, h)
	flowAccum := raster.NewGrid32(w, h)
	flowDir := raster.NewGridI8(w, h, -1)
	basinID := raster.NewGridI32(w, h, 1)
	endorheic := raster.NewGridBool(w, h)
	river := raster.NewGridBool(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			height.Data[idx] = float32(w-x) * 5
			flowAccum.Data[idx] = float32(w - x)
			if x > 0 {
				flowDir.Data[idx] = 3
			}
			if x < 2 {
				river.Data[idx] = true
			}
		}
	}

	maskResult := mask.Result{
		Land:             land,
		Potential:        raster.NewGrid32(w, h),
		LandFraction:     1.0,
		LargestLandRatio: 1.0,
		NumComponents:    1,
		LargestComponent: w * h,
		TotalLandPixels:  w * h,
	}

	tec := tectonics.Result{PlateCount: 3, BoundaryPixels: 2, MeanLithosphereThicknessPx: 10}

	hydro := hydrology.Result{
		Height:            height,
		FlowDir:           flowDir,
		FlowAccum:         flowAccum,
		BasinID:           basinID,
		EndorheicMask:     endorheic,
		River:             hydrology.RiverResult{RiverMask: river, WidthPx: raster.NewGrid32(w, h), IncisionM: raster.NewGrid32(w, h)},
		RawOutletCount:    1,
		MergedOutletCount: 1,
	}

	geo := geomorph.Result{Height: height.Clone(), Depth: raster.NewGrid32(w, h), PowerScaleValue: 1}

	return maskResult, tec, hydro, geo, land
}

func TestAssembleCoreMetricsMatchMaskResult(t *testing.T) {
	maskResult, tec, hydro, geo, land := fixture()
	block := Assemble(maskResult, tec, hydro, geo, land, 1000)

	if block.Core.TotalLandPixels != maskResult.TotalLandPixels {
		t.Fatalf("TotalLandPixels = %d, want %d", block.Core.TotalLandPixels, maskResult.TotalLandPixels)
	}
	if block.Core.LandFraction != maskResult.LandFraction {
		t.Fatalf("LandFraction = %v, want %v", block.Core.LandFraction, maskResult.LandFraction)
	}
	if block.Tectonics.PlateCount != tec.PlateCount {
		t.Fatalf("PlateCount = %d, want %d", block.Tectonics.PlateCount, tec.PlateCount)
	}
}

func TestAssembleLakeMetricsAreZero(t *testing.T) {
	maskResult, tec, hydro, geo, land := fixture()
	block := Assemble(maskResult, tec, hydro, geo, land, 1000)

	if block.Hydrology.LakePixelCount != 0 || block.Hydrology.LakeAreaFraction != 0 ||
		block.Hydrology.MeanLakeArea != 0 || block.Hydrology.LargestLakeArea != 0 {
		t.Fatalf("expected lake metrics to be zero with no endorheic land cells, got %+v", block.Hydrology)
	}
}

func TestAssembleFlowPercentilesOrdered(t *testing.T) {
	maskResult, tec, hydro, geo, land := fixture()
	block := Assemble(maskResult, tec, hydro, geo, land, 1000)

	if block.Hydrology.FlowAccumP50 > block.Hydrology.FlowAccumP90 {
		t.Fatalf("p50 (%v) should not exceed p90 (%v)", block.Hydrology.FlowAccumP50, block.Hydrology.FlowAccumP90)
	}
	if block.Hydrology.FlowAccumP90 > block.Hydrology.FlowAccumP99 {
		t.Fatalf("p90 (%v) should not exceed p99 (%v)", block.Hydrology.FlowAccumP90, block.Hydrology.FlowAccumP99)
	}
}

func TestAssembleRiverPixelCountMatchesMask(t *testing.T) {
	maskResult, tec, hydro, geo, land := fixture()
	block := Assemble(maskResult, tec, hydro, geo, land, 1000)

	want := hydro.River.RiverMask.CountTrue()
	if block.Hydrology.RiverPixelCount != want {
		t.Fatalf("RiverPixelCount = %d, want %d", block.Hydrology.RiverPixelCount, want)
	}
}
