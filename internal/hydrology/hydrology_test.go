package hydrology

import (
	"testing"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/raster"
	"github.com/dantero/continent-gen/internal/rng"
)

// testConfig scales the default droplet/capture constants down so the
// routing-surface conditioning stage stays fast on the small synthetic
// grids used here.
func testConfig() genconfig.HydrologyConfig {
	cfg := genconfig.DefaultHydrologyConfig()
	cfg.DropletCount = 200
	cfg.DropletSteps = 50
	cfg.MaxBasinPixels = 40
	cfg.MaxLinkLengthPx = 20
	return cfg
}

// slopedLandscape builds a w×h all-land tilted plane (no pits), draining
// toward x=0 so flow has a single consistent downhill direction.
func slopedLandscape(w, h int) (*raster.Grid32, *raster.GridBool) {
	height := raster.NewGrid32(w, h)
	land := raster.NewGridBool(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			height.Set(x, y, float32(w-x)*10)
			land.Set(x, y, true)
		}
	}
	return height, land
}

func TestRunFlowAccumulationPositiveOnLand(t *testing.T) {
	height, land := slopedLandscape(40, 24)
	root := rng.NewRootStream(1)
	result := Run(height, land, root.MustFork("hydrology"), testConfig())

	for i, isLand := range land.Data {
		if !isLand {
			continue
		}
		if result.FlowAccum.Data[i] < 1 {
			t.Fatalf("flow_accum[%d] = %v, want >= 1 on every land cell", i, result.FlowAccum.Data[i])
		}
	}
}

func TestRunDownhillAfterEnforcement(t *testing.T) {
	height, land := slopedLandscape(40, 24)
	root := rng.NewRootStream(2)
	result := Run(height, land, root.MustFork("hydrology"), testConfig())

	w, h := result.Height.W, result.Height.H
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !result.River.RiverMask.Data[idx] {
				continue
			}
			dir := result.FlowDir.Data[idx]
			if dir < 0 {
				continue
			}
			nx, ny, ok := raster.D8Dest(w, h, x, y, int(dir))
			if !ok {
				continue
			}
			if result.Height.At(nx, ny) > result.Height.At(x, y)+1e-3 {
				t.Fatalf("river cell (%d,%d) drains uphill to (%d,%d): %v -> %v",
					x, y, nx, ny, result.Height.At(x, y), result.Height.At(nx, ny))
			}
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	height, land := slopedLandscape(32, 20)
	cfg := testConfig()

	root1 := rng.NewRootStream(777)
	a := Run(height.Clone(), land, root1.MustFork("hydrology"), cfg)

	root2 := rng.NewRootStream(777)
	b := Run(height.Clone(), land, root2.MustFork("hydrology"), cfg)

	for i := range a.FlowAccum.Data {
		if a.FlowAccum.Data[i] != b.FlowAccum.Data[i] {
			t.Fatalf("flow_accum not deterministic at %d: %v vs %v", i, a.FlowAccum.Data[i], b.FlowAccum.Data[i])
		}
	}
}

func TestMergeOceanOutletsCompactsIDs(t *testing.T) {
	land := raster.NewGridBool(10, 10)
	for i := range land.Data {
		land.Data[i] = true
	}
	oceanOutlet := raster.NewGridI32(10, 10, -1)
	basinID := raster.NewGridI32(10, 10, 1)
	for i := range oceanOutlet.Data {
		oceanOutlet.Data[i] = int32(i)
	}
	cfg := testConfig()
	merged, _, rawCount, mergedCount := mergeOceanOutlets(10, 10, oceanOutlet, basinID, land, cfg)
	if mergedCount > rawCount {
		t.Fatalf("merged outlet count %d exceeds raw count %d", mergedCount, rawCount)
	}
	for _, v := range merged.Data {
		if v < 1 || int(v) > mergedCount {
			t.Fatalf("merged basin id %d out of range [1,%d]", v, mergedCount)
		}
	}
}
