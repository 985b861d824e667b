package geomorph

import (
	"testing"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/hydrology"
	"github.com/dantero/continent-gen/internal/raster"
)

// syntheticHydro builds a tilted-plane height/flow field with flow
// accumulation increasing toward x=0, so incision should be heaviest there.
func syntheticHydro(w, h int) (hydrology.Result, *raster.GridBool) {
	height := raster.NewGrid32(w, h)
	flowDir := raster.NewGridI8(w, h, -1)
	flowAccum := raster.NewGrid32(w, h)
	land := raster.NewGridBool(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			height.Data[idx] = float32(w-x) * 10
			flowAccum.Data[idx] = float32(w - x)
			land.Data[idx] = true
			if x > 0 {
				flowDir.Data[idx] = 3 // {0,-1}: toward x-1
			}
		}
	}
	return hydrology.Result{Height: height, FlowDir: flowDir, FlowAccum: flowAccum}, land
}

func TestIncisionNeverRaisesTerrain(t *testing.T) {
	hydro, land := syntheticHydro(30, 20)
	cfg := genconfig.DefaultGeomorphConfig()
	result := Incise(hydro, land, 100, cfg)

	for i, isLand := range land.Data {
		if !isLand {
			continue
		}
		if result.Height.Data[i] > hydro.Height.Data[i]+1e-4 {
			t.Fatalf("incision raised terrain at %d: %v -> %v", i, hydro.Height.Data[i], result.Height.Data[i])
		}
	}
}

func TestIncisionRespectsMaxDepth(t *testing.T) {
	hydro, land := syntheticHydro(30, 20)
	cfg := genconfig.DefaultGeomorphConfig()
	result := Incise(hydro, land, 100, cfg)

	for i, isLand := range land.Data {
		if !isLand {
			continue
		}
		if float64(result.Depth.Data[i]) > cfg.MaxDepthM+1e-6 {
			t.Fatalf("depth[%d] = %v exceeds configured max %v", i, result.Depth.Data[i], cfg.MaxDepthM)
		}
	}
}

func TestIncisionPreservesNonInversionAcrossFlowEdges(t *testing.T) {
	hydro, land := syntheticHydro(30, 20)
	cfg := genconfig.DefaultGeomorphConfig()
	result := Incise(hydro, land, 100, cfg)

	w := result.Height.W
	for y := 0; y < result.Height.H; y++ {
		for x := 1; x < w; x++ {
			idx := y*w + x
			nx, ny, ok := raster.D8Dest(w, result.Height.H, x, y, int(hydro.FlowDir.Data[idx]))
			if !ok {
				continue
			}
			destIdx := ny*w + nx
			if result.Height.Data[idx] < result.Height.Data[destIdx]-1e-3 {
				t.Fatalf("incised bed at %d (%v) fell below downstream bed at %d (%v)",
					idx, result.Height.Data[idx], destIdx, result.Height.Data[destIdx])
			}
		}
	}
}
