package hydrology

import (
	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/raster"
	"github.com/dantero/continent-gen/internal/rng"
)

// Result is the full output of the hydrology subsystem.
type Result struct {
	Height         *raster.Grid32
	FlowDir        *raster.GridI8
	FlowAccum      *raster.Grid32
	BasinID        *raster.GridI32
	OceanOutlet    *raster.GridI32
	SinkID         *raster.GridI32
	EndorheicMask  *raster.GridBool
	CapturePaths   *raster.GridBool
	River          RiverResult
	Outlets        []OutletPoint
	RawOutletCount int
	MergedOutletCount int
}

// Run executes the full subsystem: routing-surface conditioning, D8
// flow/accumulation, basin analysis, cross-basin capture, ocean-outlet
// merging, river extraction, and downhill enforcement. Grounded on
// original_source/terrain/hydrology.py's run_hydrology orchestration.
func Run(height *raster.Grid32, land *raster.GridBool, parent rng.Stream, cfg genconfig.HydrologyConfig) Result {
	surface := prepareRoutingSurface(height, land, parent, cfg)

	flowDir, flowAccum := computeFlowD8(surface, land)
	oceanOutlet, sinkID, basinID, endorheic := basinAnalysis(surface, land, flowDir)

	capturePaths, basinID, oceanOutlet, sinkID, endorheic := crossBasinCapture(
		surface, land, basinID, sinkID, oceanOutlet, endorheic, cfg)

	flowDir, flowAccum = computeFlowD8(surface, land)
	_, _, basinID, endorheic = basinAnalysis(surface, land, flowDir)

	merged, outlets, rawCount, mergedCount := mergeOceanOutlets(surface.W, surface.H, oceanOutlet, basinID, land, cfg)

	river := extractRivers(flowAccum, flowDir, land, cfg)
	lakeMask := lakeMaskFrom(endorheic, land)
	enforceDownhill(surface, flowDir, flowAccum, river.RiverMask, lakeMask)

	return Result{
		Height:            surface,
		FlowDir:           flowDir,
		FlowAccum:         flowAccum,
		BasinID:           merged,
		OceanOutlet:       oceanOutlet,
		SinkID:            sinkID,
		EndorheicMask:     endorheic,
		CapturePaths:      capturePaths,
		River:             river,
		Outlets:           outlets,
		RawOutletCount:    rawCount,
		MergedOutletCount: mergedCount,
	}
}
