package hydrology

import (
	"sort"

	"github.com/dantero/continent-gen/internal/raster"
)

// lakeMaskFrom computes lake_mask = endorheic_mask & land_mask.
func lakeMaskFrom(endorheic, land *raster.GridBool) *raster.GridBool {
	lake := raster.NewGridBool(endorheic.W, endorheic.H)
	for i, isEndorheic := range endorheic.Data {
		lake.Data[i] = isEndorheic && land.Data[i]
	}
	return lake
}

// levelLakes lowers every lake cell (endorheic land) to the minimum of its
// own height and a lightly blurred height field, flattening interior sinks
// before the downhill walk. Grounded on original_source/terrain/hydrology.py's
// run_hydrology: `h_lake_adjusted[lake_mask] = minimum(h, box_blur(h,1,passes=1))[lake_mask]`.
func levelLakes(height *raster.Grid32, lakeMask *raster.GridBool) {
	if lakeMask == nil {
		return
	}
	blurred := raster.BoxBlur(height, 1, 1)
	for i, isLake := range lakeMask.Data {
		if !isLake {
			continue
		}
		if blurred.Data[i] < height.Data[i] {
			height.Data[i] = blurred.Data[i]
		}
	}
}

// enforceDownhill levels lake cells, then walks river cells in ascending
// accumulation order, lowering each downstream river neighbor below its
// upstream river cell so the final profile strictly descends along every
// reach. A river cell whose downstream neighbor is a lake cell sitting above
// it is dropped from the river mask rather than forced downhill, since
// a lake has no single outlet direction to push the profile toward. Grounded
// on original_source/terrain/hydrology.py's enforce_downhill_river_profile.
func enforceDownhill(height *raster.Grid32, flowDir *raster.GridI8, flowAccum *raster.Grid32, river *raster.GridBool, lakeMask *raster.GridBool) {
	levelLakes(height, lakeMask)

	w, h := height.W, height.H
	ascending := sortedByAccumAscending(flowAccum, river)

	for _, idx := range ascending {
		dir := flowDir.Data[idx]
		if dir < 0 {
			continue
		}
		x, y := idx%w, idx/w
		nx, ny, ok := raster.D8Dest(w, h, x, y, int(dir))
		if !ok {
			continue
		}
		destIdx := ny*w + nx
		if lakeMask != nil && lakeMask.Data[destIdx] {
			if height.Data[idx] < height.Data[destIdx] {
				river.Data[idx] = false
			}
			continue
		}
		if !river.Data[destIdx] {
			continue
		}
		if height.Data[destIdx] > height.Data[idx]-0.01 {
			height.Data[destIdx] = height.Data[idx] - 0.01
		}
	}
}

func sortedByAccumAscending(flowAccum *raster.Grid32, river *raster.GridBool) []int {
	var idxs []int
	for i, isRiver := range river.Data {
		if isRiver {
			idxs = append(idxs, i)
		}
	}
	sort.Slice(idxs, func(i, j int) bool {
		a, b := idxs[i], idxs[j]
		if flowAccum.Data[a] != flowAccum.Data[b] {
			return flowAccum.Data[a] < flowAccum.Data[b]
		}
		return a < b
	})
	return idxs
}
