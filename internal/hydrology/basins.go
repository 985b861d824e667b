package hydrology

import "github.com/dantero/continent-gen/internal/raster"

// basinAnalysis propagates each land cell's downstream terminal (ocean
// outlet flat index, or sink component id) in ascending elevation order —
// by construction every D8 downstream neighbor has strictly lower elevation
// so it has already been resolved when its upstream neighbors are visited.
// Grounded on original_source/terrain/hydrology.py's _analyze_drainage_state.
func basinAnalysis(surface *raster.Grid32, land *raster.GridBool, flowDir *raster.GridI8) (oceanOutlet, sinkID, basinID *raster.GridI32, endorheic *raster.GridBool) {
	w, h := surface.W, surface.H
	oceanOutlet = raster.NewGridI32(w, h, -1)
	sinkID = raster.NewGridI32(w, h, -1)

	sinkMask := raster.NewGridBool(w, h)
	for i, isLand := range land.Data {
		if isLand && flowDir.Data[i] < 0 {
			sinkMask.Data[i] = true
		}
	}
	sinkLabels, _ := raster.ConnectedComponents(sinkMask)

	ascending := sortedIndicesByElevation(surface, false)
	for _, idx := range ascending {
		if !land.Data[idx] {
			continue
		}
		dir := flowDir.Data[idx]
		if dir < 0 {
			sinkID.Data[idx] = sinkLabels.Data[idx] - 1
			continue
		}
		x, y := idx%w, idx/w
		nx, ny, ok := raster.D8Dest(w, h, x, y, int(dir))
		if !ok {
			oceanOutlet.Data[idx] = idx
			continue
		}
		destIdx := ny*w + nx
		if !land.Data[destIdx] {
			oceanOutlet.Data[idx] = destIdx
			continue
		}
		oceanOutlet.Data[idx] = oceanOutlet.Data[destIdx]
		sinkID.Data[idx] = sinkID.Data[destIdx]
	}

	basinKey := make(map[int]int32)
	basinID = raster.NewGridI32(w, h, 0)
	nextID := int32(0)
	endorheic = raster.NewGridBool(w, h)
	for _, idx := range ascending {
		if !land.Data[idx] {
			continue
		}
		var key int
		if sinkID.Data[idx] >= 0 {
			key = -int(sinkID.Data[idx]) - 1
			endorheic.Data[idx] = true
		} else {
			key = int(oceanOutlet.Data[idx]) + 1_000_000
		}
		id, seen := basinKey[key]
		if !seen {
			nextID++
			id = nextID
			basinKey[key] = id
		}
		basinID.Data[idx] = id
	}

	return oceanOutlet, sinkID, basinID, endorheic
}

// basinPixelCounts returns, per basin id (1..N), the number of land pixels.
func basinPixelCounts(basinID *raster.GridI32, land *raster.GridBool) map[int32]int {
	counts := make(map[int32]int)
	for i, isLand := range land.Data {
		if !isLand {
			continue
		}
		id := basinID.Data[i]
		if id <= 0 {
			continue
		}
		counts[id]++
	}
	return counts
}
