package hydrology

import "github.com/dantero/continent-gen/internal/raster"

// computeFlowD8 assigns each land cell the D8 direction index of its
// steepest positive-drop downhill neighbor (-1 if none), then accumulates
// flow by processing cells in descending elevation order, matching
// original_source/terrain/hydrology.py's compute_flow_d8.
func computeFlowD8(surface *raster.Grid32, land *raster.GridBool) (*raster.GridI8, *raster.Grid32) {
	w, h := surface.W, surface.H
	flowDir := raster.NewGridI8(w, h, -1)
	flowAccum := raster.NewGrid32(w, h)

	for i, isLand := range land.Data {
		if isLand {
			flowAccum.Data[i] = 1
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !land.Data[idx] {
				continue
			}
			bestDir := int8(-1)
			bestDrop := float32(0)
			for di, d := range raster.D8 {
				nx, ny := x+d[1], y+d[0]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				drop := surface.At(x, y) - surface.At(nx, ny)
				if drop > bestDrop {
					bestDrop = drop
					bestDir = int8(di)
				}
			}
			flowDir.Data[idx] = bestDir
		}
	}

	descending := sortedIndicesByElevation(surface, true)
	for _, idx := range descending {
		if !land.Data[idx] {
			continue
		}
		dir := flowDir.Data[idx]
		if dir < 0 {
			continue
		}
		x, y := idx%w, idx/w
		nx, ny, ok := raster.D8Dest(w, h, x, y, int(dir))
		if !ok || !land.Data[ny*w+nx] {
			continue
		}
		flowAccum.Data[ny*w+nx] += flowAccum.Data[idx]
	}

	return flowDir, flowAccum
}
