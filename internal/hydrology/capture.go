package hydrology

import (
	"math"
	"sort"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/raster"
)

type captureCandidate struct {
	basinID      int32
	sourceIdx    int
	targetIdx    int
	requiredCut  float32
	basinSize    int
}

// crossBasinCapture iteratively reroutes small endorheic basins into nearby
// lower exorheic terrain by carving a discrete path, bounded to 2 outer
// iterations. Mutates surface in place and returns the union of all carved
// path cells.
func crossBasinCapture(surface *raster.Grid32, land *raster.GridBool, basinID *raster.GridI32, sinkID, oceanOutlet *raster.GridI32, endorheic *raster.GridBool, cfg genconfig.HydrologyConfig) (captured *raster.GridBool, finalBasinID, finalOceanOutlet, finalSinkID *raster.GridI32, finalEndorheic *raster.GridBool) {
	w, h := surface.W, surface.H
	captured = raster.NewGridBool(w, h)

	for iter := 0; iter < 2; iter++ {
		counts := basinPixelCounts(basinID, land)
		var endorheicBasins []int32
		for id, c := range counts {
			if c >= 8 && c <= cfg.MaxBasinPixels {
				isEndo := false
				for i, v := range basinID.Data {
					if v == id && endorheic.Data[i] {
						isEndo = true
						break
					}
				}
				if isEndo {
					endorheicBasins = append(endorheicBasins, id)
				}
			}
		}
		if len(endorheicBasins) == 0 {
			break
		}

		exorheicSizes := make(map[int32]int)
		for id, c := range counts {
			isEndo := false
			for i, v := range basinID.Data {
				if v == id && endorheic.Data[i] {
					isEndo = true
					break
				}
			}
			if !isEndo {
				exorheicSizes[id] = c
			}
		}
		maxExoSize := 1
		for _, c := range exorheicSizes {
			if c > maxExoSize {
				maxExoSize = c
			}
		}

		var candidates []captureCandidate
		for _, bid := range endorheicBasins {
			sourceIdx := lowestCellInBasin(surface, basinID, bid)
			if sourceIdx < 0 {
				continue
			}
			sx, sy := sourceIdx%w, sourceIdx/w
			sourceElev := surface.Data[sourceIdx]

			best := captureCandidate{requiredCut: float32(math.MaxFloat32)}
			found := false
			radius := int(cfg.MaxLinkLengthPx)
			for dy := -radius; dy <= radius; dy++ {
				ty := sy + dy
				if ty < 0 || ty >= h {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					tx := sx + dx
					if tx < 0 || tx >= w {
						continue
					}
					dist := math.Hypot(float64(dx), float64(dy))
					if dist > cfg.MaxLinkLengthPx || dist < 1 {
						continue
					}
					tIdx := ty*w + tx
					if !land.Data[tIdx] || endorheic.Data[tIdx] {
						continue
					}
					targetElev := surface.Data[tIdx]
					if targetElev >= sourceElev-0.01 {
						continue
					}
					sill := float32(0)
					if targetElev > sourceElev {
						sill = targetElev - sourceElev
					}
					targetBasin := basinID.Data[tIdx]
					priority := float32(0)
					if sz, ok := exorheicSizes[targetBasin]; ok && sz > 0 {
						priority = float32(math.Log(float64(sz)+1) / math.Log(float64(maxExoSize)+1))
					}
					cost := sill + 0.02*float32(dist) - 0.35*priority
					if cost < best.requiredCut {
						best = captureCandidate{
							basinID:     bid,
							sourceIdx:   sourceIdx,
							targetIdx:   tIdx,
							requiredCut: cost,
							basinSize:   counts[bid],
						}
						found = true
					}
				}
			}
			if found {
				candidates = append(candidates, best)
			}
		}

		if len(candidates) == 0 {
			break
		}

		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].requiredCut != candidates[j].requiredCut {
				return candidates[i].requiredCut < candidates[j].requiredCut
			}
			return candidates[i].basinSize > candidates[j].basinSize
		})

		keep := (len(candidates) + 1) / 2
		if cfg.CaptureFraction > 0 {
			keep = int(math.Ceil(cfg.CaptureFraction * float64(len(candidates))))
		}
		if keep > len(candidates) {
			keep = len(candidates)
		}

		for _, c := range candidates[:keep] {
			carvePath(surface, captured, w, h, c.sourceIdx, c.targetIdx, cfg.CaptureMaxSillM)
		}

		flowDir, _ := computeFlowD8(surface, land)
		oceanOutlet, sinkID, basinID, endorheic = basinAnalysis(surface, land, flowDir)
	}

	return captured, basinID, oceanOutlet, sinkID, endorheic
}

func lowestCellInBasin(surface *raster.Grid32, basinID *raster.GridI32, bid int32) int {
	best := -1
	var bestElev float32
	for i, v := range basinID.Data {
		if v != bid {
			continue
		}
		if best < 0 || surface.Data[i] < bestElev {
			best = i
			bestElev = surface.Data[i]
		}
	}
	return best
}

// carvePath cuts a monotone-non-increasing profile along the discrete line
// from source to target (Bresenham); the cut at any single cell is capped at
// maxSill.
func carvePath(surface *raster.Grid32, captured *raster.GridBool, w, h, sourceIdx, targetIdx int, maxSill float64) {
	sx, sy := sourceIdx%w, sourceIdx/w
	tx, ty := targetIdx%w, targetIdx/w
	pts := bresenhamLine(sx, sy, tx, ty)

	sourceElev := surface.Data[sourceIdx]
	targetElev := surface.Data[targetIdx]
	floor := targetElev
	if sourceElev-0.02 < floor {
		floor = sourceElev - 0.02
	}

	n := len(pts)
	runningMin := sourceElev
	for i, p := range pts {
		idx := p[1]*w + p[0]
		frac := float32(0)
		if n > 1 {
			frac = float32(i) / float32(n-1)
		}
		target := sourceElev + (floor-sourceElev)*frac
		if target < runningMin {
			runningMin = target
		} else {
			target = runningMin
		}
		cut := surface.Data[idx] - target
		if cut > float32(maxSill) {
			target = surface.Data[idx] - float32(maxSill)
		}
		if target < surface.Data[idx] {
			surface.Data[idx] = target
			captured.Data[idx] = true
		}
	}
}

func bresenhamLine(x0, y0, x1, y1 int) [][2]int {
	var pts [][2]int
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	x, y := x0, y0
	for {
		pts = append(pts, [2]int{x, y})
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return pts
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
