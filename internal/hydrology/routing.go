// Package hydrology implements the drainage subsystem: routing-surface
// conditioning, D8 flow direction/accumulation, basin analysis, cross-basin
// capture, ocean-outlet merging, river extraction, and downhill enforcement.
// Grounded on original_source/terrain/hydrology.py's active pipeline path
// (run_hydrology and the helpers it actually calls); the dead branches in
// that file (analyze_depressions, decide_basin_retention,
// apply_basin_decisions, apply_lakes_post_erosion, stream_power_erosion) are
// never reached by run_hydrology there and are not reproduced here.
package hydrology

import (
	"container/heap"
	"math"
	"sort"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/raster"
	"github.com/dantero/continent-gen/internal/rng"
)

// d8UnitLength is the Euclidean length of each raster.D8 offset: 1 for the
// four axis-aligned directions, sqrt(2) for the four diagonals.
var d8UnitLength = [8]float32{1, 1, 1, 1, math.Sqrt2, math.Sqrt2, math.Sqrt2, math.Sqrt2}

// prepareRoutingSurface smooths h_tectonic, adds low-frequency routing
// noise, fills depressions with a priority-flood pass, and runs the
// meander-sculpt droplet carve. Returns the conditioned surface used for D8
// routing (not the final output height).
func prepareRoutingSurface(height *raster.Grid32, land *raster.GridBool, parent rng.Stream, cfg genconfig.HydrologyConfig) *raster.Grid32 {
	radius := int(1.5*cfg.SmoothSigmaPx + 0.5)
	smoothed := raster.BoxBlur(height, radius, 3)

	noiseFork := parent.MustFork("routing-noise")
	gen := noiseFork.Generator()
	raw := raster.NewGrid32(height.W, height.H)
	for i := range raw.Data {
		raw.Data[i] = gen.UniformSigned()
	}
	routingNoise := raster.BoxBlur(raw, 4, 1)

	surface := raster.NewGrid32(height.W, height.H)
	for i := range surface.Data {
		surface.Data[i] = smoothed.Data[i] + routingNoise.Data[i]*3
	}

	filled := priorityFloodFill(surface, land, cfg.DepressionEpsilonM)
	sculpted := meanderSculpt(filled, land, parent, cfg)
	return sculpted
}

type floodItem struct {
	elevation float32
	flatIdx   int
}

type floodHeap []floodItem

func (h floodHeap) Len() int { return len(h) }
func (h floodHeap) Less(i, j int) bool {
	if h[i].elevation != h[j].elevation {
		return h[i].elevation < h[j].elevation
	}
	return h[i].flatIdx < h[j].flatIdx
}
func (h floodHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *floodHeap) Push(x any)        { *h = append(*h, x.(floodItem)) }
func (h *floodHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// priorityFloodFill runs the classic Barnes/Lehman/Mulla priority-flood
// algorithm: push all boundary (ocean-adjacent or grid-edge) land cells,
// then repeatedly pop the lowest, and for each unvisited neighbor set its
// elevation to max(original, popped+epsilon) to guarantee strict monotone
// rise away from drainage outlets, breaking ties by flat index.
func priorityFloodFill(surface *raster.Grid32, land *raster.GridBool, epsilon float64) *raster.Grid32 {
	w, h := surface.W, surface.H
	out := surface.Clone()
	visited := make([]bool, w*h)
	pq := &floodHeap{}
	heap.Init(pq)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !land.Data[idx] || isOceanAdjacent(land, w, h, x, y) {
				visited[idx] = true
				heap.Push(pq, floodItem{elevation: out.Data[idx], flatIdx: idx})
			}
		}
	}

	eps := float32(epsilon)
	for pq.Len() > 0 {
		item := heap.Pop(pq).(floodItem)
		x, y := item.flatIdx%w, item.flatIdx/w
		for _, d := range raster.D8 {
			nx, ny := x+d[1], y+d[0]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			nidx := ny*w + nx
			if visited[nidx] || !land.Data[nidx] {
				continue
			}
			visited[nidx] = true
			raised := out.Data[nidx]
			if raised < item.elevation+eps {
				raised = item.elevation + eps
			}
			out.Data[nidx] = raised
			heap.Push(pq, floodItem{elevation: raised, flatIdx: nidx})
		}
	}
	return out
}

func isOceanAdjacent(land *raster.GridBool, w, h, x, y int) bool {
	for _, d := range raster.D8 {
		nx, ny := x+d[1], y+d[0]
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			return true
		}
		if !land.At(nx, ny) {
			return true
		}
	}
	return false
}

// meanderSculpt runs a fixed droplet population for a fixed step count. Each
// step blends the droplet's velocity with the drop-weighted average
// direction of every downhill neighbor (0.7 old / 0.3 new, cfg.DropletVelocityBlend
// being the "keep" weight), then moves to whichever downhill neighbor best
// aligns with that velocity and carves carve_m at the destination. Droplets
// that have no downhill neighbor, or whose chosen destination is at or below
// sea level, respawn from a high-elevation sampler built from the current
// surface's top decile. Grounded on original_source/terrain/hydrology.py's
// _sculpt_meanders, forked from the single literal key "sculpt-meanders" as
// the original does (no separate per-step stream: nothing after spawn/respawn
// selection draws from the generator).
func meanderSculpt(surface *raster.Grid32, land *raster.GridBool, parent rng.Stream, cfg genconfig.HydrologyConfig) *raster.Grid32 {
	w, h := surface.W, surface.H
	out := surface.Clone()

	sculptFork := parent.MustFork("sculpt-meanders")
	gen := sculptFork.Generator()

	spawnThreshold := raster.Percentile(out.Data, 90)
	var spawnCells []int
	for i, v := range out.Data {
		if land.Data[i] && v >= spawnThreshold {
			spawnCells = append(spawnCells, i)
		}
	}
	if len(spawnCells) == 0 {
		for i, v := range land.Data {
			if v {
				spawnCells = append(spawnCells, i)
			}
		}
	}
	if len(spawnCells) == 0 {
		return out
	}

	carve := float32(cfg.DropletCarveM)
	keep := float32(cfg.DropletVelocityBlend)

	respawn := func() (int, int) {
		idx := spawnCells[gen.IntRange(0, len(spawnCells)-1)]
		return idx % w, idx / w
	}

	for drop := 0; drop < cfg.DropletCount; drop++ {
		x, y := respawn()
		vx, vy := float32(0), float32(0)

		for step := 0; step < cfg.DropletSteps; step++ {
			cur := y*w + x
			if !land.Data[cur] {
				x, y = respawn()
				vx, vy = 0, 0
				continue
			}

			curH := out.At(x, y)
			var downhillDrop [8]float32
			var anyDownhill [8]bool
			var dropSum float32
			for di, d := range raster.D8 {
				nx, ny := x+d[1], y+d[0]
				if nx < 0 || nx >= w || ny < 0 || ny >= h || !land.At(nx, ny) {
					continue
				}
				delta := curH - out.At(nx, ny)
				if delta > 0 {
					anyDownhill[di] = true
					downhillDrop[di] = delta
					dropSum += delta
				}
			}
			if dropSum <= 0 {
				x, y = respawn()
				vx, vy = 0, 0
				continue
			}

			var gx, gy float32
			for di, d := range raster.D8 {
				if !anyDownhill[di] {
					continue
				}
				weight := downhillDrop[di] / dropSum
				gy += weight * float32(d[0])
				gx += weight * float32(d[1])
			}
			vy = vy*keep + gy*(1-keep)
			vx = vx*keep + gx*(1-keep)

			bestDir := -1
			bestScore := float32(math.Inf(-1))
			for di, d := range raster.D8 {
				if !anyDownhill[di] {
					continue
				}
				unitY := float32(d[0]) / d8UnitLength[di]
				unitX := float32(d[1]) / d8UnitLength[di]
				score := vy*unitY + vx*unitX
				if score > bestScore {
					bestScore = score
					bestDir = di
				}
			}

			d := raster.D8[bestDir]
			nx, ny := x+d[1], y+d[0]
			if out.At(nx, ny) <= 0 {
				x, y = respawn()
				vx, vy = 0, 0
				continue
			}
			out.Set(nx, ny, out.At(nx, ny)-carve)
			x, y = nx, ny
		}
	}
	return out
}

// sortedIndicesByElevation returns flat indices sorted by elevation, ties
// broken by lower flat index, in either ascending or descending order.
func sortedIndicesByElevation(height *raster.Grid32, descending bool) []int {
	n := len(height.Data)
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	sort.Slice(idxs, func(i, j int) bool {
		a, b := idxs[i], idxs[j]
		if height.Data[a] != height.Data[b] {
			if descending {
				return height.Data[a] > height.Data[b]
			}
			return height.Data[a] < height.Data[b]
		}
		return a < b
	})
	return idxs
}
