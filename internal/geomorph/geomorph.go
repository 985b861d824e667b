// Package geomorph applies hierarchical stream-power incision to the
// hydro-conditioned heightfield, carving valleys while preserving ridge
// crests and guarding against elevation inversions across flow edges.
// Grounded directly on original_source/terrain/geomorph.py.
package geomorph

import (
	"math"
	"sort"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/hydrology"
	"github.com/dantero/continent-gen/internal/raster"
)

// Result holds the incised heightfield plus the depth field for metrics.
type Result struct {
	Height *raster.Grid32
	Depth  *raster.Grid32
	PowerScaleValue float32
}

// Incise runs the stream-power incision pass: compute erosive power from
// routed flow, normalize and shape it, protect ridgelines, smooth, cap
// depth, then guard against inversions before subtracting depth from
// height.
func Incise(hydro hydrology.Result, land *raster.GridBool, metersPerPixel float64, cfg genconfig.GeomorphConfig) Result {
	w, h := hydro.Height.W, hydro.Height.H
	cellArea := metersPerPixel * metersPerPixel

	power := raster.NewGrid32(w, h)
	maxFlow := float32(0)
	for _, v := range hydro.FlowAccum.Data {
		if v > maxFlow {
			maxFlow = v
		}
	}
	if maxFlow <= 0 {
		maxFlow = 1
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !land.Data[idx] {
				continue
			}
			normAccum := hydro.FlowAccum.Data[idx] / maxFlow
			if float64(normAccum) < cfg.AMin {
				continue
			}
			var p float64
			if cfg.UsePhysicalStreamPower {
				a := float64(hydro.FlowAccum.Data[idx]) * cellArea
				s := physicalGradient(hydro.Height, x, y, metersPerPixel)
				p = math.Pow(a, cfg.IncisionM) * math.Pow(s, cfg.IncisionN)
			} else {
				p = math.Pow(float64(normAccum), cfg.IncisionM)
			}
			power.Data[idx] = float32(p)
		}
	}

	powerScale := raster.Percentile(power.Data, cfg.PowerScalePercentile)
	if powerScale <= 0 {
		powerScale = 1
	}
	normalizedPower := raster.NewGrid32(w, h)
	for i, v := range power.Data {
		c := v / powerScale
		if c > 1 {
			c = 1
		}
		if c < 0 {
			c = 0
		}
		normalizedPower.Data[i] = c
	}

	ridgeMask := ridgePreservation(hydro.Height, land)
	for i := range normalizedPower.Data {
		if ridgeMask.Data[i] {
			normalizedPower.Data[i] *= float32(cfg.RidgePreserve)
		}
	}

	radius := int(1.5*cfg.ValleyBlurSigmaPx + 0.5)
	blurred := raster.BoxBlur(normalizedPower, radius, 3)

	strengthScale := float32(clampF(cfg.IncisionStrength*320, 0, 1))
	depth := raster.NewGrid32(w, h)
	for i, v := range blurred.Data {
		d := v * float32(cfg.MaxDepthM) * strengthScale
		if d > float32(cfg.MaxDepthM) {
			d = float32(cfg.MaxDepthM)
		}
		depth.Data[i] = d
	}

	applyNonInversionGuard(depth, hydro.Height, hydro.FlowDir, land)

	outHeight := hydro.Height.Clone()
	for i, isLand := range land.Data {
		if isLand {
			outHeight.Data[i] -= depth.Data[i]
		}
	}

	return Result{Height: outHeight, Depth: depth, PowerScaleValue: powerScale}
}

func physicalGradient(height *raster.Grid32, x, y int, mpp float64) float64 {
	w, h := height.W, height.H
	x0, x1 := maxInt(x-1, 0), minInt(x+1, w-1)
	y0, y1 := maxInt(y-1, 0), minInt(y+1, h-1)
	dzdx := (float64(height.At(x1, y)) - float64(height.At(x0, y))) / (float64(x1-x0) * mpp)
	dzdy := (float64(height.At(x, y1)) - float64(height.At(x, y0))) / (float64(y1-y0) * mpp)
	if x1 == x0 {
		dzdx = 0
	}
	if y1 == y0 {
		dzdy = 0
	}
	return math.Hypot(dzdx, dzdy)
}

// ridgePreservation marks convex ridge crests via the 5-point Laplacian
// sign (negative = convex).
func ridgePreservation(height *raster.Grid32, land *raster.GridBool) *raster.GridBool {
	w, h := height.W, height.H
	out := raster.NewGridBool(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !land.Data[idx] {
				continue
			}
			x0, x1 := maxInt(x-1, 0), minInt(x+1, w-1)
			y0, y1 := maxInt(y-1, 0), minInt(y+1, h-1)
			lap := height.At(x0, y) + height.At(x1, y) + height.At(x, y0) + height.At(x, y1) - 4*height.At(x, y)
			out.Data[idx] = lap < 0
		}
	}
	return out
}

// applyNonInversionGuard caps depth so height-depth never inverts across a
// flow edge, iterating directions in canonical order (cells of one direction
// in row-major order).
func applyNonInversionGuard(depth *raster.Grid32, height *raster.Grid32, flowDir *raster.GridI8, land *raster.GridBool) {
	w, h := height.W, height.H
	const eps = float32(1e-4)

	ordered := make([]int, 0, w*h)
	for dir := int8(0); dir < 8; dir++ {
		for i, d := range flowDir.Data {
			if d == dir {
				ordered = append(ordered, i)
			}
		}
	}

	for _, idx := range ordered {
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
		destIdx := ny*w + nx
		selfBed := height.Data[idx] - depth.Data[idx]
		destBed := height.Data[destIdx] - depth.Data[destIdx]
		if selfBed < destBed+eps {
			maxDepth := height.Data[idx] - (destBed + eps)
			if maxDepth < 0 {
				maxDepth = 0
			}
			if depth.Data[idx] > maxDepth {
				depth.Data[idx] = maxDepth
			}
		}
	}
}

func sortDescByHeight(idxs []int, height *raster.Grid32) {
	sort.Slice(idxs, func(i, j int) bool {
		a, b := idxs[i], idxs[j]
		if height.Data[a] != height.Data[b] {
			return height.Data[a] > height.Data[b]
		}
		return a < b
	})
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
