package hydrology

import (
	"math"
	"sort"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/raster"
)

// RiverResult holds the extracted channel network.
type RiverResult struct {
	RiverMask   *raster.GridBool
	WidthPx     *raster.Grid32
	IncisionM   *raster.Grid32
}

// extractRivers computes channelness from detrended log-flow, thresholds
// core/support cells, takes the flow-connected closure, and derives
// per-cell width/incision. Grounded on
// original_source/terrain/hydrology.py's extract_rivers.
func extractRivers(flowAccum *raster.Grid32, flowDir *raster.GridI8, land *raster.GridBool, cfg genconfig.HydrologyConfig) RiverResult {
	w, h := flowAccum.W, flowAccum.H
	logFlow := raster.NewGrid32(w, h)
	for i, v := range flowAccum.Data {
		logFlow.Data[i] = float32(math.Log1p(float64(v)))
	}

	blurred := raster.BoxBlur(logFlow, 6, 2)
	detrended := raster.NewGrid32(w, h)
	for i := range detrended.Data {
		detrended.Data[i] = logFlow.Data[i] - blurred.Data[i]
	}
	channelness := raster.Normalize01(detrended)

	freq := 0.0
	accumThresholdBase := cfg.RiverAccumThresholdBase
	tHighP := clampF(99.1-4*freq-220*accumThresholdBase, 90, 99.8)
	tLowP := maxF(75, tHighP-lerp(6, 11, freq))
	channelP := clampF(78-24*freq, 50, 88)

	tHigh := raster.Percentile(logFlow.Data, tHighP)
	tLow := raster.Percentile(logFlow.Data, tLowP)
	channelThreshold := raster.Percentile(channelness.Data, channelP)

	core := raster.NewGridBool(w, h)
	support := raster.NewGridBool(w, h)
	for i, isLand := range land.Data {
		if !isLand {
			continue
		}
		if logFlow.Data[i] >= tHigh && channelness.Data[i] >= channelThreshold {
			core.Data[i] = true
		} else if logFlow.Data[i] >= tLow && channelness.Data[i] >= channelThreshold*0.6 {
			support.Data[i] = true
		}
	}

	river := raster.NewGridBool(w, h)
	copy(river.Data, core.Data)

	descByAccum := sortedByAccumDescending(flowAccum, land)
	changed := true
	for pass := 0; pass < 4 && changed; pass++ {
		changed = false
		for _, idx := range descByAccum {
			if river.Data[idx] || !support.Data[idx] {
				continue
			}
			dir := flowDir.Data[idx]
			if dir < 0 {
				continue
			}
			x, y := idx%w, idx/w
			nx, ny, ok := raster.D8Dest(w, h, x, y, int(dir))
			if !ok {
				continue
			}
			if river.At(nx, ny) {
				river.Data[idx] = true
				changed = true
			}
		}
	}

	maxFlow := float32(0)
	for i, v := range flowAccum.Data {
		if river.Data[i] && v > maxFlow {
			maxFlow = v
		}
	}
	if maxFlow <= 0 {
		maxFlow = 1
	}

	width := raster.NewGrid32(w, h)
	incision := raster.NewGrid32(w, h)
	for i, isRiver := range river.Data {
		if !isRiver {
			continue
		}
		flowMetric := flowAccum.Data[i] / maxFlow
		if flowMetric > 1 {
			flowMetric = 1
		}
		widthPx := float32(cfg.RiverMaxWidthPx) * powf32(flowMetric, float32(cfg.RiverWidthPower))
		width.Data[i] = widthPx
		incision.Data[i] = float32(cfg.RiverMaxIncisionM) * flowMetric * (widthPx / float32(cfg.RiverMaxWidthPx))
	}
	incision = raster.BoxBlur(incision, 1, 1)

	return RiverResult{RiverMask: river, WidthPx: width, IncisionM: incision}
}

func sortedByAccumDescending(flowAccum *raster.Grid32, land *raster.GridBool) []int {
	idxs := make([]int, 0, len(flowAccum.Data))
	for i, isLand := range land.Data {
		if isLand {
			idxs = append(idxs, i)
		}
	}
	sort.Slice(idxs, func(i, j int) bool {
		a, b := idxs[i], idxs[j]
		if flowAccum.Data[a] != flowAccum.Data[b] {
			return flowAccum.Data[a] > flowAccum.Data[b]
		}
		return a < b
	})
	return idxs
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

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func powf32(v, p float32) float32 { return float32(math.Pow(float64(v), float64(p))) }
