// Package mask builds the land/ocean boolean raster from a warped fBm
// potential field, guaranteeing a dominant connected continent per the
// LandMask invariant. Grounded on original_source/terrain/mask.py.
package mask

import (
	"math"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/noise"
	"github.com/dantero/continent-gen/internal/raster"
	"github.com/dantero/continent-gen/internal/rng"
)

// Result holds the generated land mask plus the intermediate potential field
// (kept for downstream composer use and debug preview rendering).
type Result struct {
	Land              *raster.GridBool
	Potential         *raster.Grid32
	Threshold         float32
	LandFraction      float64
	LargestLandRatio  float64
	NumComponents     int
	LargestComponent  int
	TotalLandPixels   int
}

// Generate builds the land mask for a W×H grid from the "mask" RNG fork.
func Generate(w, h int, parent rng.Stream, cfg genconfig.MaskConfig) Result {
	potentialFork := parent.MustFork("mask-potential")
	warpXFork := parent.MustFork("mask-warp-x")
	warpYFork := parent.MustFork("mask-warp-y")
	fragFork := parent.MustFork("mask-fragment")

	base := noise.FBm(w, h, 2, cfg.BaseOctaves, potentialFork.Generator())
	warpX := noise.FBm(w, h, 1, cfg.WarpOctaves, warpXFork.Generator())
	warpY := noise.FBm(w, h, 1, cfg.WarpOctaves, warpYFork.Generator())

	strength := float32(cfg.WarpStrengthPx * (1 + cfg.Fragmentation))
	warped := noise.WarpField(base, warpX, warpY, strength)

	frag := noise.FBm(w, h, 4, 3, fragFork.Generator())

	potential := raster.NewGrid32(w, h)
	for y := 0; y < h; y++ {
		ny := (float64(y)/float64(h-1))*2 - 1 // [-1, 1]
		latBias := float32(1 - 0.35*math.Abs(ny))
		for x := 0; x < w; x++ {
			nx := (float64(x)/float64(w-1))*2 - 1
			ex := nx / 0.85
			radial := math.Sqrt(ex*ex + ny*ny)
			centerBias := float32(clamp(1-radial, -1, 1))

			v := warped.At(x, y)*0.62 +
				centerBias*float32(cfg.CoastBiasStrength) +
				latBias*0.18 +
				frag.At(x, y)*float32(cfg.Fragmentation)*0.20
			potential.Set(x, y, v)
		}
	}

	rescalePercentiles(potential, 2, 98)

	targetLand := clamp(cfg.TargetLandFraction+(cfg.Fragmentation-0.2)*0.20, cfg.MinLandFraction, cfg.MaxLandFraction)

	iterations := cfg.SmoothIterations
	threshold := raster.Percentile(potential.Data, (1-targetLand)*100)
	land := thresholdMask(potential, threshold)
	land = smoothMask(land, iterations)

	labels, sizes := raster.ConnectedComponents(land)
	_ = labels
	largest, totalLand := largestAndTotal(sizes)
	largestRatio := ratio(largest, totalLand)

	for attempt := 0; attempt < cfg.MaxRelaxationRounds && largestRatio < cfg.DominantLandRatio && totalLand > 0; attempt++ {
		threshold -= float32(cfg.ThresholdRelaxation * float64(attempt+1))
		iterations++
		land = thresholdMask(potential, threshold)
		land = smoothMask(land, iterations)
		_, sizes = raster.ConnectedComponents(land)
		largest, totalLand = largestAndTotal(sizes)
		largestRatio = ratio(largest, totalLand)
	}

	numComponents := len(sizes)
	return Result{
		Land:             land,
		Potential:        potential,
		Threshold:        threshold,
		LandFraction:     float64(totalLand) / float64(w*h),
		LargestLandRatio: largestRatio,
		NumComponents:    numComponents,
		LargestComponent: largest,
		TotalLandPixels:  totalLand,
	}
}

func largestAndTotal(sizes []int) (largest, total int) {
	for _, s := range sizes {
		total += s
		if s > largest {
			largest = s
		}
	}
	return largest, total
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rescalePercentiles linearly rescales field so the loP/hiP percentiles map
// to 0/1, clamping the rest.
func rescalePercentiles(field *raster.Grid32, loP, hiP float64) {
	lo := raster.Percentile(field.Data, loP)
	hi := raster.Percentile(field.Data, hiP)
	span := hi - lo
	if span <= 1e-8 {
		field.Fill(0)
		return
	}
	for i, v := range field.Data {
		c := (v - lo) / span
		if c < 0 {
			c = 0
		}
		if c > 1 {
			c = 1
		}
		field.Data[i] = c
	}
}

func thresholdMask(field *raster.Grid32, threshold float32) *raster.GridBool {
	out := raster.NewGridBool(field.W, field.H)
	for i, v := range field.Data {
		out.Data[i] = v >= threshold
	}
	return out
}

// smoothMask applies a 3x3 majority filter `iterations` times.
func smoothMask(mask *raster.GridBool, iterations int) *raster.GridBool {
	cur := mask
	for i := 0; i < iterations; i++ {
		cur = majorityFilter(cur)
	}
	return cur
}

func majorityFilter(mask *raster.GridBool) *raster.GridBool {
	w, h := mask.W, mask.H
	out := raster.NewGridBool(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			count := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					if mask.At(nx, ny) {
						count++
					}
				}
			}
			out.Set(x, y, count >= 5)
		}
	}
	return out
}
