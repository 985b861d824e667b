// Package metrics assembles the connectivity/basin/flow/incision metrics
// block reported alongside each generated terrain. Grounded on
// original_source/terrain/metrics.py plus the metrics field lists embedded
// in terrain/hydrology.py and terrain/geomorph.py.
package metrics

import (
	"math"
	"sort"

	"github.com/dantero/continent-gen/internal/geomorph"
	"github.com/dantero/continent-gen/internal/hydrology"
	"github.com/dantero/continent-gen/internal/mask"
	"github.com/dantero/continent-gen/internal/raster"
	"github.com/dantero/continent-gen/internal/tectonics"
)

// Core holds connectivity and land-coverage metrics.
type Core struct {
	NumComponents            int     `json:"num_components"`
	LargestComponentArea     int     `json:"largest_component_area"`
	TotalLandPixels          int     `json:"total_land_pixels"`
	LargestLandRatio         float64 `json:"largest_land_ratio"`
	LandFraction             float64 `json:"land_fraction"`
	HypsometricIntegralLand  float64 `json:"hypsometric_integral_land"`
}

// Tectonics holds plate and boundary summary metrics.
type Tectonics struct {
	PlateCount                 int     `json:"plate_count"`
	BoundaryPixels              int     `json:"boundary_pixels"`
	MeanLithosphereThicknessPx  float64 `json:"mean_lithosphere_thickness_px"`
}

// HydrologyMetrics holds flow, basin, river, and lake summary metrics.
type HydrologyMetrics struct {
	RiverPixelCount                         int     `json:"river_pixel_count"`
	LakePixelCount                          int     `json:"lake_pixel_count"`
	MaxFlowAccum                            float64 `json:"max_flow_accum"`
	MeanFlowAccum                           float64 `json:"mean_flow_accum"`
	FlowAccumP50                            float64 `json:"flow_accum_p50"`
	FlowAccumP90                            float64 `json:"flow_accum_p90"`
	FlowAccumP99                            float64 `json:"flow_accum_p99"`
	FlowAccumP999                           float64 `json:"flow_accum_p999"`
	FlowCellsGe10                           int     `json:"flow_cells_ge_10"`
	FlowCellsGe100                          int     `json:"flow_cells_ge_100"`
	FlowCellsGe1000                         int     `json:"flow_cells_ge_1000"`
	BasinCountTotal                         int     `json:"basin_count_total"`
	BasinCountRetained                      int     `json:"basin_count_retained"`
	NumOceanOutletsRaw                      int     `json:"num_ocean_outlets_raw"`
	NumOceanOutletsMerged                   int     `json:"num_ocean_outlets_merged"`
	LargestBasinLandRatio                   float64 `json:"largest_basin_land_ratio"`
	Top10BasinSizes                         []int   `json:"top_10_basin_sizes"`
	EndorheicLandRatio                      float64 `json:"endorheic_land_ratio"`
	NumEndorheicBasins                      int     `json:"num_endorheic_basins"`
	LakeAreaFraction                        float64 `json:"lake_area_fraction"`
	MeanLakeArea                            float64 `json:"mean_lake_area"`
	LargestLakeArea                         int     `json:"largest_lake_area"`
	TrunkSinuositySegmentCount              int     `json:"trunk_sinuosity_segment_count"`
	TrunkSinuosityMedian                    float64 `json:"trunk_sinuosity_median"`
	TrunkSinuosityP90                       float64 `json:"trunk_sinuosity_p90"`
	RegionalEndorheicCountGt10000Km2        int     `json:"regional_endorheic_count_gt_10000km2"`
	ContinentalBasinCountGt1PctLand         int     `json:"continental_basin_count_gt_1pct_land"`
	TinyEndorheicBasinCountLt10000Km2       int     `json:"tiny_endorheic_basin_count_lt_10000km2"`
	TinyEndorheicAreaRatioLt10000Km2        float64 `json:"tiny_endorheic_area_ratio_lt_10000km2"`
}

// Geomorph holds stream-power incision summary metrics.
type Geomorph struct {
	MaxIncisionDepthM          float64 `json:"max_incision_depth_m"`
	MeanIncisionDepthM         float64 `json:"mean_incision_depth_m"`
	MeanIncisionDepthIncisedM  float64 `json:"mean_incision_depth_incised_m"`
	PercentLandIncised         float64 `json:"percent_land_incised"`
	PowerScaleValue            float64 `json:"power_scale_value"`
}

// Block is the full metrics object serialized into deterministic_meta.json.
type Block struct {
	Core      Core      `json:"metrics"`
	Tectonics Tectonics `json:"tectonics"`
	Hydrology HydrologyMetrics `json:"hydrology"`
	Geomorph  Geomorph  `json:"geomorph"`
}

// Assemble computes every metric from the generation stage outputs.
func Assemble(maskResult mask.Result, tec tectonics.Result, hydro hydrology.Result, geo geomorph.Result, land *raster.GridBool, metersPerPixel float64) Block {
	core := Core{
		NumComponents:           maskResult.NumComponents,
		LargestComponentArea:    maskResult.LargestComponent,
		TotalLandPixels:         maskResult.TotalLandPixels,
		LargestLandRatio:        maskResult.LargestLandRatio,
		LandFraction:            maskResult.LandFraction,
		HypsometricIntegralLand: hypsometricIntegral(geo.Height, land),
	}

	tecMetrics := Tectonics{
		PlateCount:                 tec.PlateCount,
		BoundaryPixels:             tec.BoundaryPixels,
		MeanLithosphereThicknessPx: tec.MeanLithosphereThicknessPx,
	}

	cellAreaKm2 := (metersPerPixel * metersPerPixel) / 1_000_000

	basinSizes := basinSizeCounts(hydro.BasinID, land)
	sizesSorted := sortedDesc(basinSizes)
	top10 := sizesSorted
	if len(top10) > 10 {
		top10 = top10[:10]
	}
	largestBasin := 0
	if len(sizesSorted) > 0 {
		largestBasin = sizesSorted[0]
	}

	endorheicPixels := 0
	for i, isLand := range land.Data {
		if isLand && hydro.EndorheicMask.Data[i] {
			endorheicPixels++
		}
	}
	numEndorheic := countEndorheicBasins(hydro.SinkID, hydro.EndorheicMask, land)
	meanLakeArea, largestLakeArea := lakeAreaStats(hydro.SinkID, hydro.EndorheicMask, land)

	riverPixels := hydro.River.RiverMask.CountTrue()
	flowData := hydro.FlowAccum.Data

	var sumFlow float64
	maxFlow := float32(0)
	ge10, ge100, ge1000 := 0, 0, 0
	var landFlow []float32
	for i, isLand := range land.Data {
		if !isLand {
			continue
		}
		v := flowData[i]
		sumFlow += float64(v)
		landFlow = append(landFlow, v)
		if v > maxFlow {
			maxFlow = v
		}
		if v >= 10 {
			ge10++
		}
		if v >= 100 {
			ge100++
		}
		if v >= 1000 {
			ge1000++
		}
	}
	meanFlow := 0.0
	if len(landFlow) > 0 {
		meanFlow = sumFlow / float64(len(landFlow))
	}

	regionalEndorheic, tinyEndorheic, tinyArea := classifyEndorheicBasins(hydro.SinkID, hydro.EndorheicMask, land, cellAreaKm2)
	continentalBasins := countContinentalBasins(basinSizes, maskResult.TotalLandPixels)

	sinuosityCount, sinuosityMedian, sinuosityP90 := trunkSinuosity(hydro.River.RiverMask, hydro.FlowDir, land)

	hydroMetrics := HydrologyMetrics{
		RiverPixelCount:                    riverPixels,
		LakePixelCount:                      endorheicPixels,
		MaxFlowAccum:                        float64(maxFlow),
		MeanFlowAccum:                       meanFlow,
		FlowAccumP50:                        float64(raster.Percentile(landFlow, 50)),
		FlowAccumP90:                        float64(raster.Percentile(landFlow, 90)),
		FlowAccumP99:                        float64(raster.Percentile(landFlow, 99)),
		FlowAccumP999:                       float64(raster.Percentile(landFlow, 99.9)),
		FlowCellsGe10:                       ge10,
		FlowCellsGe100:                      ge100,
		FlowCellsGe1000:                     ge1000,
		BasinCountTotal:                     len(basinSizes),
		BasinCountRetained:                  hydro.MergedOutletCount,
		NumOceanOutletsRaw:                  hydro.RawOutletCount,
		NumOceanOutletsMerged:               hydro.MergedOutletCount,
		LargestBasinLandRatio:               ratio(largestBasin, maskResult.TotalLandPixels),
		Top10BasinSizes:                     top10,
		EndorheicLandRatio:                  ratio(endorheicPixels, maskResult.TotalLandPixels),
		NumEndorheicBasins:                  numEndorheic,
		LakeAreaFraction:                    ratio(endorheicPixels, maskResult.TotalLandPixels),
		MeanLakeArea:                        meanLakeArea,
		LargestLakeArea:                     largestLakeArea,
		TrunkSinuositySegmentCount:          sinuosityCount,
		TrunkSinuosityMedian:                sinuosityMedian,
		TrunkSinuosityP90:                   sinuosityP90,
		RegionalEndorheicCountGt10000Km2:    regionalEndorheic,
		ContinentalBasinCountGt1PctLand:     continentalBasins,
		TinyEndorheicBasinCountLt10000Km2:   tinyEndorheic,
		TinyEndorheicAreaRatioLt10000Km2:    tinyArea,
	}

	maxDepth, meanDepth, meanIncisedDepth, pctIncised := incisionStats(geo.Depth, land)
	geoMetrics := Geomorph{
		MaxIncisionDepthM:         maxDepth,
		MeanIncisionDepthM:        meanDepth,
		MeanIncisionDepthIncisedM: meanIncisedDepth,
		PercentLandIncised:        pctIncised,
		PowerScaleValue:           float64(geo.PowerScaleValue),
	}

	return Block{Core: core, Tectonics: tecMetrics, Hydrology: hydroMetrics, Geomorph: geoMetrics}
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

func hypsometricIntegral(height *raster.Grid32, land *raster.GridBool) float64 {
	var minH, maxH float32
	first := true
	var sum float64
	n := 0
	for i, isLand := range land.Data {
		if !isLand {
			continue
		}
		v := height.Data[i]
		if first {
			minH, maxH = v, v
			first = false
		}
		if v < minH {
			minH = v
		}
		if v > maxH {
			maxH = v
		}
		sum += float64(v)
		n++
	}
	if n == 0 || maxH <= minH {
		return 0
	}
	mean := sum / float64(n)
	return (mean - float64(minH)) / float64(maxH-minH)
}

func basinSizeCounts(basinID *raster.GridI32, land *raster.GridBool) map[int32]int {
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

func sortedDesc(counts map[int32]int) []int {
	sizes := make([]int, 0, len(counts))
	for _, c := range counts {
		sizes = append(sizes, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes
}

func countEndorheicBasins(sinkID *raster.GridI32, endorheic *raster.GridBool, land *raster.GridBool) int {
	seen := make(map[int32]bool)
	for i, isLand := range land.Data {
		if isLand && endorheic.Data[i] {
			seen[sinkID.Data[i]] = true
		}
	}
	return len(seen)
}

// lakeAreaStats treats lake_mask = endorheic_mask & land_mask, groups it by
// sink id, and reports the mean and largest sink-component size in pixels,
// grounded on original_source/terrain/hydrology.py's run_hydrology
// (lake_mask, sink_sizes over endo_ids).
func lakeAreaStats(sinkID *raster.GridI32, endorheic *raster.GridBool, land *raster.GridBool) (mean float64, largest int) {
	sizes := make(map[int32]int)
	for i, isLand := range land.Data {
		if isLand && endorheic.Data[i] {
			sizes[sinkID.Data[i]]++
		}
	}
	if len(sizes) == 0 {
		return 0, 0
	}
	sum := 0
	for _, size := range sizes {
		sum += size
		if size > largest {
			largest = size
		}
	}
	return float64(sum) / float64(len(sizes)), largest
}

func classifyEndorheicBasins(sinkID *raster.GridI32, endorheic *raster.GridBool, land *raster.GridBool, cellAreaKm2 float64) (regional, tiny int, tinyAreaRatio float64) {
	sizes := make(map[int32]int)
	for i, isLand := range land.Data {
		if isLand && endorheic.Data[i] {
			sizes[sinkID.Data[i]]++
		}
	}
	totalEndorheicPixels := 0
	tinyPixels := 0
	for _, size := range sizes {
		totalEndorheicPixels += size
		areaKm2 := float64(size) * cellAreaKm2
		if areaKm2 > 10000 {
			regional++
		} else {
			tiny++
			tinyPixels += size
		}
	}
	if totalEndorheicPixels > 0 {
		tinyAreaRatio = float64(tinyPixels) / float64(totalEndorheicPixels)
	}
	return regional, tiny, tinyAreaRatio
}

func countContinentalBasins(sizes map[int32]int, landPixels int) int {
	n := 0
	threshold := float64(landPixels) * 0.01
	for _, s := range sizes {
		if float64(s) > threshold {
			n++
		}
	}
	return n
}

func incisionStats(depth *raster.Grid32, land *raster.GridBool) (maxDepth, meanDepth, meanIncisedDepth, pctIncised float64) {
	var sum, sumIncised float64
	incisedCount := 0
	landCount := 0
	for i, isLand := range land.Data {
		if !isLand {
			continue
		}
		landCount++
		d := float64(depth.Data[i])
		if d > maxDepth {
			maxDepth = d
		}
		sum += d
		if d > 1e-6 {
			incisedCount++
			sumIncised += d
		}
	}
	if landCount > 0 {
		meanDepth = sum / float64(landCount)
		pctIncised = float64(incisedCount) / float64(landCount) * 100
	}
	if incisedCount > 0 {
		meanIncisedDepth = sumIncised / float64(incisedCount)
	}
	return maxDepth, meanDepth, meanIncisedDepth, pctIncised
}

// trunkSinuosity traces each distinct river trunk (cells with no river
// upstream neighbor down to their terminal) and computes path-length over
// straight-line-distance ratios, grounded on
// original_source/terrain/hydrology.py's _compute_trunk_sinuosity.
func trunkSinuosity(river *raster.GridBool, flowDir *raster.GridI8, land *raster.GridBool) (count int, median, p90 float64) {
	w, h := river.W, river.H
	hasUpstream := make([]bool, w*h)
	for i, isRiver := range river.Data {
		if !isRiver {
			continue
		}
		dir := flowDir.Data[i]
		if dir < 0 {
			continue
		}
		x, y := i%w, i/w
		nx, ny, ok := raster.D8Dest(w, h, x, y, int(dir))
		if ok && river.At(nx, ny) {
			hasUpstream[ny*w+nx] = true
		}
	}

	var ratios []float64
	for i, isRiver := range river.Data {
		if !isRiver || hasUpstream[i] {
			continue
		}
		x, y := i%w, i/w
		pathLen := 0.0
		cx, cy := x, y
		steps := 0
		for steps < w*h {
			idx := cy*w + cx
			dir := flowDir.Data[idx]
			if dir < 0 || !river.At(cx, cy) {
				break
			}
			nx, ny, ok := raster.D8Dest(w, h, cx, cy, int(dir))
			if !ok {
				break
			}
			dx, dy := nx-cx, ny-cy
			pathLen += math.Hypot(float64(dx), float64(dy))
			cx, cy = nx, ny
			steps++
			if !river.At(cx, cy) {
				break
			}
		}
		straight := math.Hypot(float64(cx-x), float64(cy-y))
		if straight > 1 && pathLen > 0 {
			ratios = append(ratios, pathLen/straight)
		}
	}

	if len(ratios) == 0 {
		return 0, 0, 0
	}
	sort.Float64s(ratios)
	return len(ratios), percentileF64(ratios, 50), percentileF64(ratios, 90)
}

func percentileF64(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
