package hydrology

import (
	"math"
	"sort"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/raster"
)

// OutletPoint is a merged ocean outlet's representative location.
type OutletPoint struct {
	Y, X     int
	MergedID int32
}

// mergeOceanOutlets clusters raw ocean-outlet flat indices by tile-grid
// quotient, then collapses small basins into the nearest surviving large
// basin, compacting ids to 1..M. Grounded on
// original_source/terrain/hydrology.py's _merge_ocean_outlets.
func mergeOceanOutlets(w, h int, oceanOutlet, basinID *raster.GridI32, land *raster.GridBool, cfg genconfig.HydrologyConfig) (*raster.GridI32, []OutletPoint, int, int) {
	counts := basinPixelCounts(basinID, land)
	rawCount := len(counts)

	tileSize := cfg.OutletMergeRadiusPx
	if tileSize < 1 {
		tileSize = 1
	}

	type cluster struct {
		ids       []int32
		sumY, sumX float64
		n         int
	}
	tileClusters := make(map[[2]int]*cluster)
	basinToTile := make(map[int32][2]int)

	for i, isLand := range land.Data {
		if !isLand {
			continue
		}
		bid := basinID.Data[i]
		if bid <= 0 {
			continue
		}
		if _, seen := basinToTile[bid]; seen {
			continue
		}
		outletIdx := oceanOutlet.Data[i]
		if outletIdx < 0 {
			continue
		}
		oy, ox := int(outletIdx)/w, int(outletIdx)%w
		tile := [2]int{int(float64(oy) / tileSize), int(float64(ox) / tileSize)}
		basinToTile[bid] = tile
		c, ok := tileClusters[tile]
		if !ok {
			c = &cluster{}
			tileClusters[tile] = c
		}
		c.ids = append(c.ids, bid)
		c.sumY += float64(oy)
		c.sumX += float64(ox)
		c.n++
	}

	merged := raster.NewGridI32(w, h, 0)
	tileCoords := make(map[[2]int][2]float64)
	tileSizes := make(map[[2]int]int)
	basinTileKey := make(map[int32][2]int)
	for tile, c := range tileClusters {
		tileCoords[tile] = [2]float64{c.sumY / float64(c.n), c.sumX / float64(c.n)}
		size := 0
		for _, bid := range c.ids {
			size += counts[bid]
			basinTileKey[bid] = tile
		}
		tileSizes[tile] = size
	}

	var survivors [][2]int
	for tile, size := range tileSizes {
		if size >= cfg.OutletMinBasinPixels {
			survivors = append(survivors, tile)
		}
	}
	sort.Slice(survivors, func(i, j int) bool {
		a, b := survivors[i], survivors[j]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		return a[1] < b[1]
	})
	if len(survivors) == 0 {
		best := [2]int{}
		bestSize := -1
		var keys [][2]int
		for t := range tileSizes {
			keys = append(keys, t)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i][0] != keys[j][0] {
				return keys[i][0] < keys[j][0]
			}
			return keys[i][1] < keys[j][1]
		})
		for _, t := range keys {
			if tileSizes[t] > bestSize {
				bestSize = tileSizes[t]
				best = t
			}
		}
		if bestSize >= 0 {
			survivors = [][2]int{best}
		}
	}

	survivorIndex := make(map[[2]int]int32)
	for i, t := range survivors {
		survivorIndex[t] = int32(i + 1)
	}

	nearestSurvivor := func(tile [2]int) int32 {
		if id, ok := survivorIndex[tile]; ok {
			return id
		}
		coord, ok := tileCoords[tile]
		if !ok {
			if len(survivors) > 0 {
				return survivorIndex[survivors[0]]
			}
			return 0
		}
		best := int32(0)
		bestDist := math.MaxFloat64
		for _, t := range survivors {
			oc := tileCoords[t]
			d := math.Hypot(oc[0]-coord[0], oc[1]-coord[1])
			if d < bestDist {
				bestDist = d
				best = survivorIndex[t]
			}
		}
		return best
	}

	for i, isLand := range land.Data {
		if !isLand {
			continue
		}
		bid := basinID.Data[i]
		if bid <= 0 {
			merged.Data[i] = 0
			continue
		}
		tile, ok := basinTileKey[bid]
		if !ok {
			merged.Data[i] = 0
			continue
		}
		merged.Data[i] = nearestSurvivor(tile)
	}

	var outlets []OutletPoint
	for i, t := range survivors {
		coord := tileCoords[t]
		outlets = append(outlets, OutletPoint{Y: int(coord[0]), X: int(coord[1]), MergedID: int32(i + 1)})
	}

	return merged, outlets, rawCount, len(survivors)
}
