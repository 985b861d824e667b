package pipeline

import (
	"fmt"
	"math"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/geomorph"
	"github.com/dantero/continent-gen/internal/heightfield"
	"github.com/dantero/continent-gen/internal/hydrology"
	"github.com/dantero/continent-gen/internal/mask"
	"github.com/dantero/continent-gen/internal/metrics"
	"github.com/dantero/continent-gen/internal/raster"
	"github.com/dantero/continent-gen/internal/rng"
	"github.com/dantero/continent-gen/internal/seedgen"
	"github.com/dantero/continent-gen/internal/tectonics"
)

// Result is the complete output of one generation run.
type Result struct {
	Seed      seedgen.ParsedSeed
	Config    genconfig.Config
	Mask      mask.Result
	Tectonics tectonics.Result
	Height    heightfield.Result
	Hydrology hydrology.Result
	Geomorph  geomorph.Result
	Metrics   metrics.Block
}

// Generate parses seed and runs the full pipeline with config, validating
// §8's invariants at each stage boundary and returning an *InvariantError
// on violation.
func Generate(seed string, width, height int, metersPerPixel float64, cfg genconfig.Config) (Result, error) {
	if width <= 0 || height <= 0 {
		return Result{}, NewUserError("width and height must be positive, got %dx%d", width, height)
	}
	if metersPerPixel <= 0 {
		return Result{}, NewUserError("meters-per-pixel must be positive, got %v", metersPerPixel)
	}

	parsed, err := seedgen.Parse(seed)
	if err != nil {
		return Result{}, NewUserError("%s", err.Error())
	}

	root := rng.NewRootStream(parsed.SeedHash)

	maskResult := mask.Generate(width, height, root.MustFork("mask"), cfg.Mask)
	if maskResult.LandFraction < cfg.Mask.MinLandFraction || maskResult.LandFraction > cfg.Mask.MaxLandFraction {
		return Result{}, NewInvariantError("mask", "land_fraction %.4f outside [%.4f, %.4f]",
			maskResult.LandFraction, cfg.Mask.MinLandFraction, cfg.Mask.MaxLandFraction)
	}

	tec := tectonics.Generate(width, height, maskResult.Land, root.MustFork("tectonics"), cfg.Tectonics)

	heightResult := heightfield.Compose(width, height, maskResult, tec, root.MustFork("heightfield"), cfg.HeightGen)
	if err := checkFinite(heightResult.Height); err != nil {
		return Result{}, NewInvariantError("heightfield", "%s", err.Error())
	}
	if err := checkBounds(heightResult.Height, -cfg.HeightGen.MaxOceanDepthM, cfg.HeightGen.MaxLandHeightM); err != nil {
		return Result{}, NewInvariantError("heightfield", "%s", err.Error())
	}

	hydro := hydrology.Run(heightResult.Height, maskResult.Land, root.MustFork("hydrology"), cfg.Hydrology)
	if err := checkFlowInvariants(hydro.FlowAccum, maskResult.Land); err != nil {
		return Result{}, NewInvariantError("hydrology", "%s", err.Error())
	}
	if err := checkDownhill(hydro.Height, hydro.FlowDir, hydro.River.RiverMask); err != nil {
		return Result{}, NewInvariantError("hydrology", "%s", err.Error())
	}

	geo := geomorph.Incise(hydro, maskResult.Land, metersPerPixel, cfg.Geomorph)
	if err := checkNonInversion(hydro.Height, geo.Height, maskResult.Land); err != nil {
		return Result{}, NewInvariantError("geomorph", "%s", err.Error())
	}

	metricsBlock := metrics.Assemble(maskResult, tec, hydro, geo, maskResult.Land, metersPerPixel)

	return Result{
		Seed:      parsed,
		Config:    cfg,
		Mask:      maskResult,
		Tectonics: tec,
		Height:    heightResult,
		Hydrology: hydro,
		Geomorph:  geo,
		Metrics:   metricsBlock,
	}, nil
}

func checkFinite(field *raster.Grid32) error {
	for _, v := range field.Data {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return fmt.Errorf("non-finite value in height raster")
		}
	}
	return nil
}

func checkBounds(field *raster.Grid32, lo, hi float64) error {
	for _, v := range field.Data {
		if float64(v) < lo-1e-3 || float64(v) > hi+1e-3 {
			return fmt.Errorf("height value %v outside [%v, %v]", v, lo, hi)
		}
	}
	return nil
}

func checkFlowInvariants(flowAccum *raster.Grid32, land *raster.GridBool) error {
	var landCount, positiveCount int
	var sum float64
	var maxV float32
	for i, isLand := range land.Data {
		if !isLand {
			continue
		}
		v := flowAccum.Data[i]
		if v < 1 {
			return fmt.Errorf("flow accumulator below 1 on land cell")
		}
		landCount++
		sum += float64(v)
		if v > 0 {
			positiveCount++
		}
		if v > maxV {
			maxV = v
		}
	}
	if landCount == 0 {
		return nil
	}
	if float64(positiveCount)/float64(landCount) < 0.98 {
		return fmt.Errorf("fewer than 98%% of land cells have positive flow accumulation")
	}
	mean := sum / float64(landCount)
	if float64(maxV) <= 10*mean {
		return fmt.Errorf("flow_accum heavy-tail check failed: max <= 10*mean")
	}
	return nil
}

// checkDownhill asserts downhill routing (downstream cell at most 1e-4 m
// higher) for river cells only,
// matching original_source/terrain/hydrology.py's
// assert_downhill_river_routing: lake leveling can lower a non-river lake
// cell below an upstream non-river neighbor without that being a routing
// defect, so the check is scoped to the river mask rather than all land.
func checkDownhill(height *raster.Grid32, flowDir *raster.GridI8, river *raster.GridBool) error {
	w, h := height.W, height.H
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !river.Data[idx] {
				continue
			}
			dir := flowDir.Data[idx]
			if dir < 0 {
				continue
			}
			nx, ny, ok := raster.D8Dest(w, h, x, y, int(dir))
			if !ok {
				continue
			}
			if height.At(nx, ny) > height.At(x, y)+1e-4 {
				return fmt.Errorf("downhill flow violation")
			}
		}
	}
	return nil
}

func checkNonInversion(hydroHeight, geoHeight *raster.Grid32, land *raster.GridBool) error {
	for i, isLand := range land.Data {
		if !isLand {
			continue
		}
		if hydroHeight.Data[i]-geoHeight.Data[i] < -1e-4 {
			return fmt.Errorf("geomorph incision lifted terrain")
		}
	}
	return nil
}
