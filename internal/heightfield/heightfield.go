// Package heightfield composes the pre-hydrology elevation raster from the
// land mask, tectonic fields, and broad continental/noise terms. Grounded on
// original_source/terrain/heightfield.py's orchestration shape (RNG fork
// layout, continentality/background-uplift/dome-lift terms).
package heightfield

import (
	"math"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/mask"
	"github.com/dantero/continent-gen/internal/noise"
	"github.com/dantero/continent-gen/internal/raster"
	"github.com/dantero/continent-gen/internal/rng"
	"github.com/dantero/continent-gen/internal/tectonics"
)

// Result holds the composed pre-hydrology height field plus the
// intermediate terms downstream stages and debug previews need.
type Result struct {
	Height            *raster.Grid32
	Continentality    *raster.Grid32
	BackgroundUplift  *raster.Grid32
	DistanceToOceanPx *raster.Grid32
	DetailNoise       *raster.Grid32
}

// Compose builds h_tectonic for a W×H grid from the land mask and tectonic
// scaffold.
func Compose(w, h int, maskResult mask.Result, tec tectonics.Result, parent rng.Stream, cfg genconfig.HeightConfig) Result {
	distToOcean := raster.DistanceTransform(invert(maskResult.Land))
	distToLand := raster.DistanceTransform(maskResult.Land)

	continentality := normalizeDistance(distToOcean, 48)
	backgroundUplift := buildBackgroundUplift(w, h, parent, cfg)
	detail := buildDetailNoise(w, h, parent)

	out := raster.NewGrid32(w, h)
	threshold := maskResult.Threshold
	if threshold <= 0 {
		threshold = 0.5
	}

	for i := 0; i < w*h; i++ {
		land := maskResult.Land.Data[i]
		pot := maskResult.Potential.Data[i]
		crust := tec.CrustThickness.Data[i]
		basinTerm := tec.InteriorBasin.Data[i]
		stress := tec.StressField.Data[i]
		orogeny := tec.OrogenyField.Data[i]
		transform := tec.TransformField.Data[i]
		rift := tec.RiftField.Data[i]
		collision := tec.CollisionBuffer.Data[i]
		shelf := tec.ShelfProximity.Data[i]

		if land {
			v := float32(cfg.BaseLandLiftM) +
				continentality.Data[i]*float32(cfg.ContinentalityHeightM) +
				backgroundUplift.Data[i]*float32(cfg.RidgeHeightM) +
				crust*float32(cfg.CrustHeightM) +
				basinTerm*float32(cfg.BasinHeightM) +
				stress*float32(cfg.StressUpliftM) +
				orogeny*float32(cfg.OrogenyStrengthM) +
				transform*float32(cfg.TransformStrengthM) -
				rift*float32(cfg.RiftStrengthM) -
				basinTerm*float32(cfg.InteriorBasinStrengthM)

			v *= 1 - float32(cfg.CollisionDamping)*collision

			domeLift := distToOcean.Data[i] * float32(cfg.DomeLiftCoefficient)
			v += domeLift

			v += detail.Data[i] * float32(cfg.DetailAmplitudeM)

			if v > float32(cfg.MaxLandHeightM) {
				v = float32(cfg.MaxLandHeightM)
			}
			if v < 0 {
				v = 0
			}
			out.Data[i] = v
			continue
		}

		oceanDepth := normDist01(distToLand.Data[i], 64)
		shelfTerm := powf(1-shelf, float32(cfg.ShelfDepthPower))
		thresholdTerm := (threshold - pot) / threshold
		if thresholdTerm < 0 {
			thresholdTerm = 0
		}
		depthFactor := thresholdTerm*float32(1-cfg.OceanShelfBlend) + shelfTerm*float32(cfg.OceanShelfBlend)

		v := -depthFactor*float32(cfg.OceanDepthFactorM)*oceanDepth -
			rift*(1-shelf)*float32(cfg.RiftStrengthM)*0.18

		if v < -float32(cfg.MaxOceanDepthM) {
			v = -float32(cfg.MaxOceanDepthM)
		}
		if v > 0 {
			v = 0
		}
		out.Data[i] = v
	}

	return Result{
		Height:            out,
		Continentality:    continentality,
		BackgroundUplift:  backgroundUplift,
		DistanceToOceanPx: distToOcean,
		DetailNoise:       detail,
	}
}

// buildBackgroundUplift is a broad low-frequency fBm standing in for
// continent-scale swell/basin structure independent of plate boundaries.
func buildBackgroundUplift(w, h int, parent rng.Stream, cfg genconfig.HeightConfig) *raster.Grid32 {
	fork := parent.MustFork("background-uplift")
	field := noise.FBm(w, h, 3, 4, fork.Generator())
	return raster.Normalize01(field)
}

func buildDetailNoise(w, h int, parent rng.Stream) *raster.Grid32 {
	fork := parent.MustFork("height-detail")
	field := noise.FBm(w, h, 12, 5, fork.Generator())
	return field
}

func invert(mask *raster.GridBool) *raster.GridBool {
	out := raster.NewGridBool(mask.W, mask.H)
	for i, v := range mask.Data {
		out.Data[i] = !v
	}
	return out
}

// normalizeDistance maps a distance-in-pixels field to [0,1] via
// 1-exp(-d/scale), saturating smoothly rather than clipping hard.
func normalizeDistance(dist *raster.Grid32, scalePx float32) *raster.Grid32 {
	out := raster.NewGrid32(dist.W, dist.H)
	for i, d := range dist.Data {
		out.Data[i] = 1 - expf(-d/scalePx)
	}
	return out
}

func normDist01(d float32, scalePx float32) float32 {
	return 1 - expf(-d/scalePx)
}

func expf(v float32) float32  { return float32(math.Exp(float64(v))) }
func powf(v, p float32) float32 { return float32(math.Pow(float64(v), float64(p))) }
