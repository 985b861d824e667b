// Package noise implements the deterministic lattice value-noise primitives
// the rest of the pipeline composes into fBm fields, domain warps, and
// plate-boundary textures. All math is float32 with left-to-right octave
// accumulation: mixing in float64 anywhere along a bit-exact-compared path
// is forbidden.
package noise

import (
	"math"

	"github.com/dantero/continent-gen/internal/raster"
	"github.com/dantero/continent-gen/internal/rng"
)

func smoothstep(t float32) float32 {
	return t * t * (3 - 2*t)
}

// ValueNoise2D draws a (resY+1)x(resX+1) lattice of uniform [-1,1] values
// from gen and returns a W×H field interpolated with smoothstep-weighted
// bilinear blending.
func ValueNoise2D(w, h, resX, resY int, gen *rng.PCG64) *raster.Grid32 {
	if resX < 1 {
		resX = 1
	}
	if resY < 1 {
		resY = 1
	}
	latticeW, latticeH := resX+1, resY+1
	lattice := make([]float32, latticeW*latticeH)
	for i := range lattice {
		lattice[i] = gen.UniformSigned()
	}

	out := raster.NewGrid32(w, h)
	for y := 0; y < h; y++ {
		sy := float32(y) / float32(maxInt(h-1, 1)) * float32(resY)
		y0 := int(math.Floor(float64(sy)))
		if y0 >= resY {
			y0 = resY - 1
		}
		fy := smoothstep(sy - float32(y0))
		for x := 0; x < w; x++ {
			sx := float32(x) / float32(maxInt(w-1, 1)) * float32(resX)
			x0 := int(math.Floor(float64(sx)))
			if x0 >= resX {
				x0 = resX - 1
			}
			fx := smoothstep(sx - float32(x0))

			v00 := lattice[y0*latticeW+x0]
			v10 := lattice[y0*latticeW+x0+1]
			v01 := lattice[(y0+1)*latticeW+x0]
			v11 := lattice[(y0+1)*latticeW+x0+1]

			i0 := v00 + (v10-v00)*fx
			i1 := v01 + (v11-v01)*fx
			out.Set(x, y, i0+(i1-i0)*fy)
		}
	}
	return out
}

// FBm sums octaves of ValueNoise2D at geometric frequency lacunarity=2 and
// amplitude gain=0.5, normalized by total amplitude. Base lattice resolution
// uses the field's aspect ratio (resX = round(resY*aspect)).
func FBm(w, h, baseRes, octaves int, gen *rng.PCG64) *raster.Grid32 {
	aspect := float64(w) / float64(h)
	out := raster.NewGrid32(w, h)
	var totalAmplitude float32
	amplitude := float32(1.0)
	freq := 1
	for o := 0; o < octaves; o++ {
		resY := roundInt(float64(baseRes*freq))
		if resY < 1 {
			resY = 1
		}
		resX := roundInt(float64(resY) * aspect)
		if resX < 1 {
			resX = 1
		}
		layer := ValueNoise2D(w, h, resX, resY, gen)
		for i, v := range layer.Data {
			out.Data[i] += v * amplitude
		}
		totalAmplitude += amplitude
		amplitude *= 0.5
		freq *= 2
	}
	if totalAmplitude > 0 {
		inv := 1 / totalAmplitude
		for i := range out.Data {
			out.Data[i] *= inv
		}
	}
	return out
}

// BilinearSample samples field at continuous coordinates, clamped to
// [0, W-1.001] x [0, H-1.001].
func BilinearSample(field *raster.Grid32, x, y float32) float32 {
	maxX := float32(field.W) - 1.001
	maxY := float32(field.H) - 1.001
	if x < 0 {
		x = 0
	}
	if x > maxX {
		x = maxX
	}
	if y < 0 {
		y = 0
	}
	if y > maxY {
		y = maxY
	}
	x0 := int(x)
	y0 := int(y)
	x1, y1 := x0+1, y0+1
	if x1 >= field.W {
		x1 = field.W - 1
	}
	if y1 >= field.H {
		y1 = field.H - 1
	}
	fx := x - float32(x0)
	fy := y - float32(y0)

	v00 := field.At(x0, y0)
	v10 := field.At(x1, y0)
	v01 := field.At(x0, y1)
	v11 := field.At(x1, y1)

	i0 := v00 + (v10-v00)*fx
	i1 := v01 + (v11-v01)*fx
	return i0 + (i1-i0)*fy
}

// WarpField displaces each output pixel by (dx,dy)*strengthPx sampled from
// the warpX/warpY fields, then resamples field there.
func WarpField(field, warpX, warpY *raster.Grid32, strengthPx float32) *raster.Grid32 {
	out := raster.NewGrid32(field.W, field.H)
	for y := 0; y < field.H; y++ {
		for x := 0; x < field.W; x++ {
			dx := warpX.At(x, y)
			dy := warpY.At(x, y)
			out.Set(x, y, BilinearSample(field, float32(x)+dx*strengthPx, float32(y)+dy*strengthPx))
		}
	}
	return out
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
