package rasterio

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/dantero/continent-gen/internal/genconfig"
	"github.com/dantero/continent-gen/internal/raster"
)

// Hillshade computes a classic azimuth/altitude hillshade from a height
// field's gradient, matching terrain/io.py's hillshade formula.
func Hillshade(height *raster.Grid32, metersPerPixel float64, cfg genconfig.RenderConfig) *raster.Grid32 {
	w, h := height.W, height.H
	out := raster.NewGrid32(w, h)

	azimuth := cfg.HillshadeAzimuthDeg * math.Pi / 180
	altitude := cfg.HillshadeAltitudeDeg * math.Pi / 180
	exaggeration := cfg.HillshadeVerticalExaggeration

	for y := 0; y < h; y++ {
		y0, y1 := maxInt(y-1, 0), minInt(y+1, h-1)
		for x := 0; x < w; x++ {
			x0, x1 := maxInt(x-1, 0), minInt(x+1, w-1)
			dzdx := (float64(height.At(x1, y)) - float64(height.At(x0, y))) * exaggeration / (float64(x1-x0+1) * metersPerPixel)
			dzdy := (float64(height.At(x, y1)) - float64(height.At(x, y0))) * exaggeration / (float64(y1-y0+1) * metersPerPixel)
			slope := math.Atan(math.Hypot(dzdx, dzdy))
			aspect := math.Atan2(dzdy, -dzdx)
			shade := math.Cos(altitude)*math.Cos(slope) + math.Sin(altitude)*math.Sin(slope)*math.Cos(azimuth-aspect)
			if shade < 0 {
				shade = 0
			}
			out.Set(x, y, float32(shade))
		}
	}
	return out
}

// WriteHillshadePNG writes the hillshade as an 8-bit grayscale PNG plus a
// half-resolution thumbnail (scaled with golang.org/x/image/draw), written at
// every debug tier.
func WriteHillshadePNG(path, thumbnailPath string, shade *raster.Grid32) error {
	img := image.NewGray(image.Rect(0, 0, shade.W, shade.H))
	for y := 0; y < shade.H; y++ {
		for x := 0; x < shade.W; x++ {
			v := shade.At(x, y)
			if v > 1 {
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v * 255)})
		}
	}
	if err := encodePNG(path, img); err != nil {
		return err
	}

	thumbW, thumbH := maxInt(shade.W/2, 1), maxInt(shade.H/2, 1)
	thumb := image.NewGray(image.Rect(0, 0, thumbW, thumbH))
	draw.ApproxBiLinear.Scale(thumb, thumb.Bounds(), img, img.Bounds(), draw.Over, nil)
	return encodePNG(thumbnailPath, thumb)
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
