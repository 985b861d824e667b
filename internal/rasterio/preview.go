package rasterio

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/dantero/continent-gen/internal/raster"
)

// WriteGray16PNG writes a 16-bit grayscale preview of field, percentile-
// normalized to [1st, 99th] as height_16.png's contract requires.
func WriteGray16PNG(path string, field *raster.Grid32) error {
	lo := raster.Percentile(field.Data, 1)
	hi := raster.Percentile(field.Data, 99)
	span := hi - lo
	if span <= 1e-6 {
		span = 1
	}

	img := image.NewGray16(image.Rect(0, 0, field.W, field.H))
	for y := 0; y < field.H; y++ {
		for x := 0; x < field.W; x++ {
			v := (field.At(x, y) - lo) / span
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(v * 65535)})
		}
	}
	return encodePNG(path, img)
}

// WriteGray8PNG writes an 8-bit grayscale preview of a [0,1]-normalized
// field, used for debug rasters.
func WriteGray8PNG(path string, field *raster.Grid32, normalize bool) error {
	img := image.NewGray(image.Rect(0, 0, field.W, field.H))
	lo, span := float32(0), float32(1)
	if normalize {
		l := raster.Percentile(field.Data, 1)
		h := raster.Percentile(field.Data, 99)
		lo = l
		if h-l > 1e-6 {
			span = h - l
		}
	}
	for y := 0; y < field.H; y++ {
		for x := 0; x < field.W; x++ {
			v := (field.At(x, y) - lo) / span
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v * 255)})
		}
	}
	return encodePNG(path, img)
}

// WriteMaskPNG writes a boolean mask as a black/white 8-bit PNG.
func WriteMaskPNG(path string, mask *raster.GridBool) error {
	img := image.NewGray(image.Rect(0, 0, mask.W, mask.H))
	for y := 0; y < mask.H; y++ {
		for x := 0; x < mask.W; x++ {
			v := uint8(0)
			if mask.At(x, y) {
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return encodePNG(path, img)
}

func encodePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
