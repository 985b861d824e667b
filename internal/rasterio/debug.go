package rasterio

import (
	"path/filepath"

	"github.com/dantero/continent-gen/internal/mask"
	"github.com/dantero/continent-gen/internal/raster"
	"github.com/dantero/continent-gen/internal/tectonics"
)

// WriteDebugPreviews writes the tier-gated debug raster family from
// original_source/cli/main.py: tier 0 writes nothing here (height/mask/
// hillshade are written unconditionally elsewhere), tier 1 adds nothing
// beyond that baseline, tier 2 adds the full plate/tectonic preview set.
func WriteDebugPreviews(dir string, tier int, maskResult mask.Result, tec tectonics.Result) error {
	if tier < 2 {
		return nil
	}

	type namedField struct {
		name   string
		write  func(string) error
	}

	plateIDsFloat := intGridToFloat(tec.PlateIDs)

	fields := []namedField{
		{"debug_potential.png", func(p string) error { return WriteGray8PNG(p, maskResult.Potential, true) }},
		{"debug_uplift.png", func(p string) error { return WriteGray8PNG(p, tec.CrustThickness, true) }},
		{"debug_plates.png", func(p string) error { return WriteGray8PNG(p, plateIDsFloat, true) }},
		{"debug_warped_plates.png", func(p string) error { return WriteGray8PNG(p, plateIDsFloat, true) }},
		{"debug_boundary_warp_map.png", func(p string) error { return WriteMaskPNG(p, tec.BoundaryMask) }},
		{"debug_boundary_type.png", func(p string) error { return writeBoundaryTypePNG(p, tec) }},
		{"debug_convergence.png", func(p string) error { return WriteGray8PNG(p, tec.Convergence, true) }},
		{"debug_rift.png", func(p string) error { return WriteGray8PNG(p, tec.RiftField, false) }},
		{"debug_transform.png", func(p string) error { return WriteGray8PNG(p, tec.TransformField, false) }},
		{"debug_crust.png", func(p string) error { return WriteGray8PNG(p, tec.CrustThickness, false) }},
		{"debug_orogeny.png", func(p string) error { return WriteGray8PNG(p, tec.OrogenyField, false) }},
	}

	for _, f := range fields {
		if err := f.write(filepath.Join(dir, f.name)); err != nil {
			return err
		}
	}
	return nil
}

// writeBoundaryTypePNG renders boundary_type (0..3) as evenly spaced gray
// levels so none/convergent/divergent/transform are visually distinct.
func writeBoundaryTypePNG(path string, tec tectonics.Result) error {
	field := raster.NewGrid32(tec.BoundaryType.W, tec.BoundaryType.H)
	for i, v := range tec.BoundaryType.Data {
		field.Data[i] = float32(v) / 3
	}
	return WriteGray8PNG(path, field, false)
}

// intGridToFloat converts an int32 raster to float32 for grayscale preview
// rendering (plate ids have no inherent magnitude, so this is only ever
// used with percentile normalization).
func intGridToFloat(g *raster.GridI32) *raster.Grid32 {
	out := raster.NewGrid32(g.W, g.H)
	for i, v := range g.Data {
		out.Data[i] = float32(v)
	}
	return out
}
