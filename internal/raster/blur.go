package raster

// BoxBlur approximates a Gaussian blur with repeated separable box-blur
// passes, computed via cumulative sums so each pass is O(W*H) regardless of
// radius. Edge-clamped (replicated border), matching the reference
// implementation's "edge" padding mode.
func BoxBlur(field *Grid32, radius, passes int) *Grid32 {
	if radius <= 0 {
		return field.Clone()
	}
	if passes < 1 {
		passes = 1
	}
	result := field.Clone()
	for p := 0; p < passes; p++ {
		result = boxBlurAxis(result, radius, true)
		result = boxBlurAxis(result, radius, false)
	}
	return result
}

// boxBlurAxis blurs along rows (horizontal=true) or columns (horizontal=false).
func boxBlurAxis(field *Grid32, radius int, horizontal bool) *Grid32 {
	w, h := field.W, field.H
	out := NewGrid32(w, h)
	kernel := float32(2*radius + 1)

	if horizontal {
		for y := 0; y < h; y++ {
			line := make([]float32, w+2*radius)
			for x := 0; x < w+2*radius; x++ {
				sx := x - radius
				if sx < 0 {
					sx = 0
				}
				if sx >= w {
					sx = w - 1
				}
				line[x] = field.At(sx, y)
			}
			csum := make([]float32, len(line)+1)
			for i, v := range line {
				csum[i+1] = csum[i] + v
			}
			for x := 0; x < w; x++ {
				sum := csum[x+2*radius+1] - csum[x]
				out.Set(x, y, sum/kernel)
			}
		}
		return out
	}

	for x := 0; x < w; x++ {
		col := make([]float32, h+2*radius)
		for y := 0; y < h+2*radius; y++ {
			sy := y - radius
			if sy < 0 {
				sy = 0
			}
			if sy >= h {
				sy = h - 1
			}
			col[y] = field.At(x, sy)
		}
		csum := make([]float32, len(col)+1)
		for i, v := range col {
			csum[i+1] = csum[i] + v
		}
		for y := 0; y < h; y++ {
			sum := csum[y+2*radius+1] - csum[y]
			out.Set(x, y, sum/kernel)
		}
	}
	return out
}
