package raster

import "math"

// DistanceTransform returns, for every cell, the Euclidean distance in
// pixels to the nearest true cell of mask (0 for true cells themselves).
// Uses the Felzenszwalt-Huttenlocher two-pass squared-distance lower-envelope
// algorithm, exact and O(W*H) regardless of radius — preferred per the
// design note over a bounded BFS once radii exceed ~32px.
func DistanceTransform(mask *GridBool) *Grid32 {
	w, h := mask.W, mask.H
	const inf = 1e20
	sq := make([]float64, w*h)
	for i, v := range mask.Data {
		if v {
			sq[i] = 0
		} else {
			sq[i] = inf
		}
	}

	// Column pass.
	col := make([]float64, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = sq[y*w+x]
		}
		d := distance1D(col)
		for y := 0; y < h; y++ {
			sq[y*w+x] = d[y]
		}
	}
	// Row pass.
	row := make([]float64, w)
	for y := 0; y < h; y++ {
		copy(row, sq[y*w:y*w+w])
		d := distance1D(row)
		copy(sq[y*w:y*w+w], d)
	}

	out := NewGrid32(w, h)
	for i, v := range sq {
		out.Data[i] = float32(math.Sqrt(v))
	}
	return out
}

// distance1D computes the lower envelope of parabolas rooted at each sample
// f[q], i.e. the 1D squared-distance transform.
func distance1D(f []float64) []float64 {
	n := len(f)
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)
	k := 0
	v[0] = 0
	z[0] = -1e30
	z[1] = 1e30

	for q := 1; q < n; q++ {
		for {
			s := ((f[q] + float64(q*q)) - (f[v[k]] + float64(v[k]*v[k]))) / float64(2*q-2*v[k])
			if s <= z[k] {
				k--
				continue
			}
			k++
			v[k] = q
			z[k] = s
			z[k+1] = 1e30
			break
		}
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dx := float64(q - v[k])
		d[q] = dx*dx + f[v[k]]
	}
	return d
}
