package raster

// ConnectedComponents labels 8-connected true regions of mask using an
// explicit stack-based flood fill (no recursion, no queue library), matching
// the reference implementation's approach of avoiding a disjoint-set or BFS
// library that isn't present anywhere in the example pack. Returns a label
// grid (0 = background, 1..N = component id) and each component's pixel
// count indexed by label-1.
func ConnectedComponents(mask *GridBool) (labels *GridI32, sizes []int) {
	w, h := mask.W, mask.H
	labels = NewGridI32(w, h, 0)
	visited := make([]bool, w*h)
	var stack []int

	nextLabel := int32(0)
	for startIdx := 0; startIdx < w*h; startIdx++ {
		if visited[startIdx] || !mask.Data[startIdx] {
			continue
		}
		nextLabel++
		size := 0
		stack = append(stack[:0], startIdx)
		visited[startIdx] = true
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			labels.Data[idx] = nextLabel
			size++
			x, y := idx%w, idx/w
			for _, d := range D8 {
				nx, ny := x+d[1], y+d[0]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				nidx := ny*w + nx
				if visited[nidx] || !mask.Data[nidx] {
					continue
				}
				visited[nidx] = true
				stack = append(stack, nidx)
			}
		}
		sizes = append(sizes, size)
	}
	return labels, sizes
}
