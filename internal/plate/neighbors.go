package plate

// calculateCrust samples the four neighbours of the cell at local (x, y)
// with linear index i. A neighbour's crust is reported only when it is
// strictly lower than the cell itself; higher, equal and out-of-plate
// neighbours report zero. Indices wrap across the buffer edge only when
// the plate spans the whole world on that axis; otherwise an edge
// neighbour's index falls back to the cell itself.
//
// The zero crust at plate edges is what keeps erosion's source finding
// away from them.
func calculateCrust(x, y, i uint32, m []float32, width, height uint32, world WorldDim) (
	wCrust, eCrust, nCrust, sCrust float32, w, e, n, s uint32) {

	wrapX := width == world.W
	wrapY := height == world.H

	w, e, n, s = i, i, i, i
	if x > 0 {
		w = i - 1
	} else if wrapX {
		w = i + width - 1
	}
	if x < width-1 {
		e = i + 1
	} else if wrapX {
		e = i - (width - 1)
	}
	if y > 0 {
		n = i - width
	} else if wrapY {
		n = i + (height-1)*width
	}
	if y < height-1 {
		s = i + width
	} else if wrapY {
		s = i - (height-1)*width
	}

	if w != i && m[w] < m[i] {
		wCrust = m[w]
	}
	if e != i && m[e] < m[i] {
		eCrust = m[e]
	}
	if n != i && m[n] < m[i] {
		nCrust = m[n]
	}
	if s != i && m[s] < m[i] {
		sCrust = m[s]
	}
	return
}
