package plate

// ContinentBase is the minimum crust thickness of continental crust.
// Cells at or above it join continents during flood fill.
const ContinentBase float32 = 1.0

// segmentCreator grows new continents by 4-connected flood fill over
// cells with continental crust. It sees the plate through its bounds,
// height buffer and world dimension only.
type segmentCreator struct {
	world    WorldDim
	bounds   *Bounds
	segments *Segments
	height   *HeightMap
}

// neighborSegment looks for an already-labelled continent adjacent to the
// origin cell. Joining it avoids a one-cell fill.
func (c *segmentCreator) neighborSegment(x, y, originIndex, id uint32) uint32 {
	w, h := c.bounds.Width(), c.bounds.Height()
	m := c.height.Data()
	ids := c.segments

	if x > 0 && m[originIndex-1] >= ContinentBase && ids.ID(originIndex-1) < id {
		return ids.ID(originIndex - 1)
	}
	if x < w-1 && m[originIndex+1] >= ContinentBase && ids.ID(originIndex+1) < id {
		return ids.ID(originIndex + 1)
	}
	if y > 0 && m[originIndex-w] >= ContinentBase && ids.ID(originIndex-w) < id {
		return ids.ID(originIndex - w)
	}
	if y < h-1 && m[originIndex+w] >= ContinentBase && ids.ID(originIndex+w) < id {
		return ids.ID(originIndex + w)
	}
	return id
}

// CreateSegment labels the connected continental region containing local
// (x, y) and returns its id. A cell next to an already-labelled
// continental cell joins that continent. Otherwise the cell founds a new
// continent whatever its own height, and the fill spreads from it through
// neighbours at or above ContinentBase; a cell below ContinentBase with no
// continental neighbours becomes a single-cell continent of its own.
func (c *segmentCreator) CreateSegment(x, y uint32) uint32 {
	w, h := c.bounds.Width(), c.bounds.Height()
	originIndex := y*w + x
	id := c.segments.Len()

	if existing := c.segments.ID(originIndex); existing < id {
		return existing
	}

	if nbour := c.neighborSegment(x, y, originIndex, id); nbour < id {
		c.segments.SetID(originIndex, nbour)
		data := c.segments.Data(nbour)
		data.IncArea()
		data.EnlargeToContain(x, y)
		return nbour
	}

	// Wrapping across the buffer edge is legal only when the plate spans
	// the whole world on that axis.
	wrapX := w == c.world.W
	wrapY := h == c.world.H
	m := c.height.Data()

	data := NewSegmentData(x, y)
	data.IncArea()
	c.segments.SetID(originIndex, id)

	stack := []uint32{originIndex}
	push := func(i uint32) {
		if c.segments.ID(i) == UnassignedSegment && m[i] >= ContinentBase {
			c.segments.SetID(i, id)
			data.IncArea()
			data.EnlargeToContain(i%w, i/w)
			stack = append(stack, i)
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cx, cy := i%w, i/w

		if cx > 0 {
			push(i - 1)
		} else if wrapX {
			push(i + w - 1)
		}
		if cx < w-1 {
			push(i + 1)
		} else if wrapX {
			push(i - (w - 1))
		}
		if cy > 0 {
			push(i - w)
		} else if wrapY {
			push(i + (h-1)*w)
		}
		if cy < h-1 {
			push(i + w)
		} else if wrapY {
			push(i - (h-1)*w)
		}
	}

	created := c.segments.Add(data)
	if created != id {
		panic("segment table changed during flood fill")
	}
	return id
}
