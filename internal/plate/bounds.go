package plate

// Bounds is the plate's current rectangle inside the world: a fractional
// top-left world position plus integer buffer extents.
type Bounds struct {
	world  WorldDim
	x0, y0 float64
	w, h   uint32
}

// NewBounds places a w*h rectangle at world position (x, y).
func NewBounds(world WorldDim, x, y float64, w, h uint32) *Bounds {
	b := &Bounds{world: world, w: w, h: h}
	b.x0, b.y0 = world.NormalizeF(x, y)
	return b
}

// Left returns the fractional left edge in world coordinates.
func (b *Bounds) Left() float64 { return b.x0 }

// Top returns the fractional top edge in world coordinates.
func (b *Bounds) Top() float64 { return b.y0 }

// LeftAsUint returns the floored left edge.
func (b *Bounds) LeftAsUint() uint32 { return uint32(b.x0) }

// TopAsUint returns the floored top edge.
func (b *Bounds) TopAsUint() uint32 { return uint32(b.y0) }

// RightAsUint returns the rightmost column still inside the plate.
// The value is not wrapped and may reach past the world seam.
func (b *Bounds) RightAsUint() uint32 { return b.LeftAsUint() + b.w - 1 }

// BottomAsUint returns the bottommost row still inside the plate.
func (b *Bounds) BottomAsUint() uint32 { return b.TopAsUint() + b.h - 1 }

// Width returns the buffer width.
func (b *Bounds) Width() uint32 { return b.w }

// Height returns the buffer height.
func (b *Bounds) Height() uint32 { return b.h }

// Area returns the number of cells in the buffer.
func (b *Bounds) Area() uint32 { return b.w * b.h }

// Shift moves the rectangle by (dx, dy), keeping sub-pixel fractions and
// wrapping the position back into the world.
func (b *Bounds) Shift(dx, dy float64) {
	b.x0, b.y0 = b.world.NormalizeF(b.x0+dx, b.y0+dy)
}

// Grow expands the extents. The caller is responsible for reallocating and
// copying any buffers indexed through these bounds.
func (b *Bounds) Grow(dw, dh uint32) {
	b.w += dw
	b.h += dh
	if b.w > b.world.W || b.h > b.world.H {
		panic("plate bounds grown past the world")
	}
}

// MapIndex resolves world coordinates against the rectangle, wrapping across
// the world seam on either axis when the rectangle crosses it. It returns the
// local coordinates and linear index, with ok=false when the point lies
// outside the plate.
func (b *Bounds) MapIndex(x, y uint32) (lx, ly, idx uint32, ok bool) {
	x, y = b.world.Normalize(x, y)

	ilft, itop := b.LeftAsUint(), b.TopAsUint()
	irgt, ibtm := ilft+b.w, itop+b.h

	okX := x >= ilft && x < irgt
	if !okX && x+b.world.W >= ilft && x+b.world.W < irgt {
		x += b.world.W
		okX = true
	}
	okY := y >= itop && y < ibtm
	if !okY && y+b.world.H >= itop && y+b.world.H < ibtm {
		y += b.world.H
		okY = true
	}
	if !okX || !okY {
		return 0, 0, 0, false
	}
	lx, ly = x-ilft, y-itop
	return lx, ly, ly*b.w + lx, true
}

// ValidMapIndex is MapIndex for coordinates guaranteed to hit the plate.
// A miss is an engine bug, not a user error.
func (b *Bounds) ValidMapIndex(x, y uint32) (lx, ly, idx uint32) {
	lx, ly, idx, ok := b.MapIndex(x, y)
	if !ok {
		panic("coordinate guaranteed inside the plate resolved outside it")
	}
	return lx, ly, idx
}

// InLimits reports whether fractional local coordinates fall inside the
// buffer.
func (b *Bounds) InLimits(fx, fy float64) bool {
	return fx >= 0 && fy >= 0 && uint32(fx) < b.w && uint32(fy) < b.h
}

// Index converts fractional local coordinates to a linear index. The caller
// has already checked InLimits.
func (b *Bounds) Index(fx, fy float64) uint32 {
	return uint32(fy)*b.w + uint32(fx)
}
