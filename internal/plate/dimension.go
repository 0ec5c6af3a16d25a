package plate

import "math"

// WorldDim is the wraparound size of the global simulation space.
type WorldDim struct {
	W, H uint32
}

// Area returns the number of cells in the world.
func (d WorldDim) Area() uint32 { return d.W * d.H }

// Normalize wraps world coordinates into [0, W) x [0, H).
func (d WorldDim) Normalize(x, y uint32) (uint32, uint32) {
	return x % d.W, y % d.H
}

// NormalizeF wraps fractional world coordinates into [0, W) x [0, H).
func (d WorldDim) NormalizeF(x, y float64) (float64, float64) {
	x = math.Mod(x, float64(d.W))
	if x < 0 {
		x += float64(d.W)
	}
	y = math.Mod(y, float64(d.H))
	if y < 0 {
		y += float64(d.H)
	}
	return x, y
}
