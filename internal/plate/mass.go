package plate

// Mass tracks the plate's total crust mass and its center of mass.
// Inc adjusts the total only; the center is refreshed by a full rebuild.
type Mass struct {
	mass   float64
	cx, cy float64
}

// Inc adjusts the running total by dz.
func (m *Mass) Inc(dz float64) {
	m.mass += dz
	if m.mass < 0 {
		m.mass = 0
	}
}

// Total returns the tracked mass.
func (m *Mass) Total() float64 { return m.mass }

// Cx returns the x coordinate of the center of mass, in local cells.
func (m *Mass) Cx() float64 { return m.cx }

// Cy returns the y coordinate of the center of mass, in local cells.
func (m *Mass) Cy() float64 { return m.cy }

// Null reports whether the plate has no crust left.
func (m *Mass) Null() bool { return m.mass == 0 }

// MassBuilder accumulates cells into a fresh Mass.
type MassBuilder struct {
	mass, mx, my float64
}

// AddPoint accumulates one cell's crust at local (x, y).
func (b *MassBuilder) AddPoint(x, y uint32, h float32) {
	if h <= 0 {
		return
	}
	b.mass += float64(h)
	b.mx += float64(x) * float64(h)
	b.my += float64(y) * float64(h)
}

// Build finalizes the accumulated mass and center.
func (b *MassBuilder) Build() Mass {
	m := Mass{mass: b.mass}
	if b.mass > 0 {
		m.cx = b.mx / b.mass
		m.cy = b.my / b.mass
	}
	return m
}

// massFromMap rebuilds a Mass from a full height buffer.
func massFromMap(data []float32, w uint32) Mass {
	var b MassBuilder
	for i, h := range data {
		b.AddPoint(uint32(i)%w, uint32(i)/w, h)
	}
	return b.Build()
}
