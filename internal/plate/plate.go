package plate

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"lithos/pkg/core"
)

// Plate owns a moving, deformable rectangular patch of crust floating in a
// toroidal world. All operations assume exclusive access; nothing here
// blocks or yields.
type Plate struct {
	rng      *core.RNG
	world    WorldDim
	bounds   *Bounds
	height   *HeightMap
	age      *AgeMap
	mass     Mass
	movement *Movement
	segments *Segments
}

// NewPlate copies the source heightmap patch into a fresh plate at world
// position (x, y). Every cell with crust receives plateAge as its
// timestamp. Invalid arguments are reported together; no partially
// initialized plate is ever returned.
func NewPlate(seed int64, src []float32, w, h, x, y, plateAge uint32, world WorldDim) (*Plate, error) {
	var err error
	if src == nil {
		err = multierr.Append(err, errors.New("the given heightmap should not be nil"))
	}
	if w == 0 || h == 0 {
		err = multierr.Append(err, errors.New("width and height of the plate should be greater than zero"))
	}
	if world.W == 0 || world.H == 0 {
		err = multierr.Append(err, errors.New("world dimensions should be greater than zero"))
	}
	if w > world.W || h > world.H {
		err = multierr.Append(err, fmt.Errorf("plate %dx%d does not fit the %dx%d world", w, h, world.W, world.H))
	}
	if src != nil && uint32(len(src)) != w*h {
		err = multierr.Append(err, fmt.Errorf("heightmap length %d does not match %dx%d", len(src), w, h))
	}
	if err != nil {
		return nil, err
	}

	p := &Plate{
		rng:    core.NewRNG(seed),
		world:  world,
		bounds: NewBounds(world, float64(x), float64(y), w, h),
		height: NewHeightMap(w, h),
		age:    NewAgeMap(w, h),
	}
	p.movement = NewMovement(p.rng)
	p.segments = NewSegments(w * h)
	p.segments.SetCreator(&segmentCreator{
		world:    world,
		bounds:   p.bounds,
		segments: p.segments,
		height:   p.height,
	})

	hm, am := p.height.Data(), p.age.Data()
	var mb MassBuilder
	for i, v := range src {
		hm[i] = v
		if v > 0 {
			am[i] = plateAge
			mb.AddPoint(uint32(i)%w, uint32(i)/w, v)
		}
	}
	p.mass = mb.Build()
	return p, nil
}

// Left returns the fractional left edge in world coordinates.
func (p *Plate) Left() float64 { return p.bounds.Left() }

// Top returns the fractional top edge in world coordinates.
func (p *Plate) Top() float64 { return p.bounds.Top() }

// Width returns the plate buffer width.
func (p *Plate) Width() uint32 { return p.bounds.Width() }

// Height returns the plate buffer height.
func (p *Plate) Height() uint32 { return p.bounds.Height() }

// Mass returns the tracked total crust mass.
func (p *Plate) Mass() float64 { return p.mass.Total() }

// Speed returns the plate's velocity magnitude.
func (p *Plate) Speed() float32 { return p.movement.Speed() }

// VelX returns the x component of the plate's velocity.
func (p *Plate) VelX() float32 { return p.movement.VelX() }

// VelY returns the y component of the plate's velocity.
func (p *Plate) VelY() float32 { return p.movement.VelY() }

// IsEmpty reports whether all crust has left the plate.
func (p *Plate) IsEmpty() bool { return p.mass.Null() }

// Map exposes read-only views of the height and age buffers, both w*h
// row-major. The views are invalidated by any operation that may grow
// the plate.
func (p *Plate) Map() (heights []float32, ages []uint32) {
	return p.height.Data(), p.age.Data()
}

// Crust returns the crust thickness at world (x, y), or 0 outside the
// plate.
func (p *Plate) Crust(x, y uint32) float32 {
	if _, _, i, ok := p.bounds.MapIndex(x, y); ok {
		return p.height.Data()[i]
	}
	return 0
}

// CrustTimestamp returns the crust age at world (x, y), or 0 outside the
// plate.
func (p *Plate) CrustTimestamp(x, y uint32) uint32 {
	if _, _, i, ok := p.bounds.MapIndex(x, y); ok {
		return p.age.Data()[i]
	}
	return 0
}

// continentAt resolves the continent id at world (x, y), flood filling on
// first touch.
func (p *Plate) continentAt(x, y uint32) uint32 {
	lx, ly, idx := p.bounds.ValidMapIndex(x, y)
	return p.segments.ContinentAt(lx, ly, idx)
}

// AddCollision records a collision event at world (wx, wy) and returns the
// area of the continent hit.
func (p *Plate) AddCollision(wx, wy uint32) uint32 {
	seg := p.continentAt(wx, wy)
	data := p.segments.Data(seg)
	data.IncCollCount()
	return data.Area()
}

// CollisionInfo reports the collision count and count/area ratio of the
// continent at world (wx, wy).
func (p *Plate) CollisionInfo(wx, wy uint32) (count uint32, ratio float32) {
	seg := p.continentAt(wx, wy)
	data := p.segments.Data(seg)
	count = data.CollCount()
	// +1 avoids division by zero.
	ratio = float32(data.CollCount()) / float32(1+data.Area())
	return count, ratio
}

// ContinentArea returns the cell count of the continent at world (wx, wy).
func (p *Plate) ContinentArea(wx, wy uint32) uint32 {
	_, _, idx := p.bounds.ValidMapIndex(wx, wy)
	id := p.segments.ID(idx)
	if id == UnassignedSegment {
		panic("continent area queried on an unsegmented cell")
	}
	return p.segments.Data(id).Area()
}

// SelectCollisionSegment returns the continent id at the collision point.
// The caller has already segmented this location via AddCollision.
func (p *Plate) SelectCollisionSegment(wx, wy uint32) uint32 {
	_, _, idx := p.bounds.ValidMapIndex(wx, wy)
	return p.segments.ID(idx)
}

// SetCrust places z crust with timestamp t at world (x, y), extending the
// plate when the point lies outside it. Negative z is clamped to zero.
func (p *Plate) SetCrust(x, y uint32, z float32, t uint32) {
	if z < 0 {
		z = 0
	}

	_, _, index, ok := p.bounds.MapIndex(x, y)
	if !ok {
		if z <= 0 {
			panic("extending the plate for zero crust")
		}
		index = p.extendToInclude(x, y)
	}

	hm, am := p.height.Data(), p.age.Data()
	oldCrust := hm[index]

	// With old crust present the new age is the mass-weighted mean of the
	// original and supplied ages. With no new crust the original age
	// remains intact.
	if oldCrust > 0 && z > 0 {
		t = uint32((float64(oldCrust)*float64(am[index]) + float64(z)*float64(t)) /
			(float64(oldCrust) + float64(z)))
	}
	if z > 0 {
		am[index] = t
	}

	p.mass.Inc(-float64(oldCrust))
	p.mass.Inc(float64(z))
	hm[index] = z
}

// extendToInclude grows the plate so that world point (x, y) falls inside
// it, preserving every cell's height, age and segment id at its shifted
// position. Growth on each axis is quantized to multiples of 8 and the
// plate never outgrows the world; where the quantized growth would not
// fit, the plate takes the remaining room on that axis, which need not be
// a multiple of 8. Returns the point's new local index.
func (p *Plate) extendToInclude(x, y uint32) uint32 {
	W, H := p.world.W, p.world.H
	ilft := p.bounds.LeftAsUint()
	itop := p.bounds.TopAsUint()
	irgt := p.bounds.RightAsUint()
	ibtm := p.bounds.BottomAsUint()

	x, y = p.world.Normalize(x, y)

	// Distance from the point to each plate edge. A subtraction running
	// past zero wraps to a huge value, which the world-size guard below
	// rejects: the point is reachable from the other side of that axis.
	lft := ilft - x
	top := itop - y
	rgt := x - irgt
	if x < ilft {
		rgt = x + W - irgt
	}
	btm := y - ibtm
	if y < itop {
		btm = y + H - ibtm
	}

	// Keep only the shorter candidate per axis; a valid distance is never
	// as large as the world's side.
	var dLft, dRgt, dTop, dBtm uint32
	if lft < rgt && lft < W {
		dLft = lft
	}
	if rgt <= lft && rgt < W {
		dRgt = rgt
	}
	if top < btm && top < H {
		dTop = top
	}
	if btm <= top && btm < H {
		dBtm = btm
	}

	// Quantize every change to the next multiple of 8.
	if dLft > 0 {
		dLft = ((dLft >> 3) + 1) << 3
	}
	if dRgt > 0 {
		dRgt = ((dRgt >> 3) + 1) << 3
	}
	if dTop > 0 {
		dTop = ((dTop >> 3) + 1) << 3
	}
	if dBtm > 0 {
		dBtm = ((dBtm >> 3) + 1) << 3
	}

	// The plate may never exceed the world.
	if p.bounds.Width()+dLft+dRgt > W {
		dLft = 0
		dRgt = W - p.bounds.Width()
	}
	if p.bounds.Height()+dTop+dBtm > H {
		dTop = 0
		dBtm = H - p.bounds.Height()
	}

	if dLft+dRgt+dTop+dBtm == 0 {
		panic("point out of plate but nowhere to grow")
	}

	oldWidth, oldHeight := p.bounds.Width(), p.bounds.Height()

	p.bounds.Shift(-float64(dLft), -float64(dTop))
	p.bounds.Grow(dLft+dRgt, dTop+dBtm)

	newWidth, newHeight := p.bounds.Width(), p.bounds.Height()
	area := newWidth * newHeight

	heights := make([]float32, area)
	ages := make([]uint32, area)
	segs := make([]uint32, area)
	for i := range segs {
		segs[i] = UnassignedSegment
	}

	oldHeights, oldAges := p.height.Data(), p.age.Data()
	for j := uint32(0); j < oldHeight; j++ {
		dst := (dTop+j)*newWidth + dLft
		src := j * oldWidth
		copy(heights[dst:dst+oldWidth], oldHeights[src:src+oldWidth])
		copy(ages[dst:dst+oldWidth], oldAges[src:src+oldWidth])
		for k := uint32(0); k < oldWidth; k++ {
			segs[dst+k] = p.segments.ID(src + k)
		}
	}

	p.height.reset(newWidth, newHeight, heights)
	p.age.reset(newWidth, newHeight, ages)
	p.segments.Reassign(area, segs)
	p.segments.Shift(dLft, dTop)

	_, _, index := p.bounds.ValidMapIndex(x, y)
	return index
}

// AddCrustByCollision adds crust to world (x, y) and assigns the cell to
// the receiving continent, enlarging its bookkeeping.
func (p *Plate) AddCrustByCollision(x, y uint32, z float32, t, activeContinent uint32) {
	p.SetCrust(x, y, p.Crust(x, y)+z, t)

	lx, ly, index := p.bounds.ValidMapIndex(x, y)
	p.segments.SetID(index, activeContinent)

	data := p.segments.Data(activeContinent)
	data.IncArea()
	data.EnlargeToContain(lx, ly)
}

// AddCrustBySubduction deposits sinking crust at a point offset inland
// from world (x, y), where (dx, dy) is the impacting plate's velocity.
// Nothing happens when the drop point leaves the plate or lands on bare
// ocean floor.
func (p *Plate) AddCrustBySubduction(x, y uint32, z float32, t uint32, dx, dy float32) {
	lx, ly, _ := p.bounds.ValidMapIndex(x, y)

	// Keep only the component of motion not shared with this plate, so
	// the drop point drifts with the relative convergence.
	dot := p.movement.Dot(dx, dy)
	dx -= p.movement.VelocityOnX(dot > 0)
	dy -= p.movement.VelocityOnY(dot > 0)

	offset := float32(p.rng.NextFloat64())
	offsetSign := float32(2*int32(p.rng.NextU32()%2) - 1)
	offset = offset * offset * offset * offsetSign
	dx = 10*dx + 3*offset
	dy = 10*dy + 3*offset

	fx := float64(lx) + float64(dx)
	fy := float64(ly) + float64(dy)
	if !p.bounds.InLimits(fx, fy) {
		return
	}

	index := p.bounds.Index(fx, fy)
	hm, am := p.height.Data(), p.age.Data()
	if hm[index] <= 0 || z <= 0 {
		return
	}

	am[index] = uint32((float64(hm[index])*float64(am[index]) + float64(z)*float64(t)) /
		(float64(hm[index]) + float64(z)))
	hm[index] += z
	p.mass.Inc(float64(z))
}

// AggregateCrust moves the whole continent under world (wx, wy) onto the
// other plate and returns the mass transferred.
//
// Continents usually collide at several points during one step. The
// segmentation bookkeeping is deliberately left intact after the crust is
// cleared, so later hits on the same continent see it empty and return 0
// instead of reading stale data.
func (p *Plate) AggregateCrust(other *Plate, wx, wy uint32) float32 {
	lx, ly, index := p.bounds.ValidMapIndex(wx, wy)

	segID := p.segments.ID(index)
	if segID == UnassignedSegment {
		panic("aggregating crust at an unsegmented cell")
	}
	if p.segments.Data(segID).IsEmpty() {
		return 0
	}

	activeContinent := other.SelectCollisionSegment(wx, wy)

	// Pre-offset coordinates by the world size to keep the subtractions
	// below out of the negative range.
	wx += p.world.W
	wy += p.world.H

	oldMass := p.mass.Total()
	seg := p.segments.Data(segID)
	hm, am := p.height.Data(), p.age.Data()
	width := p.bounds.Width()

	for y := seg.Top(); y <= seg.Bottom(); y++ {
		for x := seg.Left(); x <= seg.Right(); x++ {
			i := y*width + x
			if p.segments.ID(i) != segID || hm[i] <= 0 {
				continue
			}
			other.AddCrustByCollision(wx+x-lx, wy+y-ly, hm[i], am[i], activeContinent)
			p.mass.Inc(-float64(hm[i]))
			hm[i] = 0
		}
	}

	seg.MarkNonExistent()
	return float32(oldMass - p.mass.Total())
}

// Collide responds kinematically to a collision of collMass at world
// (wx, wy) against the other plate.
func (p *Plate) Collide(other *Plate, wx, wy uint32, collMass float32) {
	p.movement.Collide(&p.mass, other, wx, wy, collMass)
}

// ApplyFriction removes the kinetic energy that deforming deformedMass
// consumed.
func (p *Plate) ApplyFriction(deformedMass float32) {
	if !p.mass.Null() {
		p.movement.ApplyFriction(deformedMass, float32(p.mass.Total()))
	}
}

// Move advances the plate by one time step.
func (p *Plate) Move() {
	p.movement.Move()
	p.bounds.Shift(float64(p.movement.VelX()), float64(p.movement.VelY()))
}

// ResetSegments drops all continent bookkeeping so ids are re-derived
// lazily from the current heightmap.
func (p *Plate) ResetSegments() {
	if p.bounds.Area() != p.segments.Area() {
		panic("segment map out of sync with plate bounds")
	}
	p.segments.Reset()
}
