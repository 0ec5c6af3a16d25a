package plate

// UnassignedSegment marks cells that no continent has claimed yet.
const UnassignedSegment = ^uint32(0)

// SegmentData holds one continent's bookkeeping: an inclusive local
// bounding box, a cell count, the collisions accumulated this step, and
// whether the continent still exists on this plate.
type SegmentData struct {
	x0, y0, x1, y1 uint32
	area           uint32
	collCount      uint32
	exists         bool
}

// NewSegmentData starts a continent at the single cell (x, y).
func NewSegmentData(x, y uint32) SegmentData {
	return SegmentData{x0: x, y0: y, x1: x, y1: y, exists: true}
}

// Left returns the leftmost column of the bounding box.
func (d *SegmentData) Left() uint32 { return d.x0 }

// Right returns the rightmost column of the bounding box.
func (d *SegmentData) Right() uint32 { return d.x1 }

// Top returns the topmost row of the bounding box.
func (d *SegmentData) Top() uint32 { return d.y0 }

// Bottom returns the bottommost row of the bounding box.
func (d *SegmentData) Bottom() uint32 { return d.y1 }

// Area returns the continent's cell count.
func (d *SegmentData) Area() uint32 { return d.area }

// CollCount returns the collisions recorded against this continent.
func (d *SegmentData) CollCount() uint32 { return d.collCount }

// IncArea records one more cell.
func (d *SegmentData) IncArea() { d.area++ }

// IncCollCount records one more collision event.
func (d *SegmentData) IncCollCount() { d.collCount++ }

// EnlargeToContain grows the bounding box to include (x, y).
func (d *SegmentData) EnlargeToContain(x, y uint32) {
	if x < d.x0 {
		d.x0 = x
	}
	if x > d.x1 {
		d.x1 = x
	}
	if y < d.y0 {
		d.y0 = y
	}
	if y > d.y1 {
		d.y1 = y
	}
}

// MarkNonExistent flags the continent as moved off this plate.
func (d *SegmentData) MarkNonExistent() { d.exists = false }

// IsEmpty reports whether the continent holds no crust worth processing.
func (d *SegmentData) IsEmpty() bool { return !d.exists || d.area == 0 }

// Shift moves the bounding box by (dx, dy) after the plate buffer grows.
func (d *SegmentData) Shift(dx, dy uint32) {
	d.x0 += dx
	d.x1 += dx
	d.y0 += dy
	d.y1 += dy
}

// SegmentCreator produces a continent id for the cell at local (x, y),
// typically by flood fill.
type SegmentCreator interface {
	CreateSegment(x, y uint32) uint32
}

// Segments maps every cell of the plate to a continent id and owns the
// per-continent table.
type Segments struct {
	ids     []uint32
	data    []SegmentData
	creator SegmentCreator
}

// NewSegments allocates an id map of the given cell count, all unassigned.
func NewSegments(area uint32) *Segments {
	s := &Segments{ids: make([]uint32, area)}
	for i := range s.ids {
		s.ids[i] = UnassignedSegment
	}
	return s
}

// SetCreator wires the flood-fill hook used for lazy continent creation.
func (s *Segments) SetCreator(c SegmentCreator) { s.creator = c }

// Area returns the number of cells tracked.
func (s *Segments) Area() uint32 { return uint32(len(s.ids)) }

// Len returns the number of continents in the table.
func (s *Segments) Len() uint32 { return uint32(len(s.data)) }

// ID returns the continent id of cell i.
func (s *Segments) ID(i uint32) uint32 { return s.ids[i] }

// SetID assigns cell i to a continent.
func (s *Segments) SetID(i, id uint32) { s.ids[i] = id }

// Data returns the continent record for id.
func (s *Segments) Data(id uint32) *SegmentData { return &s.data[id] }

// Add appends a continent record and returns its id.
func (s *Segments) Add(d SegmentData) uint32 {
	s.data = append(s.data, d)
	return uint32(len(s.data) - 1)
}

// ContinentAt returns the continent id of the cell at local (x, y) with
// linear index idx, invoking the creator for unassigned cells.
func (s *Segments) ContinentAt(x, y, idx uint32) uint32 {
	id := s.ids[idx]
	if id == UnassignedSegment {
		id = s.creator.CreateSegment(x, y)
	}
	return id
}

// Reset unassigns every cell and clears the continent table.
func (s *Segments) Reset() {
	for i := range s.ids {
		s.ids[i] = UnassignedSegment
	}
	s.data = s.data[:0]
}

// Shift moves every continent's bounding box after the plate buffer grows.
func (s *Segments) Shift(dx, dy uint32) {
	for i := range s.data {
		s.data[i].Shift(dx, dy)
	}
}

// Reassign replaces the id map in place after the plate buffer grows.
func (s *Segments) Reassign(area uint32, ids []uint32) {
	if uint32(len(ids)) != area {
		panic("segment id map does not match the new plate area")
	}
	s.ids = ids
}
