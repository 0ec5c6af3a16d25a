package plate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentDataBookkeeping(t *testing.T) {
	d := NewSegmentData(3, 4)
	assert.Zero(t, d.Area())
	assert.True(t, d.IsEmpty())

	d.IncArea()
	d.EnlargeToContain(1, 6)
	d.EnlargeToContain(5, 2)

	assert.Equal(t, uint32(1), d.Left())
	assert.Equal(t, uint32(5), d.Right())
	assert.Equal(t, uint32(2), d.Top())
	assert.Equal(t, uint32(6), d.Bottom())
	assert.Equal(t, uint32(1), d.Area())
	assert.False(t, d.IsEmpty())

	d.Shift(2, 3)
	assert.Equal(t, uint32(3), d.Left())
	assert.Equal(t, uint32(5), d.Top())

	d.MarkNonExistent()
	assert.True(t, d.IsEmpty())
}

func TestSegmentsResetIdempotent(t *testing.T) {
	s := NewSegments(16)
	id := s.Add(NewSegmentData(0, 0))
	s.SetID(0, id)
	s.SetID(1, id)

	s.Reset()
	first := append([]uint32(nil), s.ids...)
	firstLen := s.Len()

	s.Reset()

	assert.Equal(t, first, s.ids)
	assert.Equal(t, firstLen, s.Len())
	assert.Zero(t, s.Len())
	for i := uint32(0); i < s.Area(); i++ {
		assert.Equal(t, UnassignedSegment, s.ID(i))
	}
}

func TestSegmentsReassignRequiresMatchingArea(t *testing.T) {
	s := NewSegments(4)
	assert.Panics(t, func() { s.Reassign(8, make([]uint32, 4)) })

	fresh := []uint32{1, 2, 3, 4}
	s.Reassign(4, fresh)
	assert.Equal(t, uint32(2), s.ID(1))
}
