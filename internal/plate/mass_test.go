package plate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMassBuilder(t *testing.T) {
	var b MassBuilder
	b.AddPoint(0, 0, 2)
	b.AddPoint(2, 0, 2)
	b.AddPoint(1, 3, 0) // no crust, ignored

	m := b.Build()
	assert.InDelta(t, 4.0, m.Total(), 1e-9)
	assert.InDelta(t, 1.0, m.Cx(), 1e-9)
	assert.InDelta(t, 0.0, m.Cy(), 1e-9)
	assert.False(t, m.Null())
}

func TestMassIncClampsAtZero(t *testing.T) {
	var m Mass
	m.Inc(3)
	m.Inc(-2)
	assert.InDelta(t, 1.0, m.Total(), 1e-9)

	m.Inc(-5)
	assert.Zero(t, m.Total())
	assert.True(t, m.Null())
}

func TestMassFromMap(t *testing.T) {
	data := []float32{1, 0, 0, 3}
	m := massFromMap(data, 2)
	assert.InDelta(t, 4.0, m.Total(), 1e-9)
	assert.InDelta(t, 0.75, m.Cx(), 1e-9)
	assert.InDelta(t, 0.75, m.Cy(), 1e-9)
}
