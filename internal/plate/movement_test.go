package plate

import (
	"fmt"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lithos/pkg/core"
)

func TestNewMovementUnitHeading(t *testing.T) {
	for seed := int64(0); seed < 8; seed++ {
		m := NewMovement(core.NewRNG(seed))
		assert.InDelta(t, 1.0, float64(math32.Hypot(m.dirX, m.dirY)), 1e-5)
		assert.Equal(t, float32(1), m.Speed())
	}
}

func TestApplyFriction(t *testing.T) {
	tests := []struct {
		deformed, total float32
		want            float32
	}{
		{0, 1, 1},
		{0.5, 1, 0.5},
		{1, 1, 0},
		{2, 1, 0}, // clamps, never reverses
		{0.5, 0, 1}, // zero total mass is a no-op
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt), func(t *testing.T) {
			m := &Movement{dirX: 1, speed: 1}
			m.ApplyFriction(tt.deformed, tt.total)
			assert.InDelta(t, float64(tt.want), float64(m.Speed()), 1e-6)
		})
	}
}

func TestVelocityOnAxisGating(t *testing.T) {
	m := &Movement{dirX: 0.6, dirY: 0.8, speed: 2}

	assert.InDelta(t, 1.2, float64(m.VelocityOnX(true)), 1e-6)
	assert.InDelta(t, 1.6, float64(m.VelocityOnY(true)), 1e-6)
	assert.Zero(t, m.VelocityOnX(false))
	assert.Zero(t, m.VelocityOnY(false))
}

func TestCollideHeadOnEqualMasses(t *testing.T) {
	world := WorldDim{W: 64, H: 64}

	left := mustPlate(t, onesMap(4, 4), 4, 4, 0, 0, 0, world)
	right := mustPlate(t, onesMap(4, 4), 4, 4, 8, 0, 0, world)

	left.mass = Mass{mass: 10, cx: 0, cy: 0}
	right.mass = Mass{mass: 10, cx: 10, cy: 0}
	left.movement = &Movement{dirX: 1, speed: 1}
	right.movement = &Movement{dirX: -1, speed: 1}

	left.Collide(right, 5, 0, 10)
	left.movement.Move()
	right.movement.Move()

	// Zero restitution, equal masses, head on: both stop dead.
	assert.InDelta(t, 0, float64(left.Speed()), 1e-5)
	assert.InDelta(t, 0, float64(right.Speed()), 1e-5)
}

func TestCollideSeparatingPlatesUntouched(t *testing.T) {
	world := WorldDim{W: 64, H: 64}

	a := mustPlate(t, onesMap(4, 4), 4, 4, 0, 0, 0, world)
	b := mustPlate(t, onesMap(4, 4), 4, 4, 8, 0, 0, world)

	a.mass = Mass{mass: 10, cx: 0, cy: 0}
	b.mass = Mass{mass: 10, cx: 10, cy: 0}
	a.movement = &Movement{dirX: -1, speed: 1}
	b.movement = &Movement{dirX: 1, speed: 1}

	a.Collide(b, 5, 0, 10)

	assert.Zero(t, a.movement.impX)
	assert.Zero(t, b.movement.impX)
}

func TestMoveFoldsImpulse(t *testing.T) {
	m := &Movement{dirX: 1, speed: 2}
	m.impY = 2

	m.Move()

	require.InDelta(t, float64(math32.Sqrt(8)), float64(m.Speed()), 1e-5)
	assert.InDelta(t, 1/math32.Sqrt2, float64(m.dirX), 1e-5)
	assert.InDelta(t, 1/math32.Sqrt2, float64(m.dirY), 1e-5)
}

func onesMap(w, h int) []float32 {
	m := make([]float32, w*h)
	for i := range m {
		m[i] = 1
	}
	return m
}

func mustPlate(t *testing.T, src []float32, w, h, x, y, age uint32, world WorldDim) *Plate {
	t.Helper()
	p, err := NewPlate(42, src, w, h, x, y, age, world)
	require.NoError(t, err)
	return p
}
