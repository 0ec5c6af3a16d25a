package plate

import (
	"github.com/chewxy/math32"

	"lithos/pkg/core"
)

// Fraction of the collision impulse fed into each plate's angular drift.
const rotationImpulse = 0.01

// Movement holds a plate's kinematic state: a unit direction, a speed
// scalar, an angular drift and the impulse accumulated from collisions
// since the last Move.
type Movement struct {
	dirX, dirY float32
	speed      float32
	rot        float32
	impX, impY float32
}

// NewMovement draws a random initial heading and a small angular drift.
func NewMovement(rng *core.RNG) *Movement {
	angle := 2 * math32.Pi * float32(rng.NextFloat64())
	return &Movement{
		dirX:  math32.Cos(angle),
		dirY:  math32.Sin(angle),
		speed: 1,
		rot:   (2*float32(rng.NextFloat64()) - 1) * math32.Pi / 200,
	}
}

// Dot returns the dot product of (dx, dy) with the plate's heading.
func (m *Movement) Dot(dx, dy float32) float32 {
	return dx*m.dirX + dy*m.dirY
}

// VelX returns the x component of the velocity.
func (m *Movement) VelX() float32 { return m.dirX * m.speed }

// VelY returns the y component of the velocity.
func (m *Movement) VelY() float32 { return m.dirY * m.speed }

// Speed returns the velocity magnitude.
func (m *Movement) Speed() float32 { return m.speed }

// VelocityOnX returns the x velocity component when aligned is true, else 0.
// The subduction heuristic subtracts the plate's own motion only from
// impactors heading more or less the same way.
func (m *Movement) VelocityOnX(aligned bool) float32 {
	if aligned {
		return m.dirX * m.speed
	}
	return 0
}

// VelocityOnY returns the y velocity component when aligned is true, else 0.
func (m *Movement) VelocityOnY(aligned bool) float32 {
	if aligned {
		return m.dirY * m.speed
	}
	return 0
}

// Collide exchanges momentum with another plate at world point (wx, wy).
// The impulse is computed against the collision normal running between the
// two centers of mass, with zero restitution, and split by mass ratio. The
// offset of the collision point from each center feeds the angular drift.
func (m *Movement) Collide(thisMass *Mass, other *Plate, wx, wy uint32, collMass float32) {
	thisTotal := float32(thisMass.Total())
	if thisTotal <= 0 || collMass <= 0 {
		return
	}
	otherM := other.movement

	apx := float32(float64(wx) - thisMass.Cx())
	apy := float32(float64(wy) - thisMass.Cy())
	bpx := float32(float64(wx) - other.mass.Cx())
	bpy := float32(float64(wy) - other.mass.Cy())

	nx := apx - bpx
	ny := apy - bpy
	nn := nx*nx + ny*ny
	if nn <= 0 {
		return
	}

	relVx := m.VelX() - otherM.VelX()
	relVy := m.VelY() - otherM.VelY()
	relDotN := relVx*nx + relVy*ny
	if relDotN <= 0 {
		// Moving apart already.
		return
	}

	denom := nn * (1/thisTotal + 1/collMass)
	j := -relDotN / denom

	m.impX += nx * j / thisTotal
	m.impY += ny * j / thisTotal
	otherM.impX -= nx * j / collMass
	otherM.impY -= ny * j / collMass

	if d := math32.Hypot(apx, apy); d > 0 {
		m.rot += rotationImpulse * j * (apx*ny - apy*nx) / (d * thisTotal)
	}
	if d := math32.Hypot(bpx, bpy); d > 0 {
		otherM.rot -= rotationImpulse * j * (bpx*ny - bpy*nx) / (d * collMass)
	}
}

// ApplyFriction slows the plate by the fraction of its mass that deformation
// consumed. A zero total mass is a no-op.
func (m *Movement) ApplyFriction(deformedMass, totalMass float32) {
	if totalMass == 0 {
		return
	}
	k := 1 - deformedMass/totalMass
	if k < 0 {
		k = 0
	}
	if k > 1 {
		k = 1
	}
	m.speed *= k
}

// Move folds the accumulated collision impulse into the velocity and
// advances the heading by the angular drift. The owning plate shifts its
// bounds by the resulting velocity.
func (m *Movement) Move() {
	vx := m.dirX*m.speed + m.impX
	vy := m.dirY*m.speed + m.impY
	m.impX, m.impY = 0, 0

	m.speed = math32.Hypot(vx, vy)
	if m.speed > 0 {
		m.dirX, m.dirY = vx/m.speed, vy/m.speed
	}

	if m.rot != 0 {
		cos, sin := math32.Cos(m.rot), math32.Sin(m.rot)
		m.dirX, m.dirY = m.dirX*cos-m.dirY*sin, m.dirX*sin+m.dirY*cos
	}
}
