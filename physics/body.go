package physics

import (
	"fmt"
	"math"
)

// Body is a point mass moved by accumulated forces. Acceleration is a running
// accumulator: every ApplyForce for a frame must happen before that frame's
// single Update.
type Body struct {
	Position     Vec2
	Velocity     Vec2
	Acceleration Vec2
	Radius       float64

	mass float64
}

// NewBody creates a body at rest acceleration-wise. The render radius is
// derived once from the mass.
func NewBody(pos, vel Vec2, mass float64) (Body, error) {
	if err := checkMass(mass); err != nil {
		return Body{}, err
	}
	return Body{
		Position: pos,
		Velocity: vel,
		Radius:   RadiusForMass(mass),
		mass:     mass,
	}, nil
}

// Mass returns the body's mass
func (b *Body) Mass() float64 {
	return b.mass
}

// ApplyForce accumulates force/mass into the acceleration.
func (b *Body) ApplyForce(force Vec2) {
	b.Acceleration.AddAssign(force.Div(b.mass))
}

// Update advances the body by one semi-implicit Euler step: velocity takes the
// current acceleration first, then position takes the new velocity. The
// acceleration is cleared for the next frame.
func (b *Body) Update() {
	b.Velocity.AddAssign(b.Acceleration)
	b.Position.AddAssign(b.Velocity)
	b.Acceleration = Vec2{}
}

// KineticEnergy returns ½·m·|v|²
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.mass * b.Velocity.MagSq()
}

// Validate reports ErrInvalidMass for bodies not built by NewBody, such as
// the zero value.
func (b *Body) Validate() error {
	return checkMass(b.mass)
}

// RadiusForMass is the drawing radius used for bodies and attractors.
func RadiusForMass(mass float64) float64 {
	return math.Sqrt(mass) * 2
}

func checkMass(mass float64) error {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidMass, mass)
	}
	return nil
}
