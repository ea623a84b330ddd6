package physics

import (
	"fmt"
	"math"
)

const (
	DefaultG         = 8.0
	DefaultMinDistSq = 100.0
	DefaultMaxDistSq = 1000.0
)

// ForceLaw is the tunable inverse-square law. The squared distance is clamped
// into [MinDistSq, MaxDistSq] so the pull neither diverges near the attractor
// nor vanishes far from it.
type ForceLaw struct {
	G         float64 `yaml:"g"`
	MinDistSq float64 `yaml:"min_dist_sq"`
	MaxDistSq float64 `yaml:"max_dist_sq"`
}

// DefaultForceLaw returns G=8 clamped to [100, 1000]
func DefaultForceLaw() ForceLaw {
	return ForceLaw{G: DefaultG, MinDistSq: DefaultMinDistSq, MaxDistSq: DefaultMaxDistSq}
}

// Validate checks that the clamp bounds are positive, finite and ordered.
func (l ForceLaw) Validate() error {
	if math.IsNaN(l.G) || math.IsInf(l.G, 0) {
		return fmt.Errorf("%w: G must be finite, got %v", ErrInvalidForceLaw, l.G)
	}
	if !(l.MinDistSq > 0) || !(l.MaxDistSq > 0) || math.IsInf(l.MaxDistSq, 0) {
		return fmt.Errorf("%w: distance bounds must be positive and finite, got [%v, %v]",
			ErrInvalidForceLaw, l.MinDistSq, l.MaxDistSq)
	}
	if l.MinDistSq >= l.MaxDistSq {
		return fmt.Errorf("%w: min_dist_sq %v must be below max_dist_sq %v",
			ErrInvalidForceLaw, l.MinDistSq, l.MaxDistSq)
	}
	return nil
}

// Pull returns the force magnitude between two masses at the given squared
// distance, after clamping.
func (l ForceLaw) Pull(m1, m2, distSq float64) float64 {
	return l.G * (m1 * m2) / Constrain(distSq, l.MinDistSq, l.MaxDistSq)
}

// Attractor is a gravitational source whose position may be overwritten
// between frames. Its mass is fixed at creation.
type Attractor struct {
	Position Vec2
	Radius   float64

	mass float64
	law  ForceLaw
}

// NewAttractor validates mass and law and returns a ready attractor.
func NewAttractor(pos Vec2, mass float64, law ForceLaw) (Attractor, error) {
	if err := checkMass(mass); err != nil {
		return Attractor{}, err
	}
	if err := law.Validate(); err != nil {
		return Attractor{}, err
	}
	return Attractor{
		Position: pos,
		Radius:   RadiusForMass(mass),
		mass:     mass,
		law:      law,
	}, nil
}

// Validate checks the mass and law of an attractor not built by NewAttractor
func (a *Attractor) Validate() error {
	if err := checkMass(a.mass); err != nil {
		return err
	}
	return a.law.Validate()
}

// Mass returns the attractor's mass
func (a *Attractor) Mass() float64 {
	return a.mass
}

// Law returns the force law in use
func (a *Attractor) Law() ForceLaw {
	return a.law
}

// SetLaw replaces the force law. An invalid law is rejected and the current
// one is kept.
func (a *Attractor) SetLaw(law ForceLaw) error {
	if err := law.Validate(); err != nil {
		return err
	}
	a.law = law
	return nil
}

// MoveTo overwrites the attractor position
func (a *Attractor) MoveTo(pos Vec2) {
	a.Position = pos
}

// Force returns the force pulling body toward the attractor's current
// position. When the two coincide the direction is undefined and the force
// is zero.
func (a *Attractor) Force(body *Body) Vec2 {
	displacement := a.Position.Sub(body.Position)
	pull := a.law.Pull(a.mass, body.mass, displacement.MagSq())
	return displacement.SetMag(pull)
}

// Attract applies Force(body) to body
func (a *Attractor) Attract(body *Body) {
	body.ApplyForce(a.Force(body))
}
