// Package physics implements the point-mass model of the simulation: a 2D
// vector type, moving bodies integrated with semi-implicit Euler, and an
// attractor applying a clamped inverse-square force.
package physics

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Vec2 is a 2D vector with value semantics. Every method returns a new value
// unless its name ends in Assign.
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a vector from its components
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// AddAssign adds o to v in place
func (v *Vec2) AddAssign(o Vec2) {
	v.X += o.X
	v.Y += o.Y
}

// Sub returns v - o. Neither operand is modified.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// ScaleAssign multiplies v by s in place
func (v *Vec2) ScaleAssign(s float64) {
	v.X *= s
	v.Y *= s
}

// Div returns v / s. Dividing by zero is a programming error and panics with
// an error wrapping ErrInvalidArgument.
func (v Vec2) Div(s float64) Vec2 {
	if s == 0 {
		panic(fmt.Errorf("%w: vector divided by zero", ErrInvalidArgument))
	}
	return Vec2{v.X / s, v.Y / s}
}

// Dot returns the dot product of v and o
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// MagSq returns the squared length of v
func (v Vec2) MagSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Mag returns the length of v
func (v Vec2) Mag() float64 {
	return math.Sqrt(v.MagSq())
}

// SetMag returns a vector with the direction of v and length m.
// The zero vector has no direction, so it stays the zero vector.
func (v Vec2) SetMag(m float64) Vec2 {
	l := v.Mag()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(m / l)
}

// IsZero reports whether both components are zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Constrain clamps value into [min, max]
func Constrain(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// FromAngle creates a vector from an angle in radians and a length
func FromAngle(angle, mag float64) Vec2 {
	return Vec2{mag * math.Cos(angle), mag * math.Sin(angle)}
}

// RandomVelocity returns a vector pointing in a uniformly random direction
// with a length drawn uniformly from [minSpeed, maxSpeed].
func RandomVelocity(rng *rand.Rand, minSpeed, maxSpeed float64) Vec2 {
	angle := rng.Float64() * 2 * math.Pi
	speed := minSpeed
	if maxSpeed > minSpeed {
		speed += rng.Float64() * (maxSpeed - minSpeed)
	}
	return FromAngle(angle, speed)
}

// RandomIn returns a point drawn uniformly from the rectangle [min, max)
func RandomIn(rng *rand.Rand, min, max Vec2) Vec2 {
	return Vec2{
		X: min.X + rng.Float64()*(max.X-min.X),
		Y: min.Y + rng.Float64()*(max.Y-min.Y),
	}
}
