package sim

import "github.com/plus3/moons/physics"

// PointerInput holds the latest attractor position reported by the input
// boundary. It is consumed at the start of the next tick.
type PointerInput struct {
	Position physics.Vec2
	Pending  bool
}

// Clock counts ticks. DeltaTime is recorded but does not scale the step.
type Clock struct {
	Tick      uint64
	DeltaTime float64
	Elapsed   float64
}

// Role tells the renderer what a drawable is
type Role int

const (
	RoleBody Role = iota
	RoleAttractor
)

func (r Role) String() string {
	switch r {
	case RoleBody:
		return "body"
	case RoleAttractor:
		return "attractor"
	default:
		return "unknown"
	}
}

// Drawable is one filled circle for the renderer
type Drawable struct {
	Position physics.Vec2
	Radius   float64
	Role     Role
}

// Frame is the state published at the end of a tick. The attractor is
// always the first item, followed by the bodies in spawn order.
type Frame struct {
	Tick          uint64
	Items         []Drawable
	KineticEnergy float64
	Law           physics.ForceLaw
}

// Bodies returns the body items of the frame
func (f Frame) Bodies() []Drawable {
	if len(f.Items) == 0 {
		return nil
	}
	return f.Items[1:]
}

// Attractor returns the attractor item of the frame
func (f Frame) Attractor() (Drawable, bool) {
	if len(f.Items) == 0 || f.Items[0].Role != RoleAttractor {
		return Drawable{}, false
	}
	return f.Items[0], true
}
