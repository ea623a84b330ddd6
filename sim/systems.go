package sim

import (
	"github.com/plus3/moons/ecs"
	"github.com/plus3/moons/physics"
)

type bodyQuery = ecs.Query[struct{ *physics.Body }]

// ClockSystem advances the tick counter
type ClockSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	clock.Tick++
	clock.DeltaTime = frame.DeltaTime
	clock.Elapsed += frame.DeltaTime
}

// InputSystem moves the attractor to the latest pointer position before any
// force is computed for the tick.
type InputSystem struct {
	Pointer   ecs.Singleton[PointerInput]
	Attractor ecs.Singleton[physics.Attractor]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	pointer := s.Pointer.Get()
	if !pointer.Pending {
		return
	}
	s.Attractor.Get().MoveTo(pointer.Position)
	pointer.Pending = false
}

// AttractSystem accumulates the attractor's pull on every body.
type AttractSystem struct {
	Attractor ecs.Singleton[physics.Attractor]
	Bodies    bodyQuery
}

func (s *AttractSystem) Execute(frame *ecs.UpdateFrame) {
	attractor := s.Attractor.Get()
	for item := range s.Bodies.Iter() {
		attractor.Attract(item.Body)
	}
}

// IntegrateSystem steps every body once. It must run after AttractSystem.
type IntegrateSystem struct {
	Bodies bodyQuery
}

func (s *IntegrateSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Bodies.Iter() {
		item.Body.Update()
	}
}

// SnapshotSystem publishes the drawable state of the tick.
type SnapshotSystem struct {
	Frame     ecs.Singleton[Frame]
	Clock     ecs.Singleton[Clock]
	Attractor ecs.Singleton[physics.Attractor]
	Bodies    bodyQuery
}

func (s *SnapshotSystem) Execute(frame *ecs.UpdateFrame) {
	out := s.Frame.Get()
	attractor := s.Attractor.Get()

	out.Tick = s.Clock.Get().Tick
	out.Law = attractor.Law()
	out.KineticEnergy = 0
	out.Items = append(out.Items[:0], Drawable{
		Position: attractor.Position,
		Radius:   attractor.Radius,
		Role:     RoleAttractor,
	})

	for item := range s.Bodies.Iter() {
		out.Items = append(out.Items, Drawable{
			Position: item.Body.Position,
			Radius:   item.Body.Radius,
			Role:     RoleBody,
		})
		out.KineticEnergy += item.Body.KineticEnergy()
	}
}
