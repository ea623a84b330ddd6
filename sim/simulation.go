// Package sim drives the moons simulation: it owns the bodies and the
// attractor in an ECS world and advances them one tick at a time.
package sim

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/plus3/moons/config"
	"github.com/plus3/moons/ecs"
	"github.com/plus3/moons/physics"
)

// Simulation is the frame-driven core. It is not safe for concurrent use:
// MoveAttractor, Tick and Snapshot must be called from one goroutine.
type Simulation struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	attractor *ecs.Singleton[physics.Attractor]
	pointer   *ecs.Singleton[PointerInput]
	frame     *ecs.Singleton[Frame]
	clock     *ecs.Singleton[Clock]

	bodyCount int
}

// NewRand returns a seeded random source. A zero seed draws one from the
// clock; the seed actually used is returned alongside.
func NewRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), seed
}

// New validates cfg and spawns cfg.Bodies.Count moons with random
// positions, masses and velocities drawn from rng.
func New(cfg config.Config, rng *rand.Rand) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	attractor, err := physics.NewAttractor(cfg.Attractor.Position.Vec(), cfg.Attractor.Mass, cfg.Force)
	if err != nil {
		return nil, fmt.Errorf("sim: attractor: %w", err)
	}

	bodies := make([]physics.Body, 0, cfg.Bodies.Count)
	for i := 0; i < cfg.Bodies.Count; i++ {
		body, err := newMoon(cfg.Bodies, rng)
		if err != nil {
			return nil, fmt.Errorf("sim: body %d: %w", i, err)
		}
		bodies = append(bodies, body)
	}

	return NewWithBodies(attractor, bodies)
}

func newMoon(cfg config.BodiesConfig, rng *rand.Rand) (physics.Body, error) {
	pos := physics.RandomIn(rng, cfg.SpawnMin.Vec(), cfg.SpawnMax.Vec())
	mass := cfg.Mass.Min + rng.Float64()*(cfg.Mass.Max-cfg.Mass.Min)
	vel := physics.RandomVelocity(rng, cfg.Speed.Min, cfg.Speed.Max)
	return physics.NewBody(pos, vel, mass)
}

// NewWithBodies builds a simulation around an explicit scene. The attractor
// and every body must come from their physics constructors; a zero-value
// Body has no mass and is rejected.
func NewWithBodies(attractor physics.Attractor, bodies []physics.Body) (*Simulation, error) {
	if err := attractor.Validate(); err != nil {
		return nil, fmt.Errorf("sim: attractor: %w", err)
	}
	for i := range bodies {
		if err := bodies[i].Validate(); err != nil {
			return nil, fmt.Errorf("sim: body %d: %w", i, err)
		}
	}

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[physics.Body](registry)
	storage := ecs.NewStorage(registry)

	s := &Simulation{
		storage:   storage,
		attractor: ecs.NewSingleton(storage, attractor),
		pointer:   ecs.NewSingleton[PointerInput](storage),
		frame:     ecs.NewSingleton[Frame](storage),
		clock:     ecs.NewSingleton[Clock](storage),
		bodyCount: len(bodies),
	}

	for _, body := range bodies {
		storage.Spawn(body)
	}

	s.scheduler = ecs.NewScheduler(storage)
	s.scheduler.Register(&ClockSystem{})
	s.scheduler.Register(&InputSystem{})
	s.scheduler.Register(&AttractSystem{})
	s.scheduler.Register(&IntegrateSystem{})
	s.scheduler.Register(&SnapshotSystem{})

	// publish the initial state so renderers have something before the first tick
	snapshot := &SnapshotSystem{}
	snapshot.Frame.Init(storage)
	snapshot.Clock.Init(storage)
	snapshot.Attractor.Init(storage)
	snapshot.Bodies.Init(storage)
	snapshot.Bodies.Execute()
	snapshot.Execute(nil)

	return s, nil
}

// MoveAttractor records a new attractor position. It takes effect at the
// start of the next tick, before any force is computed.
func (s *Simulation) MoveAttractor(x, y float64) {
	p := s.pointer.Get()
	p.Position = physics.NewVec2(x, y)
	p.Pending = true
}

// Tick advances the simulation by one fixed step: every body is attracted,
// then every body is integrated, then the snapshot is refreshed. dt is
// recorded in the clock only.
func (s *Simulation) Tick(dt float64) {
	s.scheduler.Once(dt)
}

// Snapshot returns a copy of the last published frame. The caller owns it.
func (s *Simulation) Snapshot() Frame {
	f := *s.frame.Get()
	f.Items = slices.Clone(f.Items)
	return f
}

// Attractor returns a copy of the attractor's current state
func (s *Simulation) Attractor() physics.Attractor {
	return *s.attractor.Get()
}

// ForceLaw returns the force law in use
func (s *Simulation) ForceLaw() physics.ForceLaw {
	return s.attractor.Get().Law()
}

// SetForceLaw retunes the force law between ticks. An invalid law is
// rejected and the current one kept.
func (s *Simulation) SetForceLaw(law physics.ForceLaw) error {
	if err := s.attractor.Get().SetLaw(law); err != nil {
		return fmt.Errorf("sim: %w", err)
	}
	s.frame.Get().Law = law
	return nil
}

// Ticks returns the number of completed ticks
func (s *Simulation) Ticks() uint64 {
	return s.clock.Get().Tick
}

// BodyCount returns the number of moons
func (s *Simulation) BodyCount() int {
	return s.bodyCount
}

// Storage exposes the ECS world so front-ends can run their own systems
// (debug panels, overlays) against it.
func (s *Simulation) Storage() *ecs.Storage {
	return s.storage
}

// Stats returns the per-system execution statistics of the tick scheduler
func (s *Simulation) Stats() *ecs.SchedulerStats {
	return s.scheduler.GetStats()
}
