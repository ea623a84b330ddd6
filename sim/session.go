package sim

import (
	"math/rand/v2"

	"github.com/plus3/moons/config"
	"github.com/plus3/moons/ecs"
	"github.com/plus3/moons/physics"
)

// Session wraps a Simulation with the controls shared by the front-ends:
// pause, single step, reset with a fresh seed and config reloads.
type Session struct {
	cfg    config.Config
	sim    *Simulation
	seed   uint64
	seeds  *rand.Rand
	paused bool
	step   bool
}

// NewSession builds the first simulation from cfg. A zero seed picks one.
func NewSession(cfg config.Config, seed uint64) (*Session, error) {
	seeds, seed := NewRand(seed)
	s := &Session{cfg: cfg, seeds: seeds}
	if err := s.Reset(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset replaces the simulation with one built from the current config and
// seed. On error the running simulation is kept.
func (s *Session) Reset(seed uint64) error {
	rng, seed := NewRand(seed)
	next, err := New(s.cfg, rng)
	if err != nil {
		return err
	}
	s.sim = next
	s.seed = seed
	s.step = false
	return nil
}

// Reseed resets with the next seed from the session's own sequence
func (s *Session) Reseed() error {
	seed := s.seeds.Uint64()
	for seed == 0 {
		seed = s.seeds.Uint64()
	}
	return s.Reset(seed)
}

// Advance ticks the simulation unless paused. A pending single step runs
// even while paused.
func (s *Session) Advance(dt float64) {
	if s.paused && !s.step {
		return
	}
	s.step = false
	s.sim.Tick(dt)
}

// TogglePause flips the pause state and returns the new one
func (s *Session) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

// Step queues one tick for the next Advance. It only has an effect while
// paused.
func (s *Session) Step() {
	if s.paused {
		s.step = true
	}
}

// Apply swaps in a reloaded config. The force law is retuned immediately;
// body and spawn settings take effect on the next reset.
func (s *Session) Apply(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := s.sim.SetForceLaw(cfg.Force); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

// MoveAttractor forwards pointer input to the simulation
func (s *Session) MoveAttractor(x, y float64) {
	s.sim.MoveAttractor(x, y)
}

// SetForceLaw retunes the running simulation and remembers the law for
// later resets.
func (s *Session) SetForceLaw(law physics.ForceLaw) error {
	if err := s.sim.SetForceLaw(law); err != nil {
		return err
	}
	s.cfg.Force = law
	return nil
}

func (s *Session) Sim() *Simulation { return s.sim }
func (s *Session) Config() config.Config { return s.cfg }
func (s *Session) Seed() uint64 { return s.seed }
func (s *Session) Paused() bool { return s.paused }

// ForceLaw returns the law of the running simulation
func (s *Session) ForceLaw() physics.ForceLaw { return s.sim.ForceLaw() }

// Stats and Storage follow the running simulation across resets.
func (s *Session) Stats() *ecs.SchedulerStats { return s.sim.Stats() }
func (s *Session) Storage() *ecs.Storage { return s.sim.Storage() }
