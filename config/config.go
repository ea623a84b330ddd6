// Package config loads and validates the simulation settings.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/plus3/moons/physics"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point) Vec() physics.Vec2 {
	return physics.NewVec2(p.X, p.Y)
}

// Range is an inclusive [Min, Max] interval
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type BodiesConfig struct {
	Count    int   `yaml:"count"`
	Mass     Range `yaml:"mass"`
	Speed    Range `yaml:"speed"`
	SpawnMin Point `yaml:"spawn_min"`
	SpawnMax Point `yaml:"spawn_max"`
}

type AttractorConfig struct {
	Position Point   `yaml:"position"`
	Mass     float64 `yaml:"mass"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Config holds every initialization parameter of a run.
type Config struct {
	Bodies    BodiesConfig     `yaml:"bodies"`
	Attractor AttractorConfig  `yaml:"attractor"`
	Force     physics.ForceLaw `yaml:"force"`
	Window    WindowConfig     `yaml:"window"`
	// TickRate is the number of simulation ticks per second
	TickRate int `yaml:"tick_rate"`
	// Seed for body placement; 0 picks a fresh seed per run
	Seed uint64 `yaml:"seed"`
}

// Default returns the reference scene: fifteen moons around an attractor at
// the middle of an 800x800 playground.
func Default() Config {
	return Config{
		Bodies: BodiesConfig{
			Count:    15,
			Mass:     Range{Min: 20, Max: 40},
			Speed:    Range{Min: 5, Max: 5},
			SpawnMin: Point{X: 50, Y: 50},
			SpawnMax: Point{X: 800, Y: 800},
		},
		Attractor: AttractorConfig{
			Position: Point{X: 400, Y: 400},
			Mass:     200,
		},
		Force: physics.DefaultForceLaw(),
		Window: WindowConfig{
			Title:  "Gravitational Attraction",
			Width:  800,
			Height: 800,
		},
		TickRate: 60,
	}
}

// Load reads a YAML file over the defaults and validates the result. Keys
// missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every recognized option.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	b := c.Bodies
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"bodies.mass.min", b.Mass.Min},
		{"bodies.mass.max", b.Mass.Max},
		{"bodies.speed.min", b.Speed.Min},
		{"bodies.speed.max", b.Speed.Max},
		{"bodies.spawn_min.x", b.SpawnMin.X},
		{"bodies.spawn_min.y", b.SpawnMin.Y},
		{"bodies.spawn_max.x", b.SpawnMax.X},
		{"bodies.spawn_max.y", b.SpawnMax.Y},
		{"attractor.position.x", c.Attractor.Position.X},
		{"attractor.position.y", c.Attractor.Position.Y},
		{"attractor.mass", c.Attractor.Mass},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			fail("%s must be finite, got %v", f.name, f.v)
		}
	}

	if b.Count <= 0 {
		fail("bodies.count must be positive, got %d", b.Count)
	}
	if !(b.Mass.Min > 0) || b.Mass.Min > b.Mass.Max {
		fail("bodies.mass must satisfy 0 < min <= max, got [%v, %v]", b.Mass.Min, b.Mass.Max)
	}
	if b.Speed.Min < 0 || b.Speed.Min > b.Speed.Max {
		fail("bodies.speed must satisfy 0 <= min <= max, got [%v, %v]", b.Speed.Min, b.Speed.Max)
	}
	if b.SpawnMin.X > b.SpawnMax.X || b.SpawnMin.Y > b.SpawnMax.Y {
		fail("bodies.spawn_min %v must not exceed spawn_max %v", b.SpawnMin, b.SpawnMax)
	}
	if !(c.Attractor.Mass > 0) {
		fail("attractor.mass must be positive, got %v", c.Attractor.Mass)
	}
	if err := c.Force.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: force: %w", ErrInvalidConfig, err))
	}
	if c.TickRate <= 0 {
		fail("tick_rate must be positive, got %d", c.TickRate)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		fail("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	return errors.Join(errs...)
}
