package ecs_test

import "github.com/plus3/moons/ecs"

// Common test component types
type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Mass float64

type Label string

type Gravity struct {
	G float64
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Mass](registry)
	ecs.RegisterComponent[Label](registry)
	return registry
}
