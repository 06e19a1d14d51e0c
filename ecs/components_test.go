package ecs_test

import "github.com/plus3/stackgames/ecs"

type Cell struct {
	X, Y int
}

type Fall struct {
	Speed float64
}

type Tint struct {
	R, G, B uint8
}

type Label string

type Score int

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Cell](registry)
	ecs.RegisterComponent[Fall](registry)
	ecs.RegisterComponent[Tint](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Score](registry)
	return registry
}
