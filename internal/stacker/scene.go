package stacker

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stackgames/internal/physics"
)

// BoxSpec describes a box to the renderer when it is created.
type BoxSpec struct {
	Box    Box
	Height float64
	// Level is the stack height when the box was made; renderers derive
	// its colour from it.
	Level   int
	Falling bool
}

// Mirror is the render-side handle of a box.
type Mirror interface {
	Sync(t physics.Transform)
	Resize(size mgl64.Vec3)
}

// Scene creates and drops mirrors.
type Scene interface {
	Add(spec BoxSpec) Mirror
	Remove(m Mirror)
}

// NopScene renders nothing.
type NopScene struct{}

func (NopScene) Add(BoxSpec) Mirror { return nopMirror{} }
func (NopScene) Remove(Mirror)      {}

type nopMirror struct{}

func (nopMirror) Sync(physics.Transform) {}
func (nopMirror) Resize(mgl64.Vec3)      {}
