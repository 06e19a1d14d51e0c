package stacker

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/stackgames/internal/physics"
)

// Layer is a placed or moving box of the tower. Its render mirror and its
// physics body are only changed through moveTo and resize, which update
// both together.
type Layer struct {
	Box   Box
	Axis  Axis
	Level int

	height float64
	mirror Mirror
	body   *physics.Body
}

func (l *Layer) Body() *physics.Body { return l.body }
func (l *Layer) Mirror() Mirror      { return l.mirror }

func (l *Layer) moveTo(center mgl64.Vec3) {
	l.Box.Center = center
	l.body.Position = center
	l.mirror.Sync(l.body.Transform())
}

func (l *Layer) resize(b Box) {
	size := b.Dimensions(l.height)
	l.body.Resize(size)
	l.mirror.Resize(size)
	l.moveTo(b.Center)
	l.Box = b
}

// Fragment is a falling box driven by the physics world.
type Fragment struct {
	Box   Box
	Level int

	mirror Mirror
	body   *physics.Body
}

func (f *Fragment) Body() *physics.Body { return f.body }

// Transform is the fragment's current pose.
func (f *Fragment) Transform() physics.Transform {
	return f.body.Transform()
}

func (f *Fragment) sync() {
	f.mirror.Sync(f.body.Transform())
}
