// Package iso draws the stacker tower in the isometric view. It keeps box
// meshes as ECS entities and turns them into painter-sorted screen faces;
// frontends only rasterise the faces.
package iso

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/stackgames/ecs"
	"github.com/plus3/stackgames/internal/physics"
	"github.com/plus3/stackgames/internal/stacker"
)

// Mesh is a drawable box.
type Mesh struct {
	Size      mgl64.Vec3
	Transform physics.Transform
	Color     colorful.Color
	Level     int
	Falling   bool
}

// Register adds the iso component types to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Mesh](registry)
}

// LevelColor is the hue of a box made at the given stack height: it walks
// the colour wheel six degrees per level.
func LevelColor(level int) colorful.Color {
	return colorful.Hsl(math.Mod(float64(level)*6, 360), 1, 0.5)
}

// Scene implements stacker.Scene with one Mesh entity per box. Mirrors
// hold an EntityRef, so they survive Storage.Compact.
type Scene struct {
	storage *ecs.Storage
	meshes  *ecs.View[struct{ *Mesh }]
}

func NewScene(storage *ecs.Storage) *Scene {
	return &Scene{
		storage: storage,
		meshes:  ecs.NewView[struct{ *Mesh }](storage),
	}
}

func (s *Scene) Add(spec stacker.BoxSpec) stacker.Mirror {
	id := s.storage.Spawn(Mesh{
		Size:      spec.Box.Dimensions(spec.Height),
		Transform: physics.Transform{Position: spec.Box.Center, Rotation: mgl64.QuatIdent()},
		Color:     LevelColor(spec.Level),
		Level:     spec.Level,
		Falling:   spec.Falling,
	})
	return &mirror{scene: s, ref: s.storage.CreateEntityRef(id)}
}

func (s *Scene) Remove(m stacker.Mirror) {
	mm, ok := m.(*mirror)
	if !ok {
		return
	}
	if id, ok := s.storage.ResolveEntityRef(mm.ref); ok {
		s.storage.Delete(id)
	}
}

type mirror struct {
	scene *Scene
	ref   *ecs.EntityRef
}

func (m *mirror) mesh() *Mesh {
	v := m.scene.meshes.GetRef(m.ref)
	if v == nil {
		return nil
	}
	return v.Mesh
}

func (m *mirror) Sync(t physics.Transform) {
	if mesh := m.mesh(); mesh != nil {
		mesh.Transform = t
	}
}

func (m *mirror) Resize(size mgl64.Vec3) {
	if mesh := m.mesh(); mesh != nil {
		mesh.Size = size
	}
}
