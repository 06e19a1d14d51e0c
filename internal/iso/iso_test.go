package iso

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/stackgames/ecs"
	"github.com/plus3/stackgames/internal/config"
	"github.com/plus3/stackgames/internal/physics"
	"github.com/plus3/stackgames/internal/stacker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	Register(registry)
	return ecs.NewStorage(registry)
}

func countMeshes(storage *ecs.Storage) int {
	q := ecs.NewQuery[struct{ *Mesh }](storage)
	q.Execute()
	return q.Len()
}

func meshOf(t *testing.T, m stacker.Mirror) *Mesh {
	t.Helper()
	mm, ok := m.(*mirror)
	require.True(t, ok)
	mesh := mm.mesh()
	require.NotNil(t, mesh)
	return mesh
}

func TestSceneFollowsTheGame(t *testing.T) {
	storage := newStorage()
	game := stacker.New(config.Default().Stacker, NewScene(storage))
	assert.Equal(t, 2, countMeshes(storage))

	game.Start()
	assert.Equal(t, 2, countMeshes(storage))

	game.Update(time.Second)
	top := meshOf(t, game.Top().Mirror())
	assert.InDelta(t, -2, top.Transform.Position.X(), 1e-6)
	assert.Equal(t, 1, top.Level)

	out, ok := game.Place()
	require.True(t, ok)
	require.Equal(t, stacker.Cut, out.Kind)
	assert.Equal(t, 4, countMeshes(storage))

	cut := meshOf(t, game.Stack[1].Mirror())
	assert.InDelta(t, 0.5, cut.Size.X(), 1e-6)
	assert.InDelta(t, 2.5, cut.Size.Z(), 1e-6)
	assert.InDelta(t, -1, cut.Transform.Position.X(), 1e-6)

	storage.Compact()
	game.Start()
	assert.Equal(t, 2, countMeshes(storage))
}

func TestMirrorSurvivesCompaction(t *testing.T) {
	storage := newStorage()
	scene := NewScene(storage)

	first := scene.Add(stacker.BoxSpec{Box: stacker.Box{Width: 1, Depth: 1}, Height: 1})
	second := scene.Add(stacker.BoxSpec{Box: stacker.Box{Width: 2, Depth: 2}, Height: 1, Falling: true})
	scene.Remove(first)
	storage.Compact()

	second.Sync(physics.Transform{Position: mgl64.Vec3{1, 2, 3}, Rotation: mgl64.QuatIdent()})
	mesh := meshOf(t, second)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, mesh.Transform.Position)
	assert.True(t, mesh.Falling)
	assert.Equal(t, 1, countMeshes(storage))

	scene.Remove(second)
	scene.Remove(second)
	assert.Equal(t, 0, countMeshes(storage))
}

func TestLevelColor(t *testing.T) {
	red := colorful.Color{R: 1}
	assert.True(t, LevelColor(0).AlmostEqualRgb(red))
	assert.True(t, LevelColor(60).AlmostEqualRgb(red))
	assert.True(t, LevelColor(20).AlmostEqualRgb(colorful.Color{G: 1}))
}

func TestShade(t *testing.T) {
	grey := colorful.Color{R: 0.5, G: 0.5, B: 0.5}

	side := Shade(grey, mgl64.Vec3{0, 0, 1})
	assert.InDelta(t, 0.3, side.R, 1e-9)

	top := Shade(grey, mgl64.Vec3{0, 1, 0})
	assert.Greater(t, top.R, side.R)

	white := Shade(colorful.Color{R: 1, G: 1, B: 1}, mgl64.Vec3{0, 1, 0})
	assert.Equal(t, 1.0, white.R)
}

func TestProjectCentresTheTarget(t *testing.T) {
	cam := Camera{Y: 4, Width: 15}
	vp := cam.ViewProjection(800, 600)

	p, depth := Project(vp, mgl64.Vec3{}, 800, 600)
	assert.InDelta(t, 400, p.X(), 1e-6)
	assert.InDelta(t, 300, p.Y(), 1e-6)

	_, nearer := Project(vp, mgl64.Vec3{1, 1, 1}, 800, 600)
	assert.Less(t, nearer, depth)

	up, _ := Project(vp, mgl64.Vec3{0, 1, 0}, 800, 600)
	assert.Less(t, up.Y(), p.Y(), "higher points are drawn higher on screen")

	raised := Camera{Y: 5, Width: 15}.ViewProjection(800, 600)
	q, _ := Project(raised, mgl64.Vec3{}, 800, 600)
	assert.Greater(t, q.Y(), p.Y(), "a rising camera moves the tower down")
}

func box(center mgl64.Vec3, size mgl64.Vec3, c colorful.Color) *Mesh {
	return &Mesh{
		Size:      size,
		Transform: physics.Transform{Position: center, Rotation: mgl64.QuatIdent()},
		Color:     c,
	}
}

func TestFacesOfOneBox(t *testing.T) {
	cam := Camera{Y: 4, Width: 15}
	faces := cam.Faces([]*Mesh{box(mgl64.Vec3{}, mgl64.Vec3{2.5, 0.5, 2.5}, colorful.Color{R: 1})}, 800, 600)
	assert.Len(t, faces, 3)

	offscreen := cam.Faces([]*Mesh{box(mgl64.Vec3{100, 0, 0}, mgl64.Vec3{1, 1, 1}, colorful.Color{R: 1})}, 800, 600)
	assert.Empty(t, offscreen)
}

func TestFacesPaintLowerBoxFirst(t *testing.T) {
	cam := Camera{Y: 4, Width: 15}
	size := mgl64.Vec3{2.5, 0.5, 2.5}
	upper := box(mgl64.Vec3{0, 0.5, 0}, size, colorful.Color{B: 1})
	lower := box(mgl64.Vec3{}, size, colorful.Color{R: 1})

	faces := cam.Faces([]*Mesh{upper, lower}, 800, 600)
	require.Len(t, faces, 6)
	for _, f := range faces[:3] {
		assert.Zero(t, f.Color.B)
	}
	for _, f := range faces[3:] {
		assert.Zero(t, f.Color.R)
	}
}

func TestFacesPaintFarBoxFirst(t *testing.T) {
	cam := Camera{Y: 4, Width: 15}
	size := mgl64.Vec3{1, 1, 1}
	near := box(mgl64.Vec3{0.5, 0, 0.5}, size, colorful.Color{B: 1})
	far := box(mgl64.Vec3{-0.5, 0, -0.5}, size, colorful.Color{R: 1})

	faces := cam.Faces([]*Mesh{near, far}, 800, 600)
	require.Len(t, faces, 6)
	assert.Zero(t, faces[0].Color.B)
	assert.Zero(t, faces[5].Color.R)
}
