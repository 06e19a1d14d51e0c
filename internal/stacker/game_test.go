package stacker

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/plus3/stackgames/internal/config"
	"github.com/plus3/stackgames/internal/lifecycle"
	"github.com/plus3/stackgames/internal/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMirror struct {
	spec      BoxSpec
	transform physics.Transform
	size      mgl64.Vec3
	syncs     int
	removed   bool
}

func (m *recordingMirror) Sync(t physics.Transform) {
	m.transform = t
	m.syncs++
}

func (m *recordingMirror) Resize(size mgl64.Vec3) {
	m.size = size
}

type recordingScene struct {
	mirrors []*recordingMirror
}

func (s *recordingScene) Add(spec BoxSpec) Mirror {
	m := &recordingMirror{
		spec: spec,
		size: spec.Box.Dimensions(spec.Height),
		transform: physics.Transform{
			Position: spec.Box.Center,
			Rotation: mgl64.QuatIdent(),
		},
	}
	s.mirrors = append(s.mirrors, m)
	return m
}

func (s *recordingScene) Remove(m Mirror) {
	m.(*recordingMirror).removed = true
}

func (s *recordingScene) live() int {
	n := 0
	for _, m := range s.mirrors {
		if !m.removed {
			n++
		}
	}
	return n
}

func newTestGame(t *testing.T) (*Game, *recordingScene) {
	t.Helper()
	scene := &recordingScene{}
	g := New(config.Default().Stacker, scene)
	require.Len(t, g.Stack, 2)
	return g, scene
}

func TestNewBuildsFoundationAndFirstLayer(t *testing.T) {
	g, scene := newTestGame(t)

	assert.Equal(t, lifecycle.NotStarted, g.Phase)
	assert.Equal(t, AxisNone, g.Stack[0].Axis)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, g.Stack[0].Box.Center)
	assert.Equal(t, AxisX, g.Top().Axis)
	assert.Equal(t, mgl64.Vec3{-10, 0.5, 0}, g.Top().Box.Center)
	assert.Equal(t, 2, scene.live())
	assert.Equal(t, 2, g.World().Len())
	assert.Equal(t, 4.0, g.CameraY)
}

func TestPlaceIgnoredUntilStarted(t *testing.T) {
	g, _ := newTestGame(t)
	_, ok := g.Place()
	assert.False(t, ok)

	g.Update(time.Second)
	assert.Equal(t, -10.0, g.Top().Box.Center.X(), "layer must not move before start")
}

func TestPlaceCutsTopLayer(t *testing.T) {
	g, scene := newTestGame(t)
	g.Start()
	assert.NotEqual(t, uuid.Nil, g.SessionID)

	top := g.Top()
	top.moveTo(mgl64.Vec3{1.0, 0.5, 0})

	out, ok := g.Place()
	require.True(t, ok)
	require.Equal(t, Cut, out.Kind)

	assert.InDelta(t, 1.5, top.Box.Width, 1e-12)
	assert.InDelta(t, 0.5, top.Box.Center.X(), 1e-12)

	// Both sides of the layer followed the cut.
	mirror := top.Mirror().(*recordingMirror)
	assert.InDelta(t, 0.5, mirror.transform.Position.X(), 1e-12)
	assert.InDelta(t, 1.5, mirror.size.X(), 1e-12)
	assert.InDelta(t, 0.75, top.Body().HalfExtents.X(), 1e-12)
	assert.InDelta(t, 0.5, top.Body().Position.X(), 1e-12)

	require.Len(t, g.Fragments, 1)
	frag := g.Fragments[0]
	assert.InDelta(t, 1.0, frag.Box.Width, 1e-12)
	assert.InDelta(t, 1.75, frag.Box.Center.X(), 1e-12)
	assert.InDelta(t, 5*(1.0/2.5), frag.Body().Mass, 1e-12)

	require.Len(t, g.Stack, 3)
	next := g.Top()
	assert.Equal(t, AxisZ, next.Axis)
	assert.InDelta(t, 1.0, next.Box.Center.Y(), 1e-12)
	assert.InDelta(t, -10, next.Box.Center.Z(), 1e-12)
	assert.InDelta(t, 0.5, next.Box.Center.X(), 1e-12)
	assert.InDelta(t, 1.5, next.Box.Width, 1e-12)

	assert.Equal(t, 1, g.Score)
	assert.Equal(t, 1, g.Best)
	assert.Equal(t, 4, scene.live())
}

func TestPerfectPlaceSpawnsNoFragment(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()
	g.Top().moveTo(mgl64.Vec3{0, 0.5, 0})

	out, ok := g.Place()
	require.True(t, ok)
	assert.Equal(t, Cut, out.Kind)
	assert.Empty(t, g.Fragments)
	assert.Equal(t, 2.5, g.Top().Box.Width)
}

func TestMissEndsGame(t *testing.T) {
	g, scene := newTestGame(t)
	g.Start()
	missed := g.Top()
	missed.moveTo(mgl64.Vec3{3, 0.5, 0})

	out, ok := g.Place()
	require.True(t, ok)
	assert.Equal(t, Miss, out.Kind)
	assert.Equal(t, lifecycle.Ended, g.Phase)

	require.Len(t, g.Stack, 1)
	require.Len(t, g.Fragments, 1)
	assert.Equal(t, missed.Box, g.Fragments[0].Box)
	assert.True(t, missed.Mirror().(*recordingMirror).removed)
	assert.Equal(t, 2, scene.live())
	assert.Equal(t, 0, g.Score)

	_, ok = g.Place()
	assert.False(t, ok)
}

func TestRestartKeepsBest(t *testing.T) {
	g, scene := newTestGame(t)
	g.Start()
	for range 3 {
		g.Top().moveTo(g.Stack[len(g.Stack)-2].Box.Center.Add(mgl64.Vec3{0, 0.5, 0}))
		_, ok := g.Place()
		require.True(t, ok)
	}
	assert.Equal(t, 3, g.Best)
	first := g.SessionID

	g.Start()
	assert.Equal(t, lifecycle.Playing, g.Phase)
	assert.Len(t, g.Stack, 2)
	assert.Empty(t, g.Fragments)
	assert.Equal(t, 0, g.Score)
	assert.Equal(t, 3, g.Best)
	assert.NotEqual(t, first, g.SessionID)
	assert.Equal(t, 2, scene.live())
	assert.Equal(t, 2, g.World().Len())
}

func TestUpdateOscillates(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()

	// 0.008 units/ms at difficulty 1: 0.8 per 100ms frame.
	g.Update(100 * time.Millisecond)
	assert.InDelta(t, -9.2, g.Top().Box.Center.X(), 1e-9)

	maxX, turned := -100.0, false
	prev := g.Top().Box.Center.X()
	for range 100 {
		g.Update(100 * time.Millisecond)
		x := g.Top().Box.Center.X()
		require.InDelta(t, 0, x, 10.8+1e-9)
		maxX = max(maxX, x)
		if x < prev {
			turned = true
		}
		prev = x
		assert.Equal(t, x, g.Top().Body().Position.X())
	}
	assert.True(t, turned)
	assert.Greater(t, maxX, 10.0)
}

func TestDifficultyScalesSpeed(t *testing.T) {
	g, _ := newTestGame(t)
	g.Difficulty.Harder()
	g.Difficulty.Harder()
	g.Start()

	g.Update(time.Second)
	assert.InDelta(t, -10+0.008*1.4*1000, g.Top().Box.Center.X(), 1e-9)
}

func TestCameraRises(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()
	for range 4 {
		g.Top().moveTo(g.Stack[len(g.Stack)-2].Box.Center.Add(mgl64.Vec3{0, 0.5, 0}))
		g.Place()
	}

	target := 0.5*float64(len(g.Stack)-2) + 4
	for range 200 {
		g.Update(50 * time.Millisecond)
	}
	assert.GreaterOrEqual(t, g.CameraY, target)
	assert.Less(t, g.CameraY, target+0.5)
}

func TestFragmentsFallAndMirror(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()
	g.Top().moveTo(mgl64.Vec3{1.0, 0.5, 0})
	g.Place()
	frag := g.Fragments[0]
	y := frag.Box.Center.Y()

	for range 60 {
		g.Update(time.Second / 60)
	}

	assert.Less(t, frag.Transform().Position.Y(), y-1)
	mirror := frag.mirror.(*recordingMirror)
	assert.Equal(t, frag.Transform(), mirror.transform)
	assert.Equal(t, 60, mirror.syncs)
}

func TestShade(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()
	assert.Equal(t, 1.0, g.Shade())

	g.Top().moveTo(mgl64.Vec3{0, 0.5, 0})
	g.Place()
	assert.InDelta(t, 0.98, g.Shade(), 1e-12)
}
