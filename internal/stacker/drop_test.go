package stacker

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x, z, size float64) Box {
	return Box{Center: mgl64.Vec3{x, 0.5, z}, Width: size, Depth: size}
}

func TestResolveDropCut(t *testing.T) {
	prev := Box{Width: 2.5, Depth: 2.5}
	top := square(1.0, 0, 2.5)

	out := ResolveDrop(top, prev, AxisX, -10)
	require.Equal(t, Cut, out.Kind)

	assert.InDelta(t, 1.5, out.Overlap, 1e-12)
	assert.InDelta(t, 1.0, out.Overhang, 1e-12)

	assert.InDelta(t, 1.5, out.Kept.Width, 1e-12)
	assert.InDelta(t, 2.5, out.Kept.Depth, 1e-12)
	assert.InDelta(t, 0.5, out.Kept.Center.X(), 1e-12)

	assert.True(t, out.HasFragment())
	assert.InDelta(t, 1.0, out.Fragment.Width, 1e-12)
	assert.InDelta(t, 1.75, out.Fragment.Center.X(), 1e-12)
	assert.InDelta(t, 0.5, out.Fragment.Center.Y(), 1e-12)

	assert.Equal(t, AxisZ, out.NextAxis)
	assert.InDelta(t, 0.5, out.Next.Center.X(), 1e-12)
	assert.InDelta(t, -10, out.Next.Center.Z(), 1e-12)
	assert.InDelta(t, 1.5, out.Next.Width, 1e-12)
}

func TestResolveDropNegativeOffset(t *testing.T) {
	prev := square(0.5, 0, 1.5)
	prev.Depth = 2.5
	top := Box{Center: mgl64.Vec3{0.5, 1, -0.5}, Width: 1.5, Depth: 2.5}

	out := ResolveDrop(top, prev, AxisZ, -10)
	require.Equal(t, Cut, out.Kind)

	assert.InDelta(t, 2.0, out.Kept.Depth, 1e-12)
	assert.InDelta(t, -0.25, out.Kept.Center.Z(), 1e-12)
	assert.InDelta(t, 0.5, out.Fragment.Depth, 1e-12)
	assert.InDelta(t, -1.5, out.Fragment.Center.Z(), 1e-12)
	assert.InDelta(t, 1.5, out.Fragment.Width, 1e-12)

	assert.Equal(t, AxisX, out.NextAxis)
	assert.InDelta(t, -10, out.Next.Center.X(), 1e-12)
	assert.InDelta(t, -0.25, out.Next.Center.Z(), 1e-12)
}

func TestResolveDropPerfect(t *testing.T) {
	for _, size := range []float64{2.5, 1.1, 0.3} {
		prev := square(0.2, -0.4, size)
		top := square(0.2, -0.4, size)

		out := ResolveDrop(top, prev, AxisX, -10)
		require.Equal(t, Cut, out.Kind)
		assert.Equal(t, size, out.Overlap)
		assert.Equal(t, size, out.Next.Width)
		assert.Equal(t, size, out.Next.Depth)
		assert.False(t, out.HasFragment())
	}
}

func TestResolveDropMiss(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
	}{
		{"exactly one size right", 2.5},
		{"exactly one size left", -2.5},
		{"far right", 9.0},
		{"far left", -7.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := square(0, 0, 2.5)
			top := square(tt.delta, 0, 2.5)

			out := ResolveDrop(top, prev, AxisX, -10)
			assert.Equal(t, Miss, out.Kind)
			assert.LessOrEqual(t, out.Overlap, 0.0)
			assert.Equal(t, top, out.Fragment)
			assert.True(t, out.HasFragment())
		})
	}
}

func TestSizesNeverGrow(t *testing.T) {
	prev := square(0, 0, 2.5)
	axis := AxisX
	offsets := []float64{0.3, -0.2, 0.45, 0, -0.1, 0.05}

	for i, off := range offsets {
		top := prev.movedTo(axis, prev.along(axis)+off)
		out := ResolveDrop(top, prev, axis, -10)
		require.Equal(t, Cut, out.Kind, "drop %d", i)

		assert.LessOrEqual(t, out.Kept.Width, prev.Width)
		assert.LessOrEqual(t, out.Kept.Depth, prev.Depth)
		prev, axis = out.Kept, out.NextAxis
	}
}

func TestAxis(t *testing.T) {
	assert.Equal(t, AxisZ, AxisX.Other())
	assert.Equal(t, AxisX, AxisZ.Other())
	assert.Equal(t, 0, AxisX.Index())
	assert.Equal(t, 2, AxisZ.Index())
	assert.Equal(t, "z", AxisZ.String())
}
