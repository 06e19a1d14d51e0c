package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "I", I.String())
	assert.Equal(t, "L", L.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestEveryKindHasFourCells(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			m := k.Matrix()
			assert.Len(t, m.Cells(), 4)
			for _, row := range m {
				assert.Len(t, row, m.Size(), "pattern must be square")
			}
		})
	}
}

func TestMatrixIsACopy(t *testing.T) {
	m := T.Matrix()
	m[0][0] = true
	assert.False(t, T.Matrix()[0][0])
}

func TestRotateClockwise(t *testing.T) {
	want := parse(
		".#.",
		".##",
		".#.",
	)
	assert.True(t, T.Matrix().Rotate().Equal(want), T.Matrix().Rotate().String())

	vertical := parse(
		"..#.",
		"..#.",
		"..#.",
		"..#.",
	)
	assert.True(t, I.Matrix().Rotate().Equal(vertical))
}

func TestRotateCounterClockwise(t *testing.T) {
	want := parse(
		".#.",
		"##.",
		".#.",
	)
	assert.True(t, T.Matrix().RotateCounter().Equal(want))
}

func TestRotationRoundTrips(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			m := k.Matrix()
			assert.True(t, m.Rotate().RotateCounter().Equal(m))
			assert.True(t, m.Rotate().Rotate().Rotate().Rotate().Equal(m))
			assert.True(t, m.Rotate().Rotate().Equal(m.RotateCounter().RotateCounter()))
		})
	}
}

func TestRotateKeepsO(t *testing.T) {
	m := O.Matrix()
	assert.True(t, m.Rotate().Equal(m))
}

func TestPieceCells(t *testing.T) {
	p := Piece{Kind: I, Matrix: I.Matrix(), Pos: Cell{X: 11, Y: 0}}
	assert.Equal(t, []Cell{{11, 1}, {12, 1}, {13, 1}, {14, 1}}, p.Cells())
}

func TestMatrixString(t *testing.T) {
	assert.Equal(t, ".#.\n###\n...\n", T.Matrix().String())
}
