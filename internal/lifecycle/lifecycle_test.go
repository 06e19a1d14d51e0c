package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseTransitions(t *testing.T) {
	var p Phase
	assert.Equal(t, NotStarted, p)
	assert.False(t, p.Active())

	err := p.End()
	require.ErrorIs(t, err, ErrTransition)
	assert.Equal(t, NotStarted, p)

	p.Start()
	assert.True(t, p.Active())

	require.NoError(t, p.End())
	assert.Equal(t, Ended, p)
	assert.ErrorIs(t, p.End(), ErrTransition)

	p.Start()
	assert.Equal(t, Playing, p)
	p.Start()
	assert.Equal(t, Playing, p)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "not started", NotStarted.String())
	assert.Equal(t, "playing", Playing.String())
	assert.Equal(t, "ended", Ended.String())
	assert.Equal(t, "Phase(7)", Phase(7).String())
}
