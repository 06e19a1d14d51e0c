package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plus3/stackgames/internal/blocks"
	"github.com/plus3/stackgames/internal/config"
	"github.com/plus3/stackgames/internal/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel() *model {
	cfg := config.Default().Blocks
	cfg.Seed = 7
	return newModel(blocks.New(cfg))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTickBeforeStartDoesNothing(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tickMsg{})
	assert.NotNil(t, cmd, "ticks keep coming")
	assert.Equal(t, lifecycle.NotStarted, m.state.Phase)
	assert.Contains(t, m.View(), "Press ENTER to start")
}

func TestEnterStartsAndKeysDrive(t *testing.T) {
	m := newTestModel()
	m.Update(key("enter"))
	require.Equal(t, lifecycle.Playing, m.state.Phase)

	y := m.state.Active.Pos.Y
	m.Update(key("down"))
	assert.Equal(t, y+1, m.state.Active.Pos.Y)

	m.Update(key("space"))
	assert.Equal(t, 1, m.state.LockedPieces)
	assert.Equal(t, 4, m.state.Board.Count())
	assert.Contains(t, m.View(), "PIECES 1")
}

func TestRestartClearsBoard(t *testing.T) {
	m := newTestModel()
	m.Update(key("enter"))
	m.Update(key("space"))
	require.Equal(t, 4, m.state.Board.Count())

	m.Update(key("r"))
	assert.Equal(t, 0, m.state.Board.Count())
	assert.Equal(t, lifecycle.Playing, m.state.Phase)
}

func TestQuit(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
