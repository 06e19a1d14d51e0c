package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/stackgames/internal/blocks"
	"github.com/plus3/stackgames/internal/lifecycle"
)

// frame is how often the model ticks gravity.
const frame = 50 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	state *blocks.State
	id    uuid.UUID

	cells  [len(blocks.Kinds)]lipgloss.Style
	ghost  lipgloss.Style
	border lipgloss.Style
}

func newModel(state *blocks.State) *model {
	m := &model{
		state:  state,
		ghost:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		border: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("245")),
	}
	for i := range m.cells {
		c := colorful.Hsv(float64(i)*360/float64(len(m.cells)), 0.55, 0.95).Clamped()
		m.cells[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	}
	return m
}

func (m *model) Init() tea.Cmd {
	return tick()
}

func (m *model) start() {
	m.state.Start()
	m.id = uuid.New()
	log.Printf("blocks-tui: session %s started", m.id)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.state.Tick(frame)
		return m, tick()

	case tea.KeyMsg:
		state := m.state
		wasActive := state.Phase.Active()

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.start()
		case "enter":
			if !state.Phase.Active() {
				m.start()
			}
		case "left", "h":
			state.Move(-1, 0)
		case "right", "l":
			state.Move(1, 0)
		case "down", "j":
			state.Move(0, 1)
		case "up", "k", "z":
			state.Rotate()
		case "x":
			state.RotateCounter()
		case " ":
			state.HardDrop()
		}

		if wasActive && state.Phase == lifecycle.Ended {
			log.Printf("blocks-tui: session %s ended: %d pieces locked", m.id, state.LockedPieces)
		}
	}
	return m, nil
}

func (m *model) View() string {
	state := m.state
	board := state.Board

	active := map[blocks.Cell]bool{}
	ghost := map[blocks.Cell]bool{}
	if state.Phase.Active() {
		for _, c := range state.Active.Cells() {
			active[c] = true
		}
		for _, c := range (blocks.Piece{Matrix: state.Active.Matrix, Pos: state.Ghost()}).Cells() {
			ghost[c] = true
		}
	}

	var b strings.Builder
	for y := 0; y < board.Rows(); y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < board.Cols(); x++ {
			c := blocks.Cell{X: x, Y: y}
			switch k, filled := board.At(c); {
			case active[c]:
				b.WriteString(m.cells[state.Active.Kind].Render("██"))
			case filled:
				b.WriteString(m.cells[k].Render("██"))
			case ghost[c]:
				b.WriteString(m.ghost.Render("░░"))
			default:
				b.WriteString("  ")
			}
		}
	}

	hud := []string{
		fmt.Sprintf("PIECES %d", state.LockedPieces),
		fmt.Sprintf("LINES  %d", state.Lines),
		"",
		"←/→ move  ↓ soft drop",
		"↑/z rotate  x counter",
		"space drop  r restart",
		"q quit",
		"",
	}
	switch state.Phase {
	case lifecycle.NotStarted:
		hud = append(hud, "Press ENTER to start")
	case lifecycle.Ended:
		hud = append(hud, "GAME OVER", "Press r to restart")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, m.border.Render(b.String()), "  ", strings.Join(hud, "\n")) + "\n"
}
