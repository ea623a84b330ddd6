package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plus3/moons/sim"
)

// hudLines is the number of rows reserved below the field
const hudLines = 2

type tickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model renders the simulation as a character grid. The world rectangle is
// stretched over the terminal so every cell maps to a patch of world space.
type Model struct {
	session  *sim.Session
	worldW   float64
	worldH   float64
	interval time.Duration

	cols, rows int
	status     string
	quitting   bool
}

func NewModel(session *sim.Session, worldW, worldH float64, tickRate int) Model {
	return Model{
		session:  session,
		worldW:   worldW,
		worldH:   worldH,
		interval: time.Second / time.Duration(tickRate),
		cols:     80,
		rows:     24 - hudLines,
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			return m, tea.Quit
		}
		m.handleKey(msg)
		return m, nil

	case tea.MouseMsg:
		// The HUD rows sit below the field.
		if msg.X < 0 || msg.X >= m.cols || msg.Y < 0 || msg.Y >= m.rows {
			return m, nil
		}
		x, y := m.cellToWorld(msg.X, msg.Y)
		m.session.MoveAttractor(x, y)
		return m, nil

	case tea.WindowSizeMsg:
		m.cols = max(1, msg.Width)
		m.rows = max(1, msg.Height-hudLines)
		return m, nil

	case tickMsg:
		m.session.Advance(m.interval.Seconds())
		return m, tickCmd(m.interval)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "p", " ":
		if m.session.TogglePause() {
			m.status = "paused"
		} else {
			m.status = ""
		}
	case "n":
		m.session.Step()
	case "r":
		if err := m.session.Reseed(); err != nil {
			m.status = fmt.Sprintf("reset failed: %v", err)
			return
		}
		m.status = fmt.Sprintf("reset with seed %d", m.session.Seed())
	}
}

// cellToWorld maps the center of a terminal cell to world coordinates
func (m Model) cellToWorld(col, row int) (float64, float64) {
	x := (float64(col) + 0.5) * m.worldW / float64(m.cols)
	y := (float64(row) + 0.5) * m.worldH / float64(m.rows)
	return x, y
}

// worldToCell maps a world position to a terminal cell. ok is false for
// positions outside the field, NaN included.
func (m Model) worldToCell(x, y float64) (col, row int, ok bool) {
	if !(x >= 0 && x < m.worldW && y >= 0 && y < m.worldH) {
		return 0, 0, false
	}
	col = int(x * float64(m.cols) / m.worldW)
	row = int(y * float64(m.rows) / m.worldH)
	return min(col, m.cols-1), min(row, m.rows-1), true
}

// grid rasterizes a frame. Bodies are drawn first so the attractor stays
// visible when it overlaps a moon.
func (m Model) grid(frame sim.Frame) [][]rune {
	grid := make([][]rune, m.rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", m.cols))
	}

	for _, item := range frame.Bodies() {
		if col, row, ok := m.worldToCell(item.Position.X, item.Position.Y); ok {
			grid[row][col] = bodyGlyph
		}
	}
	if attractor, ok := frame.Attractor(); ok {
		if col, row, ok := m.worldToCell(attractor.Position.X, attractor.Position.Y); ok {
			grid[row][col] = attractorGlyph
		}
	}
	return grid
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	frame := m.session.Sim().Snapshot()

	var b strings.Builder
	for _, line := range m.grid(frame) {
		for _, r := range line {
			switch r {
			case attractorGlyph:
				b.WriteString(attractorStyle.Render(string(r)))
			case bodyGlyph:
				b.WriteString(bodyStyle.Render(string(r)))
			default:
				b.WriteRune(r)
			}
		}
		b.WriteByte('\n')
	}

	law := frame.Law
	info := fmt.Sprintf("tick %d  moons %d  G %.2f  clamp [%.0f, %.0f]  KE %.1f",
		frame.Tick, len(frame.Bodies()), law.G, law.MinDistSq, law.MaxDistSq, frame.KineticEnergy)
	if m.status != "" {
		info += "  " + statusStyle.Render(m.status)
	}
	b.WriteString(infoStyle.Render(info))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(helpText()))

	return b.String()
}
