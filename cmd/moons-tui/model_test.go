package main

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plus3/moons/config"
	"github.com/plus3/moons/physics"
	"github.com/plus3/moons/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	session, err := sim.NewSession(config.Default(), 5)
	require.NoError(t, err)

	m := NewModel(session, 800, 800, 60)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 42})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWindowSizeReservesHUD(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, 80, m.cols)
	assert.Equal(t, 40, m.rows)
}

func TestCellWorldMapping(t *testing.T) {
	m := newTestModel(t)

	x, y := m.cellToWorld(0, 0)
	assert.InDelta(t, 5, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)

	col, row, ok := m.worldToCell(x, y)
	require.True(t, ok)
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)

	col, row, ok = m.worldToCell(799.9, 799.9)
	require.True(t, ok)
	assert.Equal(t, 79, col)
	assert.Equal(t, 39, row)

	_, _, ok = m.worldToCell(-1, 10)
	assert.False(t, ok)
	_, _, ok = m.worldToCell(10, 800)
	assert.False(t, ok)
}

func TestWorldToCellRejectsNonFinite(t *testing.T) {
	m := newTestModel(t)

	for _, p := range [][2]float64{
		{math.NaN(), 10},
		{10, math.NaN()},
		{math.Inf(1), 10},
		{10, math.Inf(-1)},
	} {
		_, _, ok := m.worldToCell(p[0], p[1])
		assert.False(t, ok, "%v", p)
	}
}

func TestGridSkipsNonFiniteBodies(t *testing.T) {
	m := newTestModel(t)
	frame := sim.Frame{Items: []sim.Drawable{
		{Position: physics.NewVec2(math.NaN(), math.NaN()), Role: sim.RoleAttractor},
		{Position: physics.NewVec2(math.NaN(), 100), Role: sim.RoleBody},
		{Position: physics.NewVec2(math.Inf(1), math.Inf(-1)), Role: sim.RoleBody},
	}}

	var grid [][]rune
	require.NotPanics(t, func() { grid = m.grid(frame) })
	for _, line := range grid {
		assert.Equal(t, strings.Repeat(" ", 80), string(line))
	}
}

func TestMouseMovesAttractor(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 20, Action: tea.MouseActionMotion})
	m, cmd := update(t, m, tickMsg(time.Now()))
	assert.NotNil(t, cmd, "ticks reschedule themselves")

	assert.Equal(t, physics.NewVec2(405, 410), m.session.Sim().Attractor().Position)
	assert.Equal(t, uint64(1), m.session.Sim().Ticks())
}

func TestMouseOverHUDIsIgnored(t *testing.T) {
	m := newTestModel(t)
	start := m.session.Sim().Attractor().Position

	for _, y := range []int{40, 41} {
		m, _ = update(t, m, tea.MouseMsg{X: 10, Y: y, Action: tea.MouseActionMotion})
	}
	m, _ = update(t, m, tea.MouseMsg{X: 80, Y: 5, Action: tea.MouseActionMotion})
	m, _ = update(t, m, tickMsg(time.Now()))
	assert.Equal(t, start, m.session.Sim().Attractor().Position)

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 39, Action: tea.MouseActionMotion})
	m, _ = update(t, m, tickMsg(time.Now()))
	assert.Equal(t, physics.NewVec2(5, 790), m.session.Sim().Attractor().Position)
}

func TestKeys(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.session.Paused())
	assert.Equal(t, "paused", m.status)

	m, _ = update(t, m, tickMsg(time.Now()))
	assert.Equal(t, uint64(0), m.session.Sim().Ticks())

	m, _ = update(t, m, key("n"))
	m, _ = update(t, m, tickMsg(time.Now()))
	assert.Equal(t, uint64(1), m.session.Sim().Ticks())

	m, _ = update(t, m, key("p"))
	assert.False(t, m.session.Paused())

	m, _ = update(t, m, key("r"))
	assert.NotEqual(t, uint64(5), m.session.Seed())
	assert.Contains(t, m.status, "reset with seed")

	m, cmd := update(t, m, key("q"))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestGridPlacesAttractorOverBodies(t *testing.T) {
	m := newTestModel(t)
	frame := sim.Frame{Items: []sim.Drawable{
		{Position: physics.NewVec2(400, 400), Role: sim.RoleAttractor},
		{Position: physics.NewVec2(401, 401), Role: sim.RoleBody},
		{Position: physics.NewVec2(100, 100), Role: sim.RoleBody},
		{Position: physics.NewVec2(-50, 100), Role: sim.RoleBody},
	}}

	grid := m.grid(frame)
	require.Len(t, grid, 40)
	require.Len(t, grid[0], 80)
	assert.Equal(t, attractorGlyph, grid[20][40])
	assert.Equal(t, bodyGlyph, grid[5][10])

	count := 0
	for _, line := range grid {
		count += strings.Count(string(line), string(bodyGlyph))
	}
	assert.Equal(t, 1, count)
}

func TestViewShowsHUD(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	assert.Contains(t, view, "tick 0")
	assert.Contains(t, view, "moons 15")
	assert.Contains(t, view, "q quit")
	assert.Equal(t, 40+hudLines, strings.Count(view, "\n")+1)
}
