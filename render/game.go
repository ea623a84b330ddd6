// Package render is the ebiten front-end: it feeds the cursor to the
// attractor, ticks the simulation once per update and draws every moon as a
// filled circle.
package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/moons/ecs"
	"github.com/plus3/moons/sim"
)

// TickDelta is the step passed to the simulation each update
const TickDelta = 1.0 / 60.0

// Overlay is drawn on top of the scene, typically the ImGui debug panels.
type Overlay interface {
	Update()
	Draw(screen *ebiten.Image)
	Layout(outsideWidth, outsideHeight int)
	WantCaptureMouse() bool
	WantCaptureKeyboard() bool
	Resync()
}

// Game implements ebiten.Game around a simulation session
type Game struct {
	Session *sim.Session
	Overlay Overlay
	ShowHUD bool

	// Logf receives reset failures; nil drops them
	Logf func(format string, args ...any)
	// BeforeUpdate runs at the start of every update, before input
	BeforeUpdate func()

	width, height int
	input         Input

	// last cursor position seen; the attractor only follows changes
	cursor     [2]int
	cursorSeen bool

	bound           *ecs.Storage
	renderScheduler *ecs.Scheduler
	drawSystem      *DrawSystem
}

// NewGame returns a game with a fixed logical screen of width x height,
// which is also the simulation's coordinate space.
func NewGame(session *sim.Session, width, height int) *Game {
	return &Game{
		Session: session,
		ShowHUD: true,
		width:   width,
		height:  height,
		input:   ebitenInput{},
	}
}

// SetInput replaces the input source
func (g *Game) SetInput(in Input) {
	g.input = in
}

func (g *Game) Update() error {
	if g.BeforeUpdate != nil {
		g.BeforeUpdate()
	}
	if g.Overlay != nil {
		g.Overlay.Update()
	}

	if g.Overlay == nil || !g.Overlay.WantCaptureKeyboard() {
		for _, action := range actions(g.input) {
			if action == ActionQuit {
				return ebiten.Termination
			}
			g.apply(action)
		}
	}

	if g.Overlay == nil || !g.Overlay.WantCaptureMouse() {
		g.followCursor()
	}

	g.Session.Advance(TickDelta)
	return nil
}

// followCursor moves the attractor when the cursor moved since the last
// update. The first reading is only recorded, so an idle pointer leaves the
// configured attractor position alone.
func (g *Game) followCursor() {
	x, y := g.input.Cursor()
	pos := [2]int{x, y}
	moved := g.cursorSeen && pos != g.cursor
	g.cursor, g.cursorSeen = pos, true
	if moved {
		g.Session.MoveAttractor(float64(x), float64(y))
	}
}

func (g *Game) apply(action Action) {
	switch action {
	case ActionPause:
		g.Session.TogglePause()
	case ActionStep:
		g.Session.Step()
	case ActionReset:
		if err := g.Session.Reseed(); err != nil {
			g.logf("reset: %v", err)
			return
		}
		if g.Overlay != nil {
			g.Overlay.Resync()
		}
	}
}

func (g *Game) logf(format string, args ...any) {
	if g.Logf != nil {
		g.Logf(format, args...)
	}
}

// bind rebuilds the render scheduler when the session swapped simulations
func (g *Game) bind() {
	storage := g.Session.Storage()
	if storage == g.bound {
		return
	}
	g.bound = storage
	g.drawSystem = &DrawSystem{}
	g.renderScheduler = ecs.NewScheduler(storage)
	g.renderScheduler.Register(g.drawSystem)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.bind()

	g.drawSystem.screen = screen
	g.drawSystem.hud = ""
	if g.ShowHUD {
		s := g.Session.Sim()
		g.drawSystem.hud = hudText(s.Snapshot(), s.BodyCount(), g.Session.Seed(), g.Session.Paused())
	}
	g.renderScheduler.Once(0)

	if g.Overlay != nil {
		g.Overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Overlay != nil {
		g.Overlay.Layout(g.width, g.height)
	}
	return g.width, g.height
}
