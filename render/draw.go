package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/moons/ecs"
	"github.com/plus3/moons/sim"
	"golang.org/x/image/font/basicfont"
)

var (
	background     = color.RGBA{0, 0, 0, 255}
	bodyColor      = color.RGBA{255, 255, 255, 255}
	attractorColor = color.RGBA{255, 0, 255, 255}
	hudColor       = color.RGBA{200, 200, 200, 220}

	hudFace = text.NewGoXFace(basicfont.Face7x13)
)

func colorFor(role sim.Role) color.Color {
	if role == sim.RoleAttractor {
		return attractorColor
	}
	return bodyColor
}

// DrawSystem paints the published frame. It runs on a render scheduler that
// shares the simulation's storage; screen is set by Game.Draw before each run.
type DrawSystem struct {
	Frame ecs.Singleton[sim.Frame]

	screen *ebiten.Image
	hud    string
}

func (s *DrawSystem) Execute(frame *ecs.UpdateFrame) {
	if s.screen == nil {
		return
	}
	s.screen.Fill(background)

	for _, item := range s.Frame.Get().Items {
		vector.DrawFilledCircle(
			s.screen,
			float32(item.Position.X),
			float32(item.Position.Y),
			float32(item.Radius),
			colorFor(item.Role),
			true,
		)
	}

	if s.hud != "" {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, 6)
		op.ColorScale.ScaleWithColor(hudColor)
		op.LineSpacing = 16
		text.Draw(s.screen, s.hud, hudFace, op)
	}
}

// hudText formats the overlay lines for a frame
func hudText(f sim.Frame, bodies int, seed uint64, paused bool) string {
	state := "running"
	if paused {
		state = "paused (N step)"
	}
	return fmt.Sprintf(
		"tick %d  moons %d  seed %d  %s\nG %.2f  clamp [%.0f, %.0f]  KE %.1f",
		f.Tick, bodies, seed, state,
		f.Law.G, f.Law.MinDistSq, f.Law.MaxDistSq, f.KineticEnergy,
	)
}
