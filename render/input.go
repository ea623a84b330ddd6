package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a keyboard command understood by the game
type Action int

const (
	ActionNone Action = iota
	ActionPause
	ActionStep
	ActionReset
	ActionQuit
)

var keyActions = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyP, ActionPause},
	{ebiten.KeySpace, ActionPause},
	{ebiten.KeyN, ActionStep},
	{ebiten.KeyR, ActionReset},
	{ebiten.KeyQ, ActionQuit},
	{ebiten.KeyEscape, ActionQuit},
}

// Input is the per-frame view of the pointer and keyboard
type Input interface {
	Cursor() (x, y int)
	JustPressed(key ebiten.Key) bool
}

type ebitenInput struct{}

func (ebitenInput) Cursor() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenInput) JustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// actions returns the commands triggered this frame, in key table order
func actions(in Input) []Action {
	var out []Action
	for _, ka := range keyActions {
		if in.JustPressed(ka.key) {
			out = append(out, ka.action)
		}
	}
	return out
}
