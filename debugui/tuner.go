package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/moons/physics"
)

// LawTarget is what the tuner edits
type LawTarget interface {
	ForceLaw() physics.ForceLaw
	SetForceLaw(law physics.ForceLaw) error
}

// ForceLawTuner edits G and the distance clamp of a running simulation.
// Edits are staged in float32 for the widgets and committed as a whole;
// a rejected law leaves the target untouched and the error on screen.
type ForceLawTuner struct {
	target LawTarget

	g, minDistSq, maxDistSq float32
	err                     error
}

func NewForceLawTuner(target LawTarget) *ForceLawTuner {
	t := &ForceLawTuner{target: target}
	t.Sync()
	return t
}

// Sync reloads the staged values from the target
func (t *ForceLawTuner) Sync() {
	law := t.target.ForceLaw()
	t.g = float32(law.G)
	t.minDistSq = float32(law.MinDistSq)
	t.maxDistSq = float32(law.MaxDistSq)
	t.err = nil
}

// Staged returns the law currently shown in the panel
func (t *ForceLawTuner) Staged() physics.ForceLaw {
	return physics.ForceLaw{
		G:         float64(t.g),
		MinDistSq: float64(t.minDistSq),
		MaxDistSq: float64(t.maxDistSq),
	}
}

// Set stages new values and commits them
func (t *ForceLawTuner) Set(g, minDistSq, maxDistSq float32) error {
	t.g, t.minDistSq, t.maxDistSq = g, minDistSq, maxDistSq
	return t.commit()
}

// Err returns the error of the last rejected commit
func (t *ForceLawTuner) Err() error {
	return t.err
}

func (t *ForceLawTuner) commit() error {
	t.err = t.target.SetForceLaw(t.Staged())
	return t.err
}

// Item wraps the tuner as an ImguiItem
func (t *ForceLawTuner) Item() ImguiItem {
	return ImguiItem{Render: t.Render}
}

func (t *ForceLawTuner) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Force Law", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}

	changed := false
	imgui.SetNextItemWidth(120)
	changed = imgui.InputFloat("G", &t.g) || changed
	imgui.SetNextItemWidth(120)
	changed = imgui.InputFloat("min dist²", &t.minDistSq) || changed
	imgui.SetNextItemWidth(120)
	changed = imgui.InputFloat("max dist²", &t.maxDistSq) || changed
	if changed {
		_ = t.commit()
	}

	if imgui.Button("Defaults") {
		d := physics.DefaultForceLaw()
		_ = t.Set(float32(d.G), float32(d.MinDistSq), float32(d.MaxDistSq))
	}
	imgui.SameLine()
	if imgui.Button("Revert") {
		t.Sync()
	}

	if t.err != nil {
		imgui.TextColored(imgui.NewVec4(1.0, 0.4, 0.4, 1.0), t.err.Error())
	} else {
		law := t.target.ForceLaw()
		imgui.Text(fmt.Sprintf("active: G=%.2f clamp=[%.0f, %.0f]", law.G, law.MinDistSq, law.MaxDistSq))
	}

	imgui.End()
}
