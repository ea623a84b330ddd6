// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/moons/debugui"
	"github.com/plus3/moons/ecs"
	"github.com/plus3/moons/sim"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Overlay runs the debug panels in their own ECS world on top of an ebiten
// game. Call Update once per game update and Draw after the scene.
type Overlay struct {
	storage    *ecs.Storage
	scheduler  *ecs.Scheduler
	backend    *ecs.Singleton[ImguiBackend]
	inputState *ecs.Singleton[debugui.ImguiInputState]

	tuner *debugui.ForceLawTuner
	stats *debugui.StatsPanel
	last  time.Time
}

// NewOverlay creates the ImGui backend and window and spawns the force-law
// tuner and stats panels for session.
func NewOverlay(title string, width, height int, session *sim.Session) *Overlay {
	imguiBackend := ebitenbackend.NewEbitenBackend()
	imguiBackend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	storage := ecs.NewStorage(debugui.NewRegistry())

	o := &Overlay{
		storage:    storage,
		backend:    ecs.NewSingleton(storage, ImguiBackend{EbitenBackend: imguiBackend}),
		inputState: ecs.NewSingleton[debugui.ImguiInputState](storage),
		tuner:      debugui.NewForceLawTuner(session),
		stats:      debugui.NewStatsPanel(session, 120),
		last:       time.Now(),
	}

	storage.Spawn(o.tuner.Item())
	storage.Spawn(o.stats.Item())

	o.scheduler = ecs.NewScheduler(storage)
	o.scheduler.Register(&debugui.ImguiSystem{})

	return o
}

// Update builds this frame's ImGui draw data
func (o *Overlay) Update() {
	now := time.Now()
	o.stats.Record(now.Sub(o.last))
	o.last = now

	o.backend.Get().BeginFrame()
	o.scheduler.Once(1.0 / 60.0)
	o.backend.Get().EndFrame()
}

// Draw renders the overlay on top of screen
func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Get().Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Get().Layout(outsideWidth, outsideHeight)
}

// WantCaptureMouse reports whether ImGui consumed the pointer last frame
func (o *Overlay) WantCaptureMouse() bool {
	return o.inputState.Get().WantCaptureMouse
}

// WantCaptureKeyboard reports whether ImGui consumed the keyboard last frame
func (o *Overlay) WantCaptureKeyboard() bool {
	return o.inputState.Get().WantCaptureKeyboard
}

// Resync reloads the tuner after the session's law changed elsewhere
func (o *Overlay) Resync() {
	o.tuner.Sync()
}
