package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/moons/ecs"
)

// StatsSource exposes the scheduler and storage of the simulation being
// watched. The source is read on every render so resets are picked up.
type StatsSource interface {
	Stats() *ecs.SchedulerStats
	Storage() *ecs.Storage
}

// StatsPanel shows frame times, per-system timings and storage contents.
type StatsPanel struct {
	source StatsSource

	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
}

func NewStatsPanel(source StatsSource, historyFrames int) *StatsPanel {
	if historyFrames <= 0 {
		historyFrames = 1
	}
	return &StatsPanel{
		source:        source,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record adds one frame duration to the history
func (ps *StatsPanel) Record(deltaTime time.Duration) {
	ps.frameHistory[ps.frameIndex] = float32(deltaTime.Seconds() * 1000.0)
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	ps.recorded = min(ps.recorded+1, ps.historyFrames)
}

// AverageFrameMs returns the mean of the recorded frame times in
// milliseconds, or 0 before the first frame.
func (ps *StatsPanel) AverageFrameMs() float32 {
	if ps.recorded == 0 {
		return 0
	}
	var total float32
	for i := 0; i < ps.recorded; i++ {
		total += ps.frameHistory[i]
	}
	return total / float32(ps.recorded)
}

// Item wraps the panel as an ImguiItem
func (ps *StatsPanel) Item() ImguiItem {
	return ImguiItem{Render: ps.Render}
}

func (ps *StatsPanel) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 170), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 320), imgui.CondOnce)
	if !imgui.BeginV("Simulation Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	storage := ps.source.Storage().CollectStats()
	scheduler := ps.source.Stats()

	imgui.Text(fmt.Sprintf("Ticks: %d", scheduler.Frames))
	imgui.Text(fmt.Sprintf("Bodies: %d", storage.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", storage.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", storage.SingletonCount))

	avg := ps.AverageFrameMs()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, st := range scheduler.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(st.Name)
				imgui.TableNextColumn()
				imgui.Text(st.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(st.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(st.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range storage.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}
