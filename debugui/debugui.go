// Package debugui draws Dear ImGui windows describing a running game, its
// display and, in the simulator, the emulated chain.
package debugui

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/dotfall/game"
	"github.com/plus3/dotfall/matrix"
	"github.com/plus3/dotfall/matrix/emulator"
)

// Snapshot is everything the overlay shows for one frame. It is collected
// under the loop lock and rendered without it.
type Snapshot struct {
	State     game.State
	Piece     game.PieceView
	HasPiece  bool
	Game      game.Stats
	Config    game.Config
	Scheduler *game.SchedulerStats

	Display   matrix.Stats
	Panels    int
	Intensity matrix.Intensity
	Order     matrix.ChainOrder
	Dirty     bool

	Chain    *emulator.Stats
	Shutdown []bool
}

// Collect reads a snapshot from l. chain may be nil.
func Collect(l *game.Loop, d *matrix.Display, chain *emulator.Chain) Snapshot {
	var s Snapshot
	l.View(func(g *game.Game) {
		s.State = g.State()
		s.Piece, s.HasPiece = g.CurrentPiece()
		s.Game = g.Stats()
		s.Config = g.Config()
		s.Scheduler = g.Scheduler().Stats()

		// The loop flushes d under the same lock.
		if d != nil {
			s.Display = d.Stats()
			s.Panels = d.Panels()
			s.Intensity = d.Intensity()
			s.Order = d.ChainOrder()
			s.Dirty = d.Dirty()
		}
	})

	if chain != nil {
		stats := chain.Stats()
		s.Chain = &stats
		for _, chip := range chain.Snapshot() {
			s.Shutdown = append(s.Shutdown, chip.Shutdown)
		}
	}
	return s
}

// SystemRow is one formatted line of the system timing table.
type SystemRow struct {
	Name  string
	Runs  string
	Last  string
	Avg   string
	Worst string
}

// SystemRows formats per-system timings for display.
func SystemRows(stats *game.SchedulerStats) []SystemRow {
	if stats == nil {
		return nil
	}
	rows := make([]SystemRow, 0, len(stats.Systems))
	for _, sys := range stats.Systems {
		rows = append(rows, SystemRow{
			Name:  sys.Name,
			Runs:  fmt.Sprintf("%d", sys.ExecutionCount),
			Last:  formatDuration(sys.LastDuration),
			Avg:   formatDuration(sys.AvgDuration),
			Worst: formatDuration(sys.MaxDuration),
		})
	}
	return rows
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1f us", float64(d)/float64(time.Microsecond))
}

// Overlay renders snapshots into ImGui windows. Call Render between the
// backend's BeginFrame and EndFrame.
type Overlay struct {
	// Left is the screen x where the windows first open.
	Left float32

	ticks *History
	timer *FrameTimer
	frame float32
}

// NewOverlay keeps historyFrames tick samples for the graph.
func NewOverlay(historyFrames int) *Overlay {
	return &Overlay{
		ticks: NewHistory(historyFrames),
		timer: NewFrameTimer(),
	}
}

// Render draws the game, display and chain windows.
func (o *Overlay) Render(s Snapshot) {
	o.frame = o.timer.DeltaTime()
	if s.Scheduler != nil {
		o.ticks.Push(float32(s.Scheduler.LastTick) / float32(time.Millisecond))
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(o.Left+10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 360), imgui.CondOnce)
	o.renderGame(s)

	imgui.SetNextWindowPosV(imgui.NewVec2(o.Left+10, 380), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 220), imgui.CondOnce)
	o.renderDisplay(s)
}

func (o *Overlay) renderGame(s Snapshot) {
	if !imgui.BeginV("Game", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Mode: %s  Field: %dx%d", s.Config.Mode, s.Config.Width, s.Config.Height))
	imgui.Text(fmt.Sprintf("State: %s", s.State))
	if s.HasPiece {
		imgui.Text(fmt.Sprintf("Piece: %s at (%d, %d) rot %d", s.Piece.Kind, s.Piece.Position.X, s.Piece.Position.Y, s.Piece.Rotation))
	} else {
		imgui.Text("Piece: none")
	}
	imgui.Text(fmt.Sprintf("Ticks: %d  Spawned: %d", s.Game.Ticks, s.Game.Spawned))
	imgui.Text(fmt.Sprintf("Locked: %d  Lines: %d  Discarded: %d", s.Game.Locked, s.Game.Lines, s.Game.Discarded))

	imgui.Separator()
	if o.frame > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", o.frame*1000, 1/o.frame))
	}
	imgui.Text(fmt.Sprintf("Tick Time (ms), avg %.3f max %.3f", o.ticks.Average(), o.ticks.Max()))
	imgui.PlotLinesFloatPtr("##ticktime", &o.ticks.values[0], int32(len(o.ticks.values)))

	if s.HasPiece && imgui.TreeNodeStr("Piece Shape") {
		for _, line := range strings.Split(s.Piece.Shape, "\n") {
			imgui.Text(line)
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, row := range SystemRows(s.Scheduler) {
				imgui.TableNextRow()
				for _, cell := range []string{row.Name, row.Runs, row.Last, row.Avg, row.Worst} {
					imgui.TableNextColumn()
					imgui.Text(cell)
				}
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (o *Overlay) renderDisplay(s Snapshot) {
	if !imgui.BeginV("Display", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Panels: %d  Order: %s", s.Panels, s.Order))
	imgui.Text(fmt.Sprintf("Intensity: %s  Dirty: %t", s.Intensity, s.Dirty))
	imgui.Text(fmt.Sprintf("Flushes: %d  Skipped: %d  Failed: %d", s.Display.Flushes, s.Display.SkippedFlushes, s.Display.FailedFlushes))
	imgui.Text(fmt.Sprintf("Frames: %d  Bytes: %d", s.Display.Frames, s.Display.Bytes))

	if s.Chain != nil && imgui.TreeNodeStr("Emulated Chain") {
		imgui.Text(fmt.Sprintf("Latches: %d  Commands: %d  Invalid: %d", s.Chain.Latches, s.Chain.Commands, s.Chain.Invalid))
		for i, down := range s.Shutdown {
			status := "on"
			if down {
				status = "shutdown"
			}
			imgui.BulletText(fmt.Sprintf("chip %d: %s", i, status))
		}
		imgui.TreePop()
	}

	imgui.End()
}
