package game

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/agelife/renderer"
	"github.com/pthm-cable/agelife/summary"
	"github.com/pthm-cable/agelife/telemetry"
	"github.com/pthm-cable/agelife/ui"
)

func toRL(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func bucketColors(p renderer.Palette) ui.BucketColors {
	return ui.BucketColors{
		Young:  toRL(p.Color(summary.ClassYoung)),
		Middle: toRL(p.Color(summary.ClassMiddle)),
		Old:    toRL(p.Color(summary.ClassOld)),
	}
}

func legendEntries(p renderer.Palette, adaptive bool) []ui.LegendEntry {
	entries := []ui.LegendEntry{
		{Label: "young", Color: toRL(p.Color(summary.ClassYoung))},
		{Label: "middle", Color: toRL(p.Color(summary.ClassMiddle))},
		{Label: "old", Color: toRL(p.Color(summary.ClassOld))},
	}
	if adaptive {
		entries = append(entries, ui.LegendEntry{Label: "past min lifespan", Color: toRL(p.Color(summary.ClassDeepOld))})
	}
	return entries
}

// hudData snapshots the state shown by the HUD.
func (g *Game) hudData() ui.HUDData {
	young, middle, old := g.sim.Published().Load()
	return ui.HUDData{
		Title:          "agelife",
		Tick:           g.sim.TickCount(),
		FPS:            rl.GetFPS(),
		TicksPerSec:    g.lastStats.TicksPerSec,
		Alive:          g.sim.Population(),
		Cells:          g.sim.Side() * g.sim.Side(),
		Young:          young,
		Middle:         middle,
		Old:            old,
		AverageAge:     g.last.AverageAge,
		HasAverageAge:  g.last.HasAverageAge,
		Variant:        string(g.rule.Variant),
		BirthThreshold: g.rule.BirthThreshold,
		Policy:         string(g.rule.BucketPolicy),
		StepsPerUpdate: g.stepsPerUpdate,
		Paused:         g.paused,
	}
}

// Draw renders the grid and side panel.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.cells.Update(g.sim.Classes(), g.sim.Side())
	g.cells.Draw(g.camera.SourceRect())
	g.drawHoveredCell()

	data := g.hudData()
	if g.overlays.IsEnabled(ui.OverlayHUD) {
		g.hud.Draw(data)
	}

	x := int32(g.cfg.Screen.Height) + 10
	y := int32(10)
	if g.overlays.IsEnabled(ui.OverlayStats) {
		y = g.hud.DrawPanel(x, y, data) + 10
	}
	if g.overlays.IsEnabled(ui.OverlayLegend) {
		y = ui.DrawLegend(ui.NewRenderer(), x, y, int32(g.cfg.Screen.Width)-x-10,
			legendEntries(g.cells.Palette, g.last.HasAverageAge)) + 10
	}
	if g.overlays.IsEnabled(ui.OverlayControls) {
		actions := g.controls.Draw(x, y, ui.ControlState{
			Paused:         g.paused,
			BirthThreshold: g.rule.BirthThreshold,
			StepsPerUpdate: g.stepsPerUpdate,
			MaxSteps:       MaxStepsPerUpdate,
		}, g.overlays)
		g.applyControls(actions)
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		drawPerf(x, int32(g.cfg.Screen.Height)-140, g.perfCollector.Stats())
	}
	g.hud.DrawControls(10, int32(g.cfg.Screen.Height), controlsLegend)

	rl.EndDrawing()
}

// drawHoveredCell labels the cell under the mouse with its age and class.
func (g *Game) drawHoveredCell() {
	mouse := rl.GetMousePosition()
	cx, cy, ok := g.camera.ScreenToCell(mouse.X, mouse.Y)
	if !ok {
		return
	}
	label := fmt.Sprintf("(%d,%d) age %d %s", cx, cy, g.sim.View().Age(cx, cy), g.sim.ColorClass(cx, cy))
	x := int32(mouse.X) + 14
	y := int32(mouse.Y) + 14
	w := rl.MeasureText(label, 12) + 8
	rl.DrawRectangle(x-4, y-3, w, 18, rl.Color{R: 0, G: 0, B: 0, A: 200})
	rl.DrawText(label, x, y, 12, rl.RayWhite)
}

// drawPerf draws the per-phase timing breakdown.
func drawPerf(x, y int32, s telemetry.PerfStats) {
	rl.DrawText(fmt.Sprintf("tick %dus (min %d, max %d)", s.AvgTickDuration.Microseconds(),
		s.MinTickDuration.Microseconds(), s.MaxTickDuration.Microseconds()), x, y, 12, rl.Yellow)
	y += 14
	for _, phase := range []string{
		telemetry.PhaseTransition, telemetry.PhaseSummary, telemetry.PhasePublish, telemetry.PhaseTelemetry,
	} {
		rl.DrawText(fmt.Sprintf("%-12s %5.1f%%", phase, s.PhasePct[phase]), x, y, 12, rl.LightGray)
		y += 14
	}
}
