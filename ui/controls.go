package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlState is what the controls panel displays.
type ControlState struct {
	Paused         bool
	BirthThreshold int
	StepsPerUpdate int
	MaxSteps       int
}

// ControlActions reports what the user clicked this frame.
type ControlActions struct {
	TogglePause    bool
	Step           bool // advance one tick while paused
	Reset          bool // reseed with the same seed
	Reseed         bool // reseed with a new seed
	ToggleBirth    bool
	StepsPerUpdate int
}

// Any reports whether any action fired.
func (a ControlActions) Any(prevSteps int) bool {
	return a.TogglePause || a.Step || a.Reset || a.Reseed || a.ToggleBirth || a.StepsPerUpdate != prevSteps
}

// ClampSteps bounds a slider value to [1, max].
func ClampSteps(v float32, max int) int {
	n := int(v + 0.5)
	if n < 1 {
		return 1
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

// ControlsPanel renders the side panel with raygui buttons and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		width:    width,
	}
}

// Draw renders the panel at (x, y) and returns the actions taken.
func (c *ControlsPanel) Draw(x, y int32, state ControlState, overlays *OverlayRegistry) ControlActions {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	panelHeight := 5*36 + lineHeight*int32(len(overlays.All())+2) + padding*3
	r.DrawPanel(x, y, c.width, panelHeight)

	actions := ControlActions{StepsPerUpdate: state.StepsPerUpdate}
	px := float32(x + padding)
	py := float32(y + padding)
	half := float32(c.width-padding*3) / 2

	rl.DrawText("Controls", int32(px), int32(py), 16, rl.White)
	py += float32(lineHeight + 6)

	pauseText := "Pause"
	if state.Paused {
		pauseText = "Resume"
	}
	actions.TogglePause = gui.Button(rl.Rectangle{X: px, Y: py, Width: half, Height: 28}, pauseText)
	actions.Step = gui.Button(rl.Rectangle{X: px + half + float32(padding), Y: py, Width: half, Height: 28}, "Step")
	py += 36

	actions.Reset = gui.Button(rl.Rectangle{X: px, Y: py, Width: half, Height: 28}, "Reset")
	actions.Reseed = gui.Button(rl.Rectangle{X: px + half + float32(padding), Y: py, Width: half, Height: 28}, "Reseed")
	py += 36

	birthText := fmt.Sprintf("Birth: B%d", state.BirthThreshold)
	actions.ToggleBirth = gui.Button(rl.Rectangle{X: px, Y: py, Width: half*2 + float32(padding), Height: 28}, birthText)
	py += 36

	rl.DrawText(fmt.Sprintf("Steps per frame: %d", state.StepsPerUpdate), int32(px), int32(py), r.Theme.FontSize, r.Theme.LabelColor)
	py += float32(lineHeight)
	steps := gui.SliderBar(
		rl.Rectangle{X: px + 10, Y: py, Width: half*2 - 20, Height: 18},
		"1", fmt.Sprint(state.MaxSteps),
		float32(state.StepsPerUpdate), 1, float32(state.MaxSteps),
	)
	actions.StepsPerUpdate = ClampSteps(steps, state.MaxSteps)
	py += 36

	rl.DrawText("Overlays", int32(px), int32(py), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	py += float32(lineHeight)
	for _, desc := range overlays.All() {
		c.drawToggle(int32(px), int32(py), desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
		py += float32(lineHeight)
	}

	return actions
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	// Status indicator
	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	// Key binding (right aligned)
	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// LegendEntry is one row of the color legend.
type LegendEntry struct {
	Label string
	Color rl.Color
}

// DrawLegend draws color swatches for each entry and returns the bottom edge.
func DrawLegend(r *Renderer, x, y, width int32, entries []LegendEntry) int32 {
	height := r.Theme.Padding*2 + r.Theme.LineHeight*int32(len(entries)+1)
	r.DrawPanel(x, y, width, height)
	cy := r.DrawSectionHeader(x+r.Theme.Padding, y+r.Theme.Padding, "Legend")
	for _, e := range entries {
		cy = r.DrawColorSwatch(x+r.Theme.Padding, cy, e.Label, e.Color)
	}
	return y + height
}
