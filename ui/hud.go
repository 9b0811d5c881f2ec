package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Tick           uint64
	FPS            int32
	TicksPerSec    float64
	Alive          int
	Cells          int
	Young          float32
	Middle         float32
	Old            float32
	AverageAge     float64
	HasAverageAge  bool
	Variant        string
	BirthThreshold int
	Policy         string
	StepsPerUpdate int
	Paused         bool
}

// Density returns the live cell fraction.
func (d HUDData) Density() float32 {
	if d.Cells == 0 {
		return 0
	}
	return float32(d.Alive) / float32(d.Cells)
}

// StatusText returns the run state label.
func (d HUDData) StatusText() string {
	if d.Paused {
		return "PAUSED"
	}
	return fmt.Sprintf("Running %dx", d.StepsPerUpdate)
}

// BucketColors are the bar fills for the young, middle and old fractions.
type BucketColors struct {
	Young, Middle, Old rl.Color
}

func hud(data any) HUDData { return data.(HUDData) }

// StatsPanel describes the side panel showing population and bucket data.
func StatsPanel(width int32, colors BucketColors) PanelDescriptor {
	return PanelDescriptor{
		ID:    "stats",
		Title: "Population",
		Width: width,
		Sections: []SectionDescriptor{
			{
				ID: "counts",
				Fields: []FieldDescriptor{
					{ID: "tick", Label: "Tick", Widget: WidgetText, TextGetter: func(d any) string { return fmt.Sprint(hud(d).Tick) }},
					{ID: "alive", Label: "Alive", Widget: WidgetText, TextGetter: func(d any) string {
						h := hud(d)
						return fmt.Sprintf("%d / %d", h.Alive, h.Cells)
					}},
					{ID: "density", Label: "Density", Widget: WidgetBar, Getter: func(d any) float32 { return hud(d).Density() }},
				},
			},
			{
				ID:    "buckets",
				Title: "Age buckets",
				Fields: []FieldDescriptor{
					{ID: "young", Label: "Young", Widget: WidgetBar, Color: colors.Young, Getter: func(d any) float32 { return hud(d).Young }},
					{ID: "middle", Label: "Middle", Widget: WidgetBar, Color: colors.Middle, Getter: func(d any) float32 { return hud(d).Middle }},
					{ID: "old", Label: "Old", Widget: WidgetBar, Color: colors.Old, Getter: func(d any) float32 { return hud(d).Old }},
					{
						ID: "avg_age", Label: "Avg age", Widget: WidgetText, Format: "%.1f",
						Visible: func(d any) bool { return hud(d).HasAverageAge },
						Getter:  func(d any) float32 { return float32(hud(d).AverageAge) },
					},
				},
			},
			{
				ID:    "rule",
				Title: "Rule",
				Fields: []FieldDescriptor{
					{ID: "variant", Label: "Variant", Widget: WidgetText, TextGetter: func(d any) string { return hud(d).Variant }},
					{ID: "birth", Label: "Birth", Widget: WidgetText, TextGetter: func(d any) string { return fmt.Sprintf("B%d", hud(d).BirthThreshold) }},
					{ID: "policy", Label: "Buckets", Widget: WidgetText, TextGetter: func(d any) string { return hud(d).Policy }},
				},
			},
		},
	}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	panel    PanelDescriptor
}

// NewHUD creates a HUD whose stats panel is panelWidth wide.
func NewHUD(panelWidth int32, colors BucketColors) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		panel:    StatsPanel(panelWidth, colors),
	}
}

// Draw renders the overlay text over the grid.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.Green)
	rl.DrawText(
		fmt.Sprintf("FPS: %d | Ticks/s: %.0f", data.FPS, data.TicksPerSec),
		10, 35, 16, rl.Green,
	)
	rl.DrawText(data.StatusText(), 10, 55, 16, rl.Yellow)
}

// DrawPanel renders the stats panel at (x, y) and returns its bottom edge.
func (h *HUD) DrawPanel(x, y int32, data HUDData) int32 {
	return h.renderer.DrawPanelDescriptor(x, y, h.panel, data)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(x, screenHeight int32, controls string) {
	rl.DrawText(controls, x, screenHeight-25, 12, rl.Gray)
}
