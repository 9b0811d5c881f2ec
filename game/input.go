package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/agelife/ui"
)

// controlsLegend is shown at the bottom of the side panel.
const controlsLegend = "SPACE pause  N step  </> speed  R reset  G reseed  B birth  arrows/wheel view  HOME recenter  ESC quit"

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.WindowShouldClose() || rl.IsKeyPressed(rl.KeyEscape) {
		g.Stop()
		return
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyN) && g.paused {
		g.stepOnce = true
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.setSteps(g.stepsPerUpdate - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.setSteps(g.stepsPerUpdate + 1)
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.reset("key")
	}
	if rl.IsKeyPressed(rl.KeyG) {
		g.reseed()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		g.toggleBirth()
	}

	for _, key := range g.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			g.overlays.HandleKeyPress(key)
		}
	}

	g.handleCameraInput()
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	// Screen pixels per frame
	const panSpeed = float32(8.0)

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Drag with the right mouse button
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Pan(-d.X, -d.Y)
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		g.camera.ZoomBy(1.0 + wheelMove*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// applyControls acts on clicks from the controls panel.
func (g *Game) applyControls(a ui.ControlActions) {
	if a.TogglePause {
		g.paused = !g.paused
	}
	if a.Step && g.paused {
		g.stepOnce = true
	}
	if a.Reset {
		g.reset("button")
	}
	if a.Reseed {
		g.reseed()
	}
	if a.ToggleBirth {
		g.toggleBirth()
	}
	g.setSteps(a.StepsPerUpdate)
}
