package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayDefaults(t *testing.T) {
	reg := NewOverlayRegistry()
	for _, id := range []OverlayID{OverlayHUD, OverlayStats, OverlayControls, OverlayLegend} {
		if !reg.IsEnabled(id) {
			t.Errorf("%s should start enabled", id)
		}
	}
	if reg.IsEnabled(OverlayPerf) {
		t.Error("perf should start disabled")
	}
}

func TestOverlayHandleKeyPress(t *testing.T) {
	reg := NewOverlayRegistry()

	id, state, ok := reg.HandleKeyPress(rl.KeyF)
	if !ok || id != OverlayPerf || !state {
		t.Errorf("KeyF = %s, %v, %v", id, state, ok)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyQ); ok {
		t.Error("unbound key toggled an overlay")
	}
	if len(reg.Keys()) != len(reg.All()) {
		t.Errorf("keys = %d, overlays = %d", len(reg.Keys()), len(reg.All()))
	}
}

func TestOverlayExclusive(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.Register(OverlayDescriptor{ID: "a", Exclusive: []OverlayID{OverlayStats}})

	reg.SetEnabled("a", true)
	if reg.IsEnabled(OverlayStats) {
		t.Error("exclusive overlay not disabled")
	}
	if reg.Toggle("missing") {
		t.Error("toggling an unknown overlay should report false")
	}
}
