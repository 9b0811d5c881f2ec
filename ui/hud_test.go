package ui

import "testing"

func findField(t *testing.T, pd PanelDescriptor, id string) FieldDescriptor {
	t.Helper()
	for _, sd := range pd.Sections {
		for _, fd := range sd.Fields {
			if fd.ID == id {
				return fd
			}
		}
	}
	t.Fatalf("field %q not found", id)
	return FieldDescriptor{}
}

func TestStatsPanelFields(t *testing.T) {
	pd := StatsPanel(260, BucketColors{})
	data := HUDData{
		Tick:           42,
		Alive:          25,
		Cells:          100,
		Young:          0.5,
		Middle:         0.3,
		Old:            0.2,
		AverageAge:     12.34,
		HasAverageAge:  true,
		Variant:        "aged",
		BirthThreshold: 4,
		Policy:         "adaptive",
	}

	tests := []struct {
		id   string
		want string
	}{
		{"tick", "42"},
		{"alive", "25 / 100"},
		{"avg_age", "12.3"},
		{"birth", "B4"},
		{"policy", "adaptive"},
		{"young", "0.50"},
	}
	for _, tt := range tests {
		if got := findField(t, pd, tt.id).Text(data); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.id, got, tt.want)
		}
	}

	if d := findField(t, pd, "density").Getter(data); d != 0.25 {
		t.Errorf("density = %v, want 0.25", d)
	}
}

func TestStatsPanelHidesAverageAge(t *testing.T) {
	r := NewRenderer()
	pd := StatsPanel(260, BucketColors{})

	with := r.PanelHeight(pd, HUDData{HasAverageAge: true})
	without := r.PanelHeight(pd, HUDData{})
	if with-without != r.Theme.LineHeight {
		t.Errorf("height difference = %d, want one line (%d)", with-without, r.Theme.LineHeight)
	}
}

func TestHUDDataStatus(t *testing.T) {
	if got := (HUDData{Paused: true}).StatusText(); got != "PAUSED" {
		t.Errorf("paused status = %q", got)
	}
	if got := (HUDData{StepsPerUpdate: 3}).StatusText(); got != "Running 3x" {
		t.Errorf("running status = %q", got)
	}
	if (HUDData{}).Density() != 0 {
		t.Error("density with zero cells should be 0")
	}
}

func TestClampSteps(t *testing.T) {
	tests := []struct {
		v    float32
		max  int
		want int
	}{
		{0, 20, 1},
		{1.4, 20, 1},
		{1.6, 20, 2},
		{25, 20, 20},
		{7, 0, 7},
	}
	for _, tt := range tests {
		if got := ClampSteps(tt.v, tt.max); got != tt.want {
			t.Errorf("ClampSteps(%v, %d) = %d, want %d", tt.v, tt.max, got, tt.want)
		}
	}
}
