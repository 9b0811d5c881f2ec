package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/agelife/sim"
	"github.com/pthm-cable/agelife/summary"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Grid.Side != 512 {
		t.Errorf("grid side = %d, want 512", cfg.Grid.Side)
	}
	if cfg.Grid.Seed != 0xcafebabe {
		t.Errorf("grid seed = %#x, want 0xcafebabe", cfg.Grid.Seed)
	}
	if cfg.Rule.MaxSpread != 0.9 || cfg.Rule.MinSpread != 0.3 {
		t.Errorf("spreads = %v/%v, want 0.9/0.3", cfg.Rule.MaxSpread, cfg.Rule.MinSpread)
	}
	if cfg.Derived.CellSize != 2 {
		t.Errorf("cell size = %d, want 2", cfg.Derived.CellSize)
	}
	if cfg.Derived.Rule.Variant != sim.VariantAged {
		t.Errorf("variant = %q, want aged", cfg.Derived.Rule.Variant)
	}
	if cfg.Derived.Rule.Workers < 1 {
		t.Errorf("workers = %d, want GOMAXPROCS default", cfg.Derived.Rule.Workers)
	}
}

func TestLoadUserOverrides(t *testing.T) {
	path := writeFile(t, `
grid:
  side: 256
rule:
  variant: classic
  birth_threshold: 4
  bucket_policy: fixed
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Side != 256 || cfg.Derived.CellSize != 4 {
		t.Errorf("side %d cell size %d, want 256 and 4", cfg.Grid.Side, cfg.Derived.CellSize)
	}
	if cfg.Derived.Rule.BirthThreshold != 4 || cfg.Derived.Rule.BucketPolicy != summary.PolicyFixed {
		t.Errorf("rule = %+v", cfg.Derived.Rule)
	}
	// Untouched fields keep their defaults.
	if cfg.Rule.MaxLifespan != 120 {
		t.Errorf("max lifespan = %d, want default 120", cfg.Rule.MaxLifespan)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"min above max", "rule:\n  min_lifespan: 200\n", sim.ErrInvalidConfig},
		{"bad variant", "rule:\n  variant: hexagonal\n", sim.ErrInvalidConfig},
		{"zero side", "grid:\n  side: 0\n", sim.ErrInvalidConfig},
		{"window mismatch", "grid:\n  side: 500\n", sim.ErrCellSize},
		{"narrow screen", "screen:\n  width: 800\n", sim.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeFile(t, "grid: [1, 2")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  string
		variant sim.Variant
		birth   int
		side    int
	}{
		{"classic", sim.VariantClassic, 3, 512},
		{"classic-b4", sim.VariantClassic, 4, 512},
		{"aged-small", sim.VariantAged, 4, 256},
		{"aged-large", sim.VariantAged, 3, 512},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			if err := cfg.ApplyPreset(tt.preset); err != nil {
				t.Fatalf("ApplyPreset: %v", err)
			}
			r := cfg.Derived.Rule
			if r.Variant != tt.variant || r.BirthThreshold != tt.birth || cfg.Grid.Side != tt.side {
				t.Errorf("got variant %s birth %d side %d", r.Variant, r.BirthThreshold, cfg.Grid.Side)
			}
		})
	}

	cfg, _ := Load("")
	if err := cfg.ApplyPreset("hexlife"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Rule.MinLifespan = 33
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Rule.MinLifespan != 33 || loaded.Grid.Seed != cfg.Grid.Seed {
		t.Errorf("round trip lost fields: %+v", loaded.Rule)
	}
}

func TestCfgAfterInit(t *testing.T) {
	MustInit("")
	if Cfg().Grid.Side == 0 {
		t.Error("expected initialized global config")
	}
}
