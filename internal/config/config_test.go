package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravmap/internal/gravity"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mass != 1.0e7 {
		t.Errorf("expected mass 1e7, got %g", cfg.Mass)
	}
	if cfg.Location.Z != -10 {
		t.Errorf("expected anomaly at z=-10, got %g", cfg.Location.Z)
	}
	if cfg.G != gravity.DefaultG {
		t.Errorf("expected default G, got %g", cfg.G)
	}
	if len(cfg.Heights) != 3 || len(cfg.Spacings) != 2 {
		t.Errorf("unexpected lab layers: heights %v spacings %v", cfg.Heights, cfg.Spacings)
	}
	if err := cfg.Plan().Validate(); err != nil {
		t.Errorf("default plan invalid: %v", err)
	}
}

func TestDefaultConfigIndependentSlices(t *testing.T) {
	a := DefaultConfig()
	a.Heights[0] = 42

	if DefaultConfig().Heights[0] != 0 {
		t.Error("DefaultConfig shares its heights slice")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.yaml")
	data := []byte(`
mass: -3.5e6
location:
  x: 10
  z: -40
heights: [0, 50]
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Mass != -3.5e6 {
		t.Errorf("expected mass -3.5e6, got %g", cfg.Mass)
	}
	if cfg.Location.X != 10 || cfg.Location.Z != -40 {
		t.Errorf("unexpected location %+v", cfg.Location)
	}
	if len(cfg.Heights) != 2 || cfg.Heights[1] != 50 {
		t.Errorf("unexpected heights %v", cfg.Heights)
	}
	// untouched keys keep defaults
	if len(cfg.Spacings) != 2 || cfg.Extent.XMax != 100 || cfg.G != gravity.DefaultG {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := GetPreset("deep")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Mass != cfg.Mass || got.Location != cfg.Location || got.Extent != cfg.Extent {
		t.Errorf("round trip mismatch: %+v vs %+v", got, cfg)
	}
}

func TestPlan(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parallel = true
	cfg.Workers = 4

	plan := cfg.Plan()
	if plan.Anomaly.Location != (gravity.Point3{X: 0, Y: 0, Z: -10}) {
		t.Errorf("unexpected anomaly location %v", plan.Anomaly.Location)
	}
	if plan.Extent.YMin != -100 || !plan.Parallel || plan.Workers != 4 {
		t.Errorf("unexpected plan %+v", plan)
	}

	plan.Heights[0] = 99
	if cfg.Heights[0] == 99 {
		t.Error("Plan shares slices with config")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("void")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Mass >= 0 {
		t.Errorf("void preset should carry negative mass, got %g", cfg.Mass)
	}

	cfg.Heights[0] = 123
	if Presets["void"].Heights[0] == 123 {
		t.Error("GetPreset returned shared state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Plan().Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
