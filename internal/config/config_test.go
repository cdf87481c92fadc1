package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Step <= 0 {
		t.Error("step should be positive")
	}
	if cfg.Horizon <= 0 {
		t.Error("horizon should be positive")
	}
	if cfg.Increment <= 0 {
		t.Error("increment should be positive")
	}
	if cfg.VMin >= cfg.VMax {
		t.Error("velocity bounds inverted")
	}
}

func TestBodiesConversion(t *testing.T) {
	cfg := DefaultConfig()
	a, b := cfg.Bodies()

	if a.Name != "a" || a.V0 != 5 {
		t.Errorf("unexpected body a: %+v", a)
	}
	if b.X0 != 50 || b.V0 != -2 {
		t.Errorf("unexpected body b: %+v", b)
	}
}

func TestGraphBodyConversionCopies(t *testing.T) {
	cfg := GetPreset("rampgraph")
	if cfg == nil {
		t.Fatal("rampgraph preset missing")
	}

	a, _ := cfg.Bodies()
	if !a.UsesGraph || len(a.Graph) != 3 {
		t.Fatalf("unexpected graph body: %+v", a)
	}

	a.Graph[0].V = 99
	if cfg.BodyA.Graph[0].V == 99 {
		t.Error("converted body aliases the config's graph")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	want := GetPreset("braking")
	if err := Save(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.BodyA.A != want.BodyA.A || got.BodyB.X0 != want.BodyB.X0 {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if got.Step != want.Step || got.Horizon != want.Horizon {
		t.Errorf("grid mismatch: got step=%v horizon=%v", got.Step, got.Horizon)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	if GetPreset("chase") == nil {
		t.Error("chase preset missing")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresetsStableOrder(t *testing.T) {
	first := ListPresets()
	second := ListPresets()

	if len(first) == 0 {
		t.Fatal("expected presets")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("preset order is not stable")
		}
	}
	for i := 1; i < len(first); i++ {
		if first[i-1] >= first[i] {
			t.Fatal("presets not sorted")
		}
	}
}
