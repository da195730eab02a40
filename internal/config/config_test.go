package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/bisect/internal/apperrors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Function != "sqrt2" {
		t.Errorf("expected function sqrt2, got %s", cfg.Function)
	}
	if cfg.Tolerance != 1e-6 {
		t.Errorf("expected tolerance 1e-6, got %g", cfg.Tolerance)
	}
	if cfg.MaxIterations != 100 {
		t.Errorf("expected 100 iterations, got %d", cfg.MaxIterations)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(c *Config)
		field string
	}{
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }, "tolerance"},
		{"negative iterations", func(c *Config) { c.MaxIterations = -1 }, "max_iterations"},
		{"reversed bracket", func(c *Config) { c.Low, c.High = Float(2), Float(1) }, "low"},
		{"no function", func(c *Config) { c.Function = "" }, "function"},
		{"low precision", func(c *Config) { c.Precision = 24 }, "precision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(cfg)

			var verr apperrors.ValidationError
			if err := cfg.Validate(); !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, verr.Field)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bisect.yaml")
	cfg := DefaultConfig()
	cfg.Expr = "x^3 - 10"
	cfg.Low, cfg.High = Float(2), Float(3)
	cfg.Precision = 512

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingIsConfigError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var cerr apperrors.ConfigError
	if !errors.As(err, &cerr) {
		t.Errorf("expected ConfigError, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("cos", "textbook")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Tolerance != 1e-4 || *cfg.High != 3 {
		t.Errorf("unexpected preset %+v", cfg)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("cos", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "fine") != nil {
		t.Error("expected nil for nonexistent function")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("sqrt2")
	want := []string{"coarse", "exhaustive", "fine"}
	if len(presets) != len(want) {
		t.Fatalf("expected %v, got %v", want, presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("expected %v, got %v", want, presets)
		}
	}

	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent function")
	}
}

func TestMergePreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(GetPreset("cubic", "wide"))

	if cfg.Function != "cubic" || *cfg.Low != -10 || *cfg.High != 10 || cfg.Tolerance != 1e-9 {
		t.Errorf("unexpected merge result %+v", cfg)
	}
	if cfg.DataDir != DefaultDataDir {
		t.Error("merge should keep fields the preset leaves unset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for fn := range Presets {
		for _, name := range ListPresets(fn) {
			cfg := DefaultConfig()
			cfg.Merge(GetPreset(fn, name))
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s/%s: %v", fn, name, err)
			}
		}
	}
}

func TestBracketFillsMissingBound(t *testing.T) {
	tests := []struct {
		name      string
		low, high *float64
		wantLow   float64
		wantHigh  float64
	}{
		{"neither", nil, nil, 0, 3},
		{"low only", Float(-1), nil, -1, 3},
		{"high only", nil, Float(2), 0, 2},
		{"both", Float(1), Float(2), 1, 2},
		{"explicit zero", Float(0), nil, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Low, cfg.High = tt.low, tt.high
			lo, hi := cfg.Bracket(0, 3)
			if lo != tt.wantLow || hi != tt.wantHigh {
				t.Errorf("Bracket() = [%g, %g], want [%g, %g]", lo, hi, tt.wantLow, tt.wantHigh)
			}
		})
	}
}

func TestMergeSingleBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(&Config{High: Float(5)})

	if cfg.Low != nil {
		t.Errorf("expected low to stay unset, got %g", *cfg.Low)
	}
	if cfg.High == nil || *cfg.High != 5 {
		t.Errorf("expected high 5, got %v", cfg.High)
	}
}

func TestLoadPrecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "precise.yaml")
	if err := os.WriteFile(path, []byte("function: ln2\nprecision: 1024\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Precision != 1024 {
		t.Errorf("expected precision 1024, got %d", cfg.Precision)
	}
	if cfg.Low != nil || cfg.High != nil {
		t.Error("bounds absent from the file should stay unset")
	}
}
