package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/lorenzglow/internal/particle"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "euler" {
		t.Errorf("expected integrator euler, got %s", cfg.Integrator)
	}
	if cfg.DTCeiling != 0.05 {
		t.Errorf("expected dt ceiling 0.05, got %f", cfg.DTCeiling)
	}
	if cfg.SpeedScale != 0.4 {
		t.Errorf("expected speed scale 0.4, got %f", cfg.SpeedScale)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestGetPresetIsCopy(t *testing.T) {
	a := GetPreset("classic")
	a.FPS = 1
	if b := GetPreset("classic"); b.FPS == 1 {
		t.Error("preset shared state between calls")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestLegacyPreset(t *testing.T) {
	cfg := GetPreset("legacy")
	opts, err := cfg.SceneOptions()
	if err != nil {
		t.Fatalf("scene options: %v", err)
	}
	if opts.DTCeiling != 0.1 {
		t.Errorf("expected ceiling 0.1, got %f", opts.DTCeiling)
	}
	if opts.Particle.Vertical != particle.AxisY {
		t.Errorf("expected y projection, got %v", opts.Particle.Vertical)
	}
	if opts.Particle.Jitter.Enabled {
		t.Error("expected jitter disabled")
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpeedScale = 0
	cfg.Trail.Projection = "x"
	cfg.Integrator = "verlet"
	cfg.Background = "not-a-color"
	cfg.Sizing.Small.Trail = 1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"speed_scale", "projection", "integrator", "color", "sizing.small.trail"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q, got: %v", want, err)
		}
	}

	if _, err := cfg.SceneOptions(); err == nil {
		t.Error("SceneOptions should reject an invalid config")
	}
}

func TestValidateRejectsUnstableStep(t *testing.T) {
	tests := []struct {
		speed, ceiling float64
		ok             bool
	}{
		{0.4, 0.05, true},
		{0.4, 0.1, true},
		{1, 0.05, true},
		{2, 0.05, false},
		{0.4, 0.2, false},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.SpeedScale = tt.speed
		cfg.DTCeiling = tt.ceiling
		err := cfg.Validate()
		if tt.ok && err != nil {
			t.Errorf("speed %g ceiling %g: expected valid, got %v", tt.speed, tt.ceiling, err)
		}
		if !tt.ok && (err == nil || !strings.Contains(err.Error(), "speed_scale * dt_ceiling")) {
			t.Errorf("speed %g ceiling %g: expected step error, got %v", tt.speed, tt.ceiling, err)
		}
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glow.yaml")
	yml := "speed_scale: 0.8\njitter:\n  enabled: false\nsizing:\n  large:\n    particles: 90\n"
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.SpeedScale != 0.8 {
		t.Errorf("expected speed scale 0.8, got %f", cfg.SpeedScale)
	}
	if cfg.Jitter.Enabled {
		t.Error("expected jitter disabled")
	}
	if cfg.Sizing.Large.Particles != 90 || cfg.Sizing.Large.Trail != 60 {
		t.Errorf("expected large tier 90x60, got %+v", cfg.Sizing.Large)
	}
	if cfg.DTCeiling != 0.05 {
		t.Errorf("expected default ceiling kept, got %f", cfg.DTCeiling)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("dense")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Sizing.Large != cfg.Sizing.Large {
		t.Errorf("expected %+v, got %+v", cfg.Sizing.Large, loaded.Sizing.Large)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSceneOptions(t *testing.T) {
	opts, err := DefaultConfig().SceneOptions()
	if err != nil {
		t.Fatalf("scene options: %v", err)
	}
	if opts.Field == nil || opts.Integrator == nil {
		t.Fatal("expected field and integrator to be set")
	}
	if opts.Sizing.Large.Particles != 40 || opts.Sizing.Large.Trail != 60 {
		t.Errorf("unexpected large tier %+v", opts.Sizing.Large)
	}
	if opts.Particle.CommitThreshold != 0.01 {
		t.Errorf("expected commit threshold 0.01, got %f", opts.Particle.CommitThreshold)
	}
}

func TestOverlayKeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glow.yaml")
	if err := os.WriteFile(path, []byte("fps: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := GetPreset("legacy")
	if err := Overlay(path, cfg); err != nil {
		t.Fatalf("overlay failed: %v", err)
	}
	if cfg.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.FPS)
	}
	if cfg.DTCeiling != 0.1 || cfg.Trail.Projection != "y" {
		t.Errorf("expected legacy fields kept, got ceiling %f projection %s", cfg.DTCeiling, cfg.Trail.Projection)
	}
}

func TestWriteYAML(t *testing.T) {
	var sb strings.Builder
	if err := DefaultConfig().WriteYAML(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	for _, key := range []string{"lorenz:", "  rho: 28", "dt_ceiling: 0.05", "projection: z"} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %q in output:\n%s", key, out)
		}
	}
}
