package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseTower(defaultTowerYAML)
	if err != nil {
		t.Fatalf("embedded tower.yaml failed to parse: %v", err)
	}
	def := DefaultTowerConfig()

	if cfg.World != def.World {
		t.Errorf("world = %+v, expected %+v", cfg.World, def.World)
	}
	if cfg.Physics != def.Physics {
		t.Errorf("physics = %+v, expected %+v", cfg.Physics, def.Physics)
	}
	if cfg.Behaviors != def.Behaviors {
		t.Errorf("behaviors = %+v, expected %+v", cfg.Behaviors, def.Behaviors)
	}
	if cfg.Scoring != def.Scoring {
		t.Errorf("scoring = %+v, expected %+v", cfg.Scoring, def.Scoring)
	}
	if len(cfg.Generation.Phases) != len(def.Generation.Phases) {
		t.Fatalf("phases = %d rows, expected %d", len(cfg.Generation.Phases), len(def.Generation.Phases))
	}
	for i := range def.Generation.Phases {
		got, want := cfg.Generation.Phases[i], def.Generation.Phases[i]
		if got.ProgressStart != want.ProgressStart || got.PatternChance != want.PatternChance {
			t.Errorf("phase %d = %+v, expected %+v", i, got, want)
		}
	}
	if cfg.Difficulty.Progression.Type != "height" || cfg.Difficulty.Progression.MaxAt != 12000 {
		t.Errorf("difficulty progression = %+v", cfg.Difficulty.Progression)
	}
}

func TestLoadTowerCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.yaml")
	data := []byte("physics:\n  gravity: 1000\ngeneration:\n  specials: true\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadTower(path)
	if err != nil {
		t.Fatalf("LoadTower() failed: %v", err)
	}

	if cfg.Physics.Gravity != 1000 {
		t.Errorf("gravity = %f, expected 1000", cfg.Physics.Gravity)
	}
	if !cfg.Generation.Specials {
		t.Error("specials should be enabled by the override")
	}
	// Untouched values keep their defaults
	if cfg.Physics.JumpVelocity != 480 {
		t.Errorf("jump velocity = %f, expected default 480", cfg.Physics.JumpVelocity)
	}
	if len(cfg.Generation.Phases) == 0 {
		t.Error("phases should fall back to defaults")
	}
}

func TestLoadTowerMissingCustomPath(t *testing.T) {
	cfg, err := LoadTower(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing custom config")
	}
	if cfg.World.Width != 480 {
		t.Errorf("error path should still return defaults, got width %f", cfg.World.Width)
	}
}

func TestParseTowerRepairsDegenerateValues(t *testing.T) {
	data := []byte("world:\n  width: 0\ngeneration:\n  min_spacing: 300\n  max_spacing: 100\n  phases: []\nrules:\n  health: -5\n")
	cfg, err := ParseTower(data)
	if err != nil {
		t.Fatalf("ParseTower() failed: %v", err)
	}

	if cfg.World.Width != 480 {
		t.Errorf("width = %f, expected repaired 480", cfg.World.Width)
	}
	if cfg.Generation.MinSpacing != 65 || cfg.Generation.MaxSpacing != 260 {
		t.Errorf("spacing clamp = [%f, %f], expected [65, 260]", cfg.Generation.MinSpacing, cfg.Generation.MaxSpacing)
	}
	if len(cfg.Generation.Phases) == 0 {
		t.Error("empty phase table should be repaired")
	}
	if cfg.Rules.Health != 100 {
		t.Errorf("health = %d, expected 100", cfg.Rules.Health)
	}
}

func TestParseTowerProgressionType(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected string
		at6000   float64
	}{
		{"score falls back to height", "difficulty:\n  progression:\n    type: score\n", ProgressionHeight, 0.5},
		{"time falls back to height", "difficulty:\n  progression:\n    type: time\n", ProgressionHeight, 0.5},
		{"none stays fixed", "difficulty:\n  progression:\n    type: none\n", ProgressionNone, 0},
		{"zero max_at repaired", "difficulty:\n  progression:\n    max_at: 0\n", ProgressionHeight, 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := ParseTower([]byte(tc.yaml))
			if err != nil {
				t.Fatalf("ParseTower() failed: %v", err)
			}
			if cfg.Difficulty.Progression.Type != tc.expected {
				t.Errorf("progression type = %q, expected %q", cfg.Difficulty.Progression.Type, tc.expected)
			}
			d := NewDifficultyManager(cfg.Difficulty)
			if got := d.HeightProgress(6000); got != tc.at6000 {
				t.Errorf("progress at 6000 = %f, expected %f", got, tc.at6000)
			}
		})
	}
}

func TestApplyTowerPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		enabled     bool
		level       float64
		safeRunway  int
		healthAtEnd int
	}{
		{DifficultyEasy, true, 0.0, 8, 100},
		{DifficultyNormal, true, 0.3, 5, 100},
		{DifficultyHard, true, 0.7, 3, 50},
		{DifficultyFixed, false, 0.0, 5, 100},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTowerConfig()
			ApplyTowerPreset(&cfg, tc.preset)

			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("initial level = %f, expected %f", cfg.Difficulty.InitialLevel, tc.level)
			}
			if cfg.Generation.SafePlatformCount != tc.safeRunway {
				t.Errorf("safe runway = %d, expected %d", cfg.Generation.SafePlatformCount, tc.safeRunway)
			}
			if cfg.Rules.Health != tc.healthAtEnd {
				t.Errorf("health = %d, expected %d", cfg.Rules.Health, tc.healthAtEnd)
			}
		})
	}
}

func TestDifficultyHeightProgress(t *testing.T) {
	d := NewDifficultyManager(DefaultTowerConfig().Difficulty)

	if got := d.HeightProgress(0); got != 0 {
		t.Errorf("progress at 0 = %f, expected 0", got)
	}
	if got := d.HeightProgress(6000); got != 0.5 {
		t.Errorf("progress at 6000 = %f, expected 0.5", got)
	}
	if got := d.HeightProgress(50000); got != 1 {
		t.Errorf("progress beyond max = %f, expected 1", got)
	}
	if got := d.HeightProgress(-100); got != 0 {
		t.Errorf("negative height should clamp to 0, got %f", got)
	}
}

func TestDifficultyInitialLevelInterpolation(t *testing.T) {
	d := NewDifficultyManager(DefaultTowerConfig().Difficulty)
	d.SetInitialLevel(0.5)

	if got := d.HeightProgress(0); got != 0.5 {
		t.Errorf("progress at start = %f, expected 0.5", got)
	}
	if got := d.HeightProgress(6000); got != 0.75 {
		t.Errorf("progress halfway = %f, expected 0.75", got)
	}

	d.SetEnabled(false)
	if got := d.HeightProgress(12000); got != 0.5 {
		t.Errorf("disabled progression should stay at initial level, got %f", got)
	}
}
