package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRunnerConfigSane(t *testing.T) {
	cfg := DefaultRunnerConfig()

	if cfg.Physics.Gravity <= 0 {
		t.Error("gravity must be positive")
	}
	if cfg.Physics.JumpImpulse >= 0 {
		t.Error("jump impulse must be negative (screen y grows downward)")
	}
	if cfg.Quiz.MinIntervalMs > cfg.Quiz.MaxIntervalMs {
		t.Error("quiz interval bounds inverted")
	}
	if cfg.Obstacles.MinWidth > cfg.Obstacles.MaxWidth {
		t.Error("obstacle width bounds inverted")
	}
	if cfg.Gameplay.FeedbackMs <= 0 {
		t.Error("feedback duration must be positive")
	}
}

func TestEmbeddedYAMLMatchesStructure(t *testing.T) {
	cfg, err := LoadRunner("")
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}
	if cfg.Physics.BaseSpeed <= 0 {
		t.Error("embedded config missing base speed")
	}
	if cfg.Quiz.MaxIntervalMs <= 0 {
		t.Error("embedded config missing quiz intervals")
	}
}

func TestLoadRunnerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	body := `
physics:
  gravity: 0.5
  jump_impulse: -3.0
  base_speed: 1.0
quiz:
  min_interval_ms: 1000
  max_interval_ms: 2000
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("Gravity = %f, want 0.5", cfg.Physics.Gravity)
	}
	if cfg.Quiz.MinIntervalMs != 1000 || cfg.Quiz.MaxIntervalMs != 2000 {
		t.Errorf("quiz intervals = %f/%f, want 1000/2000", cfg.Quiz.MinIntervalMs, cfg.Quiz.MaxIntervalMs)
	}
}

func TestLoadRunnerMissingCustomPath(t *testing.T) {
	if _, err := LoadRunner(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadRunner on a missing explicit path succeeded")
	}
}

func TestApplyRunnerPreset(t *testing.T) {
	cfg := DefaultRunnerConfig()
	ApplyRunnerPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled {
		t.Error("hard preset disabled progression")
	}
	if cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("InitialLevel = %f, want 0.7", cfg.Difficulty.InitialLevel)
	}
	if cfg.Quiz.MinIntervalMs != 4000 || cfg.Quiz.MaxIntervalMs != 7000 {
		t.Errorf("hard preset pacing = %f/%f", cfg.Quiz.MinIntervalMs, cfg.Quiz.MaxIntervalMs)
	}

	cfg = DefaultRunnerConfig()
	ApplyRunnerPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset left progression enabled")
	}
}

func TestDifficultyLevelProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:      ScalingConfig{SpeedMultiplier: 2.0, SpacingReduction: 20},
	})

	if lvl := d.Level(0, 0); lvl != 0.0 {
		t.Errorf("Level(0) = %f, want 0", lvl)
	}
	if lvl := d.Level(500, 0); lvl != 0.5 {
		t.Errorf("Level(500) = %f, want 0.5", lvl)
	}
	if lvl := d.Level(5000, 0); lvl != 1.0 {
		t.Errorf("Level(5000) = %f, want 1.0 (clamped)", lvl)
	}
}

func TestDifficultySpeedAndSpacing(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:      ScalingConfig{SpeedMultiplier: 2.0, SpacingReduction: 20},
	})

	if sp := d.Speed(1.0, 0, 0); sp != 1.0 {
		t.Errorf("Speed at level 0 = %f, want 1.0", sp)
	}
	if sp := d.Speed(1.0, 1000, 0); sp != 3.0 {
		t.Errorf("Speed at max level = %f, want 3.0", sp)
	}

	if sc := d.Spacing(50, 0, 0); sc != 50 {
		t.Errorf("Spacing at level 0 = %d, want 50", sc)
	}
	if sc := d.Spacing(50, 1000, 0); sc != 30 {
		t.Errorf("Spacing at max level = %d, want 30", sc)
	}
	// Spacing never drops below the playable minimum
	if sc := d.Spacing(16, 1000, 0); sc != 15 {
		t.Errorf("Spacing floor = %d, want 15", sc)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.4,
		Scaling:      ScalingConfig{SpeedMultiplier: 2.0},
	})

	if lvl := d.Level(100000, 100000); lvl != 0.4 {
		t.Errorf("disabled progression Level = %f, want fixed 0.4", lvl)
	}
}
