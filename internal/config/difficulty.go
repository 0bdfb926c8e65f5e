package config

import "math"

// DifficultyManager maps height climbed to a normalized difficulty level
// in [0, 1].
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// HeightProgress is the climb-driven level used by platform generation.
// It interpolates from the initial level to 1.0 as height reaches max_at.
func (d *DifficultyManager) HeightProgress(height float64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	progress := clampF(height/maxAt, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	if math.IsNaN(val) {
		return min
	}
	return math.Max(min, math.Min(max, val))
}
