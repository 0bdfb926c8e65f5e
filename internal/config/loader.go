package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const towerConfigFile = "tower.yaml"

// LoadTower loads the tower configuration.
// Search order: customPath -> ~/.tower/configs/tower.yaml -> ./configs/tower.yaml -> embedded default.
// Files are decoded on top of the defaults, so partial overrides are allowed.
func LoadTower(customPath string) (TowerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTowerConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseTower(data)
		if err != nil {
			return DefaultTowerConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(towerConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseTower(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", towerConfigFile)); err == nil {
		if cfg, err := ParseTower(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseTower(defaultTowerYAML)
	if err != nil {
		return DefaultTowerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseTower decodes YAML on top of DefaultTowerConfig and repairs
// degenerate values.
func ParseTower(data []byte) (TowerConfig, error) {
	cfg := DefaultTowerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.normalize()
	return cfg, nil
}

// normalize replaces values the game cannot run with by their defaults.
func (c *TowerConfig) normalize() {
	def := DefaultTowerConfig()

	if c.World.Width <= 0 || c.World.Height <= 0 {
		c.World = def.World
	}
	if c.Physics.Gravity <= 0 {
		c.Physics.Gravity = def.Physics.Gravity
	}
	if c.Physics.JumpVelocity <= 0 {
		c.Physics.JumpVelocity = def.Physics.JumpVelocity
	}
	if c.Generation.MinSpacing <= 0 || c.Generation.MaxSpacing < c.Generation.MinSpacing {
		c.Generation.MinSpacing = def.Generation.MinSpacing
		c.Generation.MaxSpacing = def.Generation.MaxSpacing
	}
	if c.Generation.MinWidth <= 0 {
		c.Generation.MinWidth = def.Generation.MinWidth
	}
	if c.Generation.MaxWidthFraction <= 0 || c.Generation.MaxWidthFraction > 1 {
		c.Generation.MaxWidthFraction = def.Generation.MaxWidthFraction
	}
	if len(c.Generation.Phases) == 0 {
		c.Generation.Phases = def.Generation.Phases
	}
	if c.Scoring.ComboWindowMs <= 0 {
		c.Scoring.ComboWindowMs = def.Scoring.ComboWindowMs
	}
	if c.Rules.Health <= 0 {
		c.Rules.Health = def.Rules.Health
	}
	if c.Difficulty.Progression.Type != ProgressionNone {
		c.Difficulty.Progression.Type = ProgressionHeight
	}
	if c.Difficulty.Progression.MaxAt <= 0 {
		c.Difficulty.Progression.MaxAt = def.Difficulty.Progression.MaxAt
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tower", "configs", filename)
}

// ApplyTowerPreset modifies the config based on a difficulty preset.
func ApplyTowerPreset(cfg *TowerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Easy runs get a longer runway and more forgiving timing windows
	switch preset {
	case DifficultyEasy:
		cfg.Generation.SafePlatformCount = 8
		cfg.Physics.CoyoteMs = 160
		cfg.Physics.JumpBufferMs = 140
	case DifficultyHard:
		cfg.Generation.SafePlatformCount = 3
		cfg.Rules.Health = 50
	}
}
