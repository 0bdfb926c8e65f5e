package config

import (
	_ "embed"
)

//go:embed defaults/tower.yaml
var defaultTowerYAML []byte

// DefaultTowerConfig returns the built-in tower configuration.
// It mirrors defaults/tower.yaml and is used when the embedded file fails to parse.
func DefaultTowerConfig() TowerConfig {
	return TowerConfig{
		World: TowerWorld{
			Width:      480,
			Height:     800,
			Padding:    20,
			SpawnY:     720,
			CameraLerp: 0.08,
		},
		Physics: TowerPhysics{
			Gravity:       860,
			JumpVelocity:  480,
			AirJumpFactor: 0.92,
			CoyoteMs:      130,
			JumpBufferMs:  110,
			MoveSpeed:     180,
			MaxVelocityX:  260,
			MaxVelocityY:  900,
			PlayerWidth:   28,
			PlayerHeight:  36,
			InputHoldMs:   150,
		},
		Generation: TowerGeneration{
			SafePlatformCount: 5,
			RunwaySpacing:     90,
			RunwayJitter:      70,
			PreGenerate:       2000,
			GenerationOffset:  1200,
			EvictionMargin:    500,
			MinSpacing:        65,
			MaxSpacing:        260,
			MinWidth:          60,
			MaxWidthFraction:  0.85,
			Specials:          false,
			SpecialWeights: map[string]float64{
				"magnetic":     0.03,
				"spring":       0.05,
				"fragile":      0.06,
				"moving":       0.06,
				"disappearing": 0.04,
				"golden":       0.02,
				"toxic":        0.03,
				"teleport":     0.02,
			},
			Phases: DefaultPhases(),
		},
		Behaviors: TowerBehaviors{
			BoostFactor:        1.45,
			SpringVelocity:     400,
			FragileLandings:    2,
			GoldenBonus:        500,
			ToxicDamage:        10,
			TeleportLift:       50,
			DisappearFadeMs:    3000,
			DisappearOffMs:     5000,
			DisappearRestoreMs: 1000,
			MovingAmplitude:    100,
			MovingSpeed:        0.5,
			MagnetRange:        50,
			MagnetStrength:     0.6,
			MagnetMaxPull:      60,
			IceFriction:        0.15,
			ConveyorSpeed:      70,
		},
		Scoring: TowerScoring{
			HeightFactor:     0.4,
			ComboWindowMs:    1400,
			LandingFactor:    0.15,
			LandingMin:       6,
			LandingMax:       90,
			ComboStep:        0.15,
			ComboCap:         8,
			MilestoneStart:   100,
			MilestoneStep:    100,
			MilestoneGrowth:  50,
			MilestoneMaxStep: 400,
			MilestoneBase:    50,
			MilestoneFactor:  0.1,
		},
		Rules: TowerRules{
			DeathMargin: 80,
			Health:      100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionHeight,
				MaxAt: 12000,
			},
		},
	}
}

// DefaultPhases returns the built-in difficulty phase rows, lowest first.
func DefaultPhases() []PhaseConfig {
	return []PhaseConfig{
		{ProgressStart: 0.00, SpacingMin: 80, SpacingMax: 120, WidthMin: 0.30, WidthMax: 0.42, PatternChance: 0.05},
		{ProgressStart: 0.15, SpacingMin: 95, SpacingMax: 140, WidthMin: 0.26, WidthMax: 0.38, PatternChance: 0.10},
		{ProgressStart: 0.35, SpacingMin: 110, SpacingMax: 165, WidthMin: 0.22, WidthMax: 0.34, PatternChance: 0.15,
			TypeWeights: map[string]float64{"narrow": 0.05}},
		{ProgressStart: 0.55, SpacingMin: 125, SpacingMax: 190, WidthMin: 0.19, WidthMax: 0.30, PatternChance: 0.20,
			TypeWeights: map[string]float64{"ice": 0.04, "boost": 0.03}},
		{ProgressStart: 0.75, SpacingMin: 140, SpacingMax: 215, WidthMin: 0.16, WidthMax: 0.27, PatternChance: 0.25,
			TypeWeights: map[string]float64{"crumble": 0.05, "conveyorRight": 0.04}},
		{ProgressStart: 0.90, SpacingMin: 150, SpacingMax: 235, WidthMin: 0.14, WidthMax: 0.24, PatternChance: 0.30,
			TypeWeights: map[string]float64{"narrow": 0.08, "crumble": 0.06}},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tower", "tower_chaos":
		return defaultTowerYAML
	default:
		return nil
	}
}
