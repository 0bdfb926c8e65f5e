// Package config provides YAML-based game configuration loading and
// difficulty management for the tower climber.
package config

// TowerConfig contains all tunables for the tower climber.
// Distances are world units; the world is 480 units wide, y grows downward.
type TowerConfig struct {
	World      TowerWorld       `yaml:"world"`
	Physics    TowerPhysics     `yaml:"physics"`
	Generation TowerGeneration  `yaml:"generation"`
	Behaviors  TowerBehaviors   `yaml:"behaviors"`
	Scoring    TowerScoring     `yaml:"scoring"`
	Rules      TowerRules       `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TowerWorld defines the logical viewport and camera.
type TowerWorld struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Padding    float64 `yaml:"padding"`     // Horizontal margin kept free of platforms
	SpawnY     float64 `yaml:"spawn_y"`     // World y of the base platform
	CameraLerp float64 `yaml:"camera_lerp"` // Fraction of the distance the camera closes per 60Hz frame
}

// TowerPhysics defines the player body and jump feel.
type TowerPhysics struct {
	Gravity       float64 `yaml:"gravity"`         // units/s^2
	JumpVelocity  float64 `yaml:"jump_velocity"`   // units/s, applied upward
	AirJumpFactor float64 `yaml:"air_jump_factor"` // Air jump strength relative to a full jump
	CoyoteMs      float64 `yaml:"coyote_ms"`
	JumpBufferMs  float64 `yaml:"jump_buffer_ms"`
	MoveSpeed     float64 `yaml:"move_speed"`
	MaxVelocityX  float64 `yaml:"max_velocity_x"`
	MaxVelocityY  float64 `yaml:"max_velocity_y"`
	PlayerWidth   float64 `yaml:"player_width"`
	PlayerHeight  float64 `yaml:"player_height"`
	InputHoldMs   float64 `yaml:"input_hold_ms"` // How long one steering key press keeps steering
}

// TowerGeneration defines procedural platform generation.
type TowerGeneration struct {
	SafePlatformCount int     `yaml:"safe_platform_count"`
	RunwaySpacing     float64 `yaml:"runway_spacing"`
	RunwayJitter      float64 `yaml:"runway_jitter"`
	PreGenerate       float64 `yaml:"pre_generate"`      // Frontier distance above spawn on initialize
	GenerationOffset  float64 `yaml:"generation_offset"` // Keep the frontier this far above camera bottom
	EvictionMargin    float64 `yaml:"eviction_margin"`
	MinSpacing        float64 `yaml:"min_spacing"`
	MaxSpacing        float64 `yaml:"max_spacing"`
	MinWidth          float64 `yaml:"min_width"`
	MaxWidthFraction  float64 `yaml:"max_width_fraction"`
	Specials          bool    `yaml:"specials"` // Enables magnetic, spring, fragile and the other special types
	// SpecialWeights are base draw weights for special types, keyed by type name.
	SpecialWeights map[string]float64 `yaml:"special_weights"`
	Phases         []PhaseConfig      `yaml:"phases"`
}

// PhaseConfig is one row of the difficulty phase table.
type PhaseConfig struct {
	ProgressStart float64            `yaml:"progress_start"`
	SpacingMin    float64            `yaml:"spacing_min"`
	SpacingMax    float64            `yaml:"spacing_max"`
	WidthMin      float64            `yaml:"width_min"` // Fraction of world width
	WidthMax      float64            `yaml:"width_max"`
	PatternChance float64            `yaml:"pattern_chance"`
	TypeWeights   map[string]float64 `yaml:"type_weights"`
}

// TowerBehaviors defines per-type landing behavior parameters.
type TowerBehaviors struct {
	BoostFactor        float64 `yaml:"boost_factor"`    // Multiple of jump velocity
	SpringVelocity     float64 `yaml:"spring_velocity"` // Fixed upward impulse
	FragileLandings    int     `yaml:"fragile_landings"`
	GoldenBonus        int     `yaml:"golden_bonus"`
	ToxicDamage        int     `yaml:"toxic_damage"`
	TeleportLift       float64 `yaml:"teleport_lift"` // Player is placed this far above the target
	DisappearFadeMs    float64 `yaml:"disappear_fade_ms"`
	DisappearOffMs     float64 `yaml:"disappear_off_ms"`
	DisappearRestoreMs float64 `yaml:"disappear_restore_ms"`
	MovingAmplitude    float64 `yaml:"moving_amplitude"`
	MovingSpeed        float64 `yaml:"moving_speed"` // Radians per second
	MagnetRange        float64 `yaml:"magnet_range"`
	MagnetStrength     float64 `yaml:"magnet_strength"`
	MagnetMaxPull      float64 `yaml:"magnet_max_pull"`
	IceFriction        float64 `yaml:"ice_friction"`   // Fraction of steering applied on ice
	ConveyorSpeed      float64 `yaml:"conveyor_speed"` // Drift applied while standing on a conveyor
}

// TowerScoring defines height score, landing combos and milestones.
type TowerScoring struct {
	HeightFactor     float64 `yaml:"height_factor"`
	ComboWindowMs    float64 `yaml:"combo_window_ms"`
	LandingFactor    float64 `yaml:"landing_factor"`
	LandingMin       float64 `yaml:"landing_min"`
	LandingMax       float64 `yaml:"landing_max"`
	ComboStep        float64 `yaml:"combo_step"`
	ComboCap         int     `yaml:"combo_cap"`
	MilestoneStart   int     `yaml:"milestone_start"`
	MilestoneStep    int     `yaml:"milestone_step"`
	MilestoneGrowth  int     `yaml:"milestone_growth"`
	MilestoneMaxStep int     `yaml:"milestone_max_step"`
	MilestoneBase    int     `yaml:"milestone_base"`
	MilestoneFactor  float64 `yaml:"milestone_factor"`
}

// TowerRules defines run-ending conditions.
type TowerRules struct {
	DeathMargin float64 `yaml:"death_margin"` // Distance below camera bottom that ends the run
	Health      int     `yaml:"health"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "height" or "none"
	MaxAt int    `yaml:"max_at"` // Height at which max difficulty is reached
}

// Progression types. Anything else is read as ProgressionHeight.
const (
	ProgressionHeight = "height"
	ProgressionNone   = "none"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
