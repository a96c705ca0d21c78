// Package config provides YAML-based game configuration loading and
// difficulty management for the quiz runner.
package config

// RunnerConfig contains all configuration for the runner game.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Obstacles  RunnerObstacles  `yaml:"obstacles"`
	Player     RunnerPlayer     `yaml:"player"`
	Gameplay   RunnerGameplay   `yaml:"gameplay"`
	Quiz       QuizConfig       `yaml:"quiz"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines movement parameters for the runner.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
}

// RunnerObstacles defines obstacle spawning parameters.
type RunnerObstacles struct {
	MinWidth   int `yaml:"min_width"`
	MaxWidth   int `yaml:"max_width"`
	MinHeight  int `yaml:"min_height"`
	MaxHeight  int `yaml:"max_height"`
	MinSpacing int `yaml:"min_spacing"`
	MaxSpacing int `yaml:"max_spacing"`
}

// RunnerPlayer defines player sprite parameters.
type RunnerPlayer struct {
	X            int `yaml:"x"`
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	GroundOffset int `yaml:"ground_offset"`
}

// RunnerGameplay defines scoring and answer-effect parameters.
type RunnerGameplay struct {
	// DistancePointsPerTick is the passive score gain while running.
	DistancePointsPerTick float64 `yaml:"distance_points_per_tick"`
	// BoostTicks is how long the speed boost after a correct answer lasts.
	BoostTicks int `yaml:"boost_ticks"`
	// BoostMultiplier scales world speed during a boost.
	BoostMultiplier float64 `yaml:"boost_multiplier"`
	// StumbleTicks is how long the slowdown after a wrong answer lasts.
	StumbleTicks int `yaml:"stumble_ticks"`
	// StumbleMultiplier scales world speed during a stumble.
	StumbleMultiplier float64 `yaml:"stumble_multiplier"`
	// InvulnerableTicks is the grace period after a collision.
	InvulnerableTicks int `yaml:"invulnerable_ticks"`
	// FeedbackMs is how long answer feedback stays on screen.
	FeedbackMs float64 `yaml:"feedback_ms"`
}

// QuizConfig defines question pacing for the flow coordinator.
type QuizConfig struct {
	MinIntervalMs  float64 `yaml:"min_interval_ms"`
	MaxIntervalMs  float64 `yaml:"max_interval_ms"`
	RandomizeOrder bool    `yaml:"randomize_order"`
	AllowRepeat    bool    `yaml:"allow_repeat"`
	HistorySize    int     `yaml:"history_size"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Obstacle spacing reduction at max difficulty
}

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

// ApplyRunnerPreset modifies the config based on a difficulty preset.
// Harder presets also tighten the question pacing.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyHard:
		cfg.Quiz.MinIntervalMs = 4000
		cfg.Quiz.MaxIntervalMs = 7000
	case DifficultyEasy:
		cfg.Quiz.MinIntervalMs = 7000
		cfg.Quiz.MaxIntervalMs = 12000
	}
}
