// Package config provides YAML-based configuration loading and
// difficulty management for Caves.
package config

import "github.com/vovakirdan/tui-caves/internal/cave"

// CavesConfig contains all configuration for the Caves game.
type CavesConfig struct {
	Rules      CavesRules       `yaml:"rules"`
	Timing     CavesTiming      `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CavesRules defines scoring and win parameters.
type CavesRules struct {
	TimeLimit  float64 `yaml:"time_limit"`  // Seconds, used when a level sets none
	GemPercent int     `yaml:"gem_percent"` // Share of reachable gems needed to open the exits
	GemScore   int     `yaml:"gem_score"`
	DirtScore  int     `yaml:"dirt_score"`
	KeyScore   int     `yaml:"key_score"`
	BlastFuse  int     `yaml:"blast_fuse"` // Ticks from queueing to detonation
}

// CavesTiming defines how wall-clock time maps onto engine ticks.
type CavesTiming struct {
	LogicTPS    int     `yaml:"logic_tps"`     // Engine ticks per second
	MoveDelayMS int     `yaml:"move_delay_ms"` // Minimum time between player moves
	ClearPause  float64 `yaml:"clear_pause"`   // Seconds shown after a level is cleared
}

// CaveRules converts the YAML rules into engine rules.
func (c CavesConfig) CaveRules() cave.Rules {
	return cave.Rules{
		TimeLimit:  c.Rules.TimeLimit,
		GemPercent: c.Rules.GemPercent,
		GemScore:   c.Rules.GemScore,
		DirtScore:  c.Rules.DirtScore,
		KeyScore:   c.Rules.KeyScore,
		BlastFuse:  c.Rules.BlastFuse,
	}
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a campaign.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Campaign index at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	TimeReduction      float64 `yaml:"time_reduction"`       // Fraction of the clock removed at max difficulty
	GemPercentIncrease int     `yaml:"gem_percent_increase"` // Points added to gem_percent at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

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
