package config

import (
	_ "embed"
)

//go:embed defaults/caves.yaml
var defaultCavesYAML []byte

// DefaultCavesConfig returns the default Caves configuration.
func DefaultCavesConfig() CavesConfig {
	return CavesConfig{
		Rules: CavesRules{
			TimeLimit:  120,
			GemPercent: 80,
			GemScore:   15,
			DirtScore:  1,
			KeyScore:   25,
			BlastFuse:  4,
		},
		Timing: CavesTiming{
			LogicTPS:    20,
			MoveDelayMS: 125, // 8 moves per second
			ClearPause:  1.2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				TimeReduction:      0.3,
				GemPercentIncrease: 15,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "caves":
		return defaultCavesYAML
	default:
		return nil
	}
}
