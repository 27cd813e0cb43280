package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCaves loads Caves configuration.
// Search order: customPath -> ~/.arcade/configs/caves.yaml -> ./configs/caves.yaml -> embedded default
// Keys missing from a file keep their default values.
func LoadCaves(customPath string) (CavesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultCavesConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseCaves(data)
		if err != nil {
			return DefaultCavesConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("caves.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseCaves(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/caves.yaml"); err == nil {
		if cfg, err := parseCaves(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseCaves(defaultCavesYAML)
	if err != nil {
		return DefaultCavesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseCaves unmarshals over the defaults and repairs unusable timing values.
func parseCaves(data []byte) (CavesConfig, error) {
	cfg := DefaultCavesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	def := DefaultCavesConfig().Timing
	if cfg.Timing.LogicTPS <= 0 {
		cfg.Timing.LogicTPS = def.LogicTPS
	}
	if cfg.Timing.MoveDelayMS < 0 {
		cfg.Timing.MoveDelayMS = def.MoveDelayMS
	}
	if cfg.Timing.ClearPause < 0 {
		cfg.Timing.ClearPause = def.ClearPause
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyCavesPreset modifies the config based on a difficulty preset.
func ApplyCavesPreset(cfg *CavesConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the rules based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Rules.TimeLimit = 150
		cfg.Rules.GemPercent = 70
	case DifficultyHard:
		cfg.Rules.TimeLimit = 100
		cfg.Rules.GemPercent = 90
	}
}
