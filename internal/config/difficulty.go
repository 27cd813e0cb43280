package config

import "math"

// DifficultyManager calculates per-level parameters from campaign progress.
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
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) for a campaign index.
func (d *DifficultyManager) Level(index int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "level" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(index)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// TimeLimit shortens a level's clock as difficulty rises.
func (d *DifficultyManager) TimeLimit(base float64, index int) float64 {
	if base <= 0 {
		return base
	}
	level := d.Level(index)
	result := base * (1.0 - level*d.cfg.Scaling.TimeReduction)
	if result < 10 { // Minimum playable clock
		result = math.Min(base, 10)
	}
	return math.Round(result)
}

// GemPercent raises the share of gems needed to open the exits.
func (d *DifficultyManager) GemPercent(base int, index int) int {
	level := d.Level(index)
	result := base + int(level*float64(d.cfg.Scaling.GemPercentIncrease))
	if result > 100 {
		result = 100
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
