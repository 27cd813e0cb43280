package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/config"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long: `Shows every level in play order with its size, gem quota and time limit.
Quotas and clocks include the difficulty progression, and the quota counts
only gems the player can actually reach.

Examples:
  caves levels
  caves levels --difficulty hard
  caves levels --levels ./my-caves`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	lvls := loadLevels()
	cfg := loadCavesConfig()
	diff := config.NewDifficultyManager(cfg.Difficulty)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tID\tName\tSize\tGems\tNeeded\tTime\tEnemies")
	fmt.Fprintln(w, "  -\t--\t----\t----\t----\t------\t----\t-------")
	for i, lv := range lvls {
		rules := cfg.CaveRules()
		rules.GemPercent = diff.GemPercent(rules.GemPercent, i)
		if lv.TimeLimit <= 0 {
			lv.TimeLimit = rules.TimeLimit
		}
		lv.TimeLimit = diff.TimeLimit(lv.TimeLimit, i)

		world, err := cave.NewWorld(lv, rules)
		if err != nil {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%dx%d\tinvalid: %v\n", i+1, lv.ID, lv.Name, lv.Width, lv.Height, err)
			continue
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%dx%d\t%d\t%d\t%.0fs\t%d\n",
			i+1, lv.ID, lv.Name, lv.Width, lv.Height,
			world.ReachableGemCount(), world.Counters().GemsRequired, world.TimeLeft(), len(world.Enemies()))
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Run 'caves play <id>' to start at a level.")
}

// loadCavesConfig loads caves.yaml with the difficulty preset applied.
func loadCavesConfig() config.CavesConfig {
	cfg, err := config.LoadCaves(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		fail("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
	}
	config.ApplyCavesPreset(&cfg, preset)
	return cfg
}
