package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-caves/internal/games/caves"
	"github.com/vovakirdan/tui-caves/internal/platform/tui"
	"github.com/vovakirdan/tui-caves/internal/registry"
	"github.com/vovakirdan/tui-caves/internal/storage"
)

var (
	flagRuns  int
	flagRunID string
	flagClear bool
	flagBoard bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores, recent runs and level bests",
	Long: `Display the top 10 campaign scores, the most recent level runs and the
best winning run of each level.

Examples:
  caves scores
  caves scores --runs 20
  caves scores --run 6f1c1f0e-0b59-4a3e-9d0e-2f1f8a6d9b11
  caves scores --board           # browse in the terminal UI
  caves scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 10, "Number of recent runs to show")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by id")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all caves scores")
	scoresCmd.Flags().BoolVar(&flagBoard, "board", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(caves.GameID); err != nil {
			fail("clearing scores: %v", err)
		}
		fmt.Println("Scores cleared.")
		return

	case flagRunID != "":
		printRun(store, flagRunID)
		return

	case flagBoard:
		cfg := runtimeConfig()
		if _, err := tui.RunScoreboard(store, caves.GameID, cfg.ScreenW, cfg.ScreenH); err != nil {
			fail("%v", err)
		}
		return
	}

	printTopScores(store)
	fmt.Println()
	printRecentRuns(store, flagRuns)
	fmt.Println()
	printLevelBests(store)
}

func printTopScores(store *storage.Store) {
	scores, err := store.TopScores(caves.GameID, 10)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	title := caves.GameID
	if info, ok := registry.Lookup(caves.GameID); ok {
		title = info.Title
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'caves play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(caves.GameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}

func printRecentRuns(store *storage.Store, limit int) {
	runs, err := store.RecentRuns(caves.GameID, limit)
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	fmt.Println("Recent Runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-20s  %-7s  %-6s  %-6s  %-10s  %s\n", "Level", "Outcome", "Score", "Ticks", "Player", "Run")
	fmt.Printf("  %-20s  %-7s  %-6s  %-6s  %-10s  %s\n", "-----", "-------", "-----", "-----", "------", "---")
	for _, r := range runs {
		fmt.Printf("  %-20s  %-7s  %-6d  %-6d  %-10s  %s\n", r.LevelID, r.Outcome, r.Score, r.Ticks, playerName(r.Player), r.RunID)
	}
}

func printLevelBests(store *storage.Store) {
	bests, err := store.LevelBests(caves.GameID)
	if err != nil {
		fail("retrieving level bests: %v", err)
	}

	fmt.Println("Level Bests")
	fmt.Println()
	if len(bests) == 0 {
		fmt.Println("No level cleared yet.")
		return
	}

	fmt.Printf("  %-20s  %-6s  %-6s  %s\n", "Level", "Score", "Ticks", "Wins")
	fmt.Printf("  %-20s  %-6s  %-6s  %s\n", "-----", "-----", "-----", "----")
	for _, b := range bests {
		fmt.Printf("  %-20s  %-6d  %-6d  %d\n", b.LevelID, b.Score, b.Ticks, b.Wins)
	}
}

func printRun(store *storage.Store, id string) {
	r, err := store.RunByID(id)
	if errors.Is(err, storage.ErrRunNotFound) {
		fail("no run with id %q", id)
	}
	if err != nil {
		fail("retrieving run: %v", err)
	}

	fmt.Printf("Run     %s\n", r.RunID)
	fmt.Printf("Level   %s\n", r.LevelID)
	fmt.Printf("Outcome %s\n", r.Outcome)
	fmt.Printf("Score   %d\n", r.Score)
	fmt.Printf("Gems    %d\n", r.Gems)
	fmt.Printf("Ticks   %d\n", r.Ticks)
	fmt.Printf("Player  %s\n", playerName(r.Player))
	fmt.Printf("Played  %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
}

func playerName(p string) string {
	if p == "" {
		return "-"
	}
	return p
}
