// caves is a Boulder Dash style cave digger for the terminal.
//
// Usage:
//
//	caves                    - Pick a level from the menu and play
//	caves play [level]       - Play the campaign, or start at a level
//	caves levels             - List the levels
//	caves scores             - Show high scores, recent runs and level bests
//	caves serve              - Start SSH server for remote play
//	caves sim <level>        - Run a move script without a screen
//
// Global flags:
//
//	--fps <rate>         - Set frame rate (default: 60)
//	--seed <value>       - Set the run seed
//	--db <path|url>      - Scores database: sqlite path or postgres:// URL
//	--config <path>      - Custom caves.yaml
//	--levels <dir>       - Load levels from a directory instead of the built-in campaign
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-file <path>    - Log to a rotating file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/cave/levels"
	"github.com/vovakirdan/tui-caves/internal/core"
	"github.com/vovakirdan/tui-caves/internal/games/caves"
	"github.com/vovakirdan/tui-caves/internal/platform/tui"
	"github.com/vovakirdan/tui-caves/internal/storage"
)

// defaultInteractiveLog keeps log lines off the terminal while a TUI is running.
const defaultInteractiveLog = "~/.arcade/logs/caves.log"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevelsDir  string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "caves",
	Short: "Caves - dig for gems in your terminal",
	Long: `Caves is a terminal cave-digging game: tunnel through dirt, collect
enough gems to open the exits, and stay clear of falling boulders,
fireflies and butterflies.

Available commands:
  play     - Play the campaign or a single level
  levels   - List the levels
  scores   - View high scores and recent runs
  serve    - Start SSH server for remote play
  sim      - Run a move script headlessly

Examples:
  caves
  caves play 02-butterfly-hollow
  caves play --feed :8090
  caves serve --ssh :2222
  caves sim 01-open-cavern --moves RRDD..L`,
	Run: runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "Run seed (0 = based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Scores database: sqlite path or postgres:// URL")
	pf.StringVar(&flagConfig, "config", "", "Path to custom caves config YAML")
	pf.StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in campaign)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file, rotated at 10 MB")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the logger for a command. Interactive commands log to a
// file by default so output does not corrupt the screen.
func newLogger(prefix string, interactive bool) (*log.Logger, io.Closer) {
	file := flagLogFile
	if file == "" && interactive {
		file = defaultInteractiveLog
	}
	logger, closer, err := tui.NewLogger(tui.LogConfig{File: file, Level: flagLogLevel, Prefix: prefix})
	if err != nil {
		fail("%v", err)
	}
	return logger, closer
}

// gameOptions builds the game options shared by every command.
func gameOptions(startLevel string, logger *log.Logger) caves.Options {
	return caves.Options{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		LevelsDir:  flagLevelsDir,
		StartLevel: startLevel,
		Logger:     logger,
	}
}

// applyGameDefaults sets the package-level defaults used by registry-created games.
func applyGameDefaults(startLevel string, logger *log.Logger) {
	caves.SetConfigPath(flagConfig)
	caves.SetDifficultyPreset(flagDifficulty)
	caves.SetLevelsDir(flagLevelsDir)
	caves.SetStartLevel(startLevel)
	caves.SetLogger(logger)
}

func loadLevels() []cave.Level {
	lvls, err := levels.Resolve(flagLevelsDir)
	if err != nil {
		fail("cannot load levels: %v", err)
	}
	return lvls
}

// openStore opens the scores database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "db", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// localPlayer names the local user for run records.
func localPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
