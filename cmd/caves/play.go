package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-caves/internal/cave/levels"
	"github.com/vovakirdan/tui-caves/internal/games/caves"
	"github.com/vovakirdan/tui-caves/internal/platform/feed"
	"github.com/vovakirdan/tui-caves/internal/platform/tui"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

var flagFeedAddr string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign",
	Long: `Start playing. Without a level id the campaign starts at the first level;
with one it starts at that level and continues from there.

Controls:
  Arrows/WASD  - Move (hold to keep digging)
  Space/.      - Wait a beat
  P            - Pause
  R            - Restart the level (or the campaign after it ends)
  Esc/Q        - Quit
  Ctrl+S       - Save a screenshot
  ?            - Toggle full help

Difficulty options:
  easy   - More time, fewer gems needed
  normal - Time shrinks and gem quota grows level by level
  hard   - Starts tight and gets tighter
  fixed  - No progression, config values as written

Examples:
  caves play
  caves play 03-key-vault
  caves play --difficulty hard
  caves play --levels ./my-caves
  caves play --feed :8090          # spectators connect to ws://host:8090/feed`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFeedAddr, "feed", "", "Serve a WebSocket spectator feed on this address")
}

func runPlay(_ *cobra.Command, args []string) {
	startLevel := ""
	if len(args) == 1 {
		startLevel = args[0]
		if levels.Index(loadLevels(), startLevel) < 0 {
			fail("unknown level %q (run 'caves levels' to list them)", startLevel)
		}
	}

	logger, closer := newLogger("caves", true)
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	applyGameDefaults(startLevel, logger)
	game, err := registry.Create(caves.GameID)
	if err != nil {
		fail("%v", err)
	}

	if flagFeedAddr != "" {
		stop := startFeed(flagFeedAddr, logger, func(hub *feed.Hub) {
			attachFeed(game, hub, "local", logger)
		})
		defer stop()
	}

	if err := tui.Run(game, store, runtimeConfig(), tui.GameOptions{Player: localPlayer(), Logger: logger}); err != nil {
		fail("%v", err)
	}
}

// startFeed serves a spectator hub on addr in the background and returns a
// function that shuts it down.
func startFeed(addr string, logger *log.Logger, wire func(*feed.Hub)) (stop func()) {
	hub := feed.NewHub(logger)
	wire(hub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := hub.ListenAndServe(ctx, addr); err != nil {
			logger.Error("feed stopped", "error", err)
			fmt.Fprintf(os.Stderr, "Warning: spectator feed: %v\n", err)
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// attachFeed publishes the game's frames to hub when the game supports observers.
func attachFeed(game registry.Game, hub *feed.Hub, session string, logger *log.Logger) {
	g, ok := game.(*caves.Game)
	if !ok {
		return
	}
	g.SetObserver(func(f caves.Frame) {
		if err := hub.Publish(session, f); err != nil {
			logger.Warn("feed publish failed", "session", session, "error", err)
		}
	})
}
