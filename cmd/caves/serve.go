package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-caves/internal/games/caves"
	"github.com/vovakirdan/tui-caves/internal/platform/feed"
	"github.com/vovakirdan/tui-caves/internal/platform/tui"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
	flagServeFeed   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the caves SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a level picker.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

With --feed, every session's frames are also streamed over WebSocket.
Spectators pick a session with ?session=<id>; the id is in the server log.

Examples:
  caves serve                           # Listen on :23234 with auto-generated key
  caves serve --ssh :2222               # Listen on port 2222
  caves serve --host-key ./my_host_key  # Use specific host key
  caves serve --db postgres://caves@db/caves?sslmode=disable
  caves serve --feed :8090

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Maximum concurrent sessions (0 = unlimited)")
	serveCmd.Flags().StringVar(&flagServeFeed, "feed", "", "Serve a WebSocket spectator feed on this address")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closer := newLogger("caves-ssh", false)
	defer closer.Close()

	var hub *feed.Hub
	if flagServeFeed != "" {
		stop := startFeed(flagServeFeed, logger, func(h *feed.Hub) { hub = h })
		defer stop()
	}

	factory := func(startLevel, player, session string) registry.Game {
		game := caves.NewWithOptions(gameOptions(startLevel, logger.With("session", session, "user", player)))
		if hub != nil {
			attachFeed(game, hub, session, logger)
		}
		return game
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.MaxSessions = flagMaxSessions
	cfg.Session = tui.SessionConfig{
		GameID:  caves.GameID,
		Levels:  loadLevels(),
		NewGame: factory,
		Logger:  logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting caves SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	if flagServeFeed != "" {
		fmt.Printf("Spectator feed on ws://%s/feed\n", flagServeFeed)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
