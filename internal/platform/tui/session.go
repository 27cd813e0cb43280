package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/core"
	"github.com/vovakirdan/tui-caves/internal/registry"
	"github.com/vovakirdan/tui-caves/internal/storage"
)

// GameFactory builds a game that starts at the given level id ("" for the
// first level). player and session identify whoever is at the keyboard.
type GameFactory func(startLevel, player, session string) registry.Game

// SessionConfig wires a session to its game, levels and storage.
type SessionConfig struct {
	GameID  string
	Levels  []cave.Level // Listed by the level picker
	NewGame GameFactory
	Store   *storage.Store
	Logger  *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game or scores -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	cfg        SessionConfig
	config     core.RuntimeConfig
	username   string
	sessionID  string
	log        *log.Logger
	screen     sessionScreen
	menu       MenuModel
	gameModel  *Model
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg SessionConfig, rc core.RuntimeConfig, username, sessionID string) SessionModel {
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger()
	}

	return SessionModel{
		cfg:       cfg,
		config:    rc,
		username:  username,
		sessionID: sessionID,
		log:       logger.With("session", sessionID, "user", username),
		menu:      NewMenuModel(cfg.Store, rc, cfg.GameID, cfg.Levels),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// The menu returns tea.Quit on Tab and Enter; the session drops it and switches screens.
	if m.menu.WantsScoreboard() {
		sb := NewScoreboardModel(m.cfg.Store, m.cfg.GameID, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		m.screen = screenScores
		return m, sb.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game := m.cfg.NewGame(selected.LevelID, m.username, m.sessionID)
		m.config = m.menu.Config()

		gameModel := NewModel(game, m.cfg.Store, m.config, GameOptions{
			Player: m.username,
			Logger: m.log,
		})
		m.gameModel = &gameModel
		m.screen = screenGame
		m.log.Info("game started", "level", selected.LevelID)

		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.log.Info("back to menu", "score", m.gameModel.gameState.Score)
		m.gameModel = nil
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		m.scoreboard = nil
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// backToMenu rebuilds the menu so best results are fresh.
func (m *SessionModel) backToMenu() {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.cfg.Store, m.config, m.cfg.GameID, m.cfg.Levels)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
