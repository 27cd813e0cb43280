package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-caves/internal/core"
	"github.com/vovakirdan/tui-caves/internal/registry"
	"github.com/vovakirdan/tui-caves/internal/storage"
)

// Rows reserved below the game for the short and full key help.
const (
	shortHelpRows = 1
	fullHelpRows  = 5
)

// Resizer is implemented by games that can adapt to a new screen size
// without restarting.
type Resizer interface {
	Resize(w, h int)
}

// GameOptions configures a Model.
type GameOptions struct {
	Player     string      // Recorded with each run; empty for anonymous local play
	Logger     *log.Logger // Nil discards
	Standalone bool        // Back quits the program instead of returning to a menu
}

// Model is the Bubble Tea model running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       GameOptions
	log        *log.Logger
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool   // Whether score has been saved for current game over
	lastRunID  string // Id of the most recently stored run
	status     string // Transient footer message
	tickGen    uint64
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = NopLogger()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH, false)),
		store:      store,
		config:     cfg,
		opts:       opts,
		log:        logger,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		tickGen:    nextTickGen(),
	}
}

// gameHeight is the screen height left to the game above the help footer.
func gameHeight(h int, fullHelp bool) int {
	rows := shortHelpRows
	if fullHelp {
		rows = fullHelpRows
	}
	return max(h-rows, 1)
}

func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH, m.help.ShowAll)
	return cfg
}

// applySize resizes the screen buffer and the game to the current window.
func (m *Model) applySize() {
	cfg := m.gameConfig()
	m.screen.Resize(cfg.ScreenW, cfg.ScreenH)
	m.help.Width = cfg.ScreenW

	if r, ok := m.game.(Resizer); ok {
		r.Resize(cfg.ScreenW, cfg.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(cfg)
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate, m.tickGen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()
	m.status = ""
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.applySize()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.opts.Standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.applySize()
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Finished != nil {
		m.saveRun(*result.Finished)
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		if m.store != nil {
			if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
				m.log.Warn("could not save score", "error", err)
			}
		}
		m.scoreSaved = true
	}
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate, m.tickGen)
}

// saveRun stores one finished level attempt.
func (m *Model) saveRun(out core.RunOutcome) {
	m.log.Info("run finished",
		"player", m.opts.Player,
		"level", out.LevelID,
		"outcome", out.Outcome,
		"score", out.Score,
		"ticks", out.Ticks,
	)
	if m.store == nil {
		return
	}
	id, err := m.store.SaveRun(storage.RunRecord{
		GameID:  m.game.ID(),
		LevelID: out.LevelID,
		Outcome: out.Outcome,
		Score:   out.Score,
		Gems:    out.Gems,
		Ticks:   out.Ticks,
		Player:  m.opts.Player,
	})
	if err != nil {
		m.log.Warn("could not save run", "error", err)
		return
	}
	m.lastRunID = id
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = "Screenshot failed"
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "Screenshot failed"
		return
	}
	m.status = "Saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keyMapper.Keys())
	if m.status != "" {
		footer = m.status
	}
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return RenderScreen(m.screen) + "\n" + footerStyle.Render(footer)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastRunID returns the id of the last stored run, or "".
func (m Model) LastRunID() string {
	return m.lastRunID
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) error {
	opts.Standalone = true
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
