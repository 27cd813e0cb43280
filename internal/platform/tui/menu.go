package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/core"
	"github.com/vovakirdan/tui-caves/internal/registry"
	"github.com/vovakirdan/tui-caves/internal/storage"
)

// MenuItem represents a selectable entry in the level picker.
type MenuItem struct {
	LevelID string // Empty starts the campaign from the first level
	Title   string
	Best    *storage.LevelBest // Nil when the level was never cleared
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items          []MenuItem
	title          string
	description    string
	cursor         int
	scrollOffset   int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	theme          Theme
	quitting       bool
	selected       *MenuItem // Set when user selects a level
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new level picker. Best results are read from
// the store when one is given.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, gameID string, levels []cave.Level) MenuModel {
	bests := make(map[string]storage.LevelBest)
	if store != nil {
		if list, err := store.LevelBests(gameID); err == nil {
			for _, b := range list {
				bests[b.LevelID] = b
			}
		}
	}

	items := make([]MenuItem, 0, len(levels)+1)
	items = append(items, MenuItem{Title: "Start campaign"})
	for i, lv := range levels {
		item := MenuItem{
			LevelID: lv.ID,
			Title:   fmt.Sprintf("%2d. %s", i+1, levelTitle(lv)),
		}
		if b, ok := bests[lv.ID]; ok {
			item.Best = &b
		}
		items = append(items, item)
	}

	info, ok := registry.Lookup(gameID)
	if !ok {
		info = registry.GameInfo{ID: gameID, Title: gameID}
	}

	return MenuModel{
		items:       items,
		title:       spaced(strings.ToUpper(info.Title)),
		description: info.Description,
		width:       cfg.ScreenW,
		height:      cfg.ScreenH,
		config:      cfg,
		keyMapper:   NewKeyMapper(),
		theme:       GetTheme(),
	}
}

// spaced puts a space between letters for the banner.
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

func levelTitle(lv cave.Level) string {
	if lv.Name != "" {
		return lv.Name
	}
	return lv.ID
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.updateScroll()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.updateScroll()
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// visibleItems is the number of list rows that fit between header and footer.
func (m MenuModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render(m.title), m.width))
	b.WriteString("\n\n")
	if m.description != "" {
		b.WriteString(centerText(m.theme.MenuDescription.Render(m.description), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	end := min(m.scrollOffset+m.visibleItems(), len(m.items))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}

	for i := m.scrollOffset; i < end; i++ {
		item := m.items[i]
		cursor := "  "
		style := m.theme.MenuItemNormal
		if item.Best != nil {
			style = m.theme.MenuItemCleared
		}
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		line := style.Render(fmt.Sprintf("%s%-28s", cursor, item.Title))
		if item.Best != nil {
			line += m.theme.MenuBest.Render(fmt.Sprintf(" best %5d", item.Best.Score))
		} else {
			line += strings.Repeat(" ", 11)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if end < len(m.items) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.Controls.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring styled text by its
// printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID         string // Empty for the full campaign
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the level picker and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, gameID string, levels []cave.Level) (MenuResult, error) {
	model := NewMenuModel(store, cfg, gameID, levels)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.LevelID = m.Selected().LevelID
	} else {
		result.Quit = true
	}

	return result, nil
}
