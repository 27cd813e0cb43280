package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the lipgloss styles for the menu and scoreboard screens.
// In-game colors come from core.Color via colorStyles.
type Theme struct {
	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemCleared lipgloss.Style // Levels with at least one win
	MenuDescription lipgloss.Style
	MenuBest        lipgloss.Style

	// Footer and help
	Controls lipgloss.Style

	// Scoreboard
	BoardTitle  lipgloss.Style
	BoardFrame  lipgloss.Style
	BoardEmpty  lipgloss.Style
	OutcomeWin  lipgloss.Style
	OutcomeLost lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Amber
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemCleared: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuBest:        lipgloss.NewStyle().Foreground(lipgloss.Color("51")),

		Controls: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		BoardTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true).MarginBottom(1),
		BoardFrame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		BoardEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
		OutcomeWin:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		OutcomeLost: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals with poor color support.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Reverse(true)
	theme.MenuItemCleared = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.MenuBest = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	theme.OutcomeWin = lipgloss.NewStyle().Bold(true)
	theme.OutcomeLost = lipgloss.NewStyle().Faint(true)
	return theme
}

// ThemeByName returns a named theme; unknown names get the default.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// Global theme variable (can be changed at runtime)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return currentTheme
}
