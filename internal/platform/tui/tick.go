// Package tui provides the Bubble Tea integration for the caves platform.
// It handles the terminal UI loop, input mapping, menus, the scoreboard and
// SSH sessions.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen identifies the game model that scheduled it.
type TickMsg struct {
	At  time.Time
	Gen uint64
}

// tickGens hands out a generation per game model, so ticks still in flight
// from a closed game are ignored by the next one.
var tickGens atomic.Uint64

func nextTickGen() uint64 {
	return tickGens.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
