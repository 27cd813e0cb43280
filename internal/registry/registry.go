// Package registry lets games register a factory under an id so the CLI and
// the SSH server can build them without importing game packages directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-caves/internal/core"
)

// Game is what the terminal platform drives. Implementations hold pure
// logic with no Bubble Tea dependency; the platform maps keys to actions,
// paces frames and turns the screen buffer into terminal output.
type Game interface {
	// ID is the registry key and the score-table id.
	ID() string

	// Title is the display name.
	Title() string

	// Reset (re)starts the game for the given screen and frame rate.
	Reset(cfg core.RuntimeConfig)

	// Step advances one frame. Actions in the frame were pressed since the
	// previous frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string // One line shown by listings
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game. It is meant to be called from init and panics on an
// empty or duplicate id.
func Register(info GameInfo, f Factory) {
	if info.ID == "" {
		panic("registry: game id is empty")
	}
	if info.Title == "" {
		info.Title = info.ID
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns every registered game sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
