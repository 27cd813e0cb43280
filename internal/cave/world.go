package cave

import (
	"errors"
	"fmt"
)

// State is the world's position in its state machine.
// Every state other than StatePlay is terminal; leaving it means loading a new World.
type State uint8

const (
	StatePlay State = iota
	StateDead
	StateTimeUp
	StateWin
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePlay:
		return "play"
	case StateDead:
		return "dead"
	case StateTimeUp:
		return "timeup"
	case StateWin:
		return "win"
	default:
		return "unknown"
	}
}

// Counters is a read-only copy of the world's bookkeeping.
type Counters struct {
	Collected     int
	GemsRequired  int
	Score         int
	KeysHeld      int
	KeysRemaining int
	KeysTotal     int
	LockedDoors   int
}

// World owns one loaded cave and every subsystem that acts on it.
//
// The caller drives it with TryMove (rate-limited on its side) and Tick (fixed dt), and
// drains events after each tick. Nothing here is safe for concurrent use.
type World struct {
	levelID string
	rules   Rules

	grid    *Grid
	gravity *Gravity
	enemies *EnemyStepper
	blasts  *Explosions
	events  EventSink

	player Coord
	state  State
	reason DeathReason

	ticks     uint64
	timeLeft  float64
	collected int
	required  int
	reachable int
	score     int
	keysHeld  int
	keysTotal int
	exitsOpen bool
}

// NewWorld builds a world from a level. It fails only on malformed level data.
func NewWorld(lv Level, rules Rules) (*World, error) {
	rules = rules.withDefaults()

	grid, err := NewGrid(lv.Width, lv.Height, lv.Tiles)
	if err != nil {
		return nil, fmt.Errorf("cave: level %q: %w", lv.ID, err)
	}
	if !lv.HasPlayer {
		return nil, fmt.Errorf("cave: level %q: %w", lv.ID, ErrNoPlayer)
	}
	if !grid.InBounds(lv.Player.X, lv.Player.Y) {
		return nil, fmt.Errorf("cave: level %q: player at %v: %w", lv.ID, lv.Player, ErrSpawnOutside)
	}
	for _, e := range lv.Enemies {
		if !grid.InBounds(e.At.X, e.At.Y) {
			return nil, fmt.Errorf("cave: level %q: %s at %v: %w", lv.ID, e.Kind, e.At, ErrSpawnOutside)
		}
	}

	grid.Set(lv.Player.X, lv.Player.Y, TileEmpty)

	w := &World{
		levelID:  lv.ID,
		rules:    rules,
		grid:     grid,
		gravity:  NewGravity(grid.Width(), grid.Height()),
		enemies:  NewEnemyStepper(lv.Enemies),
		blasts:   NewExplosions(rules.BlastFuse),
		player:   lv.Player,
		state:    StatePlay,
		timeLeft: lv.TimeLimit,
		keysHeld: lv.StartKeys,
	}
	if w.timeLeft <= 0 {
		w.timeLeft = rules.TimeLimit
	}
	w.keysTotal = lv.StartKeys + grid.Keys()

	w.reachable = ReachableGems(grid, lv.Player)
	if lv.GemsRequired != nil && *lv.GemsRequired >= 0 {
		w.required = *lv.GemsRequired
	} else {
		w.required = RequiredGems(w.reachable, rules.GemPercent)
	}
	if w.required == 0 {
		w.openExits()
	}
	return w, nil
}

// Tick advances the simulation by one fixed step of dt seconds.
//
// Order: clock, gravity, enemies, explosions. Reaching zero on the clock ends the tick
// immediately. A panic inside the enemy or explosion pass is recovered, the remaining
// passes still run, and the fault is returned as a *PassFault.
func (w *World) Tick(dt float64) error {
	if w.state != StatePlay {
		return nil
	}

	w.timeLeft -= dt
	if w.timeLeft <= 0 {
		w.timeLeft = 0
		w.state = StateTimeUp
		w.reason = ReasonTime
		w.events.Emit(Event{Type: EventDie, At: w.player, Reason: ReasonTime})
		return nil
	}

	w.gravity.Step(w)

	var faults []error
	if err := w.guard("enemies", func() { w.enemies.Step(w) }); err != nil {
		faults = append(faults, err)
	}
	if err := w.guard("explosions", func() { w.blasts.Resolve(w) }); err != nil {
		faults = append(faults, err)
	}

	w.ticks++
	return errors.Join(faults...)
}

func (w *World) guard(pass string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PassFault{Pass: pass, Tick: w.ticks, Value: r}
		}
	}()
	fn()
	return nil
}

// Drain returns and clears the events produced since the last call.
func (w *World) Drain() []Event {
	return w.events.Drain()
}

// State returns the current state.
func (w *World) State() State {
	return w.state
}

// Reason returns why the player was lost, or ReasonNone.
func (w *World) Reason() DeathReason {
	return w.reason
}

// LevelID returns the id of the loaded level.
func (w *World) LevelID() string {
	return w.levelID
}

// Rules returns the rules the world was built with.
func (w *World) Rules() Rules {
	return w.rules
}

// Player returns the player position.
func (w *World) Player() Coord {
	return w.player
}

// Ticks returns the number of completed ticks.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// TimeLeft returns the remaining time in seconds.
func (w *World) TimeLeft() float64 {
	return w.timeLeft
}

// ExitsOpen reports whether the exits have opened.
func (w *World) ExitsOpen() bool {
	return w.exitsOpen
}

// ReachableGemCount returns the number of gems reachable at load.
func (w *World) ReachableGemCount() int {
	return w.reachable
}

// Grid exposes the tile grid for rendering. Writes through it keep the grid's own
// counters consistent but bypass the world's rules.
func (w *World) Grid() *Grid {
	return w.grid
}

// Enemies returns a copy of the live enemies.
func (w *World) Enemies() []Enemy {
	return w.enemies.Enemies()
}

// Explosions returns a copy of the queued explosions.
func (w *World) Explosions() []Explosion {
	return w.blasts.Pending()
}

// Counters returns the current counters.
func (w *World) Counters() Counters {
	return Counters{
		Collected:     w.collected,
		GemsRequired:  w.required,
		Score:         w.score,
		KeysHeld:      w.keysHeld,
		KeysRemaining: w.grid.Keys(),
		KeysTotal:     w.keysTotal,
		LockedDoors:   w.grid.LockedDoors(),
	}
}

// openExits converts every closed exit; exit-open is emitted once per world.
func (w *World) openExits() {
	w.grid.Replace(TileExitClosed, TileExitOpen)
	if w.exitsOpen {
		return
	}
	w.exitsOpen = true
	w.events.Emit(Event{Type: EventExitOpen, At: w.player})
}

func (w *World) kill(reason DeathReason) {
	if w.state != StatePlay {
		return
	}
	w.state = StateDead
	w.reason = reason
	w.events.Emit(Event{Type: EventDie, At: w.player, Reason: reason})
}

// Get returns the tile at (x, y); Steel out of bounds.
func (w *World) Get(x, y int) Tile {
	return w.grid.Get(x, y)
}

// Set writes a tile through the grid.
func (w *World) Set(x, y int, t Tile) {
	w.grid.Set(x, y, t)
}

// PlayerAt reports whether the player stands on (x, y).
func (w *World) PlayerAt(x, y int) bool {
	return w.player.X == x && w.player.Y == y
}

// CrushPlayer ends the game under a falling rock.
func (w *World) CrushPlayer(Coord) {
	w.kill(ReasonCrush)
}

// Emit appends an event to the sink.
func (w *World) Emit(e Event) {
	w.events.Emit(e)
}

// IsPassable reports whether an enemy may enter (x, y).
func (w *World) IsPassable(x, y int) bool {
	return w.grid.IsPassable(x, y)
}

// IsSteel reports whether (x, y) is steel.
func (w *World) IsSteel(x, y int) bool {
	return w.grid.IsSteel(x, y)
}

// IsExit reports whether (x, y) is an exit.
func (w *World) IsExit(x, y int) bool {
	return w.grid.IsExit(x, y)
}

// Falling reports whether the rock at (x, y) is mid-fall.
func (w *World) Falling(x, y int) bool {
	return w.gravity.Falling(x, y)
}

// QueueExplosion schedules an explosion centred on at.
func (w *World) QueueExplosion(at Coord, kind BlastKind) {
	w.blasts.Queue(at, kind)
}

// SetGem turns (x, y) into a gem. A player or enemy caught there is lost.
func (w *World) SetGem(x, y int) {
	w.blast(x, y, TileGem)
}

// ClearTile empties (x, y). A player or enemy caught there is lost.
func (w *World) ClearTile(x, y int) {
	w.blast(x, y, TileEmpty)
}

func (w *World) blast(x, y int, t Tile) {
	if !w.grid.InBounds(x, y) {
		return
	}
	if w.PlayerAt(x, y) {
		w.kill(ReasonBlast)
	}
	w.enemies.RemoveAt(C(x, y))
	w.grid.Set(x, y, t)
}
