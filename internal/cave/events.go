package cave

// EventType names a semantic event produced by the simulation.
// The string values are stable and used by the spectator feed.
type EventType string

const (
	// EventStep: player walked onto an Empty or open-door cell, or pushed a boulder.
	EventStep EventType = "step"
	// EventPush: player shifted a boulder horizontally.
	EventPush EventType = "push"
	// EventDig: player cleared a Dirt cell. Tile: TileDirt.
	EventDig EventType = "dig"
	// EventCollect: player picked up a gem.
	EventCollect EventType = "collect"
	// EventKey: player picked up a key.
	EventKey EventType = "key"
	// EventUnlock: a held key opened a locked door.
	EventUnlock EventType = "unlock"
	// EventExitOpen: the gem threshold was reached and every closed exit opened.
	EventExitOpen EventType = "exit-open"
	// EventWin: player entered an open exit.
	EventWin EventType = "win"
	// EventDie: player was lost. Reason tells crush, blast or time.
	EventDie EventType = "die"
	// EventFall: a resting rock started to fall. Tile: boulder or gem.
	EventFall EventType = "fall"
	// EventLand: a falling rock came to rest. Tile: boulder or gem.
	EventLand EventType = "land"
	// EventExplode: an explosion resolved. Audio intent; Blast carries the kind.
	EventExplode EventType = "explode"
)

// DeathReason explains an EventDie.
type DeathReason string

const (
	ReasonNone  DeathReason = ""
	ReasonCrush DeathReason = "crush"
	ReasonBlast DeathReason = "blast"
	ReasonTime  DeathReason = "time"
)

// Event is a single record in the event stream.
// Only the fields relevant to Type are set.
type Event struct {
	Type   EventType
	At     Coord
	Tile   Tile
	Blast  BlastKind
	Reason DeathReason
}

// EventSink is an append-only buffer drained once per tick by the caller.
type EventSink struct {
	events []Event
}

// Emit appends an event.
func (s *EventSink) Emit(e Event) {
	s.events = append(s.events, e)
}

// Len returns the number of pending events.
func (s *EventSink) Len() int {
	return len(s.events)
}

// Drain returns all pending events in emission order and empties the buffer.
func (s *EventSink) Drain() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := make([]Event, len(s.events))
	copy(out, s.events)
	s.events = s.events[:0]
	return out
}
