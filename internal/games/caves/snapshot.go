package caves

import "github.com/vovakirdan/tui-caves/internal/cave"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Frames     uint64
	LevelIndex int
	Phase      Phase
	Score      int
	Paused     bool
	Faults     int
	World      cave.Snapshot // Zero when no level is loaded
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Frames:     g.frames,
		LevelIndex: g.levelIndex,
		Phase:      g.phase,
		Score:      g.score(),
		Paused:     g.paused,
		Faults:     g.faults,
	}
	if g.world != nil {
		s.World = g.world.Snapshot()
	}
	return s
}
