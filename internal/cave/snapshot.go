package cave

import (
	"fmt"
	"hash/fnv"
)

// Snapshot captures the observable world state for determinism testing and replay.
type Snapshot struct {
	Level      string
	Tick       uint64
	State      State
	Reason     DeathReason
	Player     Coord
	Counters   Counters
	TimeLeft   float64
	Enemies    int
	Explosions int
	Falling    int
	Hash       uint64
}

// Snapshot returns the current snapshot.
func (w *World) Snapshot() Snapshot {
	return Snapshot{
		Level:      w.levelID,
		Tick:       w.ticks,
		State:      w.state,
		Reason:     w.reason,
		Player:     w.player,
		Counters:   w.Counters(),
		TimeLeft:   w.timeLeft,
		Enemies:    w.enemies.Len(),
		Explosions: w.blasts.Len(),
		Falling:    w.gravity.FallingCount(),
		Hash:       w.Hash(),
	}
}

// Hash returns an FNV-1a digest of everything that influences future ticks.
func (w *World) Hash() uint64 {
	h := fnv.New64a()

	// Tiles and falling mask
	fmt.Fprintf(h, "G:%dx%d;", w.grid.Width(), w.grid.Height())
	for y := 0; y < w.grid.Height(); y++ {
		for x := 0; x < w.grid.Width(); x++ {
			f := 0
			if w.gravity.Falling(x, y) {
				f = 1
			}
			fmt.Fprintf(h, "%d%d,", w.grid.Get(x, y), f)
		}
	}

	fmt.Fprintf(h, ";P:%d:%d", w.player.X, w.player.Y)

	fmt.Fprintf(h, ";E:")
	for _, e := range w.enemies.enemies {
		fmt.Fprintf(h, "%d:%d:%d:%d,", e.At.X, e.At.Y, e.Facing, e.Kind)
	}

	fmt.Fprintf(h, ";X:")
	for _, ex := range w.blasts.pending {
		fmt.Fprintf(h, "%d:%d:%d:%d:%d,", ex.At.X, ex.At.Y, ex.TTL, ex.Kind, ex.Age)
	}

	fmt.Fprintf(h, ";S:%d:%s;C:%d:%d:%d:%d;T:%d:%.4f",
		w.state, w.reason, w.collected, w.required, w.score, w.keysHeld, w.ticks, w.timeLeft)

	return h.Sum64()
}
