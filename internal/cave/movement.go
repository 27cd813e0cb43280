package cave

// TryMove attempts to move the player one cell in direction d and reports whether the
// player's intent was accepted. A rejected move changes nothing. Unlocking a door
// consumes a key and walks through it in the same move.
//
// Stepping onto an enemy is allowed; the enemy queues a blast there on its next step.
func (w *World) TryMove(d Dir) bool {
	if w.state != StatePlay {
		return false
	}

	to := w.player.Step(d)
	dest := w.grid.At(to)

	if dest == TileDoorClosed {
		if w.keysHeld <= 0 {
			return false
		}
		w.keysHeld--
		w.grid.Set(to.X, to.Y, TileDoorOpen)
		w.events.Emit(Event{Type: EventUnlock, At: to})
		dest = TileDoorOpen
	}

	switch dest {
	case TileBoulder:
		if !d.Horizontal() || w.gravity.Falling(to.X, to.Y) {
			return false
		}
		beyond := to.Step(d)
		if b := w.grid.At(beyond); b != TileEmpty && b != TileDoorOpen {
			return false
		}
		w.grid.Set(beyond.X, beyond.Y, TileBoulder)
		w.grid.Set(to.X, to.Y, TileEmpty)
		w.player = to
		w.events.Emit(Event{Type: EventPush, At: beyond, Tile: TileBoulder})
		w.events.Emit(Event{Type: EventStep, At: to})
		return true

	case TileWall, TileSteel, TileExitClosed:
		return false
	}

	w.player = to
	switch dest {
	case TileGem:
		w.collected++
		w.score += w.rules.GemScore
		w.events.Emit(Event{Type: EventCollect, At: to, Tile: TileGem})
	case TileDirt:
		w.score += w.rules.DirtScore
		w.events.Emit(Event{Type: EventDig, At: to, Tile: TileDirt})
	case TileKey:
		w.keysHeld++
		w.score += w.rules.KeyScore
		w.events.Emit(Event{Type: EventKey, At: to, Tile: TileKey})
	case TileEmpty, TileDoorOpen:
		w.events.Emit(Event{Type: EventStep, At: to})
	}
	if dest != TileExitOpen && dest != TileDoorOpen {
		w.grid.Set(to.X, to.Y, TileEmpty)
	}

	if !w.exitsOpen && w.collected >= w.required {
		w.openExits()
	}

	if dest == TileExitOpen {
		w.state = StateWin
		w.events.Emit(Event{Type: EventWin, At: to})
	}
	return true
}
