package cave

import "testing"

// buildLevel turns text rows into a Level using the campaign map alphabet.
// Enemies face right. Short rows are padded with empty cells.
func buildLevel(rows ...string) Level {
	h := len(rows)
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	lv := Level{ID: "test", Width: w, Height: h, Tiles: make([]Tile, w*h)}
	for y, r := range rows {
		for x := 0; x < w; x++ {
			ch := byte(' ')
			if x < len(r) {
				ch = r[x]
			}
			t := TileEmpty
			switch ch {
			case 'P':
				lv.Player = C(x, y)
				lv.HasPlayer = true
			case 'F':
				lv.Enemies = append(lv.Enemies, Enemy{At: C(x, y), Facing: DirRight, Kind: Firefly})
			case 'B':
				lv.Enemies = append(lv.Enemies, Enemy{At: C(x, y), Facing: DirRight, Kind: Butterfly})
			case 'K':
				t = TileKey
			case 'D':
				t = TileDoorClosed
			case 'd':
				t = TileDoorOpen
			case '#':
				t = TileWall
			case 'X':
				t = TileSteel
			case '.':
				t = TileDirt
			case 'o':
				t = TileBoulder
			case '*':
				t = TileGem
			case 'E':
				t = TileExitClosed
			}
			lv.Tiles[y*w+x] = t
		}
	}
	return lv
}

func mustWorld(t *testing.T, lv Level) *World {
	t.Helper()
	w, err := NewWorld(lv, DefaultRules())
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	return w
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func tickN(t *testing.T, w *World, n int) []Event {
	t.Helper()
	var all []Event
	for i := 0; i < n; i++ {
		if err := w.Tick(0.05); err != nil {
			t.Fatalf("Tick %d failed: %v", i, err)
		}
		all = append(all, w.Drain()...)
	}
	return all
}

func intp(n int) *int {
	return &n
}
