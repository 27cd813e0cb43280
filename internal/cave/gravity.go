package cave

// Terrain is the view of the world the gravity pass works against.
type Terrain interface {
	Get(x, y int) Tile
	Set(x, y int, t Tile)
	PlayerAt(x, y int) bool
	CrushPlayer(at Coord)
	Emit(e Event)
}

// Gravity moves boulders and gems and remembers which of them are mid-fall.
type Gravity struct {
	w       int
	h       int
	falling []bool
}

// NewGravity creates a gravity pass for a w×h grid with nothing falling.
func NewGravity(w, h int) *Gravity {
	return &Gravity{
		w:       w,
		h:       h,
		falling: make([]bool, w*h),
	}
}

// Falling reports whether the rock at (x, y) moved last tick without coming to rest.
func (g *Gravity) Falling(x, y int) bool {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return false
	}
	return g.falling[y*g.w+x]
}

// FallingCount returns the number of cells flagged as falling.
func (g *Gravity) FallingCount() int {
	n := 0
	for _, f := range g.falling {
		if f {
			n++
		}
	}
	return n
}

// Step runs one full scan.
//
// Rows are visited from the second-to-last up to the top, columns left to right, so a
// rock that moves down lands in a row that has already been scanned this tick. The mask
// read during the scan is last tick's; the new one replaces it only once the scan ends.
// A crush does not stop the scan.
//
// Rules per rock:
//  1. Air below: if the player is there the rock crushes them only when it was already
//     falling, otherwise it rests on them. Without the player it drops one row.
//  2. Rock below: roll to the left when both the left cell and the cell below it are air
//     and free of the player; otherwise try the same on the right. Left always wins.
//  3. Anything else: it rests; a rock that was falling lands.
func (g *Gravity) Step(t Terrain) {
	next := make([]bool, len(g.falling))

	for y := g.h - 2; y >= 0; y-- {
		for x := 0; x < g.w; x++ {
			id := t.Get(x, y)
			if !id.IsRock() {
				continue
			}
			wasFalling := g.falling[y*g.w+x]

			if t.Get(x, y+1).IsAir() {
				if t.PlayerAt(x, y+1) {
					if wasFalling {
						t.CrushPlayer(C(x, y+1))
						g.move(t, next, id, x, y, x, y+1)
					}
					continue
				}
				g.move(t, next, id, x, y, x, y+1)
				if !wasFalling {
					t.Emit(Event{Type: EventFall, At: C(x, y+1), Tile: id})
				}
				continue
			}

			if t.Get(x, y+1).IsRock() {
				if dx, ok := g.rollSide(t, x, y); ok {
					g.move(t, next, id, x, y, x+dx, y+1)
					if !wasFalling {
						t.Emit(Event{Type: EventFall, At: C(x+dx, y+1), Tile: id})
					}
					continue
				}
			}

			if wasFalling {
				t.Emit(Event{Type: EventLand, At: C(x, y), Tile: id})
			}
		}
	}

	g.falling = next
}

// rollSide returns -1 or +1 for the first side a rock at (x, y) can roll to.
// Left is checked first.
func (g *Gravity) rollSide(t Terrain, x, y int) (int, bool) {
	for _, dx := range [2]int{-1, 1} {
		sx := x + dx
		if !t.Get(sx, y).IsAir() || t.PlayerAt(sx, y) {
			continue
		}
		if !t.Get(sx, y+1).IsAir() || t.PlayerAt(sx, y+1) {
			continue
		}
		return dx, true
	}
	return 0, false
}

func (g *Gravity) move(t Terrain, next []bool, id Tile, fx, fy, tx, ty int) {
	t.Set(fx, fy, TileEmpty)
	t.Set(tx, ty, id)
	next[ty*g.w+tx] = true
}
