package cave

// Grid owns the tile array of a cave.
// Cells are stored in row-major order: index = y*W + x.
//
// Set is the only write path. It keeps the locked-door and on-map key counters equal to
// the number of DoorClosed and Key cells, so no caller ever has to adjust them by hand.
type Grid struct {
	w           int
	h           int
	cells       []Tile
	lockedDoors int
	keys        int
}

// NewGrid creates a grid from a row-major tile slice.
// The slice is copied; len(tiles) must equal w*h.
func NewGrid(w, h int, tiles []Tile) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidSize
	}
	if len(tiles) != w*h {
		return nil, ErrTileCount
	}
	g := &Grid{
		w:     w,
		h:     h,
		cells: make([]Tile, len(tiles)),
	}
	copy(g.cells, tiles)
	for _, t := range g.cells {
		switch t {
		case TileDoorClosed:
			g.lockedDoors++
		case TileKey:
			g.keys++
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.w
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.h
}

// InBounds returns true if (x, y) is inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

func (g *Grid) index(x, y int) int {
	return y*g.w + x
}

// Get returns the tile at (x, y).
// Out-of-bounds coordinates read as Steel, an implicit solid border.
func (g *Grid) Get(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileSteel
	}
	return g.cells[g.index(x, y)]
}

// At is Get for a Coord.
func (g *Grid) At(c Coord) Tile {
	return g.Get(c.X, c.Y)
}

// Set writes a tile. Out-of-bounds writes and writes of the current value are no-ops.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	i := g.index(x, y)
	cur := g.cells[i]
	if cur == t {
		return
	}
	switch {
	case cur == TileDoorClosed:
		g.lockedDoors--
	case t == TileDoorClosed:
		g.lockedDoors++
	}
	switch {
	case cur == TileKey:
		g.keys--
	case t == TileKey:
		g.keys++
	}
	g.cells[i] = t
}

// LockedDoors returns the number of DoorClosed cells.
func (g *Grid) LockedDoors() int {
	return g.lockedDoors
}

// Keys returns the number of Key cells still on the map.
func (g *Grid) Keys() int {
	return g.keys
}

// IsPassable reports whether an enemy may enter (x, y). Dirt is not passable.
func (g *Grid) IsPassable(x, y int) bool {
	return g.Get(x, y).IsAir()
}

// IsSteel reports whether (x, y) is Steel, including everything out of bounds.
func (g *Grid) IsSteel(x, y int) bool {
	return g.Get(x, y) == TileSteel
}

// IsExit reports whether (x, y) holds an exit.
func (g *Grid) IsExit(x, y int) bool {
	return g.Get(x, y).IsExit()
}

// Count returns the number of cells holding t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}

// Replace converts every from cell into to and returns how many changed.
func (g *Grid) Replace(from, to Tile) int {
	if from == to {
		return 0
	}
	n := 0
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if g.cells[g.index(x, y)] == from {
				g.Set(x, y, to)
				n++
			}
		}
	}
	return n
}

// Tiles returns a copy of the cells in row-major order.
func (g *Grid) Tiles() []Tile {
	out := make([]Tile, len(g.cells))
	copy(out, g.cells)
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = g.Tiles()
	return &c
}
