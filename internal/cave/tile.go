// Package cave implements the deterministic tile-grid simulation behind the Caves game:
// falling rocks, push movement, keys and doors, wall-following enemies and delayed
// explosions. The package is UI-agnostic and never touches a display or audio device.
package cave

// Tile is the content of a single grid cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileDirt
	TileWall
	TileSteel
	TileBoulder
	TileGem
	TileExitClosed
	TileExitOpen
	TileKey
	TileDoorClosed
	TileDoorOpen
)

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileDirt:
		return "dirt"
	case TileWall:
		return "wall"
	case TileSteel:
		return "steel"
	case TileBoulder:
		return "boulder"
	case TileGem:
		return "gem"
	case TileExitClosed:
		return "exit-closed"
	case TileExitOpen:
		return "exit-open"
	case TileKey:
		return "key"
	case TileDoorClosed:
		return "door-closed"
	case TileDoorOpen:
		return "door-open"
	default:
		return "unknown"
	}
}

// IsAir reports whether a rock can fall or roll into the tile.
// Enemies use the same set when deciding where they may move.
func (t Tile) IsAir() bool {
	return t == TileEmpty || t == TileExitOpen || t == TileDoorOpen || t == TileKey
}

// IsRock reports whether the tile is subject to gravity.
func (t Tile) IsRock() bool {
	return t == TileBoulder || t == TileGem
}

// IsExit reports whether the tile is an exit, open or closed.
func (t Tile) IsExit() bool {
	return t == TileExitClosed || t == TileExitOpen
}

// IsWalkable reports whether the player can reach the tile by walking or digging.
// Used for the reachability scan at load.
func (t Tile) IsWalkable() bool {
	switch t {
	case TileEmpty, TileDirt, TileGem, TileKey, TileExitOpen, TileDoorOpen:
		return true
	}
	return false
}
