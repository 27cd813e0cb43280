package formats

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-caves/internal/cave"
)

var (
	ErrEmptyMap        = errors.New("formats: map has no rows")
	ErrMultiplePlayers = errors.New("formats: map has more than one player spawn")
)

// ParseMap converts text rows into a level grid with spawn lists.
//
// Alphabet:
//
//	P player    F firefly    B butterfly    K key    D locked door    d open door
//	# wall      X steel      . dirt         o boulder    * gem    E exit
//
// Any other rune is empty. Short rows are padded with empty cells. Enemies start facing
// right. Only the grid fields of the returned Level are set.
func ParseMap(rows []string) (cave.Level, error) {
	if len(rows) == 0 {
		return cave.Level{}, ErrEmptyMap
	}

	runes := make([][]rune, len(rows))
	w := 0
	for i, r := range rows {
		runes[i] = []rune(r)
		if len(runes[i]) > w {
			w = len(runes[i])
		}
	}
	if w == 0 {
		return cave.Level{}, ErrEmptyMap
	}

	lv := cave.Level{
		Width:  w,
		Height: len(rows),
		Tiles:  make([]cave.Tile, w*len(rows)),
	}
	for y, row := range runes {
		for x, ch := range row {
			at := cave.C(x, y)
			switch ch {
			case 'P':
				if lv.HasPlayer {
					return cave.Level{}, fmt.Errorf("%w: %v and %v", ErrMultiplePlayers, lv.Player, at)
				}
				lv.Player = at
				lv.HasPlayer = true
			case 'F':
				lv.Enemies = append(lv.Enemies, cave.Enemy{At: at, Facing: cave.DirRight, Kind: cave.Firefly})
			case 'B':
				lv.Enemies = append(lv.Enemies, cave.Enemy{At: at, Facing: cave.DirRight, Kind: cave.Butterfly})
			default:
				lv.Tiles[y*w+x] = TileFor(ch)
			}
		}
	}
	if !lv.HasPlayer {
		return cave.Level{}, fmt.Errorf("formats: %w", cave.ErrNoPlayer)
	}
	return lv, nil
}

// TileFor maps a map rune to its tile. Spawn markers and unknown runes are empty.
func TileFor(ch rune) cave.Tile {
	switch ch {
	case 'K':
		return cave.TileKey
	case 'D':
		return cave.TileDoorClosed
	case 'd':
		return cave.TileDoorOpen
	case '#':
		return cave.TileWall
	case 'X':
		return cave.TileSteel
	case '.':
		return cave.TileDirt
	case 'o':
		return cave.TileBoulder
	case '*':
		return cave.TileGem
	case 'E':
		return cave.TileExitClosed
	default:
		return cave.TileEmpty
	}
}

// RuneFor is the inverse of TileFor.
func RuneFor(t cave.Tile) rune {
	switch t {
	case cave.TileKey:
		return 'K'
	case cave.TileDoorClosed:
		return 'D'
	case cave.TileDoorOpen:
		return 'd'
	case cave.TileWall:
		return '#'
	case cave.TileSteel:
		return 'X'
	case cave.TileDirt:
		return '.'
	case cave.TileBoulder:
		return 'o'
	case cave.TileGem:
		return '*'
	case cave.TileExitClosed:
		return 'E'
	case cave.TileExitOpen:
		return 'e'
	default:
		return ' '
	}
}
