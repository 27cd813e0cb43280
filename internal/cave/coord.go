package cave

import "fmt"

// Coord is a cell position. X grows to the right, Y grows downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the neighbouring Coord in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Dir is one of the four grid directions, ordered clockwise starting at Right.
type Dir uint8

const (
	DirRight Dir = iota
	DirDown
	DirLeft
	DirUp
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirUp:
		return "Up"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirUp:
		return 0, -1
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir {
	return (d + 2) & 3
}

// Right returns the direction after a clockwise quarter turn (screen space).
func (d Dir) Right() Dir {
	return (d + 1) & 3
}

// Left returns the direction after a counter-clockwise quarter turn.
func (d Dir) Left() Dir {
	return (d + 3) & 3
}

// Horizontal reports whether the direction moves along the X axis.
func (d Dir) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// ParseDir maps a single letter (R, D, L, U, case-insensitive) to a direction.
func ParseDir(r rune) (Dir, bool) {
	switch r {
	case 'R', 'r':
		return DirRight, true
	case 'D', 'd':
		return DirDown, true
	case 'L', 'l':
		return DirLeft, true
	case 'U', 'u':
		return DirUp, true
	}
	return 0, false
}
