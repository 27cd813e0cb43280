package core

// Color is a cell foreground. The terminal platform maps each value to an
// ANSI palette index; games only pick from this list.
type Color uint8

const (
	ColorDefault Color = iota

	// ANSI 0-7
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite

	// ANSI 8-15
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite

	// 256-color extras used for dirt and steel
	ColorOrange
	ColorGray
)
