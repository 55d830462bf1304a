package core

// Color is the foreground color of a screen cell.
// The platform layer maps it onto terminal or window colors.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorBrightYellow
	ColorRed
	ColorCyan
	ColorWhite
	ColorGray
	ColorOrange
)
