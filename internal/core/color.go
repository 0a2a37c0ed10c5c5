package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI color when rendering.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// pieceColors maps board cell values 1..7 to the palette.
// Order follows the piece ids: T, O, L, J, I, S, Z.
var pieceColors = [...]Color{
	ColorDefault,
	ColorMagenta,
	ColorYellow,
	ColorOrange,
	ColorBlue,
	ColorCyan,
	ColorGreen,
	ColorRed,
}

// PieceColor returns the color for a board cell value.
// Unknown values fall back to ColorDefault.
func PieceColor(cell int) Color {
	if cell < 0 || cell >= len(pieceColors) {
		return ColorDefault
	}
	return pieceColors[cell]
}

// String returns the palette name.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorOrange:
		return "orange"
	case ColorGray:
		return "gray"
	default:
		return "default"
	}
}
