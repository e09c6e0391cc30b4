package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI 256-color code.
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
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown
	ColorPink

	colorCount
)

// Valid reports whether c is a declared color.
func (c Color) Valid() bool {
	return c < colorCount
}

// NumberColor picks a color for a power-of-two tile value, cycling through
// warm tones as the value grows.
func NumberColor(value int) Color {
	palette := [...]Color{
		ColorWhite, ColorBrightWhite, ColorYellow, ColorOrange,
		ColorBrightRed, ColorRed, ColorBrightYellow, ColorBrightGreen,
		ColorGreen, ColorBrightCyan, ColorCyan, ColorBrightMagenta,
	}
	step := 0
	for v := value; v > 2; v >>= 1 {
		step++
	}
	return palette[step%len(palette)]
}
