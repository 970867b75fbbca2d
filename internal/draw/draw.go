// Package draw renders to ANSI terminals using half-block characters.
package draw

// Point is a position in a canvas's logical coordinate space.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// Color is a pen colour. ColorNone marks an unset pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorDefault
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorGray
	ColorBrightCyan
	ColorBrightWhite
	colorCount
)

// ColorReset restores the terminal's default attributes.
const ColorReset = "\033[0m"

var colorCodes = [colorCount]string{
	ColorNone:        "\033[39m",
	ColorDefault:     "\033[39m",
	ColorRed:         "\033[31m",
	ColorGreen:       "\033[32m",
	ColorYellow:      "\033[33m",
	ColorBlue:        "\033[34m",
	ColorMagenta:     "\033[35m",
	ColorCyan:        "\033[36m",
	ColorGray:        "\033[90m",
	ColorBrightCyan:  "\033[96m",
	ColorBrightWhite: "\033[97m",
}

// Code returns the ANSI foreground sequence for c.
func (c Color) Code() string {
	if c >= colorCount {
		return colorCodes[ColorDefault]
	}
	return colorCodes[c]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
