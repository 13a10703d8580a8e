package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to an ANSI 256-color style.
type Color uint8

// Predefined colors.
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
)

// tileColors cycles through increasing tile values starting at 2.
var tileColors = [...]Color{
	ColorWhite,         // 2
	ColorBrightWhite,   // 4
	ColorYellow,        // 8
	ColorOrange,        // 16
	ColorBrightRed,     // 32
	ColorRed,           // 64
	ColorBrightYellow,  // 128
	ColorBrightGreen,   // 256
	ColorGreen,         // 512
	ColorBrightCyan,    // 1024
	ColorBrightMagenta, // 2048
}

// TileColor returns the color for a tile value. Values past 2048 reuse
// ColorMagenta; empty cells use ColorGray.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorGray
	}
	idx := 0
	for v := value; v > 2; v >>= 1 {
		idx++
	}
	if idx >= len(tileColors) {
		return ColorMagenta
	}
	return tileColors[idx]
}
