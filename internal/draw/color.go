package draw

import "strconv"

// Color is an xterm 256-color palette index. ColorNone marks an unlit pixel,
// so palette entry 0 (black) is never drawn.
type Color uint8

// Palette used by the game.
const (
	ColorNone    Color = 0
	ColorRed     Color = 196
	ColorOrange  Color = 208
	ColorYellow  Color = 226
	ColorGreen   Color = 48
	ColorCyan    Color = 51
	ColorBlue    Color = 33
	ColorPurple  Color = 135
	ColorMagenta Color = 201
	ColorGray    Color = 244
	ColorDim     Color = 238
	ColorWhite   Color = 15
)

// Dim returns a darker palette color for faded sprites: gray ramp entries
// for anything at or below half intensity.
func Dim(c Color, alpha float64) Color {
	switch {
	case alpha <= 0:
		return ColorNone
	case alpha < 96:
		return ColorDim
	case alpha < 160:
		return ColorGray
	default:
		return c
	}
}

// appendSGR appends the escape sequence selecting foreground fg and
// background bg. ColorNone selects the terminal default.
func appendSGR(dst []byte, fg, bg Color) []byte {
	dst = append(dst, "\033["...)
	if fg == ColorNone {
		dst = append(dst, "39"...)
	} else {
		dst = append(dst, "38;5;"...)
		dst = strconv.AppendUint(dst, uint64(fg), 10)
	}
	if bg == ColorNone {
		dst = append(dst, ";49"...)
	} else {
		dst = append(dst, ";48;5;"...)
		dst = strconv.AppendUint(dst, uint64(bg), 10)
	}
	return append(dst, 'm')
}
