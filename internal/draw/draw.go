// Package draw renders the game into a terminal: a half-block canvas with
// 2x vertical resolution, a text overlay, and a service.Renderer that maps
// world coordinates onto it.
package draw

import (
	"math"
	"strconv"

	"github.com/tomz197/rockfall/internal/service"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI escape sequences.
const (
	ColorReset = "\033[0m"
)

// NoColor marks an empty pixel or an unset text cell.
const NoColor uint8 = 0

// minVisibleLevel is the brightness below which a tint is not drawn.
const minVisibleLevel = 0.08

// Color256 maps a tint onto the xterm 256-colour cube (indices 16-231),
// dimmed by its alpha. Tints too dark to see return NoColor.
func Color256(c service.Color) uint8 {
	a := min(max(c.A, 0), 1)
	r, g, b := c.R*a, c.G*a, c.B*a
	if max(r, g, b) < minVisibleLevel {
		return NoColor
	}
	level := func(v float64) int {
		return int(math.Round(min(max(v, 0), 1) * 5))
	}
	return uint8(16 + 36*level(r) + 6*level(g) + level(b))
}

// fgSeq returns the escape sequence selecting a foreground colour.
func fgSeq(buf []byte, color uint8) []byte {
	buf = append(buf, "\033[38;5;"...)
	buf = strconv.AppendInt(buf, int64(color), 10)
	return append(buf, 'm')
}

// bgSeq returns the escape sequence selecting a background colour.
func bgSeq(buf []byte, color uint8) []byte {
	buf = append(buf, "\033[48;5;"...)
	buf = strconv.AppendInt(buf, int64(color), 10)
	return append(buf, 'm')
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
