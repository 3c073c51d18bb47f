package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
)

// cell is what one terminal cell shows.
type cell struct {
	ch     rune
	fg, bg uint8
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Pixels hold a 256-colour index; NoColor is empty. A text layer
// sits on top of the pixels. Render only writes cells that changed since the
// previous Render.
type Canvas struct {
	termWidth      int     // Terminal columns covered by the canvas
	termHeight     int     // Terminal rows covered by the canvas
	subPixelHeight int     // termHeight * 2
	pixels         []uint8 // Flat slice: [y * termWidth + x]

	text      []rune // Flat slice: [row * termWidth + col], 0 when unset
	textColor []uint8

	prev        []cell
	forceRedraw bool

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       []byte
	scaledBuf       []Point   // Reusable buffer for fillPolygon points
	intersectionBuf []float64 // Reusable buffer for scanline intersections
}

// NewCanvas creates a canvas for the given terminal dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize updates the canvas for new terminal dimensions. Resizing forces
// the next Render to redraw every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth == c.termWidth && termHeight == c.termHeight {
		return
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]uint8, c.subPixelHeight*termWidth)
	c.text = make([]rune, termHeight*termWidth)
	c.textColor = make([]uint8, termHeight*termWidth)
	c.prev = make([]cell, termHeight*termWidth)
	c.forceRedraw = true
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render write every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// Clear resets all pixels and text in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.text)
	clear(c.textColor)
}

// PixelWidth returns the horizontal resolution.
func (c *Canvas) PixelWidth() int { return c.termWidth }

// PixelHeight returns the vertical resolution (two pixels per row).
func (c *Canvas) PixelHeight() int { return c.subPixelHeight }

// TerminalWidth returns the column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Pixel returns the colour at a pixel, or NoColor outside the canvas.
func (c *Canvas) Pixel(x, y int) uint8 {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return NoColor
	}
	return c.pixels[y*c.termWidth+x]
}

// SetPixel colours a pixel. Out-of-range pixels are ignored.
func (c *Canvas) SetPixel(x, y int, color uint8) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// DrawLine draws a line in pixel coordinates using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, color uint8) {
	x1 := int(math.Round(p1.X))
	y1 := int(math.Round(p1.Y))
	x2 := int(math.Round(p2.X))
	y2 := int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.SetPixel(x1, y1, color)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon in pixel coordinates.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, color uint8, filled bool) {
	if len(points) < 2 {
		return
	}
	if len(points) >= 3 && filled {
		c.fillPolygon(points, color)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], color)
	}
}

// DrawCircle draws a circle outline in pixel coordinates. ry differs from
// rx when the pixel grid is not square.
func (c *Canvas) DrawCircle(center Point, rx, ry float64, color uint8) {
	if rx <= 0 || ry <= 0 {
		c.SetPixel(int(math.Round(center.X)), int(math.Round(center.Y)), color)
		return
	}
	segments := min(max(int(math.Ceil(2*math.Pi*max(rx, ry))), 8), 256)
	pts := c.borrowPoints(segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Point{X: center.X + rx*math.Cos(a), Y: center.Y + ry*math.Sin(a)}
	}
	for i := range pts {
		c.DrawLine(pts[i], pts[(i+1)%len(pts)], color)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
func (c *Canvas) fillPolygon(points []Point, color uint8) {
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := max(int(math.Ceil(intersections[i])), 0)
			xEnd := min(int(math.Floor(intersections[i+1])), c.termWidth-1)
			for x := xStart; x <= xEnd; x++ {
				c.pixels[y*c.termWidth+x] = color
			}
		}
	}
}

// borrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call.
func (c *Canvas) borrowPoints(n int) []Point {
	if cap(c.scaledBuf) < n {
		c.scaledBuf = make([]Point, n)
	}
	return c.scaledBuf[:n]
}

// WriteText places text on the overlay starting at a 0-based cell. Text
// running off the right edge is cut.
func (c *Canvas) WriteText(col, row int, text string, color uint8) {
	if row < 0 || row >= c.termHeight {
		return
	}
	for _, r := range text {
		if col >= c.termWidth {
			return
		}
		if col >= 0 {
			i := row*c.termWidth + col
			c.text[i] = r
			c.textColor[i] = color
		}
		col++
	}
}

// cellAt resolves the pixels and text of one cell.
func (c *Canvas) cellAt(col, row int) cell {
	i := row*c.termWidth + col
	if r := c.text[i]; r != 0 {
		return cell{ch: r, fg: c.textColor[i]}
	}
	top := c.pixels[row*2*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]
	switch {
	case top != NoColor && top == bottom:
		return cell{ch: BlockFull, fg: top}
	case top != NoColor && bottom != NoColor:
		return cell{ch: BlockUpperHalf, fg: top, bg: bottom}
	case top != NoColor:
		return cell{ch: BlockUpperHalf, fg: top}
	case bottom != NoColor:
		return cell{ch: BlockLowerHalf, fg: bottom}
	default:
		return cell{ch: BlockEmpty}
	}
}

// Render writes every changed cell to w.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.renderBuf[:0]
	var curFg, curBg uint8
	styled := false

	for row := 0; row < c.termHeight; row++ {
		lastCol := -2
		for col := 0; col < c.termWidth; col++ {
			cur := c.cellAt(col, row)
			i := row*c.termWidth + col
			if !c.forceRedraw && c.prev[i] == cur {
				continue
			}
			c.prev[i] = cur

			if col != lastCol+1 {
				buf = append(buf, "\033["...)
				buf = strconv.AppendInt(buf, int64(row+1+c.offsetRow), 10)
				buf = append(buf, ';')
				buf = strconv.AppendInt(buf, int64(col+1+c.offsetCol), 10)
				buf = append(buf, 'H')
			}
			lastCol = col

			if cur.fg != curFg || cur.bg != curBg {
				buf = append(buf, ColorReset...)
				if cur.fg != NoColor {
					buf = fgSeq(buf, cur.fg)
				}
				if cur.bg != NoColor {
					buf = bgSeq(buf, cur.bg)
				}
				curFg, curBg = cur.fg, cur.bg
				styled = true
			}
			buf = append(buf, string(cur.ch)...)
		}
	}
	if styled {
		buf = append(buf, ColorReset...)
	}
	c.forceRedraw = false
	c.renderBuf = buf

	_, err := w.Write(buf)
	return err
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (cw *ChunkWriter) RenderBorder(c *Canvas) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	line := func(row int, l, r string) {
		if hasH {
			cw.moveAbs(left, row)
			cw.WriteString(l)
		} else {
			cw.moveAbs(c.offsetCol+1, row)
		}
		for range c.termWidth {
			cw.WriteString("─")
		}
		if hasH {
			cw.WriteString(r)
		}
	}

	if hasV {
		line(top, "┌", "┐")
		line(bottom, "└", "┘")
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			cw.moveAbs(left, row)
			cw.WriteString("│")
			cw.moveAbs(right, row)
			cw.WriteString("│")
		}
	}
}
