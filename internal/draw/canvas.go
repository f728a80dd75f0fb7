package draw

import (
	"math"
	"slices"
	"strings"
	"unicode/utf8"
)

// cell is what one terminal cell shows: a half-block glyph and its colors.
type cell struct {
	ch     rune
	fg, bg Color
}

// dirtyCell never matches a rendered cell, forcing a repaint.
var dirtyCell = cell{ch: -1}

// Canvas is a color drawing buffer with twice the vertical resolution of the
// terminal: every cell holds two stacked pixels drawn with half blocks.
// Shapes take logical coordinates which are scaled to pixels.
type Canvas struct {
	cols, rows int
	pixels     []Color // [y*cols + x], ColorNone when unlit
	shown      []cell  // What the terminal shows since the last Render
	pen        Color

	logicalWidth, logicalHeight float64
	scaleX, scaleY              float64

	// 0-based terminal offset of the top-left cell.
	offsetCol, offsetRow int

	scaled   []Point
	crossing []float64
	points   []Point
}

// NewCanvas creates a canvas with a 1:1 logical to pixel mapping.
func NewCanvas(cols, rows int) *Canvas {
	return NewScaledCanvas(cols, rows, float64(cols), float64(rows*2))
}

// NewScaledCanvas creates a cols x rows canvas showing a logicalWidth x
// logicalHeight field.
func NewScaledCanvas(cols, rows int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		pen:           ColorWhite,
	}
	c.Resize(cols, rows)
	return c
}

// Resize changes the terminal area while keeping the logical field.
func (c *Canvas) Resize(cols, rows int) {
	if cols != c.cols || rows != c.rows || c.pixels == nil {
		c.cols, c.rows = cols, rows
		c.pixels = make([]Color, cols*rows*2)
		c.shown = make([]cell, cols*rows)
		c.ForceRedraw()
	}
	c.scaleX = float64(cols) / c.logicalWidth
	c.scaleY = float64(rows*2) / c.logicalHeight
}

// SetOffset places the canvas at terminal position (col+1, row+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol, c.offsetRow = col, row
}

// OffsetCol returns the 0-based column offset.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the 0-based row offset.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the canvas width in cells.
func (c *Canvas) TerminalWidth() int { return c.cols }

// TerminalHeight returns the canvas height in cells.
func (c *Canvas) TerminalHeight() int { return c.rows }

// ForceRedraw assumes a blank terminal. Call it right after clearing the
// screen so the next Render paints every lit cell.
func (c *Canvas) ForceRedraw() {
	for i := range c.shown {
		c.shown[i] = cell{ch: BlockEmpty}
	}
}

// MarkTextDirty records that text covered n cells from 1-based canvas
// position (col, row). The next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	if row < 1 || row > c.rows {
		return
	}
	base := (row - 1) * c.cols
	for x := max(col-1, 0); x < min(col-1+n, c.cols); x++ {
		c.shown[base+x] = dirtyCell
	}
}

// Clear unlights every pixel.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// SetColor selects the color for subsequent drawing.
func (c *Canvas) SetColor(col Color) {
	c.pen = col
}

func (c *Canvas) plot(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.rows*2 {
		c.pixels[y*c.cols+x] = c.pen
	}
}

func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// SetFloat lights the pixel at logical position (x, y).
func (c *Canvas) SetFloat(x, y float64) {
	c.plot(c.toPixel(Point{X: x, Y: y}))
}

// DrawLine draws a segment between two logical points.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)
	c.line(x1, y1, x2, y2)
}

// line runs Bresenham in pixel space.
func (c *Canvas) line(x1, y1, x2, y2 int) {
	dx, dy := abs(x2-x1), -abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for {
		c.plot(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// DrawPolygon outlines a polygon, filling it first when filled is set.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	prev := points[len(points)-1]
	for _, p := range points {
		c.DrawLine(prev, p)
		prev = p
	}
}

// DrawCircle draws a circle of logical radius r around center.
func (c *Canvas) DrawCircle(center Point, r float64, filled bool) {
	if r <= 0 {
		return
	}
	cx, cy := center.X*c.scaleX, center.Y*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx < 0.5 && ry < 0.5 {
		c.plot(int(math.Round(cx)), int(math.Round(cy)))
		return
	}

	if filled {
		for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
			dy := (float64(y) + 0.5 - cy) / ry
			if dy < -1 || dy > 1 {
				continue
			}
			half := rx * math.Sqrt(1-dy*dy)
			c.span(y, cx-half, cx+half)
		}
		return
	}

	steps := max(8, int(2*math.Pi*max(rx, ry)))
	for i := range steps {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.plot(int(math.Round(cx+rx*math.Cos(a))), int(math.Round(cy+ry*math.Sin(a))))
	}
}

// span lights the pixels of row y whose columns fall within [from, to].
func (c *Canvas) span(y int, from, to float64) {
	for x := int(math.Ceil(from)); x <= int(math.Floor(to)); x++ {
		c.plot(x, y)
	}
}

// RegularPolygon returns the n vertices of a regular polygon of radius r
// around center, rotated by angle. The slice is reused by the next call.
func (c *Canvas) RegularPolygon(center Point, r, angle float64, n int) []Point {
	if cap(c.points) < n {
		c.points = make([]Point, n)
	}
	points := c.points[:n]
	for i := range points {
		a := angle + 2*math.Pi*float64(i)/float64(n)
		points[i] = Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
	}
	return points
}

// fillPolygon fills with an even-odd scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	c.scaled = c.scaled[:0]
	top, bottom := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		sp := Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		c.scaled = append(c.scaled, sp)
		top, bottom = min(top, sp.Y), max(bottom, sp.Y)
	}

	for y := int(math.Floor(top)); y <= int(math.Ceil(bottom)); y++ {
		scanY := float64(y) + 0.5
		c.crossing = c.crossing[:0]
		prev := c.scaled[len(c.scaled)-1]
		for _, p := range c.scaled {
			if (prev.Y <= scanY) != (p.Y <= scanY) {
				t := (scanY - prev.Y) / (p.Y - prev.Y)
				c.crossing = append(c.crossing, prev.X+t*(p.X-prev.X))
			}
			prev = p
		}
		slices.Sort(c.crossing)
		for i := 0; i+1 < len(c.crossing); i += 2 {
			c.span(y, c.crossing[i], c.crossing[i+1])
		}
	}
}

// cellAt combines the two pixels of a terminal cell. Two different colors
// become an upper half block over a background.
func (c *Canvas) cellAt(col, row int) cell {
	top := c.pixels[row*2*c.cols+col]
	bottom := c.pixels[(row*2+1)*c.cols+col]
	switch {
	case top == ColorNone && bottom == ColorNone:
		return cell{ch: BlockEmpty}
	case bottom == ColorNone:
		return cell{ch: BlockUpperHalf, fg: top}
	case top == ColorNone:
		return cell{ch: BlockLowerHalf, fg: bottom}
	case top == bottom:
		return cell{ch: BlockFull, fg: top}
	default:
		return cell{ch: BlockUpperHalf, fg: top, bg: bottom}
	}
}

// Render writes every cell that differs from what the terminal shows.
// Colors are switched only when they change and reset afterwards. Cursor
// positions go through cw's offset, which must match SetOffset.
func (c *Canvas) Render(cw *ChunkWriter) {
	var fg, bg Color
	styled := false
	for row := range c.rows {
		for col := range c.cols {
			next := c.cellAt(col, row)
			i := row*c.cols + col
			if c.shown[i] == next {
				continue
			}
			c.shown[i] = next

			cw.MoveCursor(col+1, row+1)
			if next.ch != BlockEmpty && (next.fg != fg || next.bg != bg || !styled) {
				fg, bg, styled = next.fg, next.bg, true
				cw.buf = appendSGR(cw.buf, fg, bg)
			} else if next.ch == BlockEmpty && bg != ColorNone {
				bg = ColorNone
				cw.buf = append(cw.buf, "\033[49m"...)
			}
			cw.buf = utf8.AppendRune(cw.buf, next.ch)
		}
	}
	if styled {
		cw.WriteString(seqReset)
	}
}

// RenderBorder frames the canvas when it is centered in a larger terminal:
// horizontal bars when there is a row offset, vertical bars when there is
// a column offset, corners when both.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	sides := c.offsetCol >= 1
	bars := c.offsetRow >= 1
	line := strings.Repeat("─", c.cols)

	if bars {
		if sides {
			cw.MoveCursor(0, 0)
			cw.WriteString("┌" + line + "┐")
			cw.MoveCursor(0, c.rows+1)
			cw.WriteString("└" + line + "┘")
		} else {
			cw.MoveCursor(1, 0)
			cw.WriteString(line)
			cw.MoveCursor(1, c.rows+1)
			cw.WriteString(line)
		}
	}
	if sides {
		for row := 1; row <= c.rows; row++ {
			cw.MoveCursor(0, row)
			cw.WriteString("│")
			cw.MoveCursor(c.cols+1, row)
			cw.WriteString("│")
		}
	}
}

// LogicalToTerminal converts a logical position to the 1-based canvas cell
// that shows it, for placing text over drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(Point{X: x, Y: y})
	return px + 1, py/2 + 1
}
