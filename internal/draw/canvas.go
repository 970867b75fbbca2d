package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// cell is what one terminal cell shows.
type cell struct {
	ch    rune
	color Color
}

// dirty never matches a rendered cell, forcing a rewrite.
var dirty = cell{ch: -1}

var blank = cell{ch: BlockEmpty}

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Drawing happens in logical coordinates which are scaled to
// terminal pixels. Render only emits cells that changed since the previous
// frame.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int     // termHeight * 2
	pixels         []Color // [y*termWidth + x]
	shown          []cell  // [row*termWidth + col], what the terminal displays
	pen            Color

	logicalWidth  float64
	logicalHeight float64 // in sub-pixels
	scaleX        float64
	scaleY        float64

	// 0-based terminal offsets when the canvas is centred in a larger terminal.
	offsetCol int
	offsetRow int

	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates an unscaled canvas for the given terminal dimensions.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that maps logicalWidth x logicalHeight
// onto termWidth x termHeight cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		pen:           ColorDefault,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical size. A size change assumes the terminal was cleared.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth, termHeight = max(termWidth, 0), max(termHeight, 0)
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.shown = make([]cell, termHeight*termWidth)
		c.ForceRedraw()
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// ForceRedraw tells the canvas the terminal was cleared, so every drawn
// cell is written again on the next Render.
func (c *Canvas) ForceRedraw() {
	for i := range c.shown {
		c.shown[i] = blank
	}
}

// MarkTextDirty records that text overwrote n cells starting at the 1-based
// canvas position (col, row). They are rewritten on the next Render.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	row--
	col--
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := max(col, 0); x < min(col+n, c.termWidth); x++ {
		c.shown[row*c.termWidth+x] = dirty
	}
}

// SetOffset sets the 0-based column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

func (c *Canvas) OffsetCol() int { return c.offsetCol }
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// SetColor selects the colour used by subsequent drawing calls.
func (c *Canvas) SetColor(color Color) {
	if color == ColorNone {
		color = ColorDefault
	}
	c.pen = color
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = c.pen
	}
}

// Pixel reports the colour at pixel (x, y), ColorNone when unset or out of range.
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[y*c.termWidth+x]
}

func (c *Canvas) toPixel(p Point) (float64, float64) {
	return p.X * c.scaleX, p.Y * c.scaleY
}

// Set sets the pixel under a logical point.
func (c *Canvas) Set(p Point) {
	x, y := c.toPixel(p)
	c.setPixel(int(math.Round(x)), int(math.Round(y)))
}

// DrawLine draws a line between two logical points using Bresenham's
// algorithm. The line is clipped to the canvas first.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)
	var ok bool
	x1, y1, x2, y2, ok = clipLine(x1, y1, x2, y2, -1, -1, float64(c.termWidth), float64(c.subPixelHeight))
	if !ok {
		return
	}
	c.bresenham(int(math.Round(x1)), int(math.Round(y1)), int(math.Round(x2)), int(math.Round(y2)))
}

func (c *Canvas) bresenham(x1, y1, x2, y2 int) {
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
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
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

// clipLine clips a segment to the rectangle [minX, maxX] x [minY, maxY]
// using Liang-Barsky. ok is false when nothing is left.
func clipLine(x1, y1, x2, y2, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := x2-x1, y2-y1
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x1 - minX},
		{dx, maxX - x1},
		{-dy, y1 - minY},
		{dy, maxY - y1},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

// DrawPolygon draws a closed polygon, filling its interior when filled is set.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	n := len(points)
	for i := range n {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fillPolygon fills a polygon with a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		x, y := c.toPixel(p)
		scaled[i] = Point{X: x, Y: y}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := range n {
			p1, p2 := scaled[i], scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections
		slices.Sort(intersections)
		for i := 0; i+1 < len(intersections); i += 2 {
			c.hspan(y, intersections[i], intersections[i+1])
		}
	}
}

// hspan sets pixels on row y whose centres lie within [x0, x1].
func (c *Canvas) hspan(y int, x0, x1 float64) {
	start := max(int(math.Ceil(x0)), 0)
	end := min(int(math.Floor(x1)), c.termWidth-1)
	for x := start; x <= end; x++ {
		c.setPixel(x, y)
	}
}

// DrawCircle draws a circle of logical radius r. The circle becomes an
// ellipse in pixel space when the axes scale differently.
func (c *Canvas) DrawCircle(center Point, r float64, filled bool) {
	cx, cy := c.toPixel(center)
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx < 0.5 && ry < 0.5 {
		c.setPixel(int(math.Round(cx)), int(math.Round(cy)))
		return
	}
	if filled {
		yStart := max(int(math.Ceil(cy-ry)), 0)
		yEnd := min(int(math.Floor(cy+ry)), c.subPixelHeight-1)
		for y := yStart; y <= yEnd; y++ {
			dy := (float64(y) - cy) / ry
			hw := rx * math.Sqrt(max(0, 1-dy*dy))
			c.hspan(y, cx-hw, cx+hw)
		}
	}
	segments := max(8, int(math.Ceil(2*math.Pi*max(rx, ry)/2)))
	pts := c.BorrowPoints(segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
	}
	n := len(pts)
	for i := range n {
		c.DrawLine(pts[i], pts[(i+1)%n])
	}
}

// DrawRect draws the axis-aligned rectangle spanned by two logical corners.
func (c *Canvas) DrawRect(a, b Point, filled bool) {
	pts := c.BorrowPoints(4)
	pts[0] = Point{X: a.X, Y: a.Y}
	pts[1] = Point{X: b.X, Y: a.Y}
	pts[2] = Point{X: b.X, Y: b.Y}
	pts[3] = Point{X: a.X, Y: b.Y}
	c.DrawPolygon(pts, filled)
}

// cellAt combines the two sub-pixels of a terminal cell. When both halves
// are set with different colours the upper one wins.
func (c *Canvas) cellAt(row, col int) cell {
	top := c.pixels[row*2*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]
	switch {
	case top != ColorNone && bottom != ColorNone:
		return cell{ch: BlockFull, color: top}
	case top != ColorNone:
		return cell{ch: BlockUpperHalf, color: top}
	case bottom != ColorNone:
		return cell{ch: BlockLowerHalf, color: bottom}
	}
	return blank
}

// Render writes every cell that differs from what the terminal shows.
func (c *Canvas) Render(w io.Writer) error {
	b := &c.renderBuf
	b.Reset()
	pen := ColorNone
	nextCol := -1 // column the terminal cursor sits at after the last write
	for row := range c.termHeight {
		for col := range c.termWidth {
			idx := row*c.termWidth + col
			cur := c.cellAt(row, col)
			if cur == c.shown[idx] {
				continue
			}
			c.shown[idx] = cur
			if col != nextCol {
				c.moveTo(row+1+c.offsetRow, col+1+c.offsetCol)
			}
			if cur.ch != BlockEmpty && cur.color != pen {
				b.WriteString(cur.color.Code())
				pen = cur.color
			}
			b.WriteRune(cur.ch)
			nextCol = col + 1
		}
		nextCol = -1
	}
	if pen != ColorNone {
		b.WriteString(ColorReset)
	}
	if b.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (c *Canvas) moveTo(row, col int) {
	b := &c.renderBuf
	b.WriteString("\033[")
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	b.WriteByte('H')
}

// RenderBorder frames the canvas when it is centred inside a larger terminal.
// Horizontal bars need a row offset and vertical bars a column offset.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1
	if !hasH && !hasV {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	bar := strings.Repeat("─", c.termWidth)

	var b strings.Builder
	if hasV {
		for _, edge := range [2]struct {
			row         int
			open, close string
		}{{top, "┌", "┐"}, {bottom, "└", "┘"}} {
			if hasH {
				b.WriteString("\033[" + strconv.Itoa(edge.row) + ";" + strconv.Itoa(left) + "H" + edge.open + bar + edge.close)
			} else {
				b.WriteString("\033[" + strconv.Itoa(edge.row) + ";" + strconv.Itoa(c.offsetCol+1) + "H" + bar)
			}
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			r := strconv.Itoa(row)
			b.WriteString("\033[" + r + ";" + strconv.Itoa(left) + "H│\033[" + r + ";" + strconv.Itoa(right) + "H│")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (c *Canvas) LogicalWidth() float64  { return c.logicalWidth }
func (c *Canvas) LogicalHeight() float64 { return c.logicalHeight }
func (c *Canvas) TerminalWidth() int     { return c.termWidth }
func (c *Canvas) TerminalHeight() int    { return c.termHeight }

// LogicalToTerminal converts logical coordinates to a 1-based terminal
// position relative to the canvas.
func (c *Canvas) LogicalToTerminal(p Point) (col, row int) {
	x, y := c.toPixel(p)
	return int(math.Round(x)) + 1, int(math.Round(y))/2 + 1
}

// TerminalToLogical maps a 1-based terminal cell to the logical point at
// its centre.
func (c *Canvas) TerminalToLogical(col, row int) Point {
	return Point{
		X: (float64(col-1) + 0.5) / c.scaleX,
		Y: (float64(row-1)*2 + 1) / c.scaleY,
	}
}

// BorrowPoints returns a reusable slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
