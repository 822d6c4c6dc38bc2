package viz

import "strings"

// blankCell is the braille pattern with no dots raised.
const blankCell rune = 0x2800

// dotBits maps a sub-pixel (row, col) inside one braille cell to its dot.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells, each holding 2x4 sub-pixels.
type Canvas struct {
	cols, rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	cells := make([]rune, cols*rows)
	for i := range cells {
		cells[i] = blankCell
	}
	return &Canvas{cols: cols, rows: rows, cells: cells}
}

// SubWidth and SubHeight are the canvas size in sub-pixels.
func (c *Canvas) SubWidth() int  { return c.cols * 2 }
func (c *Canvas) SubHeight() int { return c.rows * 4 }

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.SubWidth() && y < c.SubHeight()
}

// Set raises the dot at sub-pixel (x, y). Points off the canvas are dropped.
func (c *Canvas) Set(x, y int) {
	if !c.inside(x, y) {
		return
	}
	c.cells[(y/4)*c.cols+x/2] |= dotBits[y%4][x%2]
}

func (c *Canvas) Lit(x, y int) bool {
	if !c.inside(x, y) {
		return false
	}
	return c.cells[(y/4)*c.cols+x/2]&dotBits[y%4][x%2] != 0
}

// DrawLine raises every dot on the Bresenham segment between the endpoints.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, sx := span(x0, x1)
	dy, sy := span(y0, y1)
	e := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

// span returns |b - a| and the unit step from a toward b.
func span(a, b int) (int, int) {
	if b < a {
		return a - b, -1
	}
	return b - a, 1
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(len(c.cells)*3 + c.rows)
	for r := 0; r < c.rows; r++ {
		b.WriteString(string(c.cells[r*c.cols : (r+1)*c.cols]))
		b.WriteByte('\n')
	}
	return b.String()
}
