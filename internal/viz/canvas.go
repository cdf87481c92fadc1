package viz

import "strings"

// Braille cells pack a 2x4 dot grid per terminal character, so a WxH
// character canvas exposes (W*2)x(H*4) addressable dots. Unicode braille
// starts at 0x2800 with one bit per dot:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot-matrix for terminal plots.
type Canvas struct {
	Width  int
	Height int
	cells  [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// DotWidth and DotHeight report the canvas size in addressable dots.
func (c *Canvas) DotWidth() int  { return c.Width * 2 }
func (c *Canvas) DotHeight() int { return c.Height * 4 }

// Set turns on the dot at (x, y) in dot coordinates. Out-of-range
// coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row][col] |= dotBits[y%4][x%2]
}

// DrawLine rasterizes a segment between two dot coordinates (Bresenham).
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Clear empties every cell.
func (c *Canvas) Clear() {
	for row := range c.cells {
		for col := range c.cells[row] {
			c.cells[row][col] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.cells {
		if row > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(c.cells[row]))
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
