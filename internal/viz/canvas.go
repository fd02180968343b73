package viz

import "strings"

const brailleBlank = 0x2800

// dotBits maps a sub-cell (row, col) to its bit in a braille pattern:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a monochrome bitmap packed two dots wide and four tall per
// terminal cell.
type Canvas struct {
	cols, rows int
	cells      []uint8
}

func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	return &Canvas{cols: cols, rows: rows, cells: make([]uint8, cols*rows)}
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.cols * 2, c.rows * 4 }

// Set lights the dot at (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() { clear(c.cells) }

// Lit reports whether any dot in cell (col, row) is set.
func (c *Canvas) Lit(col, row int) bool {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return false
	}
	return c.cells[row*c.cols+col] != 0
}

// Cell returns the braille rune for cell (col, row).
func (c *Canvas) Cell(col, row int) rune {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return brailleBlank
	}
	return brailleBlank + rune(c.cells[row*c.cols+col])
}

// DrawLine lights every dot on the segment between two dots.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			b.WriteRune(c.Cell(col, row))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
