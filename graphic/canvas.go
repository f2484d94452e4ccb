package graphic

import (
	"math"
	"sort"
)

// BrailleBase is the empty braille pattern. A cell's dots are OR'ed onto it.
const BrailleBase rune = '⠀'

// brailleBits maps a dot (column, row) inside a cell to its bit.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Canvas is a pixel grid backed by braille cells, two dots wide and four
// dots tall per terminal cell.
type Canvas struct {
	cols  int
	rows  int
	cells []uint8

	xs []float64 // scanline scratch
}

// NewCanvas returns a canvas covering cols by rows terminal cells.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize changes the canvas size and clears it.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}

	c.cols, c.rows = cols, rows

	if n := cols * rows; cap(c.cells) >= n {
		c.cells = c.cells[:n]
	} else {
		c.cells = make([]uint8, n)
	}

	c.Clear()
}

// Clear removes every dot.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0
	}
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (int, int) {
	return c.cols, c.rows
}

// PixelWidth is the number of dot columns.
func (c *Canvas) PixelWidth() int {
	return c.cols * 2
}

// PixelHeight is the number of dot rows.
func (c *Canvas) PixelHeight() int {
	return c.rows * 4
}

// Set lights the dot at x, y. Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.PixelWidth() || y >= c.PixelHeight() {
		return
	}

	c.cells[(y/4)*c.cols+x/2] |= brailleBits[x%2][y%4]
}

// IsSet reports whether the dot at x, y is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= c.PixelWidth() || y >= c.PixelHeight() {
		return false
	}

	return c.cells[(y/4)*c.cols+x/2]&brailleBits[x%2][y%4] != 0
}

// Bits returns the dot pattern of a cell.
func (c *Canvas) Bits(col, row int) uint8 {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0
	}
	return c.cells[row*c.cols+col]
}

// Line draws a straight line between two points.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	ax, ay := round(x0), round(y0)
	bx, by := round(x1), round(y1)

	dx := abs(bx - ax)
	dy := -abs(by - ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}

	e := dx + dy

	for {
		c.Set(ax, ay)

		if ax == bx && ay == by {
			return
		}

		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ax += sx
		}
		if e2 <= dx {
			e += dx
			ay += sy
		}
	}
}

// FillPolygon fills the closed path through pts using the even-odd rule,
// sampling each dot at its center.
func (c *Canvas) FillPolygon(pts []Point) {
	if len(pts) < 3 {
		return
	}

	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	y0 := max(0, int(math.Floor(minY)))
	y1 := min(c.PixelHeight()-1, int(math.Ceil(maxY)))

	for y := y0; y <= y1; y++ {
		sy := float64(y) + 0.5
		c.xs = c.xs[:0]

		j := len(pts) - 1
		for i := range pts {
			a, b := pts[j], pts[i]
			if (a.Y <= sy) != (b.Y <= sy) {
				c.xs = append(c.xs, a.X+(sy-a.Y)*(b.X-a.X)/(b.Y-a.Y))
			}
			j = i
		}

		sort.Float64s(c.xs)

		for k := 0; k+1 < len(c.xs); k += 2 {
			from := int(math.Ceil(c.xs[k] - 0.5))
			to := int(math.Floor(c.xs[k+1] - 0.5))
			for x := from; x <= to; x++ {
				c.Set(x, y)
			}
		}
	}
}

// Point is a position in dot space.
type Point struct {
	X, Y float64
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
