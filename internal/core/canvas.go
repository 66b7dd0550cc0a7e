package core

import (
	"strings"
)

// Canvas is a 2D rune buffer addressed in grid cells. It backs plain-text
// plots such as the top-down hit overview.
type Canvas struct {
	width  int
	height int
	cells  [][]rune
}

// NewCanvas creates a canvas filled with spaces. Negative sizes are treated
// as zero.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  max(width, 0),
		height: max(height, 0),
	}
	c.cells = make([][]rune, c.height)
	for y := range c.cells {
		c.cells[y] = make([]rune, c.width)
	}
	c.Fill(' ')
	return c
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in cells.
func (c *Canvas) Height() int {
	return c.height
}

// Fill sets every cell to r.
func (c *Canvas) Fill(r rune) {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = r
		}
	}
}

// Set places a rune at (x, y).
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Set(x, y int, r rune) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = r
}

// SetAt places a rune at a grid cell.
func (c *Canvas) SetAt(p Vec2[int], r rune) {
	c.Set(p.X, p.Y, r)
}

// Get returns the rune at (x, y), or a space outside the canvas.
func (c *Canvas) Get(x, y int) rune {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ' '
	}
	return c.cells[y][x]
}

// String joins the rows with newlines.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)

	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(string(c.cells[y]))
	}
	return sb.String()
}
