// Package viz provides a braille-dot terminal canvas for quick scatter
// previews of sample clouds.
package viz

import "strings"

// Braille cells pack 2x4 dots per character, offset from U+2800.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	cols, rows int
	cells      [][]rune
}

// NewCanvas creates a canvas of cols x rows characters, addressable as
// (cols*2) x (rows*4) dots.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{cols: cols, rows: rows, cells: make([][]rune, rows)}
	for i := range c.cells {
		c.cells[i] = make([]rune, cols)
		for j := range c.cells[i] {
			c.cells[i][j] = 0x2800
		}
	}
	return c
}

func (c *Canvas) DotWidth() int  { return c.cols * 2 }
func (c *Canvas) DotHeight() int { return c.rows * 4 }

// Set turns on the dot at (x, y) in dot coordinates; out-of-range
// coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row][col] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = 0x2800
		}
	}
}

// Plot maps the points (xs[i], ys[i]) from the given data ranges onto
// the canvas, with the y axis increasing upward.
func (c *Canvas) Plot(xs, ys []float64, xmin, xmax, ymin, ymax float64) {
	if xmax <= xmin || ymax <= ymin {
		return
	}
	w := float64(c.DotWidth() - 1)
	h := float64(c.DotHeight() - 1)
	for i := range xs {
		fx := (xs[i] - xmin) / (xmax - xmin)
		fy := (ys[i] - ymin) / (ymax - ymin)
		if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
			continue
		}
		c.Set(int(fx*w+0.5), int((1-fy)*h+0.5))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Framed renders the canvas inside a box with an optional title in the
// top border.
func (c *Canvas) Framed(title string) string {
	var b strings.Builder

	top := "+" + strings.Repeat("-", c.cols) + "+"
	if title != "" && len(title)+2 <= c.cols {
		top = "+-" + title + strings.Repeat("-", c.cols-len(title)-1) + "+"
	}
	b.WriteString(top)
	b.WriteByte('\n')

	for _, row := range c.cells {
		b.WriteByte('|')
		b.WriteString(string(row))
		b.WriteString("|\n")
	}

	b.WriteString("+" + strings.Repeat("-", c.cols) + "+\n")
	return b.String()
}
