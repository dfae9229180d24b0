package viz

import (
	"math"
	"strings"

	"github.com/san-kum/rootlab/internal/scan"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// Set lights the dot at sub-pixel (x, y). The canvas is Width*2 by
// Height*4 sub-pixels with y growing downwards.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the dot at sub-pixel (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// PlotCurve draws the valid samples of g, a dotted zero line and a short
// vertical tick at every marker x.
func (c *Canvas) PlotCurve(g scan.Grid, markers []float64) {
	w, h := c.Width*2, c.Height*4
	if w < 2 || h < 2 || len(g.Samples) == 0 {
		return
	}

	minY, maxY := 0.0, 0.0
	for _, s := range g.Samples {
		if s.Valid {
			minY = math.Min(minY, s.Y)
			maxY = math.Max(maxY, s.Y)
		}
	}
	if maxY == minY {
		maxY = minY + 1
	}
	width := g.Domain.Width()
	if width == 0 {
		width = 1
	}

	toX := func(x float64) int {
		return int(math.Round((x - g.Domain.Min) / width * float64(w-1)))
	}
	toY := func(y float64) int {
		return int(math.Round((maxY - y) / (maxY - minY) * float64(h-1)))
	}

	zero := toY(0)
	for x := 0; x < w; x += 2 {
		c.Set(x, zero)
	}

	prevOK := false
	var px, py int
	for _, s := range g.Samples {
		if !s.Valid {
			prevOK = false
			continue
		}
		x, y := toX(s.X), toY(s.Y)
		if prevOK {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, prevOK = x, y, true
	}

	for _, m := range markers {
		x := toX(m)
		c.DrawLine(x, zero-2, x, zero+2)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
