package term

import (
	"image/color"
	"sort"
)

// canvas is a grid of braille cells, each holding a 2x4 dot mask and the
// color of the last dot drawn into it.
type canvas struct {
	w, h   int // in cells
	mask   [][]uint8
	colors [][]color.NRGBA
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.mask = make([][]uint8, c.h)
	c.colors = make([][]color.NRGBA, c.h)
	for i := range c.mask {
		c.mask[i] = make([]uint8, c.w)
		c.colors[i] = make([]color.NRGBA, c.w)
	}
	return c
}

func (c *canvas) clear() {
	for y := range c.mask {
		clear(c.mask[y])
		clear(c.colors[y])
	}
}

// dotBits[ry][rx] is the braille bit of the dot at column rx, row ry of a cell.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// setDot sets the dot at dot coordinates (2x4 per cell). Fully transparent
// colors draw nothing.
func (c *canvas) setDot(mx, my int, col color.NRGBA) {
	if mx < 0 || my < 0 || col.A == 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= c.h || cx >= c.w {
		return
	}
	c.mask[cy][cx] |= dotBits[ry][rx]
	c.colors[cy][cx] = col
}

// line draws a line on the dot grid using Bresenham.
func (c *canvas) line(x0, y0, x1, y1 int, col color.NRGBA) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.setDot(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
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

// fill fills ring with the even-odd rule, one scanline per dot row.
func (c *canvas) fill(ring [][2]int, col color.NRGBA) {
	if len(ring) < 3 {
		return
	}
	var xs []int
	for y := 0; y < c.h*4; y++ {
		xs = xs[:0]
		for i := range ring {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (y >= y0 && y < y1) || (y >= y1 && y < y0) {
				t := float64(y-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := max(0, xs[i]); x <= xs[i+1]; x++ {
				c.setDot(x, y, col)
			}
		}
	}
}

// outline draws the closed edges of ring.
func (c *canvas) outline(ring [][2]int, col color.NRGBA) {
	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		c.line(a[0], a[1], b[0], b[1], col)
	}
}

// glyph returns the braille rune of cell (x, y), or a space when empty.
func (c *canvas) glyph(x, y int) rune {
	if c.mask[y][x] == 0 {
		return ' '
	}
	return rune(0x2800 + int(c.mask[y][x]))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
