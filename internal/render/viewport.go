package render

import (
	"math"

	"github.com/golang/geo/r3"
)

// Viewport maps world x/y coordinates onto a Width x Height pixel grid.
// Zoom scales about the center of Bounds; OffsetX/OffsetY pan in pixels.
// Screen y grows downward.
type Viewport struct {
	Bounds  Bounds
	Width   int
	Height  int
	Zoom    float64
	OffsetX int
	OffsetY int
}

// NewViewport returns an unzoomed, unpanned viewport over b.
func NewViewport(b Bounds, w, h int) Viewport {
	return Viewport{Bounds: b, Width: w, Height: h, Zoom: 1}
}

// Project maps p onto the pixel grid. ok is false when the viewport has no
// area.
func (v Viewport) Project(p r3.Vector) (x, y float64, ok bool) {
	if v.Width <= 0 || v.Height <= 0 {
		return 0, 0, false
	}
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	nx := normalize(p.X, v.Bounds.XMin, v.Bounds.XMax)
	ny := normalize(p.Y, v.Bounds.YMin, v.Bounds.YMax)
	// zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*zoom
	zy := 0.5 + (ny-0.5)*zoom
	x = zx*float64(v.Width-1) + float64(v.OffsetX)
	y = (1.0-zy)*float64(v.Height-1) + float64(v.OffsetY)
	return x, y, true
}

// ProjectInt is Project rounded to the pixel grid.
func (v Viewport) ProjectInt(p r3.Vector) (x, y int, ok bool) {
	fx, fy, ok := v.Project(p)
	if !ok {
		return 0, 0, false
	}
	return int(math.Round(fx)), int(math.Round(fy)), true
}

// Unproject maps a pixel position back to world x/y. ok is false when the
// viewport has no area or its bounds are flat.
func (v Viewport) Unproject(x, y float64) (wx, wy float64, ok bool) {
	b := v.Bounds
	if v.Width <= 1 || v.Height <= 1 || !(b.XMax > b.XMin && b.YMax > b.YMin) {
		return 0, 0, false
	}
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	zx := (x - float64(v.OffsetX)) / float64(v.Width-1)
	zy := 1.0 - (y-float64(v.OffsetY))/float64(v.Height-1)
	nx := 0.5 + (zx-0.5)/zoom
	ny := 0.5 + (zy-0.5)/zoom
	return b.XMin + nx*(b.XMax-b.XMin), b.YMin + ny*(b.YMax-b.YMin), true
}

// normalize places c in [lo, hi] as a fraction; a flat extent maps to the middle.
func normalize(c, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return (c - lo) / (hi - lo)
}
