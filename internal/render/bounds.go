package render

import "github.com/golang/geo/r3"

// Bounds is an axis-aligned box.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// DefaultBounds is the unit cube reported when there is nothing to measure.
func DefaultBounds() Bounds {
	return Bounds{XMin: -1, XMax: 1, YMin: -1, YMax: 1, ZMin: -1, ZMax: 1}
}

// BoundsOf returns the smallest box containing pts, or DefaultBounds when
// pts is empty.
func BoundsOf(pts []r3.Vector) Bounds {
	if len(pts) == 0 {
		return DefaultBounds()
	}
	b := Bounds{
		XMin: pts[0].X, XMax: pts[0].X,
		YMin: pts[0].Y, YMax: pts[0].Y,
		ZMin: pts[0].Z, ZMax: pts[0].Z,
	}
	for _, p := range pts[1:] {
		b.XMin, b.XMax = min(b.XMin, p.X), max(b.XMax, p.X)
		b.YMin, b.YMax = min(b.YMin, p.Y), max(b.YMax, p.Y)
		b.ZMin, b.ZMax = min(b.ZMin, p.Z), max(b.ZMax, p.Z)
	}
	return b
}

// Valid reports whether no extent is inverted.
func (b Bounds) Valid() bool {
	return b.XMin <= b.XMax && b.YMin <= b.YMax && b.ZMin <= b.ZMax
}

// Center returns the middle of the box.
func (b Bounds) Center() r3.Vector {
	return r3.Vector{X: (b.XMin + b.XMax) / 2, Y: (b.YMin + b.YMax) / 2, Z: (b.ZMin + b.ZMax) / 2}
}

// Array returns the bounds as (xmin, xmax, ymin, ymax, zmin, zmax).
func (b Bounds) Array() [6]float64 {
	return [6]float64{b.XMin, b.XMax, b.YMin, b.YMax, b.ZMin, b.ZMax}
}
