// Package render defines the contract between the poly mapper and the
// rendering backends that turn its primitives into pixels or glyphs.
package render

import (
	"image/color"
	"io"

	"github.com/golang/geo/r3"
)

// Colors holds one color per dataset point.
type Colors []color.NRGBA

// At returns the color of point i, or fallback when the colors are absent
// or too short.
func (c Colors) At(i int, fallback color.NRGBA) color.NRGBA {
	if i < 0 || i >= len(c) {
		return fallback
	}
	return c[i]
}

// Mean returns the average color of the given points.
func (c Colors) Mean(ids []int, fallback color.NRGBA) color.NRGBA {
	if len(c) == 0 || len(ids) == 0 {
		return fallback
	}
	var r, g, b, a, n int
	for _, id := range ids {
		if id < 0 || id >= len(c) {
			continue
		}
		r += int(c[id].R)
		g += int(c[id].G)
		b += int(c[id].B)
		a += int(c[id].A)
		n++
	}
	if n == 0 {
		return fallback
	}
	return color.NRGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: uint8(a / n)}
}

// Geometry is the read-only view of a dataset that primitives build from.
type Geometry interface {
	NumberOfPoints() int
	Point(i int) r3.Vector
	// Cells returns the point index lists of every cell of kind k.
	Cells(k Kind) [][]int
	Bounds() Bounds
}

// Renderer is a rendering backend. It hands out primitives, one per kind,
// which the caller owns until it releases them.
type Renderer interface {
	NewPrimitive(k Kind) (Primitive, error)
}

// Primitive is a backend object drawing every cell of one kind.
type Primitive interface {
	// Build replaces whatever the primitive held with the cells of g.
	// colors may be nil, in which case the backend's default color is used.
	Build(g Geometry, colors Colors)
	// Draw issues the primitive's draw calls against r.
	Draw(r Renderer) error
	// Release frees backend resources. The primitive is unusable afterwards.
	Release()
}

// Target is a Renderer that produces a whole frame.
type Target interface {
	Renderer
	SetViewport(v Viewport)
	Viewport() Viewport
	// Clear erases the frame.
	Clear()
	// WriteTo writes the frame in the target's native format.
	WriteTo(w io.Writer) (int64, error)
}
