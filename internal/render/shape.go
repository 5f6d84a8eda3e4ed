package render

import (
	"image/color"

	"github.com/golang/geo/r3"
)

// Shape is one drawable element of a primitive in world coordinates.
// Vertices and lines carry a color per point; filled shapes (polygons and
// strip triangles) carry a single Fill color.
type Shape struct {
	Points []r3.Vector
	Colors []color.NRGBA
	Fill   color.NRGBA
}

// Shapes flattens the cells of kind k into shapes. Triangle strips are split
// into their triangles. Point colors come from colors, or fallback when
// colors is nil.
func Shapes(g Geometry, k Kind, colors Colors, fallback color.NRGBA) []Shape {
	cells := g.Cells(k)
	shapes := make([]Shape, 0, len(cells))
	for _, ids := range cells {
		switch k {
		case Verts, Lines:
			s := Shape{
				Points: make([]r3.Vector, len(ids)),
				Colors: make([]color.NRGBA, len(ids)),
			}
			for i, id := range ids {
				s.Points[i] = g.Point(id)
				s.Colors[i] = colors.At(id, fallback)
			}
			shapes = append(shapes, s)
		case Polys:
			s := Shape{Points: make([]r3.Vector, len(ids)), Fill: colors.Mean(ids, fallback)}
			for i, id := range ids {
				s.Points[i] = g.Point(id)
			}
			shapes = append(shapes, s)
		case Strips:
			for i := 0; i+2 < len(ids); i++ {
				tri := ids[i : i+3]
				shapes = append(shapes, Shape{
					Points: []r3.Vector{g.Point(tri[0]), g.Point(tri[1]), g.Point(tri[2])},
					Fill:   colors.Mean(tri, fallback),
				})
			}
		}
	}
	return shapes
}
