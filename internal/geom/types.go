package geom

import (
	"math"

	"github.com/golang/geo/r3"

	"polymap/internal/polydata"
	"polymap/internal/render"
)

// builder appends features to a dataset. With scalars enabled every point
// carries one; features without a value get NaN, which maps to the low end
// of a color table.
type builder struct {
	d       *polydata.PolyData
	scalars bool
}

func newBuilder(scalars bool) *builder {
	return &builder{d: polydata.New(), scalars: scalars}
}

func (b *builder) point(p r3.Vector, s float64) int {
	if b.scalars {
		return b.d.AddPointScalar(p, s)
	}
	return b.d.AddPoint(p)
}

func (b *builder) points(pts []r3.Vector, s float64) []int {
	ids := make([]int, len(pts))
	for i, p := range pts {
		ids[i] = b.point(p, s)
	}
	return ids
}

// verts adds one vertex cell per point.
func (b *builder) verts(pts []r3.Vector, s float64) {
	for _, id := range b.points(pts, s) {
		b.insert(render.Verts, id)
	}
}

func (b *builder) line(pts []r3.Vector, s float64) {
	if len(pts) == 0 {
		return
	}
	b.insert(render.Lines, b.points(pts, s)...)
}

// polygon adds the outer ring as a polygon cell. Holes cannot be expressed
// by a single polygon cell, so they are added as closed line cells.
func (b *builder) polygon(rings [][]r3.Vector, s float64) {
	for i, ring := range rings {
		ring = openRing(ring)
		if len(ring) == 0 {
			continue
		}
		ids := b.points(ring, s)
		if i == 0 {
			b.insert(render.Polys, ids...)
			continue
		}
		b.insert(render.Lines, append(ids, ids[0])...)
	}
}

// strip adds a triangle strip cell.
func (b *builder) strip(pts []r3.Vector, s float64) {
	if len(pts) < 3 {
		return
	}
	b.insert(render.Strips, b.points(pts, s)...)
}

// insert cannot fail: ids always come from points just added.
func (b *builder) insert(k render.Kind, ids ...int) {
	if err := b.d.InsertCell(k, ids...); err != nil {
		panic(err)
	}
}

func (b *builder) result() (*polydata.PolyData, error) {
	if b.d.NumberOfPoints() == 0 {
		return nil, ErrEmpty
	}
	return b.d, nil
}

// openRing drops the closing point of a ring that repeats its first point.
func openRing(ring []r3.Vector) []r3.Vector {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		return ring[:n-1]
	}
	return ring
}

// vec converts a 2 or 3 element coordinate. ok is false for shorter ones.
func vec(c []float64) (r3.Vector, bool) {
	switch {
	case len(c) >= 3:
		return r3.Vector{X: c[0], Y: c[1], Z: c[2]}, true
	case len(c) == 2:
		return r3.Vector{X: c[0], Y: c[1]}, true
	}
	return r3.Vector{}, false
}

func vecs(cs [][]float64) []r3.Vector {
	out := make([]r3.Vector, 0, len(cs))
	for _, c := range cs {
		if v, ok := vec(c); ok {
			out = append(out, v)
		}
	}
	return out
}

var nan = math.NaN()
