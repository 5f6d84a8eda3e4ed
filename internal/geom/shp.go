package geom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/jonas-p/go-shp"

	"polymap/internal/polydata"
)

// LoadShapefile reads an ESRI Shapefile (with its .shx and, for scalars,
// .dbf siblings) into a dataset. Point, MultiPoint, PolyLine and Polygon
// shapes and their Z variants are converted; other shapes are skipped.
// With opts.ScalarField set the DBF field of that name becomes the scalar
// of every point of a record.
func LoadShapefile(path string, opts Options) (*polydata.PolyData, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shp: %w", err)
	}
	defer r.Close()

	field := -1
	if opts.ScalarField != "" {
		for i, f := range r.Fields() {
			if strings.EqualFold(f.String(), opts.ScalarField) {
				field = i
				break
			}
		}
		if field == -1 {
			return nil, fmt.Errorf("shp: field %q not found", opts.ScalarField)
		}
	}

	b := newBuilder(field >= 0)
	for r.Next() {
		row, shape := r.Shape()
		s := nan
		if field >= 0 {
			attr := strings.TrimSpace(strings.Trim(r.ReadAttribute(row, field), "\x00"))
			if v, err := strconv.ParseFloat(attr, 64); err == nil {
				s = v
			}
		}
		addShape(b, shape, s)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("shp: %w", err)
	}
	d, err := b.result()
	if err != nil {
		return nil, fmt.Errorf("shp: %w", err)
	}
	return d, nil
}

func addShape(b *builder, shape shp.Shape, s float64) {
	switch g := shape.(type) {
	case *shp.Point:
		b.verts([]r3.Vector{{X: g.X, Y: g.Y}}, s)
	case *shp.PointZ:
		b.verts([]r3.Vector{{X: g.X, Y: g.Y, Z: g.Z}}, s)
	case *shp.MultiPoint:
		b.verts(shpPoints(g.Points, nil), s)
	case *shp.PolyLine:
		for _, part := range shpParts(g.Parts, shpPoints(g.Points, nil)) {
			b.line(part, s)
		}
	case *shp.PolyLineZ:
		for _, part := range shpParts(g.Parts, shpPoints(g.Points, g.ZArray)) {
			b.line(part, s)
		}
	case *shp.Polygon:
		for _, rings := range shpPolygons(shpParts(g.Parts, shpPoints(g.Points, nil))) {
			b.polygon(rings, s)
		}
	case *shp.PolygonZ:
		for _, rings := range shpPolygons(shpParts(g.Parts, shpPoints(g.Points, g.ZArray))) {
			b.polygon(rings, s)
		}
	}
}

func shpPoints(pts []shp.Point, z []float64) []r3.Vector {
	out := make([]r3.Vector, len(pts))
	for i, p := range pts {
		out[i] = r3.Vector{X: p.X, Y: p.Y}
		if i < len(z) {
			out[i].Z = z[i]
		}
	}
	return out
}

// shpParts splits points at the part start offsets.
func shpParts(parts []int32, pts []r3.Vector) [][]r3.Vector {
	out := make([][]r3.Vector, 0, len(parts))
	for i, start := range parts {
		end := len(pts)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		if int(start) < 0 || int(start) > end || end > len(pts) {
			continue
		}
		out = append(out, pts[start:end])
	}
	return out
}

// shpPolygons groups rings into polygons. Shapefile outer rings run
// clockwise; counterclockwise rings are holes of the preceding outer ring.
func shpPolygons(rings [][]r3.Vector) [][][]r3.Vector {
	var polys [][][]r3.Vector
	for _, ring := range rings {
		if signedArea(ring) <= 0 || len(polys) == 0 {
			polys = append(polys, [][]r3.Vector{ring})
			continue
		}
		last := len(polys) - 1
		polys[last] = append(polys[last], ring)
	}
	return polys
}

// signedArea is positive for counterclockwise rings.
func signedArea(ring []r3.Vector) float64 {
	var a float64
	for i := range ring {
		j := (i + 1) % len(ring)
		a += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return a / 2
}
